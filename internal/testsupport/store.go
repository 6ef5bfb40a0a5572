package testsupport

import (
	"testing"
	"time"

	"tubeprobe/internal/config"
	"tubeprobe/internal/logging"
	"tubeprobe/internal/videocache"
)

// MustOpenCache opens the video cache described by cfg and registers cleanup.
func MustOpenCache(t testing.TB, cfg *config.Config) *videocache.Cache {
	t.Helper()

	cache, err := videocache.Open(cfg.CacheDBPath(), cfg.CacheTTL(), logging.NewNop())
	if err != nil {
		t.Fatalf("videocache.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = cache.Close()
	})
	return cache
}

// FixedClock returns a clock function frozen at t, advanced by calling the
// returned setter.
func FixedClock(start time.Time) (func() time.Time, func(time.Duration)) {
	now := start
	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}
