package videocache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"tubeprobe/internal/logging"
	"tubeprobe/internal/media/ytdlp"
	"tubeprobe/internal/services"
)

// Entry summarizes one cached probe result.
type Entry struct {
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	Channel      string    `json:"channel"`
	FormatCount  int       `json:"format_count"`
	PayloadBytes int64     `json:"payload_bytes"`
	CachedAt     time.Time `json:"cached_at"`
	Expired      bool      `json:"expired"`
}

// Cache stores VideoInfo documents keyed by video id.
type Cache struct {
	db     *sql.DB
	path   string
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// Option customizes a Cache.
type Option func(*Cache)

// WithClock overrides the time source used for TTL decisions.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// Open creates or connects to the cache database at path.
func Open(path string, ttl time.Duration, logger *slog.Logger, opts ...Option) (*Cache, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, services.Wrap(services.ErrConfiguration, "videocache", "open", "empty database path", nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("videocache: create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("videocache: open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("videocache: apply pragma %q: %w", pragma, execErr)
		}
	}

	if ttl < 0 {
		ttl = 0
	}
	cache := &Cache{
		db:     db,
		path:   path,
		ttl:    ttl,
		logger: logging.NewComponentLogger(logger, "videocache"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(cache)
	}
	if err := cache.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("videocache: %w", err)
	}
	return cache, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Path returns the database file location.
func (c *Cache) Path() string {
	return c.path
}

// TTL returns the configured entry lifetime; zero means entries never expire.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Lookup returns the cached document for videoID when one exists and has not
// expired. Expired rows are deleted.
func (c *Cache) Lookup(ctx context.Context, videoID string) (*ytdlp.VideoInfo, bool, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, false, nil
	}

	var (
		payload  string
		cachedAt int64
	)
	err := retryOnBusy(ctx, func() error {
		return c.db.QueryRowContext(ctx,
			"SELECT payload, cached_at FROM videos WHERE video_id = ?", videoID,
		).Scan(&payload, &cachedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("videocache: lookup %s: %w", videoID, err)
	}

	stored := time.UnixMilli(cachedAt)
	if c.expired(stored) {
		if _, err := c.exec(ctx, "DELETE FROM videos WHERE video_id = ? AND cached_at = ?", videoID, cachedAt); err != nil {
			return nil, false, fmt.Errorf("videocache: evict %s: %w", videoID, err)
		}
		c.logger.Debug("evicted expired entry",
			logging.String(logging.FieldVideoID, videoID),
			logging.Duration("age", c.now().Sub(stored)),
		)
		return nil, false, nil
	}

	var info ytdlp.VideoInfo
	if err := json.Unmarshal([]byte(payload), &info); err != nil {
		return nil, false, fmt.Errorf("videocache: decode %s: %w", videoID, err)
	}
	c.logger.Debug("cache hit", logging.String(logging.FieldVideoID, videoID))
	return &info, true, nil
}

// Store inserts or replaces the document for videoID.
func (c *Cache) Store(ctx context.Context, videoID string, info ytdlp.VideoInfo) error {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return services.Wrap(services.ErrValidation, "videocache", "store", "video id cannot be empty", nil)
	}
	payload, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("videocache: encode %s: %w", videoID, err)
	}
	_, err = c.exec(ctx, `INSERT INTO videos (video_id, title, channel, format_count, payload, payload_bytes, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(video_id) DO UPDATE SET
			title = excluded.title,
			channel = excluded.channel,
			format_count = excluded.format_count,
			payload = excluded.payload,
			payload_bytes = excluded.payload_bytes,
			cached_at = excluded.cached_at`,
		videoID, info.Title, info.Channel, len(info.Formats), string(payload), len(payload), c.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("videocache: store %s: %w", videoID, err)
	}
	c.logger.Debug("cached video info",
		logging.String(logging.FieldVideoID, videoID),
		logging.String("title", info.Title),
		logging.Int("formats", len(info.Formats)),
	)
	return nil
}

// Remove deletes the entry for videoID.
func (c *Cache) Remove(ctx context.Context, videoID string) error {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return services.Wrap(services.ErrValidation, "videocache", "remove", "video id cannot be empty", nil)
	}
	affected, err := c.exec(ctx, "DELETE FROM videos WHERE video_id = ?", videoID)
	if err != nil {
		return fmt.Errorf("videocache: remove %s: %w", videoID, err)
	}
	if affected == 0 {
		return services.Wrap(services.ErrNotFound, "videocache", "remove", fmt.Sprintf("video %q not in cache", videoID), nil)
	}
	c.logger.Debug("removed cache entry", logging.String(logging.FieldVideoID, videoID))
	return nil
}

// List returns every entry, newest first, flagging the expired ones.
func (c *Cache) List(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	err := retryOnBusy(ctx, func() error {
		entries = entries[:0]
		rows, err := c.db.QueryContext(ctx,
			"SELECT video_id, title, channel, format_count, payload_bytes, cached_at FROM videos ORDER BY cached_at DESC, video_id",
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var (
				entry    Entry
				cachedAt int64
			)
			if err := rows.Scan(&entry.VideoID, &entry.Title, &entry.Channel, &entry.FormatCount, &entry.PayloadBytes, &cachedAt); err != nil {
				return err
			}
			entry.CachedAt = time.UnixMilli(cachedAt)
			entry.Expired = c.expired(entry.CachedAt)
			entries = append(entries, entry)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("videocache: list: %w", err)
	}
	return entries, nil
}

// Purge deletes expired entries and reports how many were removed.
func (c *Cache) Purge(ctx context.Context) (int64, error) {
	if c.ttl <= 0 {
		return 0, nil
	}
	cutoff := c.now().Add(-c.ttl).UnixMilli()
	removed, err := c.exec(ctx, "DELETE FROM videos WHERE cached_at <= ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("videocache: purge: %w", err)
	}
	if removed > 0 {
		c.logger.Info("purged expired cache entries", logging.Int64("removed", removed))
	}
	return removed, nil
}

// Clear deletes every entry and reports how many were removed.
func (c *Cache) Clear(ctx context.Context) (int64, error) {
	removed, err := c.exec(ctx, "DELETE FROM videos")
	if err != nil {
		return 0, fmt.Errorf("videocache: clear: %w", err)
	}
	return removed, nil
}

func (c *Cache) expired(cachedAt time.Time) bool {
	if c.ttl <= 0 {
		return false
	}
	return !c.now().Before(cachedAt.Add(c.ttl))
}
