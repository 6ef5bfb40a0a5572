package main

import (
	"strings"
	"testing"

	"tubeprobe/internal/testsupport"
)

func TestCacheCommandsManageEntries(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.YtDlpStub{Stdout: sampleVideoJSON}, testsupport.WithCache(60))

	out, _, err := runCLI(t, []string{"cache", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	requireContains(t, out, "Cache is empty")

	if _, _, err := runCLI(t, []string{"video"}, env.configPath); err != nil {
		t.Fatalf("video: %v", err)
	}

	out, _, err = runCLI(t, []string{"cache", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	requireContains(t, out, "dQw4w9WgXcQ")
	requireContains(t, out, "Rick Astley")
	requireContains(t, out, "live")
	requireContains(t, out, "1 cached video(s)")

	out, _, err = runCLI(t, []string{"cache", "purge"}, env.configPath)
	if err != nil {
		t.Fatalf("cache purge: %v", err)
	}
	requireContains(t, out, "Purged 0 expired entries")

	out, _, err = runCLI(t, []string{"cache", "remove", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}, env.configPath)
	if err != nil {
		t.Fatalf("cache remove: %v", err)
	}
	requireContains(t, out, "Removed dQw4w9WgXcQ from cache")

	if _, _, err := runCLI(t, []string{"cache", "remove", "dQw4w9WgXcQ"}, env.configPath); err == nil {
		t.Fatal("expected error removing a missing entry")
	}

	if _, _, err := runCLI(t, []string{"video"}, env.configPath); err != nil {
		t.Fatalf("video: %v", err)
	}
	out, _, err = runCLI(t, []string{"cache", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	requireContains(t, out, "Cleared 1 entry")
}

func TestCacheCommandsReportDisabledCache(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.YtDlpStub{})

	out, _, err := runCLI(t, []string{"cache", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	if !strings.Contains(out, "disabled") {
		t.Fatalf("expected disabled notice, got %q", out)
	}
}
