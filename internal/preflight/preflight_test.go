package preflight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tubeprobe/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckCookiesFile(t *testing.T) {
	dir := t.TempDir()
	small := filepath.Join(dir, "small.txt")
	large := filepath.Join(dir, "large.txt")
	if err := os.WriteFile(small, []byte("#"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(large, []byte("# Netscape HTTP Cookie File\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckCookiesFile(small); result.Passed || !strings.Contains(result.Detail, "ignored") {
		t.Fatalf("expected small cookies file to fail, got %+v", result)
	}
	if result := CheckCookiesFile(large); !result.Passed {
		t.Fatalf("expected cookies file to pass, got %+v", result)
	}
	if result := CheckCookiesFile(filepath.Join(dir, "missing")); result.Passed {
		t.Fatal("expected missing cookies file to fail")
	}
}

func writeYtDlp(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "yt-dlp")
	script := "#!/bin/sh\nif [ \"$1\" = \"--version\" ]; then echo 2025.01.15; exit 0; fi\nexit 1\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestCheckYtDlpReportsVersion(t *testing.T) {
	cfg := config.Default()
	cfg.YtDlp.Binary = writeYtDlp(t, t.TempDir())

	result := CheckYtDlp(context.Background(), &cfg)
	if !result.Passed {
		t.Fatalf("expected pass, got %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "2025.01.15") {
		t.Fatalf("expected version in detail, got %q", result.Detail)
	}
}

func TestCheckLLM_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": "OK"}}},
		})
	}))
	defer srv.Close()

	result := CheckLLM(context.Background(), "Chat API", config.LLMConfig{APIKey: "good-key", BaseURL: srv.URL, Model: "demo"})
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckLLM_BadKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	result := CheckLLM(context.Background(), "Chat API", config.LLMConfig{APIKey: "bad", BaseURL: srv.URL, Model: "demo"})
	if result.Passed {
		t.Fatal("expected failure for bad key")
	}
	if !strings.Contains(result.Detail, "auth failed") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckLLM_MissingKey(t *testing.T) {
	result := CheckLLM(context.Background(), "Chat API", config.LLMConfig{})
	if result.Passed || result.Detail != "API key missing" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil); results != nil {
		t.Fatalf("expected nil for nil config, got %v", results)
	}
}

func TestRunAll_MinimalConfig(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = base
	cfg.YtDlp.Binary = writeYtDlp(t, base)
	cfg.LLM.APIKey = ""

	results := RunAll(context.Background(), &cfg)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d: %+v", len(results), results)
	}
	if !results[0].Passed || !results[1].Passed {
		t.Fatalf("expected directory and yt-dlp checks to pass: %+v", results)
	}
	if !results[2].Skipped || results[2].Name != "Chat API" {
		t.Fatalf("expected chat check skipped, got %+v", results[2])
	}
	if Failed(results) {
		t.Fatal("expected skipped checks not to count as failures")
	}
}

func TestRunAll_IncludesCacheAndCookiesWhenConfigured(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = base
	cfg.Paths.CacheDir = filepath.Join(base, "missing-cache")
	cfg.Cache.Enabled = true
	cfg.YtDlp.Binary = writeYtDlp(t, base)
	cfg.YtDlp.CookiesFile = filepath.Join(base, "cookies.txt")

	results := RunAll(context.Background(), &cfg)
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Name)
	}
	joined := strings.Join(names, ",")
	if !strings.Contains(joined, "Cache directory") || !strings.Contains(joined, "Cookies file") {
		t.Fatalf("expected cache and cookies checks, got %s", joined)
	}
	if !Failed(results) {
		t.Fatal("expected missing cache dir to fail")
	}
}

func TestCheckSystemDeps(t *testing.T) {
	cfg := config.Default()
	cfg.YtDlp.Binary = writeYtDlp(t, t.TempDir())

	statuses := CheckSystemDeps(&cfg)
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	if !statuses[0].Available {
		t.Fatalf("expected yt-dlp available, got %+v", statuses[0])
	}
	if !statuses[1].Optional {
		t.Fatal("expected ffmpeg to be optional")
	}
}
