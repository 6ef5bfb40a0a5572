package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"tubeprobe/internal/config"
	"tubeprobe/internal/testsupport"
)

const sampleVideoJSON = `{
  "id": "dQw4w9WgXcQ",
  "title": "Never Gonna Give You Up",
  "description": "Official video",
  "duration": 212.0,
  "thumbnail": "https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
  "channel": "Rick Astley",
  "view_count": 1500000000,
  "formats": [
    {"format_id": "sb0", "ext": "mhtml", "format_note": "storyboard", "acodec": "none", "vcodec": "none"},
    {"format_id": "140", "url": "https://rr1.example.com/audio?id=140&itag=140", "ext": "m4a", "resolution": "audio only", "format_note": "medium", "filesize": 3437645, "tbr": 129.5, "acodec": "mp4a.40.2", "vcodec": "none"},
    {"format_id": "18", "url": "https://rr1.example.com/muxed?id=18&itag=18", "ext": "mp4", "resolution": "640x360", "format_note": "360p", "filesize": 12000000, "tbr": 500, "acodec": "mp4a.40.2", "vcodec": "avc1.42001E", "width": 640, "height": 360, "fps": 25},
    {"format_id": "22", "url": "https://rr1.example.com/muxed?id=22&itag=22", "ext": "mp4", "resolution": "1280x720", "format_note": "720p", "acodec": "mp4a.40.2", "vcodec": "avc1.64001F", "width": 1280, "height": 720, "fps": 25}
  ]
}`

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	stubDir    string
}

func setupCLITestEnv(t *testing.T, stub testsupport.YtDlpStub, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("YT_DLP_PATH", "")

	stubDir := filepath.Join(base, "bin")
	binary := testsupport.WriteYtDlpStub(t, stubDir, stub)

	opts = append([]testsupport.ConfigOption{testsupport.WithYtDlpBinary(binary)}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	configPath := filepath.Join(base, "tubeprobe.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		stubDir:    stubDir,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
