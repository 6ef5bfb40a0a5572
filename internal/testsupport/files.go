package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(strings.Repeat("B", int(size))), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteScript writes an executable /bin/sh script with the given body.
func WriteScript(t testing.TB, path, body string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", path, err)
	}
}

// YtDlpStub describes a fake yt-dlp executable.
type YtDlpStub struct {
	// Stdout is printed verbatim for metadata runs.
	Stdout string
	// Stderr is printed to the error stream before exiting.
	Stderr   string
	ExitCode int
	// Version is printed for --version; defaults to 2025.01.01.
	Version string
}

// WriteYtDlpStub writes a yt-dlp replacement into dir and returns its path.
// Each invocation appends its arguments, one per line, to ArgsLog(dir).
func WriteYtDlpStub(t testing.TB, dir string, stub YtDlpStub) string {
	t.Helper()

	version := stub.Version
	if version == "" {
		version = "2025.01.01"
	}
	stdoutPath := filepath.Join(dir, "yt-dlp.stdout")
	stderrPath := filepath.Join(dir, "yt-dlp.stderr")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir for stub: %v", err)
	}
	if err := os.WriteFile(stdoutPath, []byte(stub.Stdout), 0o644); err != nil {
		t.Fatalf("write stub stdout: %v", err)
	}
	if err := os.WriteFile(stderrPath, []byte(stub.Stderr), 0o644); err != nil {
		t.Fatalf("write stub stderr: %v", err)
	}
	body := fmt.Sprintf(`if [ "$1" = "--version" ]; then
  echo %q
  exit 0
fi
for arg in "$@"; do
  echo "$arg" >> %q
done
cat %q
cat %q >&2
exit %d
`, version, ArgsLog(dir), stdoutPath, stderrPath, stub.ExitCode)
	path := filepath.Join(dir, "yt-dlp")
	WriteScript(t, path, body)
	return path
}

// ArgsLog is the file WriteYtDlpStub records invocation arguments in.
func ArgsLog(dir string) string {
	return filepath.Join(dir, "yt-dlp.args")
}

// ReadArgs returns the arguments recorded by a stub, or nil when it never ran.
func ReadArgs(t testing.TB, dir string) []string {
	t.Helper()

	data, err := os.ReadFile(ArgsLog(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("read args log: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}
