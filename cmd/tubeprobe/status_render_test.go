package main

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"tubeprobe/internal/deps"
	"tubeprobe/internal/preflight"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("yt-dlp", statusError, "not found", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "yt-dlp:", "[ERROR] not found")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Chat API", statusOK, "API reachable", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestRenderStatusLineWithoutMessage(t *testing.T) {
	got := renderStatusLine("Cache", statusSkip, "", false)
	if !strings.HasSuffix(got, "[SKIP]") {
		t.Fatalf("expected bare status label, got %q", got)
	}
}

func TestPreflightStatusKind(t *testing.T) {
	cases := []struct {
		result preflight.Result
		want   statusKind
	}{
		{preflight.Result{Passed: true}, statusOK},
		{preflight.Result{Skipped: true}, statusSkip},
		{preflight.Result{}, statusError},
	}
	for _, tc := range cases {
		if got := preflightStatusKind(tc.result); got != tc.want {
			t.Fatalf("preflightStatusKind(%+v) = %v, want %v", tc.result, got, tc.want)
		}
	}
}

func TestDependencyStatusKindAndDetail(t *testing.T) {
	missing := deps.Status{Name: "FFmpeg", Optional: true, Detail: "not found", Description: "merges formats"}
	if got := dependencyStatusKind(missing); got != statusWarn {
		t.Fatalf("expected optional missing dependency to warn, got %v", got)
	}
	if got := dependencyDetail(missing); got != "not found (merges formats)" {
		t.Fatalf("unexpected detail %q", got)
	}

	ready := deps.Status{Name: "yt-dlp", Available: true, Command: "/usr/bin/yt-dlp"}
	if got := dependencyStatusKind(ready); got != statusOK {
		t.Fatalf("expected available dependency ok, got %v", got)
	}
	if got := dependencyDetail(ready); got != "/usr/bin/yt-dlp" {
		t.Fatalf("unexpected detail %q", got)
	}

	if got := dependencyStatusKind(deps.Status{Name: "yt-dlp"}); got != statusError {
		t.Fatalf("expected required missing dependency to error, got %v", got)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestRenderTablePlaceholders(t *testing.T) {
	out := renderTable([]string{"ID", "Size"}, [][]string{{"18", ""}}, []columnAlignment{alignLeft, alignRight})
	requireContains(t, out, "18")
	requireContains(t, out, "-")
}
