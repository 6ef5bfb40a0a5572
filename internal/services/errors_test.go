package services_test

import (
	"errors"
	"strings"
	"testing"

	"tubeprobe/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "ytdlp", "inspect", "exit status 1", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"ytdlp", "inspect", "exit status 1"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{services.Wrap(services.ErrTimeout, "ytdlp", "inspect", "", nil), "timeout"},
		{services.Wrap(services.ErrValidation, "ytdlp", "parse", "", nil), "validation"},
		{services.Wrap(services.ErrConfiguration, "llm", "chat", "", nil), "configuration"},
		{services.Wrap(services.ErrNotFound, "cache", "remove", "", nil), "not_found"},
		{services.Wrap(services.ErrExternalTool, "ytdlp", "inspect", "", nil), "external_tool"},
		{errors.New("plain"), "transient"},
	}
	for _, tt := range tests {
		if got := services.Category(tt.err); got != tt.want {
			t.Errorf("Category(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
