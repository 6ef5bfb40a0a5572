package ytdlp

import (
	"errors"
	"testing"
)

func TestExtractVideoID(t *testing.T) {
	inputs := []string{
		"dQw4w9WgXcQ",
		"  dQw4w9WgXcQ  ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ&t=10",
		"https://youtu.be/dQw4w9WgXcQ?si=abc",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
	}
	const want = "dQw4w9WgXcQ"
	for _, input := range inputs {
		got, err := ExtractVideoID(input)
		if err != nil {
			t.Fatalf("ExtractVideoID(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ExtractVideoID(%q) = %q, want %q", input, got, want)
		}
	}

	for _, input := range []string{"", "short", "https://example.com/video", "https://www.youtube.com/watch?v=dQw4w9WgXcQextra"} {
		if _, err := ExtractVideoID(input); !errors.Is(err, ErrInvalidVideoID) {
			t.Fatalf("ExtractVideoID(%q): expected ErrInvalidVideoID, got %v", input, err)
		}
	}
}

func TestWatchURL(t *testing.T) {
	if got := WatchURL("dQw4w9WgXcQ"); got != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Fatalf("unexpected watch url %q", got)
	}
}
