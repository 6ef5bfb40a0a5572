package ytdlp

import "testing"

func TestSelectOptimalEmpty(t *testing.T) {
	if got := SelectOptimal(nil, 720); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestSelectOptimalPrefersMuxedNearTarget(t *testing.T) {
	formats := []Format{
		{FormatID: "video-720", Height: 720, HasVideo: true},
		{FormatID: "muxed-360", Height: 360, HasVideo: true, HasAudio: true},
		{FormatID: "muxed-1080", Height: 1080, HasVideo: true, HasAudio: true},
		{FormatID: "muxed-640", Height: 640, HasVideo: true, HasAudio: true},
	}
	got := SelectOptimal(formats, 720)
	if got == nil || got.FormatID != "muxed-640" {
		t.Fatalf("expected muxed-640, got %+v", got)
	}
}

func TestSelectOptimalFallsBackToVideo(t *testing.T) {
	formats := []Format{
		{FormatID: "audio", HasAudio: true},
		{FormatID: "video-1440", Height: 1440, HasVideo: true},
		{FormatID: "video-480", Height: 480, HasVideo: true},
	}
	got := SelectOptimal(formats, 480)
	if got == nil || got.FormatID != "video-480" {
		t.Fatalf("expected video-480, got %+v", got)
	}
}

func TestSelectOptimalFallsBackToFirst(t *testing.T) {
	formats := []Format{
		{FormatID: "audio-a", HasAudio: true},
		{FormatID: "audio-b", HasAudio: true},
	}
	got := SelectOptimal(formats, 720)
	if got == nil || got.FormatID != "audio-a" {
		t.Fatalf("expected audio-a, got %+v", got)
	}
}

func TestSelectOptimalTiesKeepOrder(t *testing.T) {
	formats := []Format{
		{FormatID: "first", Height: 700, HasVideo: true, HasAudio: true},
		{FormatID: "second", Height: 740, HasVideo: true, HasAudio: true},
	}
	got := SelectOptimal(formats, 0)
	if got == nil || got.FormatID != "first" {
		t.Fatalf("expected first, got %+v", got)
	}
}
