package ytdlp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const codecNone = "none"

// VideoInfo is the subset of yt-dlp metadata reported by the probe.
type VideoInfo struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    int64    `json:"duration"`
	Thumbnail   string   `json:"thumbnail"`
	Channel     string   `json:"channel"`
	ViewCount   int64    `json:"view_count"`
	Formats     []Format `json:"formats"`
}

// Format is one selectable stream variant.
type Format struct {
	URL        string  `json:"url"`
	FormatID   string  `json:"format_id"`
	Ext        string  `json:"ext"`
	Resolution string  `json:"resolution"`
	FormatNote string  `json:"format_note"`
	Filesize   int64   `json:"filesize"`
	TBR        float64 `json:"tbr"`
	ACodec     string  `json:"acodec"`
	VCodec     string  `json:"vcodec"`
	HasVideo   bool    `json:"has_video"`
	HasAudio   bool    `json:"has_audio"`

	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	FPS    float64 `json:"fps,omitempty"`
}

// MimeType maps the container extension to the MIME type players expect.
func (f Format) MimeType() string {
	switch strings.ToLower(f.Ext) {
	case "webm":
		return "video/webm"
	case "m4a":
		return "audio/mp4"
	case "opus", "ogg":
		return "audio/ogg"
	default:
		return "video/mp4"
	}
}

// QualityLabel returns "<height>p<fps>" for video variants, the format note
// otherwise, and "audio only" for unlabeled audio streams.
func (f Format) QualityLabel() string {
	if f.Height > 0 {
		label := fmt.Sprintf("%dp", f.Height)
		if f.FPS > 0 {
			label += strconv.FormatFloat(f.FPS, 'f', -1, 64)
		}
		return label
	}
	if f.FormatNote != "" {
		return f.FormatNote
	}
	if f.HasAudio && !f.HasVideo {
		return "audio only"
	}
	return ""
}

// Muxed reports whether the format carries both audio and video.
func (f Format) Muxed() bool {
	return f.HasAudio && f.HasVideo
}

type rawInfo struct {
	ID          flexString  `json:"id"`
	Title       flexString  `json:"title"`
	Description flexString  `json:"description"`
	Duration    flexNumber  `json:"duration"`
	Thumbnail   flexString  `json:"thumbnail"`
	Channel     flexString  `json:"channel"`
	ViewCount   flexNumber  `json:"view_count"`
	Formats     []rawFormat `json:"formats"`
}

type rawFormat struct {
	URL        flexString `json:"url"`
	FormatID   flexString `json:"format_id"`
	Ext        flexString `json:"ext"`
	Resolution flexString `json:"resolution"`
	FormatNote flexString `json:"format_note"`
	Filesize   flexNumber `json:"filesize"`
	TBR        flexNumber `json:"tbr"`
	ACodec     flexString `json:"acodec"`
	VCodec     flexString `json:"vcodec"`
	Width      flexNumber `json:"width"`
	Height     flexNumber `json:"height"`
	FPS        flexNumber `json:"fps"`
}

// flexString accepts any JSON value for a text field. Strings decode as-is,
// numbers and booleans keep their literal text, and null, objects, and arrays
// decode to "". present records that the key appeared, even as null.
type flexString struct {
	value   string
	present bool
}

func (s *flexString) UnmarshalJSON(data []byte) error {
	s.present = true
	s.value = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err == nil {
			s.value = text
		}
	case '{', '[', 'n':
	default:
		s.value = string(data)
	}
	return nil
}

// flexNumber accepts JSON numbers (integer or float), numeric strings, and
// null. Anything unparseable decodes to zero.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	text := string(data)
	if data[0] == '"' {
		unquoted, err := strconv.Unquote(text)
		if err != nil {
			*n = 0
			return nil
		}
		text = strings.TrimSpace(unquoted)
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		*n = 0
		return nil
	}
	*n = flexNumber(value)
	return nil
}

// int64 truncates toward zero, saturating at the int64 range.
func (n flexNumber) int64() int64 {
	value := math.Trunc(float64(n))
	switch {
	case value >= math.MaxInt64:
		return math.MaxInt64
	case value <= math.MinInt64:
		return math.MinInt64
	}
	return int64(value)
}

// ParseInfo decodes one yt-dlp --dump-json document.
func ParseInfo(data []byte) (VideoInfo, error) {
	var raw rawInfo
	if err := json.Unmarshal(data, &raw); err != nil {
		return VideoInfo{}, fmt.Errorf("ytdlp parse: %w", err)
	}
	info := VideoInfo{
		ID:          raw.ID.value,
		Title:       raw.Title.value,
		Description: raw.Description.value,
		Duration:    raw.Duration.int64(),
		Thumbnail:   raw.Thumbnail.value,
		Channel:     raw.Channel.value,
		ViewCount:   raw.ViewCount.int64(),
		Formats:     convertFormats(raw.Formats),
	}
	return info, nil
}

func convertFormats(raw []rawFormat) []Format {
	formats := make([]Format, 0, len(raw))
	for _, entry := range raw {
		if entry.URL.value == "" {
			continue
		}
		formats = append(formats, Format{
			URL:        entry.URL.value,
			FormatID:   entry.FormatID.value,
			Ext:        entry.Ext.value,
			Resolution: entry.Resolution.value,
			FormatNote: entry.FormatNote.value,
			Filesize:   entry.Filesize.int64(),
			TBR:        float64(entry.TBR),
			ACodec:     entry.ACodec.value,
			VCodec:     entry.VCodec.value,
			HasVideo:   codecPresent(entry.VCodec),
			HasAudio:   codecPresent(entry.ACodec),
			Width:      int(entry.Width.int64()),
			Height:     int(entry.Height.int64()),
			FPS:        float64(entry.FPS),
		})
	}
	return formats
}

// codecPresent reports whether the codec key appeared with any value other
// than "none". An explicit null counts as present.
func codecPresent(codec flexString) bool {
	return codec.present && codec.value != codecNone
}
