package ytdlp

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

const watchURLBase = "https://www.youtube.com/watch"

// ErrInvalidVideoID is returned when input is neither an id nor a recognised URL.
var ErrInvalidVideoID = errors.New("invalid video id or url")

var (
	videoIDPattern  = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)
	videoURLPattern = regexp.MustCompile(`(?:[?&]v=|/shorts/|/embed/|youtu\.be/)([0-9A-Za-z_-]{11})(?:[^0-9A-Za-z_-]|$)`)
)

// ExtractVideoID accepts either a raw 11-character id or common watch,
// shorts, embed, and youtu.be URL shapes.
func ExtractVideoID(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", ErrInvalidVideoID
	}
	if videoIDPattern.MatchString(s) {
		return s, nil
	}
	if m := videoURLPattern.FindStringSubmatch(s); len(m) == 2 {
		return m[1], nil
	}
	return "", ErrInvalidVideoID
}

// WatchURL returns the canonical watch URL for id.
func WatchURL(id string) string {
	return watchURLBase + "?v=" + url.QueryEscape(id)
}
