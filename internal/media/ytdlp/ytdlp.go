package ytdlp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"tubeprobe/internal/logging"
	"tubeprobe/internal/services"
)

const (
	defaultBinary          = "yt-dlp"
	defaultMinCookiesBytes = 10
)

// baseArgs are passed on every metadata run.
var baseArgs = []string{"--dump-json", "--no-playlist", "--no-warnings", "--no-check-certificate"}

// Config describes how the yt-dlp executable is invoked.
type Config struct {
	Binary string
	// CookiesFile is forwarded via --cookies when it holds at least
	// MinCookiesBytes bytes.
	CookiesFile     string
	MinCookiesBytes int64
	// Timeout bounds a single run; zero leaves the run unbounded.
	Timeout time.Duration
}

// Client runs yt-dlp metadata probes.
type Client struct {
	cfg    Config
	logger *slog.Logger
}

// ExitError reports a yt-dlp run that terminated with a non-zero status.
type ExitError struct {
	Code   int
	Stderr string
	Err    error
}

func (e *ExitError) Error() string {
	stderr := strings.TrimSpace(e.Stderr)
	if stderr == "" {
		return fmt.Sprintf("yt-dlp exited with status %d", e.Code)
	}
	return fmt.Sprintf("yt-dlp exited with status %d: %s", e.Code, stderr)
}

func (e *ExitError) Unwrap() error { return e.Err }

// ErrEmptyOutput is returned when yt-dlp exits cleanly without printing a document.
var ErrEmptyOutput = errors.New("yt-dlp produced no output")

// New constructs a Client. A nil logger discards log output.
func New(cfg Config, logger *slog.Logger) *Client {
	cfg.Binary = strings.TrimSpace(cfg.Binary)
	if cfg.Binary == "" {
		cfg.Binary = defaultBinary
	}
	cfg.CookiesFile = strings.TrimSpace(cfg.CookiesFile)
	if cfg.MinCookiesBytes <= 0 {
		cfg.MinCookiesBytes = defaultMinCookiesBytes
	}
	return &Client{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "ytdlp"),
	}
}

// Lookup probes videoID and returns nil on any failure. The failure is logged
// at error level; callers only learn that no information is available.
func (c *Client) Lookup(ctx context.Context, videoID string) *VideoInfo {
	info, err := c.Inspect(ctx, videoID)
	if err != nil {
		attrs := []logging.Attr{
			logging.String(logging.FieldVideoID, videoID),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, errorHint(err)),
			logging.String("error_kind", services.Category(err)),
		}
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			attrs = append(attrs, logging.Int("exit_code", exitErr.Code))
		}
		logging.ErrorWithContext(c.logger, "video lookup failed", "ytdlp_lookup_failed", attrs...)
		return nil
	}
	return &info
}

// Inspect runs yt-dlp for videoID and decodes the resulting JSON document.
func (c *Client) Inspect(ctx context.Context, videoID string) (VideoInfo, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return VideoInfo{}, services.Wrap(services.ErrValidation, "ytdlp", "inspect", "empty video id", nil)
	}
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	args := c.buildArgs(WatchURL(videoID))
	c.logger.Debug("running yt-dlp",
		logging.String(logging.FieldVideoID, videoID),
		logging.String("binary", c.cfg.Binary),
		logging.Any("args", args),
	)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.cfg.Binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	started := time.Now()
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			marker := services.ErrTransient
			if errors.Is(ctxErr, context.DeadlineExceeded) {
				marker = services.ErrTimeout
			}
			return VideoInfo{}, services.Wrap(marker, "ytdlp", "inspect", "run aborted", ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return VideoInfo{}, services.Wrap(services.ErrExternalTool, "ytdlp", "inspect", "", &ExitError{
				Code:   exitErr.ExitCode(),
				Stderr: stderr.String(),
				Err:    err,
			})
		}
		return VideoInfo{}, services.Wrap(services.ErrConfiguration, "ytdlp", "inspect", "start "+c.cfg.Binary, err)
	}
	if len(bytes.TrimSpace(stdout.Bytes())) == 0 {
		return VideoInfo{}, services.Wrap(services.ErrExternalTool, "ytdlp", "inspect", "", ErrEmptyOutput)
	}

	info, err := ParseInfo(stdout.Bytes())
	if err != nil {
		return VideoInfo{}, services.Wrap(services.ErrValidation, "ytdlp", "inspect", "", err)
	}
	if info.ID == "" {
		info.ID = videoID
	}
	c.logger.Debug("yt-dlp completed",
		logging.String(logging.FieldVideoID, videoID),
		logging.Int("formats", len(info.Formats)),
		logging.Duration("elapsed", time.Since(started)),
	)
	return info, nil
}

// Version returns the output of yt-dlp --version.
func (c *Client) Version(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, c.cfg.Binary, "--version")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("ytdlp version: %w: %s", err, strings.TrimSpace(string(output)))
	}
	version := strings.TrimSpace(string(output))
	if version == "" {
		return "", fmt.Errorf("ytdlp version: %w", ErrEmptyOutput)
	}
	return version, nil
}

func (c *Client) buildArgs(url string) []string {
	args := append([]string(nil), baseArgs...)
	if cookies := c.usableCookiesFile(); cookies != "" {
		args = append(args, "--cookies", cookies)
	}
	return append(args, url)
}

func (c *Client) usableCookiesFile() string {
	if c.cfg.CookiesFile == "" {
		return ""
	}
	info, err := os.Stat(c.cfg.CookiesFile)
	if err != nil || info.IsDir() {
		c.logger.Debug("cookies file unavailable",
			logging.String("path", c.cfg.CookiesFile),
			logging.Error(err),
		)
		return ""
	}
	if info.Size() < c.cfg.MinCookiesBytes {
		c.logger.Debug("cookies file too small, ignoring",
			logging.String("path", c.cfg.CookiesFile),
			logging.Int64("size", info.Size()),
		)
		return ""
	}
	return c.cfg.CookiesFile
}

func errorHint(err error) string {
	switch {
	case errors.Is(err, ErrEmptyOutput):
		return "yt-dlp returned nothing; retry with --log-level debug"
	case errors.Is(err, exec.ErrNotFound):
		return "install yt-dlp or set ytdlp.binary"
	}
	switch services.Category(err) {
	case "timeout":
		return "raise ytdlp.timeout_seconds or check network connectivity"
	case "external_tool":
		return "check the video id and yt-dlp stderr; update yt-dlp if extraction broke"
	case "validation":
		return "yt-dlp output was not valid JSON; update yt-dlp"
	case "configuration":
		return "check ytdlp.binary points at an executable"
	}
	return "check logs for details"
}
