package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"tubeprobe/internal/config"
	"tubeprobe/internal/deps"
	"tubeprobe/internal/media/ytdlp"
	"tubeprobe/internal/services/llm"
)

const (
	llmCheckTimeout     = 30 * time.Second
	versionCheckTimeout = 10 * time.Second
)

// CheckLLM verifies that the chat API is reachable and the key is valid.
// It uses a 30-second timeout and a single attempt (no retries).
func CheckLLM(ctx context.Context, name string, cfg config.LLMConfig) Result {
	if cfg.APIKey == "" {
		return Result{Name: name, Detail: "API key missing"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, llmCheckTimeout)
	defer cancel()

	client := llm.NewClient(llm.Config{
		APIKey:         cfg.APIKey,
		BaseURL:        cfg.BaseURL,
		Model:          cfg.Model,
		Referer:        cfg.Referer,
		Title:          cfg.Title,
		TimeoutSeconds: cfg.TimeoutSeconds,
	}, llm.WithRetryMaxAttempts(1))

	if err := client.HealthCheck(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizeLLMError(err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("API reachable (model %s)", cfg.Model)}
}

// CheckYtDlp resolves the yt-dlp executable and asks it for its version.
func CheckYtDlp(ctx context.Context, cfg *config.Config) Result {
	const name = "yt-dlp"

	binary, err := deps.ResolveYtDlp(cfg.YtDlp.Binary)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}

	checkCtx, cancel := context.WithTimeout(ctx, versionCheckTimeout)
	defer cancel()

	version, err := ytdlp.New(ytdlp.Config{Binary: binary}, nil).Version(checkCtx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", binary, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (version %s)", binary, version)}
}

// CheckCookiesFile verifies the configured cookies file will be passed to yt-dlp.
func CheckCookiesFile(path string) Result {
	const name = "Cookies file"

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	if minimum := config.MinimumCookiesFileSize(); info.Size() < minimum {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %d bytes, below %d; ignored)", path, info.Size(), minimum)}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d bytes)", path, info.Size())}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSystemDeps evaluates the external executables the probes use.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	ytDlpCommand := cfg.YtDlp.Binary
	if resolved, err := deps.ResolveYtDlp(cfg.YtDlp.Binary); err == nil {
		ytDlpCommand = resolved
	}
	requirements := []deps.Requirement{
		{
			Name:        "yt-dlp",
			Command:     ytDlpCommand,
			Description: "Required for video metadata probes",
		},
		{
			Name:        "FFmpeg",
			Command:     "ffmpeg",
			Description: "Used by yt-dlp to merge split audio/video formats",
			Optional:    true,
		},
	}
	return deps.CheckBinaries(requirements)
}

// summarizeLLMError produces a human-readable summary for chat API health check failures.
func summarizeLLMError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "health check timed out (chat API unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "health check timed out (chat API unreachable)"
	}
	switch llm.StatusCode(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		return "auth failed (invalid API key)"
	case http.StatusNotFound:
		return "model or endpoint not found (check llm.model and llm.base_url)"
	}
	return err.Error()
}
