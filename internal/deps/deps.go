package deps

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Requirement defines an external dependency tubeprobe relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

const ytDlpName = "yt-dlp"

// ErrYtDlpNotFound is returned when no yt-dlp executable could be located.
var ErrYtDlpNotFound = errors.New("yt-dlp executable not found")

// ytDlpFallbacks are tried, in order, after the configured value and PATH.
// Relative entries resolve against the working directory.
var ytDlpFallbacks = []string{
	filepath.Join("bin", ytDlpName),
	"/usr/local/bin/yt-dlp",
	"/usr/bin/yt-dlp",
}

// ResolveYtDlp locates the yt-dlp executable. The configured value wins when
// it resolves; otherwise yt-dlp on PATH, then the fallback locations.
func ResolveYtDlp(configured string) (string, error) {
	configured = strings.TrimSpace(configured)
	tried := make([]string, 0, len(ytDlpFallbacks)+2)

	if configured != "" {
		if path, err := exec.LookPath(configured); err == nil {
			return absolute(path), nil
		}
		tried = append(tried, configured)
	}
	if configured != ytDlpName {
		if path, err := exec.LookPath(ytDlpName); err == nil {
			return absolute(path), nil
		}
		tried = append(tried, ytDlpName+" on PATH")
	}
	for _, candidate := range ytDlpFallbacks {
		if isExecutable(candidate) {
			return absolute(candidate), nil
		}
		tried = append(tried, candidate)
	}
	return "", fmt.Errorf("%w (tried %s)", ErrYtDlpNotFound, strings.Join(tried, ", "))
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode().Perm()&0o111 != 0
}

func absolute(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
