package preflight

import (
	"context"

	"tubeprobe/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name    string
	Passed  bool
	Skipped bool
	Detail  string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	if cfg.Cache.Enabled {
		results = append(results, CheckDirectoryAccess("Cache directory", cfg.Paths.CacheDir))
	}

	results = append(results, CheckYtDlp(ctx, cfg))
	if cfg.YtDlp.CookiesFile != "" {
		results = append(results, CheckCookiesFile(cfg.YtDlp.CookiesFile))
	}

	llmCfg := cfg.GetLLM()
	if llmCfg.APIKey == "" {
		results = append(results, Result{
			Name:    "Chat API",
			Skipped: true,
			Detail:  "no API key (set llm.api_key or OPENROUTER_API_KEY)",
		})
	} else {
		results = append(results, CheckLLM(ctx, "Chat API", llmCfg))
	}

	return results
}

// Failed reports whether any non-skipped check failed.
func Failed(results []Result) bool {
	for _, result := range results {
		if !result.Passed && !result.Skipped {
			return true
		}
	}
	return false
}
