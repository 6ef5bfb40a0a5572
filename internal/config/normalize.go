package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLLM()
	if err := c.normalizeYtDlp(); err != nil {
		return err
	}
	c.normalizeCache()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir()
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLLM() {
	c.LLM.BaseURL = strings.TrimRight(strings.TrimSpace(c.LLM.BaseURL), "/")
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	c.LLM.Referer = strings.TrimSpace(c.LLM.Referer)
	if c.LLM.Referer == "" {
		c.LLM.Referer = defaultLLMReferer
	}
	c.LLM.Title = strings.TrimSpace(c.LLM.Title)
	if c.LLM.Title == "" {
		c.LLM.Title = defaultLLMTitle
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		if value, ok := os.LookupEnv("OPENROUTER_API_KEY"); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeYtDlp() error {
	c.YtDlp.Binary = strings.TrimSpace(c.YtDlp.Binary)
	if c.YtDlp.Binary == "" || c.YtDlp.Binary == defaultYtDlpBinary {
		if value, ok := os.LookupEnv("YT_DLP_PATH"); ok && strings.TrimSpace(value) != "" {
			c.YtDlp.Binary = strings.TrimSpace(value)
		}
	}
	if c.YtDlp.Binary == "" {
		c.YtDlp.Binary = defaultYtDlpBinary
	}
	// Bare command names are resolved through PATH; only expand explicit paths.
	if strings.ContainsAny(c.YtDlp.Binary, `/\`) || strings.HasPrefix(c.YtDlp.Binary, "~") {
		expanded, err := expandPath(c.YtDlp.Binary)
		if err != nil {
			return fmt.Errorf("ytdlp.binary: %w", err)
		}
		c.YtDlp.Binary = expanded
	}
	c.YtDlp.CookiesFile = strings.TrimSpace(c.YtDlp.CookiesFile)
	if c.YtDlp.CookiesFile != "" {
		expanded, err := expandPath(c.YtDlp.CookiesFile)
		if err != nil {
			return fmt.Errorf("ytdlp.cookies_file: %w", err)
		}
		c.YtDlp.CookiesFile = expanded
	}
	if c.YtDlp.TargetHeight <= 0 {
		c.YtDlp.TargetHeight = defaultYtDlpTargetHeight
	}
	if c.YtDlp.MinIntervalSeconds < 0 {
		c.YtDlp.MinIntervalSeconds = 0
	}
	return nil
}

func (c *Config) normalizeCache() {
	if c.Cache.TTLMinutes == 0 {
		c.Cache.TTLMinutes = defaultCacheTTLMinutes
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
