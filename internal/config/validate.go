package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateYtDlp(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLLM() error {
	parsed, err := url.Parse(c.LLM.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("llm.base_url must be an absolute URL, got %q", c.LLM.BaseURL)
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model must be set")
	}
	if c.LLM.TimeoutSeconds <= 0 {
		return errors.New("llm.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateYtDlp() error {
	if strings.TrimSpace(c.YtDlp.Binary) == "" {
		return errors.New("ytdlp.binary must be set")
	}
	if c.YtDlp.TimeoutSeconds < 0 || c.YtDlp.TimeoutSeconds > maximumYtDlpTimeoutSeconds {
		return fmt.Errorf("ytdlp.timeout_seconds must be between 0 and %d", maximumYtDlpTimeoutSeconds)
	}
	if c.YtDlp.TargetHeight <= 0 || c.YtDlp.TargetHeight > maximumYtDlpTargetHeight {
		return fmt.Errorf("ytdlp.target_height must be between 1 and %d", maximumYtDlpTargetHeight)
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.TTLMinutes < 0 {
		return errors.New("cache.ttl_minutes must be >= 0")
	}
	if c.Cache.Enabled && strings.TrimSpace(c.Paths.CacheDir) == "" {
		return errors.New("paths.cache_dir must be set when cache.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}
