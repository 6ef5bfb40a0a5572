package config

const (
	defaultConfigPath          = "~/.config/tubeprobe/config.toml"
	defaultLogDir              = "~/.local/share/tubeprobe/logs"
	defaultLLMBaseURL          = "https://openrouter.ai/api/v1"
	defaultLLMModel            = "openai/gpt-3.5-turbo"
	defaultLLMReferer          = "https://github.com/tubeprobe/tubeprobe"
	defaultLLMTitle            = "tubeprobe"
	defaultLLMTimeoutSeconds   = 60
	defaultYtDlpBinary         = "yt-dlp"
	defaultYtDlpTargetHeight   = 720
	defaultYtDlpMinInterval    = 1
	defaultCacheTTLMinutes     = 120
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	minimumCookiesFileSize     = 10
	maximumYtDlpTargetHeight   = 4320
	maximumYtDlpTimeoutSeconds = 3600
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:   defaultLogDir,
			CacheDir: defaultCacheDir(),
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		YtDlp: YtDlp{
			Binary:             defaultYtDlpBinary,
			MinIntervalSeconds: defaultYtDlpMinInterval,
			TargetHeight:       defaultYtDlpTargetHeight,
		},
		Cache: Cache{
			TTLMinutes: defaultCacheTTLMinutes,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// MinimumCookiesFileSize is the smallest cookies file handed to yt-dlp; smaller
// files are treated as empty or corrupted.
func MinimumCookiesFileSize() int64 {
	return minimumCookiesFileSize
}
