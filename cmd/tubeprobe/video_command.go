package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"tubeprobe/internal/config"
	"tubeprobe/internal/deps"
	"tubeprobe/internal/logging"
	"tubeprobe/internal/media/ytdlp"
	"tubeprobe/internal/videocache"
)

const (
	defaultVideoID     = "dQw4w9WgXcQ"
	defaultFormatLimit = 5
)

// videoResult is one probed video as rendered by every output format.
type videoResult struct {
	VideoID string           `json:"video_id"`
	OK      bool             `json:"ok"`
	Cached  bool             `json:"cached"`
	Info    *ytdlp.VideoInfo `json:"info"`
	Optimal *ytdlp.Format    `json:"optimal_format,omitempty"`
}

func newVideoCommand(ctx *commandContext) *cobra.Command {
	var outputFormat string
	var limit int
	var noCache bool

	cmd := &cobra.Command{
		Use:   "video [id-or-url...]",
		Short: "Fetch video metadata with yt-dlp and print a summary",
		Long: "Runs yt-dlp --dump-json for each video and prints its title, channel, duration,\n" +
			"thumbnail, view count, and available formats. Defaults to " + defaultVideoID + ".\n" +
			"A failed lookup prints \"" + failedLookupMessage + "\" and still exits 0.",
		RunE: func(cmd *cobra.Command, args []string) error {
			render, err := videoRenderer(outputFormat)
			if err != nil {
				return err
			}
			ids, err := resolveVideoIDs(args)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			prober := newVideoProber(cfg, logger, !noCache)
			defer prober.close()

			results := make([]videoResult, 0, len(ids))
			for _, id := range ids {
				if err := prober.wait(cmd.Context()); err != nil {
					return err
				}
				results = append(results, prober.probe(cmd.Context(), id))
			}
			return render(cmd, results, limit)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text, table, or json")
	cmd.Flags().IntVarP(&limit, "limit", "n", defaultFormatLimit, "Formats to list per video (0 lists all)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the video metadata cache")
	return cmd
}

func resolveVideoIDs(args []string) ([]string, error) {
	if len(args) == 0 {
		return []string{defaultVideoID}, nil
	}
	ids := make([]string, 0, len(args))
	for _, arg := range args {
		id, err := ytdlp.ExtractVideoID(arg)
		if err != nil {
			return nil, fmt.Errorf("video: %q: %w", arg, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// videoProber runs lookups for the video command: it consults the cache,
// paces yt-dlp runs, and writes fresh results back.
type videoProber struct {
	client       *ytdlp.Client
	cache        *videocache.Cache
	limiter      *rate.Limiter
	targetHeight int
	logger       *slog.Logger
}

func newVideoProber(cfg *config.Config, base *slog.Logger, useCache bool) *videoProber {
	logger := logging.NewComponentLogger(base, "video")

	binary, err := deps.ResolveYtDlp(cfg.YtDlp.Binary)
	if err != nil {
		binary = cfg.YtDlp.Binary
		logging.WarnWithContext(logger, "yt-dlp not found in any known location", "ytdlp_unresolved",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "install yt-dlp or set ytdlp.binary"),
			logging.String(logging.FieldImpact, "lookups will fail"),
		)
	}

	p := &videoProber{
		client: ytdlp.New(ytdlp.Config{
			Binary:          binary,
			CookiesFile:     cfg.YtDlp.CookiesFile,
			MinCookiesBytes: config.MinimumCookiesFileSize(),
			Timeout:         cfg.YtDlpTimeout(),
		}, base),
		limiter:      rate.NewLimiter(rate.Inf, 1),
		targetHeight: cfg.YtDlp.TargetHeight,
		logger:       logger,
	}
	if interval := cfg.YtDlpMinInterval(); interval > 0 {
		p.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}

	if useCache && cfg.Cache.Enabled {
		cache, err := videocache.Open(cfg.CacheDBPath(), cfg.CacheTTL(), base)
		if err != nil {
			logging.WarnWithContext(logger, "video cache unavailable", "videocache_open_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "delete the cache file or run with --no-cache"),
				logging.String(logging.FieldImpact, "every lookup runs yt-dlp"),
			)
		} else {
			p.cache = cache
		}
	}
	return p
}

func (p *videoProber) wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

func (p *videoProber) probe(ctx context.Context, videoID string) videoResult {
	result := videoResult{VideoID: videoID}

	if p.cache != nil {
		info, ok, err := p.cache.Lookup(ctx, videoID)
		if err != nil {
			logging.WarnWithContext(p.logger, "cache lookup failed", "videocache_lookup_failed",
				logging.String(logging.FieldVideoID, videoID),
				logging.Error(err),
				logging.String(logging.FieldImpact, "falling back to yt-dlp"),
			)
		}
		if ok {
			result.Info = info
			result.Cached = true
		}
	}

	if result.Info == nil {
		result.Info = p.client.Lookup(ctx, videoID)
		if result.Info != nil && p.cache != nil {
			if err := p.cache.Store(ctx, videoID, *result.Info); err != nil {
				logging.WarnWithContext(p.logger, "cache store failed", "videocache_store_failed",
					logging.String(logging.FieldVideoID, videoID),
					logging.Error(err),
					logging.String(logging.FieldImpact, "next lookup runs yt-dlp again"),
				)
			}
		}
	}

	if result.Info != nil {
		result.OK = true
		result.Optimal = ytdlp.SelectOptimal(result.Info.Formats, p.targetHeight)
	}
	return result
}

func (p *videoProber) close() {
	if p.cache != nil {
		_ = p.cache.Close()
	}
}

type videoRenderFunc func(cmd *cobra.Command, results []videoResult, limit int) error

func videoRenderer(format string) (videoRenderFunc, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return renderVideoText, nil
	case "table":
		return renderVideoTable, nil
	case "json":
		return func(cmd *cobra.Command, results []videoResult, _ int) error {
			return writeJSON(cmd, results)
		}, nil
	default:
		return nil, fmt.Errorf("video: unsupported --format %q (want text, table, or json)", format)
	}
}
