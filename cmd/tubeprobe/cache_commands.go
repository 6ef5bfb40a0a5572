package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"tubeprobe/internal/media/ytdlp"
	"tubeprobe/internal/videocache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the video metadata cache",
	}
	cmd.AddCommand(newCacheListCommand(ctx))
	cmd.AddCommand(newCacheRemoveCommand(ctx))
	cmd.AddCommand(newCachePurgeCommand(ctx))
	cmd.AddCommand(newCacheClearCommand(ctx))
	return cmd
}

// withCache opens the configured cache for one subcommand. It reports
// disabled caching on stdout and skips fn.
func withCache(ctx *commandContext, cmd *cobra.Command, fn func(*videocache.Cache) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if !cfg.Cache.Enabled {
		fmt.Fprintln(cmd.OutOrStdout(), "Video cache is disabled (set cache.enabled = true)")
		return nil
	}
	logger, err := ctx.logger(cmd)
	if err != nil {
		return err
	}
	cache, err := videocache.Open(cfg.CacheDBPath(), cfg.CacheTTL(), logger)
	if err != nil {
		return fmt.Errorf("open video cache: %w", err)
	}
	defer cache.Close()
	return fn(cache)
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached videos",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(ctx, cmd, func(cache *videocache.Cache) error {
				entries, err := cache.List(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "Cache is empty")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					state := "live"
					if entry.Expired {
						state = "expired"
					}
					rows = append(rows, []string{
						entry.VideoID,
						entry.Title,
						entry.Channel,
						strconv.Itoa(entry.FormatCount),
						humanize.Bytes(uint64(entry.PayloadBytes)),
						humanize.Time(entry.CachedAt),
						state,
					})
				}
				headers := []string{"Video ID", "Title", "Channel", "Formats", "Size", "Cached", "State"}
				aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft}
				fmt.Fprintln(out, renderTable(headers, rows, aligns))
				fmt.Fprintf(out, "%d cached video(s) in %s\n", len(entries), cache.Path())
				return nil
			})
		},
	}
}

func newCacheRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id-or-url>",
		Short: "Remove one cached video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID, err := ytdlp.ExtractVideoID(args[0])
			if err != nil {
				return fmt.Errorf("cache remove: %w", err)
			}
			return withCache(ctx, cmd, func(cache *videocache.Cache) error {
				if err := cache.Remove(cmd.Context(), videoID); err != nil {
					return fmt.Errorf("cache remove: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from cache\n", videoID)
				return nil
			})
		},
	}
}

func newCachePurgeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete expired cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(ctx, cmd, func(cache *videocache.Cache) error {
				removed, err := cache.Purge(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Purged %d expired entr%s\n", removed, pluralSuffix(removed))
				return nil
			})
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every cache entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(ctx, cmd, func(cache *videocache.Cache) error {
				removed, err := cache.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d entr%s\n", removed, pluralSuffix(removed))
				return nil
			})
		},
	}
}

func pluralSuffix(n int64) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
