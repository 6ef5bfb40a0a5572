package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tubeprobe/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, directories, yt-dlp, and chat API access",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			var lines []string
			lines = append(lines, renderSectionHeader("Configuration", colorize)...)
			configDetail := ctx.configPath
			if !ctx.configExists {
				configDetail += " (not found; using defaults)"
			}
			lines = append(lines,
				renderStatusLine("Config file", statusInfo, configDetail, colorize),
				renderStatusLine("Chat model", statusInfo, cfg.LLM.Model, colorize),
				renderStatusLine("Chat endpoint", statusInfo, cfg.LLM.BaseURL, colorize),
				renderStatusLine("Cache", statusInfo, cacheSummary(cfg.Cache.Enabled, cfg.CacheDBPath(), cfg.CacheTTL().String()), colorize),
				"",
			)

			results := preflight.RunAll(cmd.Context(), cfg)
			lines = append(lines, renderSectionHeader("Checks", colorize)...)
			for _, result := range results {
				lines = append(lines, renderStatusLine(result.Name, preflightStatusKind(result), result.Detail, colorize))
			}
			lines = append(lines, "")

			lines = append(lines, renderSectionHeader("Dependencies", colorize)...)
			for _, status := range preflight.CheckSystemDeps(cfg) {
				lines = append(lines, renderStatusLine(status.Name, dependencyStatusKind(status), dependencyDetail(status), colorize))
			}

			fmt.Fprintln(out, strings.Join(lines, "\n"))

			if preflight.Failed(results) {
				return fmt.Errorf("doctor: one or more checks failed")
			}
			return nil
		},
	}
}

func cacheSummary(enabled bool, path, ttl string) string {
	if !enabled {
		return "disabled"
	}
	return fmt.Sprintf("enabled: %s (ttl %s)", path, ttl)
}
