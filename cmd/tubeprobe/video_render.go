package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"tubeprobe/internal/media/ytdlp"
	"tubeprobe/internal/textutil"
)

const (
	failedLookupMessage = "Failed to retrieve video information"
	formatURLPreview    = 100
)

func renderVideoText(cmd *cobra.Command, results []videoResult, limit int) error {
	out := cmd.OutOrStdout()
	for i, result := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if result.Info == nil {
			fmt.Fprintln(out, failedLookupMessage)
			continue
		}
		writeVideoSummary(out, *result.Info, limit)
	}
	return nil
}

func writeVideoSummary(out io.Writer, info ytdlp.VideoInfo, limit int) {
	fmt.Fprintf(out, "Title: %s\n", info.Title)
	fmt.Fprintf(out, "Channel: %s\n", info.Channel)
	fmt.Fprintf(out, "Duration: %d seconds\n", info.Duration)
	fmt.Fprintf(out, "Thumbnail: %s\n", info.Thumbnail)
	fmt.Fprintf(out, "View Count: %d\n", info.ViewCount)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Available formats:")
	for i, f := range limitFormats(info.Formats, limit) {
		fmt.Fprintf(out, "%d. %s (%s) - Audio: %s, Video: %s\n", i+1, f.FormatNote, f.Resolution, capitalBool(f.HasAudio), capitalBool(f.HasVideo))
		fmt.Fprintf(out, "   URL: %s\n", textutil.Prefix(f.URL, formatURLPreview))
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Total formats: %d\n", len(info.Formats))
}

func renderVideoTable(cmd *cobra.Command, results []videoResult, limit int) error {
	out := cmd.OutOrStdout()
	printer := message.NewPrinter(language.English)
	for i, result := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if result.Info == nil {
			fmt.Fprintf(out, "%s: %s\n", result.VideoID, failedLookupMessage)
			continue
		}
		info := result.Info

		source := "yt-dlp"
		if result.Cached {
			source = "cache"
		}
		summary := [][]string{
			{"Video ID", result.VideoID},
			{"Title", info.Title},
			{"Channel", info.Channel},
			{"Duration", fmt.Sprintf("%d seconds", info.Duration)},
			{"Views", printer.Sprintf("%d", info.ViewCount)},
			{"Formats", strconv.Itoa(len(info.Formats))},
			{"Source", source},
		}
		if result.Optimal != nil {
			summary = append(summary, []string{"Optimal", optimalLabel(*result.Optimal)})
		}
		fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, summary, []columnAlignment{alignLeft, alignLeft}))

		rows := make([][]string, 0, len(info.Formats))
		for j, f := range limitFormats(info.Formats, limit) {
			rows = append(rows, []string{
				strconv.Itoa(j + 1),
				f.FormatID,
				f.Ext,
				f.Resolution,
				f.QualityLabel(),
				formatSize(f.Filesize),
				formatBitrate(f.TBR),
				yesNo(f.HasAudio),
				yesNo(f.HasVideo),
			})
		}
		headers := []string{"#", "ID", "Ext", "Resolution", "Quality", "Size", "Bitrate", "Audio", "Video"}
		aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft}
		fmt.Fprintln(out, renderTable(headers, rows, aligns))
	}
	return nil
}

// capitalBool spells booleans as "True"/"False" in the text summary.
func capitalBool(value bool) string {
	if value {
		return "True"
	}
	return "False"
}

func limitFormats(formats []ytdlp.Format, limit int) []ytdlp.Format {
	if limit <= 0 || limit >= len(formats) {
		return formats
	}
	return formats[:limit]
}

func optimalLabel(f ytdlp.Format) string {
	parts := []string{f.FormatID}
	if label := f.QualityLabel(); label != "" {
		parts = append(parts, label)
	}
	parts = append(parts, f.MimeType())
	return strings.Join(parts, " ")
}

func formatSize(bytes int64) string {
	if bytes <= 0 {
		return ""
	}
	return humanize.Bytes(uint64(bytes))
}

func formatBitrate(tbr float64) string {
	if tbr <= 0 {
		return ""
	}
	return strconv.FormatFloat(tbr, 'f', 0, 64) + "k"
}
