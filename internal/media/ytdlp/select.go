package ytdlp

import "sort"

// DefaultTargetHeight is the preferred playback height when none is configured.
const DefaultTargetHeight = 720

// SelectOptimal picks a playback format. Muxed formats closest to
// targetHeight win; otherwise the video format closest to targetHeight;
// otherwise the first format. Ties keep the upstream order. Returns nil for an
// empty list.
func SelectOptimal(formats []Format, targetHeight int) *Format {
	if len(formats) == 0 {
		return nil
	}
	if targetHeight <= 0 {
		targetHeight = DefaultTargetHeight
	}
	if best := closestHeight(formats, targetHeight, Format.Muxed); best != nil {
		return best
	}
	if best := closestHeight(formats, targetHeight, func(f Format) bool { return f.HasVideo }); best != nil {
		return best
	}
	first := formats[0]
	return &first
}

func closestHeight(formats []Format, target int, keep func(Format) bool) *Format {
	candidates := make([]Format, 0, len(formats))
	for _, format := range formats {
		if keep(format) {
			candidates = append(candidates, format)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return heightDistance(candidates[i], target) < heightDistance(candidates[j], target)
	})
	return &candidates[0]
}

func heightDistance(f Format, target int) int {
	diff := f.Height - target
	if diff < 0 {
		return -diff
	}
	return diff
}
