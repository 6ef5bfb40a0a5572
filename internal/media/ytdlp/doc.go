// Package ytdlp wraps the yt-dlp executable for single-video metadata probes.
//
// Client.Inspect runs yt-dlp with --dump-json for one watch URL, waits for the
// process to exit, and decodes stdout into a VideoInfo. Client.Lookup is the
// forgiving variant used by the CLI: failures are logged and reported as a
// nil result instead of an error.
//
// ParseInfo applies the extraction rules independently of the subprocess:
// absent fields default to empty strings or zero, formats without a url are
// dropped with order preserved, and has_video/has_audio are derived from the
// codec fields (present and not "none").
//
// SelectOptimal picks a playback format for a target height, preferring muxed
// audio+video variants.
package ytdlp
