// Package main hosts the tubeprobe CLI entrypoint and command graph.
//
// The Cobra command tree exposes two independent probes: `chat` sends one
// prompt to an OpenRouter-compatible completion aggregator and prints the
// reply, and `video` runs yt-dlp for one or more videos and prints a metadata
// summary. Supporting commands manage the optional metadata cache (`cache`),
// diagnose the environment (`doctor`), and scaffold configuration (`config`).
//
// Probe output goes to stdout; logs go to stderr so the two never mix. Keep
// this package lean: behaviour lives in internal packages and commands only
// wire configuration, logging, and rendering around them.
package main
