// Package preflight provides readiness checks for the external tools,
// services, and filesystem paths tubeprobe depends on.
//
// The doctor command calls RunAll and renders each Result. Checks never
// abort early; every applicable check runs so a single invocation shows the
// complete picture. The chat API check is skipped when no API key is
// configured, and the cache directory is only checked when caching is on.
package preflight
