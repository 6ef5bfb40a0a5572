// Package videocache persists yt-dlp probe results in SQLite so repeated
// lookups of the same video skip the subprocess.
//
// Entries are keyed by video id and expire after the configured TTL. Expired
// rows are deleted lazily on lookup, or all at once via Purge. A TTL of zero
// keeps entries until they are removed explicitly.
//
// The database carries a schema_version table. A mismatched version is
// reported as ErrSchemaMismatch; deleting the file recovers.
package videocache
