// Package discovery finds commands for the shell: it scans PATH directories
// in parallel on a concurrency.Pool, indexes the executables it finds for
// lookup and completion, and ranks near-miss candidates for typo
// suggestions. Scans always degrade gracefully — an unreadable directory is
// skipped, never fatal, because PATH routinely contains stale entries.
package discovery
