// Package flock provides advisory, whole-file locks that serialise writers
// across processes sharing a directory.
//
// Locks are advisory: they only exclude other callers of this package (or of
// flock(2)/LockFileEx on the same file). Acquisition polls with a non-blocking
// attempt so that it honours context cancellation.
package flock
