// Package fs provides the filesystem abstraction behind the local blob store.
//
//   - [OS]: production implementation backed by package os
//   - [FaultyFS]: test wrapper that injects open, read, write, sync and rename faults
//
// Production code uses fs.Default. [WriteFileAtomic] replaces a file so that a
// crash leaves either the old or the new content. Tests inject a FaultyFS to prove that a
// failed save leaves the previous store intact and that read faults surface
// as load errors rather than as an empty store.
package fs
