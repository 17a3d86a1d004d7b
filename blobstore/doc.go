// Package blobstore provides the durable resources that persisted subject stores live in.
//
// One blob holds one assessment kind's complete store. Blobs are read whole and
// replaced whole: Put must be atomic, so a reader never observes a partially
// written store.
//
// # Built-in Implementations
//
//   - LocalStore: a directory on the local filesystem (write-then-rename, advisory locks)
//   - MemoryStore: in-process, for tests and ephemeral use
//   - s3.Store: Amazon S3 (or any S3-compatible endpoint via the AWS SDK)
//   - minio.Store: MinIO and S3-compatible storage via minio-go
//   - dynamodb.Store: one DynamoDB item per blob
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)      // ErrNotFound when absent
//	    Put(ctx, name, data) error         // Atomic replace
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Backends that can serialise writers across processes additionally implement
// Locker.
package blobstore
