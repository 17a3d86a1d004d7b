// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("assessments/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	a, err := johari.Open(ctx, store, vocabulary.Johari())
//
// # Features
//
//   - Whole-object replacement through the transfer manager
//   - Range reads for blob access
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
//   - Custom endpoints (LocalStack and other S3-compatible services)
package s3
