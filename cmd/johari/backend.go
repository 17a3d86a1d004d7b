package main

import (
	"context"
	"fmt"

	"github.com/hupe1980/johari/blobstore"
	ddbstore "github.com/hupe1980/johari/blobstore/dynamodb"
	miniostore "github.com/hupe1980/johari/blobstore/minio"
	s3store "github.com/hupe1980/johari/blobstore/s3"
	"github.com/hupe1980/johari/config"
)

func openBlobStore(ctx context.Context, sc config.StorageConfig) (blobstore.BlobStore, error) {
	switch sc.Backend {
	case config.BackendLocal:
		return blobstore.NewLocalStore(sc.Dir), nil
	case config.BackendMemory:
		return blobstore.NewMemoryStore(), nil
	case config.BackendS3:
		return s3store.New(ctx, sc.S3.Bucket,
			s3store.WithPrefix(sc.S3.Prefix),
			s3store.WithRegion(sc.S3.Region),
			s3store.WithEndpoint(sc.S3.Endpoint),
		)
	case config.BackendMinIO:
		return miniostore.Dial(ctx, miniostore.Config{
			Endpoint:  sc.MinIO.Endpoint,
			AccessKey: sc.MinIO.AccessKey,
			SecretKey: sc.MinIO.SecretKey,
			Bucket:    sc.MinIO.Bucket,
			Prefix:    sc.MinIO.Prefix,
			Region:    sc.MinIO.Region,
			Secure:    sc.MinIO.Secure,
		})
	case config.BackendDynamoDB:
		return ddbstore.New(ctx, sc.DynamoDB.Table, sc.DynamoDB.Namespace, sc.DynamoDB.Region)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", sc.Backend)
	}
}
