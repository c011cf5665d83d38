// Package storage archives downloaded audio files in MinIO object storage.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/notseanray/seanifyv2-backend/config"
	"github.com/notseanray/seanifyv2-backend/logger"
)

// Archive stores produced audio files in a MinIO bucket. A nil *Archive is
// valid and means archiving is disabled.
type Archive struct {
	client *minio.Client
	bucket string
}

// NewArchive connects to MinIO and ensures the bucket exists. Returns
// (nil, nil) when no endpoint is configured.
func NewArchive(cfg *config.Config) (*Archive, error) {
	if cfg.MinioEndpoint == "" {
		logger.Info("No MinIO endpoint configured, audio archiving disabled.")
		return nil, nil
	}

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.MinioBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.MinioBucket, err)
		}
		logger.Info("Created MinIO bucket.", logger.String("bucket", cfg.MinioBucket))
	}

	logger.Info("MinIO archive initialized.",
		logger.String("endpoint", cfg.MinioEndpoint),
		logger.String("bucket", cfg.MinioBucket))
	return &Archive{client: client, bucket: cfg.MinioBucket}, nil
}

// StoreAudio uploads the audio file for the given song id.
func (a *Archive) StoreAudio(ctx context.Context, id, path string) error {
	if a == nil {
		return nil
	}

	object := id + ".mp3"
	info, err := a.client.FPutObject(ctx, a.bucket, object, path, minio.PutObjectOptions{
		ContentType: "audio/mpeg",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to bucket %s: %w", object, a.bucket, err)
	}

	logger.Debug("Archived audio file.",
		logger.String("object", object),
		logger.Int64("size", info.Size))
	return nil
}
