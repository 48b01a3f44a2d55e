package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"time"

	"aida-server/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

const presignedURLExpiry = 72 * time.Hour

// AssetStore re-hosts generated media files in MinIO so that artifact URLs
// stay valid after the generation backend recycles its job output.
type AssetStore struct {
	client *minio.Client
	bucket string
	log    zerolog.Logger
}

func NewAssetStore(cfg *config.Config, log zerolog.Logger) (*AssetStore, error) {
	m := cfg.MinIO
	client, err := minio.New(m.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(m.AccessKey, m.SecretKey, ""),
		Secure: m.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect minio: %w", err)
	}
	return &AssetStore{client: client, bucket: m.Bucket, log: log}, nil
}

// Put uploads a stream and returns a presigned URL for it. size may be -1
// when unknown.
func (s *AssetStore) Put(ctx context.Context, objectName string, r io.Reader, size int64) (string, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return "", fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return "", fmt.Errorf("create bucket: %w", err)
		}
		s.log.Info().Str("bucket", s.bucket).Msg("bucket created")
	}

	_, err = s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentTypeFor(objectName),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", objectName, err)
	}

	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, presignedURLExpiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", objectName, err)
	}

	s.log.Debug().Str("object", objectName).Msg("asset uploaded")
	return presigned.String(), nil
}

func contentTypeFor(objectName string) string {
	switch filepath.Ext(objectName) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".mp4":
		return "video/mp4"
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	default:
		return "application/octet-stream"
	}
}
