// Package storage guarda las fotos de las facturas en MinIO / S3 compatible.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jhoicas/FacturaOCR/internal/application/ports"
	"github.com/jhoicas/FacturaOCR/pkg/config"
)

var _ ports.ImageStore = (*MinioStore)(nil)

// MinioStore implementa ports.ImageStore.
type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioStore conecta con MinIO y crea el bucket si no existe.
func NewMinioStore(ctx context.Context, cfg config.StorageConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}
	return &MinioStore{client: client, bucket: cfg.Bucket, publicURL: strings.TrimRight(cfg.PublicURL, "/")}, nil
}

// Put sube la imagen.
func (m *MinioStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

// URL con MINIO_PUBLIC_URL devuelve <base>/<bucket>/<key> (bucket público o CDN);
// si no, una URL prefirmada que caduca tras expiry.
func (m *MinioStore) URL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if m.publicURL != "" {
		return publicObjectURL(m.publicURL, m.bucket, key), nil
	}
	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}
	return u.String(), nil
}

func publicObjectURL(base, bucket, key string) string {
	return base + "/" + url.PathEscape(bucket) + "/" + (&url.URL{Path: key}).EscapedPath()
}
