package ports

import (
	"context"
	"io"
	"time"
)

// ImageStore almacenamiento de imágenes de facturas (MinIO / S3 compatible).
type ImageStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// URL devuelve la URL con la que se guarda la imagen junto a la factura.
	URL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
