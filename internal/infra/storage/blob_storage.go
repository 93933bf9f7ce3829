// Package storage implements receipt storage over a gocloud.dev blob bucket,
// so local filesystem and GCS buckets are interchangeable via config.
package storage

import (
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Bucket drivers selectable through the bucket URL scheme.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"

	"htga/config"
	"htga/internal/domain/service"
)

type blobStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// New opens the configured bucket and registers its close on shutdown.
func New(ctx context.Context, cfg *config.Config, lc fx.Lifecycle) (service.ReceiptStorage, error) {
	if cfg.Storage == nil {
		return nil, errors.New("storage configuration is missing")
	}

	bucket, err := blob.OpenBucket(ctx, cfg.Storage.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open receipt bucket")
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return bucket.Close()
		},
	})

	return &blobStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(cfg.Storage.PublicBaseURL, "/"),
	}, nil
}

// Save writes the receipt content under the given key and returns its URL.
func (s *blobStorage) Save(ctx context.Context, key, contentType string, content io.Reader) (string, error) {
	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "failed to open receipt writer")
	}

	if _, err := io.Copy(writer, content); err != nil {
		writer.Close()

		return "", errors.Wrap(err, "failed to write receipt")
	}
	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finalize receipt")
	}

	return s.publicBaseURL + "/" + key, nil
}
