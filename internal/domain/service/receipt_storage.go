package service

import (
	"context"
	"io"
)

// ReceiptStorage stores uploaded receipt documents and returns a URL that
// can be attached to an assignment slot.
type ReceiptStorage interface {
	// Save writes the receipt content under the given key and returns its
	// public URL.
	Save(ctx context.Context, key, contentType string, content io.Reader) (string, error)
}
