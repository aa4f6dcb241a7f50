package services

import (
	"context"
	"io"
)

// MaxLampiranSize caps uploaded documents at 10 MB.
const MaxLampiranSize = 10 << 20

// BlobStore is the byte-storage collaborator behind LampiranService. The
// production implementation lives in utils/storage (S3); tests swap in an
// in-memory fake.
type BlobStore interface {
	Store(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Upload carries one incoming file from the transport layer.
type Upload struct {
	Name        string
	Size        int64
	ContentType string
	Content     io.Reader
}
