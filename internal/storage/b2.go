package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/kurin/blazer/b2"
)

// B2Store streams photos into a Backblaze B2 bucket and returns the public
// object URL.
type B2Store struct {
	client *b2.Client
	bucket *b2.Bucket
}

func NewB2Store(ctx context.Context, accountID, appKey, bucketName string) (*B2Store, error) {
	client, err := b2.NewClient(ctx, accountID, appKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create b2 client: %w", err)
	}

	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}

	return &B2Store{client: client, bucket: bucket}, nil
}

func (s *B2Store) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	obj := s.bucket.Object(key)
	w := obj.NewWriter(ctx)

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	return fmt.Sprintf("%s/file/%s/%s", s.bucket.BaseURL(), s.bucket.Name(), key), nil
}
