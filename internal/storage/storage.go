package storage

import (
	"context"
	"encoding/base64"
	"fmt"
)

// PhotoStore persists an uploaded photo and returns the value the client
// should submit as image_url on the issue.
type PhotoStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// InlineStore is the no-bucket fallback: the photo becomes a base64 data
// URL and lives inside the issue row itself. No external storage, no
// partial-failure mode, at the cost of fat rows.
type InlineStore struct{}

func NewInlineStore() *InlineStore {
	return &InlineStore{}
}

func (s *InlineStore) Put(_ context.Context, _ string, contentType string, data []byte) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data)), nil
}
