package avatar

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// BucketClient uploads objects to the hosted storage bucket over its HTTP
// API (POST /storage/v1/object/{bucket}/{key}, public URL under
// /storage/v1/object/public/). Authenticated with the privileged service
// key; reads need no credentials because the bucket is public.
type BucketClient struct {
	baseURL    string
	bucket     string
	serviceKey string
	httpClient *http.Client
}

// NewBucketClient creates a storage bucket client.
func NewBucketClient(baseURL, bucket, serviceKey string) *BucketClient {
	return &BucketClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		bucket:     bucket,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Compile-time check.
var _ Storage = (*BucketClient)(nil)

func (c *BucketClient) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return "", fmt.Errorf("bucket upload failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, key), nil
}

// MemoryStorage is an in-memory Storage for tests.
type MemoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte

	// UploadErr, when set, is returned by every Upload call.
	UploadErr error
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string][]byte)}
}

func (m *MemoryStorage) Upload(_ context.Context, key, _ string, data []byte) (string, error) {
	if m.UploadErr != nil {
		return "", m.UploadErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[key] = data

	return "https://storage.local/" + key, nil
}

// Object returns a stored object's bytes, for assertions.
func (m *MemoryStorage) Object(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.objects[key]

	return data, ok
}
