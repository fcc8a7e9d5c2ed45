package avatar

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrBadDataURI signals a photo payload that is neither a URL nor a
// well-formed base64 data URI.
var ErrBadDataURI = errors.New("malformed image data uri")

// Storage persists decoded avatar bytes and exposes them publicly.
type Storage interface {
	// Upload stores the object under key and returns its public URL.
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Ingester normalizes the three possible photo representations (public
// URL, base64 data URI, absent) into one persisted public URL.
type Ingester struct {
	storage Storage
	now     func() time.Time
}

// NewIngester creates an avatar ingester backed by the given storage.
func NewIngester(storage Storage) *Ingester {
	return &Ingester{storage: storage, now: time.Now}
}

// Ingest resolves source to a public URL:
//   - http(s) URLs pass through unchanged
//   - data URIs are decoded and uploaded under keyPrefix
//   - empty input is a no-op returning ""
//
// Callers treat any error as non-fatal: a card without a photo is still a
// usable card.
func (i *Ingester) Ingest(ctx context.Context, source, keyPrefix string) (string, error) {
	source = strings.TrimSpace(source)

	if source == "" {
		return "", nil
	}

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return source, nil
	}

	mime, data, err := decodeDataURI(source)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%d.%s", keyPrefix, i.now().UnixMilli(), extensionFor(mime))

	return i.storage.Upload(ctx, key, mime, data)
}

// decodeDataURI splits "data:<mime>;base64,<payload>" and decodes the
// payload.
func decodeDataURI(s string) (mime string, data []byte, err error) {
	meta, payload, ok := strings.Cut(s, ",")
	if !ok || !strings.Contains(meta, "base64") {
		return "", nil, ErrBadDataURI
	}

	mime = "image/jpeg"

	if m := strings.TrimSuffix(strings.TrimPrefix(meta, "data:"), ";base64"); m != "" && m != meta {
		mime = strings.ToLower(m)
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBadDataURI, err)
	}

	return mime, data, nil
}

func extensionFor(mime string) string {
	switch {
	case strings.Contains(mime, "png"):
		return "png"
	case strings.Contains(mime, "webp"):
		return "webp"
	default:
		return "jpg"
	}
}
