package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxUploadBytes is the largest accepted image payload (5 MiB).
const MaxUploadBytes = 5 * 1024 * 1024

// Common errors for asset management.
var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrPayloadTooLarge      = errors.New("image exceeds the maximum allowed size")
	ErrUnauthenticated      = errors.New("upload requires an owner identity")
	ErrUploadFailed         = errors.New("image upload failed")
	ErrInvalidAssetURL      = errors.New("URL does not reference a managed asset")
)

// extensions maps accepted MIME types to storage key extensions.
var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// UploadInput carries a validated-at-the-boundary upload request.
type UploadInput struct {
	Data        []byte   // Raw image bytes.
	ContentType string   // Declared MIME type of the image.
	Category    Category // Logical image category, selects the bucket.
	OwnerID     string   // Identity of the uploading principal.
}

// Manager validates image uploads and delegates byte transfer to the
// object store. It performs no locking: every upload targets a freshly
// generated key, and callers sequence delete-then-upload themselves when
// replacing an asset.
type Manager struct {
	store ObjectStore
	log   *slog.Logger
}

// NewManager creates an asset manager over the given object store.
func NewManager(store ObjectStore, log *slog.Logger) *Manager {
	return &Manager{store: store, log: log}
}

// Upload validates the image and transfers it to the category's bucket,
// returning the public URL of the stored object. Validation failures
// (media type, size, missing owner) are reported before any network call;
// remote failures are wrapped as ErrUploadFailed.
func (m *Manager) Upload(ctx context.Context, in UploadInput) (string, error) {
	ext, ok := extensions[strings.ToLower(in.ContentType)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMediaType, in.ContentType)
	}
	if len(in.Data) > MaxUploadBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(in.Data))
	}
	if in.OwnerID == "" {
		return "", ErrUnauthenticated
	}

	bucket := in.Category.Bucket()
	key := newObjectKey(in.OwnerID, ext)

	if err := m.store.Upload(ctx, bucket, key, in.ContentType, in.Data); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	publicURL := m.store.PublicURL(bucket, key)
	m.log.InfoContext(ctx, "Image uploaded",
		"category", in.Category, "owner", in.OwnerID, "key", key)

	return publicURL, nil
}

// Remove deletes the asset behind the given public URL from the category's
// bucket. Deletion failures are reported to the caller rather than hidden;
// callers treating cleanup as best-effort may log and discard the error.
func (m *Manager) Remove(ctx context.Context, rawURL string, category Category) error {
	bucket := category.Bucket()
	key, err := keyFromURL(rawURL, bucket)
	if err != nil {
		return err
	}

	if err = m.store.Remove(ctx, bucket, key); err != nil {
		return fmt.Errorf("failed to remove asset %q: %w", key, err)
	}

	m.log.InfoContext(ctx, "Image removed", "category", category, "key", key)

	return nil
}

// keyFromURL extracts the object key by locating the bucket path segment
// inside the URL.
func keyFromURL(rawURL, bucket string) (string, error) {
	marker := "/" + bucket + "/"
	idx := strings.Index(rawURL, marker)
	if idx < 0 {
		return "", fmt.Errorf("%w: no %q segment in %q", ErrInvalidAssetURL, bucket, rawURL)
	}

	key := rawURL[idx+len(marker):]
	if cut := strings.IndexAny(key, "?#"); cut >= 0 {
		key = key[:cut]
	}
	if key == "" {
		return "", fmt.Errorf("%w: empty object key in %q", ErrInvalidAssetURL, rawURL)
	}

	return key, nil
}

// newObjectKey builds a collision-free storage key. The random suffix keeps
// keys distinct even for uploads landing on the same millisecond.
func newObjectKey(ownerID, ext string) string {
	return fmt.Sprintf("%s/%d-%s.%s", ownerID, time.Now().UnixMilli(), uuid.NewString()[:8], ext)
}
