// Package storage manages user-supplied images against a remote object
// store: validation, key generation, upload, deletion and public URL
// resolution.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ObjectStore is the remote store boundary the asset manager delegates to.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, key, contentType string, data []byte) error
	Remove(ctx context.Context, bucket, key string) error
	PublicURL(bucket, key string) string
}

// Client talks to a Supabase-style storage REST API. Objects live under
// /storage/v1/object/{bucket}/{key} and public URLs under
// /storage/v1/object/public/{bucket}/{key}.
type Client struct {
	client     HTTPClient   // HTTP client for making requests
	baseURL    string       // Base URL of the storage API, no trailing slash
	serviceKey string       // Bearer key authorizing object mutations
	log        *slog.Logger // Logger for logging operations
}

// NewClient creates a storage client against the given base URL.
func NewClient(baseURL, serviceKey string, log *slog.Logger) *Client {
	const timeout = 30
	return &Client{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		log:        log,
	}
}

// NewClientWithHTTPClient creates a storage client with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewClientWithHTTPClient(client HTTPClient, baseURL, serviceKey string, log *slog.Logger) *Client {
	return &Client{
		client:     client,
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		log:        log,
	}
}

// Upload transfers the object bytes to the store under bucket/key.
func (c *Client) Upload(ctx context.Context, bucket, key, contentType string, data []byte) error {
	endpoint := c.objectURL(bucket, key)
	c.log.DebugContext(ctx, "Uploading object", "bucket", bucket, "key", key, "bytes", len(data))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		c.log.ErrorContext(ctx, "Storage API upload error", "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("storage API returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// Remove deletes the object at bucket/key from the store.
func (c *Client) Remove(ctx context.Context, bucket, key string) error {
	endpoint := c.objectURL(bucket, key)
	c.log.DebugContext(ctx, "Removing object", "bucket", bucket, "key", key)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute delete request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		c.log.ErrorContext(ctx, "Storage API delete error", "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("storage API returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// PublicURL returns the publicly resolvable URL for bucket/key.
func (c *Client) PublicURL(bucket, key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, bucket, escapeKey(key))
}

func (c *Client) objectURL(bucket, key string) string {
	return fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, bucket, escapeKey(key))
}

// escapeKey escapes each path segment of an object key while preserving the
// segment separators.
func escapeKey(key string) string {
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}

	return strings.Join(segments, "/")
}
