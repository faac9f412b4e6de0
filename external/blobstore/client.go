package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/northcourt/club-api/internal/platform/logging"
)

const defaultTimeout = 15 * time.Second

var errBlobstoreTransient = crerr.New("object storage transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Bucket     string
	AccessKey  string
	Timeout    time.Duration
	Logger     *logging.Logger
}

// Client writes blobs to the object-storage HTTP API and returns the
// publicly resolvable URL for each stored object.
type Client struct {
	httpClient *http.Client
	baseURL    string
	bucket     string
	accessKey  string
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		bucket:     strings.Trim(strings.TrimSpace(cfg.Bucket), "/"),
		accessKey:  strings.TrimSpace(cfg.AccessKey),
		logger:     logger,
	}
}

// Upload stores data under key and returns the public URL. A non-2xx
// status or transport failure returns an error and stores nothing the
// caller should link to.
func (c *Client) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return "", fmt.Errorf("object key is required")
	}
	if len(data) == 0 {
		return "", fmt.Errorf("object data is empty")
	}

	objectURL := c.baseURL + "/" + c.bucket + "/" + escapeKey(key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, objectURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.accessKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: put object: %v", errBlobstoreTransient, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WarnContext(ctx, "object storage rejected upload",
			"status_code", resp.StatusCode,
			"key", key,
		)
		return "", fmt.Errorf("object storage status=%d for key %s", resp.StatusCode, key)
	}

	return objectURL, nil
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
