package delivery

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Attachment is the finished artifact plus the metadata the CRM
// attachment endpoint expects.
type Attachment struct {
	RecordID    string
	Label       string
	Description string
	Filename    string
	Content     []byte
}

// Config holds the CRM collaborator settings.
type Config struct {
	Endpoint string `mapstructure:"endpoint"`
	APIKey   string `mapstructure:"api_key"`
	RetryMax int    `mapstructure:"retry_max"`
}

// Client uploads summary artifacts to the CRM attachment endpoint.
// Uploads are idempotent to retry; transient failures are retried with
// backoff and the final upstream status is reported verbatim.
type Client struct {
	endpoint string
	apiKey   string
	http     *retryablehttp.Client
}

func NewClient(cfg Config) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.RetryMax
	rc.HTTPClient.Timeout = 30 * time.Second
	rc.Logger = nil
	// Keep the final upstream response when retries are exhausted so the
	// status and message can be reported inline.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		http:     rc,
	}
}

// Upload posts the attachment as multipart form data. It returns the
// upstream HTTP status; a non-2xx status comes back with an error
// carrying the upstream message so the caller can surface it inline.
func (c *Client) Upload(ctx context.Context, att Attachment) (int, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fields := map[string]string{
		"recordId":    att.RecordID,
		"label":       att.Label,
		"description": att.Description,
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return 0, fmt.Errorf("write field %s: %w", name, err)
		}
	}

	part, err := mw.CreateFormFile("file", att.Filename)
	if err != nil {
		return 0, fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(att.Content); err != nil {
		return 0, fmt.Errorf("write file part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return 0, fmt.Errorf("close multipart body: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body.Bytes())
	if err != nil {
		return 0, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("upload attachment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return resp.StatusCode, fmt.Errorf("attachment upload rejected: %s", msg)
	}

	return resp.StatusCode, nil
}
