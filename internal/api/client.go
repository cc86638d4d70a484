package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds every request so a hung backend cannot leave the
// UI in a loading state forever.
const DefaultTimeout = 15 * time.Second

// Client talks to the operations backend. One instance is shared by all
// resource accessors; it performs no caching and no retries — a failed
// call surfaces immediately to the caller.
type Client struct {
	baseURL  string
	http     *http.Client
	observer Observer
}

// NewClient creates a Client for the given API root. A zero timeout uses
// DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration, observer Observer) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		observer: observer,
	}
}

// BaseURL returns the configured API root, used by the export renderer to
// qualify relative image references.
func (c *Client) BaseURL() string { return c.baseURL }

// doJSON performs a JSON request and decodes the response into out (which
// may be nil). Non-2xx responses come back as normalized errors.
func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// FileAttachment is a binary payload for multipart submissions (asset
// images).
type FileAttachment struct {
	FieldName string
	FileName  string
	Content   []byte
}

// doMultipart performs a multipart/form-data request with string fields
// and an optional file attachment.
func (c *Client) doMultipart(ctx context.Context, method, path string, fields map[string]string, file *FileAttachment, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return fmt.Errorf("writing form field %s: %w", key, err)
		}
	}
	if file != nil {
		part, err := w.CreateFormFile(file.FieldName, file.FileName)
		if err != nil {
			return fmt.Errorf("creating form file: %w", err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return fmt.Errorf("writing form file: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observer.OnCallComplete(CallEvent{
			Method: req.Method, Path: req.URL.Path,
			Latency: time.Since(start), Err: err,
		})
		// Transport failures have no server message; the transport error
		// text is the best available.
		return &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var callErr error
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		callErr = normalizeError(resp.StatusCode, body)
	}
	c.observer.OnCallComplete(CallEvent{
		Method: req.Method, Path: req.URL.Path, Status: resp.StatusCode,
		Latency: time.Since(start), Err: callErr,
	})
	if callErr != nil {
		return callErr
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// DeleteResponse is the body of every DELETE endpoint.
type DeleteResponse struct {
	Message string `json:"message"`
}
