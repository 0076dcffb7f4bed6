package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Error is the typed failure returned for any non-2xx response. Status
// carries the HTTP status code. Message is the server's message when
// one was present in the body, and "" otherwise.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	message := e.Message
	if message == "" {
		message = http.StatusText(e.Status)
	}
	return fmt.Sprintf("api: %s (status %d)", message, e.Status)
}

// IsUnauthorized reports whether err is an API error with status 401.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is an API error with status 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client is a thin typed wrapper over the remote classroom API. All
// requests go through the http.Client it is constructed with, which is
// expected to carry the authenticated transport.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs a Client for the API rooted at baseURL. rt is
// the round tripper every call flows through.
func NewClient(baseURL string, rt http.RoundTripper, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: rt,
			Timeout:   timeout,
		},
	}
}

// Get issues a GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

// Post issues a POST with a JSON body and decodes the response into out.
// in and out may each be nil.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	body, err := encodeJSON(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, "application/json", body, out)
}

// Put issues a PUT with a JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	body, err := encodeJSON(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, "application/json", body, out)
}

// Delete issues a DELETE and decodes any JSON response into out.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, "", nil, out)
}

// MultipartBuilder fills a multipart form before it is sent.
type MultipartBuilder func(w *multipart.Writer) error

// PostMultipart issues a POST with a multipart/form-data body built by
// build, and decodes the response into out.
func (c *Client) PostMultipart(ctx context.Context, path string, build MultipartBuilder, out any) error {
	return c.multipart(ctx, http.MethodPost, path, build, out)
}

// PutMultipart issues a PUT with a multipart/form-data body built by
// build, and decodes the response into out.
func (c *Client) PutMultipart(ctx context.Context, path string, build MultipartBuilder, out any) error {
	return c.multipart(ctx, http.MethodPut, path, build, out)
}

// PostMultipartText issues a POST with a multipart/form-data body built
// by build, and returns the response body as plain text. Some endpoints
// answer with a bare string rather than JSON.
func (c *Client) PostMultipartText(ctx context.Context, path string, build MultipartBuilder) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := build(w); err != nil {
		return "", fmt.Errorf("build multipart form: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize multipart form: %w", err)
	}

	resp, err := c.send(ctx, http.MethodPost, path, w.FormDataContentType(), &buf)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return "", fmt.Errorf("POST %s: read response: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (c *Client) multipart(ctx context.Context, method, path string, build MultipartBuilder, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := build(w); err != nil {
		return fmt.Errorf("build multipart form: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize multipart form: %w", err)
	}
	return c.do(ctx, method, path, w.FormDataContentType(), &buf, out)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	resp, err := c.send(ctx, method, path, contentType, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// send issues the request and returns the response on any 2xx status.
// Non-2xx responses are drained into an *Error and the body is closed.
func (c *Client) send(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := decodeError(resp)
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

func encodeJSON(in any) (io.Reader, error) {
	if in == nil {
		return nil, nil
	}
	data, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return bytes.NewReader(data), nil
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		switch {
		case body.Message != "":
			apiErr.Message = body.Message
		case body.Error != "":
			apiErr.Message = body.Error
		}
	}
	return apiErr
}
