// Package google is a thin bearer-token HTTP client for the Google REST
// APIs. It knows nothing about individual services; callers pass full URLs
// and get parsed JSON back.
package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

const userAgent = "gdocs-cli/1.0"

// Client issues authenticated requests against the Google APIs.
type Client struct {
	http        *http.Client
	accessToken string
	debug       io.Writer
}

// NewClient builds a client around an access token. timeout bounds each
// request; zero means no client-side timeout.
func NewClient(accessToken string, timeout time.Duration) *Client {
	return &Client{
		http:        &http.Client{Timeout: timeout},
		accessToken: accessToken,
	}
}

// EnableDebug logs each request's method, URL, status and duration to w.
func (c *Client) EnableDebug(w io.Writer) {
	c.debug = w
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c.debug == nil {
		return c.http.Do(req)
	}
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		fmt.Fprintf(c.debug, "[debug] %s %s failed after %s: %v\n",
			req.Method, req.URL, time.Since(start).Round(time.Millisecond), err)
		return resp, err
	}
	fmt.Fprintf(c.debug, "[debug] %s %s -> %d in %s\n",
		req.Method, req.URL, resp.StatusCode, time.Since(start).Round(time.Millisecond))
	return resp, nil
}

// GetJSON issues a GET and decodes the JSON response body.
func (c *Client) GetJSON(ctx context.Context, rawURL string, query url.Values) ([]byte, error) {
	return c.requestJSON(ctx, http.MethodGet, rawURL, query, nil)
}

// PostJSON issues a POST with a JSON body.
func (c *Client) PostJSON(ctx context.Context, rawURL string, query url.Values, body any) ([]byte, error) {
	return c.requestJSON(ctx, http.MethodPost, rawURL, query, body)
}

// PutJSON issues a PUT with a JSON body.
func (c *Client) PutJSON(ctx context.Context, rawURL string, query url.Values, body any) ([]byte, error) {
	return c.requestJSON(ctx, http.MethodPut, rawURL, query, body)
}

// PatchJSON issues a PATCH with a JSON body.
func (c *Client) PatchJSON(ctx context.Context, rawURL string, query url.Values, body any) ([]byte, error) {
	return c.requestJSON(ctx, http.MethodPatch, rawURL, query, body)
}

// DeleteNoContent issues a DELETE and discards the (usually empty) body.
func (c *Client) DeleteNoContent(ctx context.Context, rawURL string, query url.Values) error {
	req, err := c.newRequest(ctx, http.MethodDelete, rawURL, query, nil, "")
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return &APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return errorFromResponse(resp)
}

// GetBytesToPath streams a GET response body to outputPath, creating
// parent directories as needed.
func (c *Client) GetBytesToPath(ctx context.Context, rawURL string, query url.Values, outputPath string) error {
	req, err := c.newRequest(ctx, http.MethodGet, rawURL, query, nil, "")
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return &APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp)
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &APIError{Message: err.Error()}
		}
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return &APIError{Message: err.Error()}
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return &APIError{Message: err.Error()}
	}
	return nil
}

// PostMultipart uploads a file with a JSON metadata part, the shape the
// Drive multipart upload endpoint expects.
func (c *Client) PostMultipart(ctx context.Context, rawURL string, query url.Values, metadata any, filePath, mimeType, fileName string) ([]byte, error) {
	return c.requestMultipart(ctx, http.MethodPost, rawURL, query, metadata, filePath, mimeType, fileName)
}

// PatchMultipart replaces a file's content, multipart like PostMultipart.
func (c *Client) PatchMultipart(ctx context.Context, rawURL string, query url.Values, metadata any, filePath, mimeType, fileName string) ([]byte, error) {
	return c.requestMultipart(ctx, http.MethodPatch, rawURL, query, metadata, filePath, mimeType, fileName)
}

func (c *Client) requestMultipart(ctx context.Context, method, rawURL string, query url.Values, metadata any, filePath, mimeType, fileName string) ([]byte, error) {
	metaJSON, err := json.Marshal(metadata)
	if err != nil {
		return nil, &APIError{Message: fmt.Sprintf("encoding metadata: %v", err)}
	}
	fileBytes, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	metaHeader := textproto.MIMEHeader{}
	metaHeader.Set("Content-Type", "application/json")
	metaPart, err := w.CreatePart(metaHeader)
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}
	metaPart.Write(metaJSON)

	fileHeader := textproto.MIMEHeader{}
	fileHeader.Set("Content-Type", mimeType)
	fileHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
	filePart, err := w.CreatePart(fileHeader)
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}
	filePart.Write(fileBytes)

	if err := w.Close(); err != nil {
		return nil, &APIError{Message: err.Error()}
	}

	req, err := c.newRequest(ctx, method, rawURL, query, &buf, "multipart/related; boundary="+w.Boundary())
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	return parseJSONResponse(resp)
}

func (c *Client) requestJSON(ctx context.Context, method, rawURL string, query url.Values, body any) ([]byte, error) {
	var reader io.Reader
	contentType := ""
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &APIError{Message: fmt.Sprintf("encoding request body: %v", err)}
		}
		reader = bytes.NewReader(payload)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, rawURL, query, reader, contentType)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	return parseJSONResponse(resp)
}

func (c *Client) newRequest(ctx context.Context, method, rawURL string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &APIError{Message: fmt.Sprintf("invalid URL %s: %v", rawURL, err)}
	}
	if len(query) > 0 {
		q := u.Query()
		for key, vals := range query {
			for _, v := range vals {
				q.Add(key, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("User-Agent", userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

func parseJSONResponse(resp *http.Response) ([]byte, error) {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errorFromResponse(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []byte("null"), nil
	}
	if !json.Valid(data) {
		return nil, &APIError{Message: "response is not valid JSON"}
	}
	return data, nil
}
