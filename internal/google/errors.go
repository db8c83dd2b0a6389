package google

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

// APIError is any failure talking to a Google API: a non-2xx response
// (Status and Body populated), or a network/decoding problem (Status 0).
type APIError struct {
	Status  int
	Message string
	Body    string
}

func (e *APIError) Error() string {
	return e.Message
}

func errorFromResponse(resp *http.Response) *APIError {
	body, _ := io.ReadAll(resp.Body)
	message := ExtractErrorMessage(body)
	if message == "" {
		message = fmt.Sprintf("Google API request failed with HTTP %d", resp.StatusCode)
	}
	return &APIError{
		Status:  resp.StatusCode,
		Message: message,
		Body:    string(body),
	}
}

// ExtractErrorMessage pulls the human-readable message out of a Google
// error body. The APIs use either {"error": {"message": ...}} or the OAuth
// shape {"error": "...", "error_description": "..."}.
func ExtractErrorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	parsed := gjson.ParseBytes(body)
	if msg := parsed.Get("error.message"); msg.Exists() {
		return msg.String()
	}
	if errField := parsed.Get("error"); errField.Type == gjson.String {
		return errField.String()
	}
	if desc := parsed.Get("error_description"); desc.Exists() {
		return desc.String()
	}
	return ""
}

// DetectMimeType maps a filename extension to the MIME type used for Drive
// uploads. Unknown extensions upload as octet-stream.
func DetectMimeType(path string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "excalidraw", "json":
		return "application/json"
	case "txt":
		return "text/plain"
	case "md":
		return "text/markdown"
	case "html", "htm":
		return "text/html"
	case "css":
		return "text/css"
	case "js":
		return "application/javascript"
	case "pdf":
		return "application/pdf"
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "svg":
		return "image/svg+xml"
	case "zip":
		return "application/zip"
	case "csv":
		return "text/csv"
	case "xml":
		return "application/xml"
	case "yaml", "yml":
		return "application/x-yaml"
	default:
		return "application/octet-stream"
	}
}
