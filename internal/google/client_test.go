package google

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestClient() *Client {
	return NewClient("test-token", 5*time.Second)
}

func TestGetJSONSendsAuthAndQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.URL.Query().Get("fields"); got != "id,name" {
			t.Errorf("fields = %q", got)
		}
		w.Write([]byte(`{"id": "x"}`))
	}))
	defer server.Close()

	raw, err := newTestClient().GetJSON(context.Background(), server.URL, url.Values{"fields": {"id,name"}})
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	var parsed map[string]string
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if parsed["id"] != "x" {
		t.Fatalf("id = %q", parsed["id"])
	}
}

func TestPostJSONSendsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Errorf("body not JSON: %v", err)
		}
		if payload["title"] != "Notes" {
			t.Errorf("title = %v", payload["title"])
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	_, err := newTestClient().PostJSON(context.Background(), server.URL, nil, map[string]any{"title": "Notes"})
	if err != nil {
		t.Fatalf("PostJSON: %v", err)
	}
}

func TestErrorResponseBecomesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"message": "The caller does not have permission"}}`))
	}))
	defer server.Close()

	_, err := newTestClient().GetJSON(context.Background(), server.URL, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Status != http.StatusForbidden {
		t.Fatalf("Status = %d", apiErr.Status)
	}
	if apiErr.Message != "The caller does not have permission" {
		t.Fatalf("Message = %q", apiErr.Message)
	}
}

func TestEmptyResponseBodyIsNull(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	raw, err := newTestClient().PostJSON(context.Background(), server.URL, nil, map[string]any{})
	if err != nil {
		t.Fatalf("PostJSON: %v", err)
	}
	if string(raw) != "null" {
		t.Fatalf("raw = %q, want null", raw)
	}
}

func TestDeleteNoContent(t *testing.T) {
	var method string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	if err := newTestClient().DeleteNoContent(context.Background(), server.URL, nil); err != nil {
		t.Fatalf("DeleteNoContent: %v", err)
	}
	if method != http.MethodDelete {
		t.Fatalf("method = %q", method)
	}
}

func TestGetBytesToPathWritesFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("file-content"))
	}))
	defer server.Close()

	outputPath := filepath.Join(t.TempDir(), "nested", "out.bin")
	if err := newTestClient().GetBytesToPath(context.Background(), server.URL, nil, outputPath); err != nil {
		t.Fatalf("GetBytesToPath: %v", err)
	}
	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "file-content" {
		t.Fatalf("content = %q", data)
	}
}

func TestPostMultipartParts(t *testing.T) {
	localPath := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(localPath, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "multipart/related" {
			t.Errorf("Content-Type = %q (%v)", r.Header.Get("Content-Type"), err)
			w.Write([]byte(`{}`))
			return
		}
		reader := multipart.NewReader(r.Body, params["boundary"])

		meta, err := reader.NextPart()
		if err != nil {
			t.Errorf("metadata part: %v", err)
			w.Write([]byte(`{}`))
			return
		}
		if got := meta.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("metadata Content-Type = %q", got)
		}
		metaBody, _ := io.ReadAll(meta)
		var metadata map[string]any
		if err := json.Unmarshal(metaBody, &metadata); err != nil {
			t.Errorf("metadata not JSON: %v", err)
		}
		if metadata["name"] != "notes.txt" {
			t.Errorf("metadata name = %v", metadata["name"])
		}

		file, err := reader.NextPart()
		if err != nil {
			t.Errorf("file part: %v", err)
			w.Write([]byte(`{}`))
			return
		}
		if got := file.Header.Get("Content-Type"); got != "text/plain" {
			t.Errorf("file Content-Type = %q", got)
		}
		fileBody, _ := io.ReadAll(file)
		if string(fileBody) != "hello" {
			t.Errorf("file body = %q", fileBody)
		}

		w.Write([]byte(`{"id": "f1"}`))
	}))
	defer server.Close()

	raw, err := newTestClient().PostMultipart(context.Background(), server.URL, nil,
		map[string]any{"name": "notes.txt"}, localPath, "text/plain", "notes.txt")
	if err != nil {
		t.Fatalf("PostMultipart: %v", err)
	}
	var parsed map[string]string
	if err := json.Unmarshal(raw, &parsed); err != nil || parsed["id"] != "f1" {
		t.Fatalf("response = %q (%v)", raw, err)
	}
}
