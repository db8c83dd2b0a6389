package google

import "testing"

func TestExtractErrorMessage(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"api shape", `{"error": {"message": "not found", "code": 404}}`, "not found"},
		{"oauth string error", `{"error": "invalid_grant"}`, "invalid_grant"},
		{"oauth description", `{"error_description": "Bad Request"}`, "Bad Request"},
		{"no message", `{"status": "weird"}`, ""},
		{"not json", `<html>502</html>`, ""},
		{"empty", ``, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractErrorMessage([]byte(tc.body)); got != tc.want {
				t.Fatalf("ExtractErrorMessage = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDetectMimeType(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"notes.md", "text/markdown"},
		{"notes.MD", "text/markdown"},
		{"diagram.excalidraw", "application/json"},
		{"report.pdf", "application/pdf"},
		{"photo.JPEG", "image/jpeg"},
		{"data.csv", "text/csv"},
		{"config.yml", "application/x-yaml"},
		{"binary", "application/octet-stream"},
		{"archive.unknown", "application/octet-stream"},
	}
	for _, tc := range cases {
		if got := DetectMimeType(tc.path); got != tc.want {
			t.Errorf("DetectMimeType(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
