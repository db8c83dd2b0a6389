package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetConfigDirXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg", "gdocs") {
		t.Fatalf("dir = %q", dir)
	}
}

func TestGetConfigDirHomeFallback(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir in test environment")
	}
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir: %v", err)
	}
	if dir != filepath.Join(home, ".config", "gdocs") {
		t.Fatalf("dir = %q", dir)
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("GDOCS_TEST_VALUE", "/custom/path")

	cases := []struct {
		in   string
		want string
	}{
		{"${GDOCS_TEST_VALUE}", "/custom/path"},
		{"$GDOCS_TEST_VALUE", "/custom/path"},
		{"/plain/path", "/plain/path"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := expandEnv(tc.in); got != tc.want {
			t.Errorf("expandEnv(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir in test environment")
	}
	if got := expandPath("~/secrets.json"); got != filepath.Join(home, "secrets.json") {
		t.Fatalf("expandPath = %q", got)
	}
	if got := expandPath("/abs/path"); got != "/abs/path" {
		t.Fatalf("expandPath = %q", got)
	}
}

func TestTimeout(t *testing.T) {
	cfg := &Config{TimeoutSeconds: 45}
	if got := cfg.Timeout(); got != 45*time.Second {
		t.Fatalf("Timeout = %v", got)
	}
}
