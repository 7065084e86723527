package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TCPAddr != ":9090" {
		t.Fatalf("tcp addr = %q", cfg.TCPAddr)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "matcherd.yaml")
	contents := "uds_path: /tmp/custom.sock\ntcp_addr: \":9999\"\n"
	if err := os.WriteFile(p, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.UDSPath != "/tmp/custom.sock" {
		t.Fatalf("uds path = %q", cfg.UDSPath)
	}
	if cfg.TCPAddr != ":9999" {
		t.Fatalf("tcp addr = %q", cfg.TCPAddr)
	}
	// Untouched by the file, still the getenv default.
	if cfg.PostgresDSN == "" {
		t.Fatal("postgres dsn should keep its default")
	}
}

func TestGetenvPrefersEnvironment(t *testing.T) {
	t.Setenv("MATCHERD_TCP_ADDR", ":1234")
	cfg := Default()
	if cfg.TCPAddr != ":1234" {
		t.Fatalf("tcp addr = %q", cfg.TCPAddr)
	}
}
