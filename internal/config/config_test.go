package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
default_server = "home"

[servers.home]
url = "http://localhost:8080"
token = "secret"
parent_note_id = "abc123"

[servers.work]
url = "https://notes.example.com"
token = "other"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DefaultServer != "home" {
		t.Errorf("default=%q", cfg.DefaultServer)
	}

	s, err := cfg.GetDefaultServer()
	if err != nil {
		t.Fatal(err)
	}
	if s.URL != "http://localhost:8080" || s.Token != "secret" || s.ParentNoteID != "abc123" {
		t.Errorf("server=%+v", s)
	}

	if _, err := cfg.GetServer("nope"); err == nil {
		t.Error("expected error for unknown server")
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DefaultServer != "" || len(cfg.Servers) != 0 {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := writeConfig(t, "not [valid toml")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestResolvePrecedence(t *testing.T) {
	cfg := &Config{
		DefaultServer: "home",
		Servers: map[string]Server{
			"home": {URL: "http://config:8080", Token: "config-token"},
		},
	}

	t.Setenv(EnvServerURL, "http://env:8080")
	t.Setenv(EnvToken, "")
	t.Setenv(EnvParentNoteID, "envParent")

	s, err := cfg.Resolve("", "", "flag-token", "")
	if err != nil {
		t.Fatal(err)
	}
	if s.URL != "http://env:8080" {
		t.Errorf("env should override config: %q", s.URL)
	}
	if s.Token != "flag-token" {
		t.Errorf("flag should override config: %q", s.Token)
	}
	if s.ParentNoteID != "envParent" {
		t.Errorf("parent=%q", s.ParentNoteID)
	}
}

func TestResolveDefaultsParentToRoot(t *testing.T) {
	cfg := &Config{}
	t.Setenv(EnvServerURL, "")
	t.Setenv(EnvToken, "")
	t.Setenv(EnvParentNoteID, "")

	s, err := cfg.Resolve("", "http://x", "tok", "")
	if err != nil {
		t.Fatal(err)
	}
	if s.ParentNoteID != DefaultParentNoteID {
		t.Errorf("parent=%q, want %q", s.ParentNoteID, DefaultParentNoteID)
	}
}

func TestResolveUnknownServer(t *testing.T) {
	cfg := &Config{}
	if _, err := cfg.Resolve("missing", "", "", ""); err == nil {
		t.Fatal("expected error for unknown --server name")
	}
}
