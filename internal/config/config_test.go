package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Editor.TabStop != 8 {
		t.Errorf("TabStop = %d, want 8", cfg.Editor.TabStop)
	}
	if cfg.Editor.QuitTimes != 3 {
		t.Errorf("QuitTimes = %d, want 3", cfg.Editor.QuitTimes)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %q, want \"info\"", cfg.Logging.Level)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for a missing file", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
[editor]
tabStop = 4
quitTimes = 1

[logging]
level = "debug"
file = "/tmp/keylite.log"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Editor.TabStop != 4 {
		t.Errorf("TabStop = %d, want 4", cfg.Editor.TabStop)
	}
	if cfg.Editor.QuitTimes != 1 {
		t.Errorf("QuitTimes = %d, want 1", cfg.Editor.QuitTimes)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want \"debug\"", cfg.Logging.Level)
	}
	if cfg.Logging.File != "/tmp/keylite.log" {
		t.Errorf("File = %q", cfg.Logging.File)
	}
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[editor]
tabStop = 2
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Editor.TabStop != 2 {
		t.Errorf("TabStop = %d, want 2", cfg.Editor.TabStop)
	}
	if cfg.Editor.QuitTimes != 3 {
		t.Errorf("QuitTimes = %d, want default 3", cfg.Editor.QuitTimes)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %q, want default \"info\"", cfg.Logging.Level)
	}
}

func TestLoadClampsValues(t *testing.T) {
	path := writeConfig(t, `
[editor]
tabStop = 0
quitTimes = -2
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Editor.TabStop != 8 {
		t.Errorf("TabStop = %d, want clamped to 8", cfg.Editor.TabStop)
	}
	if cfg.Editor.QuitTimes != 0 {
		t.Errorf("QuitTimes = %d, want clamped to 0", cfg.Editor.QuitTimes)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeConfig(t, "this is not toml = = =")
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on malformed TOML")
	}
}
