package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if resolved != filepath.Join(tempHome, ".config", "audiobook-reader", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}

	wantDB := filepath.Join(tempHome, ".local", "share", "audiobook-reader", "state.db")
	if cfg.Storage.DatabasePath != wantDB {
		t.Fatalf("unexpected database path: got %q want %q", cfg.Storage.DatabasePath, wantDB)
	}
	if cfg.BufferingDelay() != 3*time.Second {
		t.Fatalf("unexpected buffering delay %v", cfg.BufferingDelay())
	}
	if cfg.SkipInterval() != 15 || cfg.KeyboardSkipInterval() != 5 {
		t.Fatalf("unexpected skip intervals %v/%v", cfg.SkipInterval(), cfg.KeyboardSkipInterval())
	}
	if cfg.Crossfade.Steps != 10 || cfg.CrossfadeDuration() != 80*time.Millisecond {
		t.Fatalf("unexpected crossfade %+v", cfg.Crossfade)
	}
}

func TestLoadOverridesFromFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[player]
skip_seconds = 30

[logging]
format = " JSON "
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected existing config at %q, got %q (exists=%v)", path, resolved, exists)
	}
	if cfg.Player.SkipSeconds != 30 {
		t.Fatalf("expected skip_seconds override, got %d", cfg.Player.SkipSeconds)
	}
	if cfg.Player.KeyboardSkipSeconds != 5 {
		t.Fatalf("expected keyboard skip default kept, got %d", cfg.Player.KeyboardSkipSeconds)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging, got %+v", cfg.Logging)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*App)
		wantErr string
	}{
		{"defaults", func(*App) {}, ""},
		{"short buffering delay", func(c *App) { c.Player.BufferingDelayMS = 100 }, "buffering_delay_ms"},
		{"zero skip", func(c *App) { c.Player.SkipSeconds = 0 }, "skip_seconds"},
		{"no fade steps", func(c *App) { c.Crossfade.Steps = 0 }, "crossfade.steps"},
		{"bad format", func(c *App) { c.Logging.Format = "xml" }, "logging.format"},
		{"no probe workers", func(c *App) { c.Probe.Concurrency = 0 }, "probe.concurrency"},
		{"no database", func(c *App) { c.Storage.DatabasePath = " " }, "database_path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSampleConfigParses(t *testing.T) {
	var cfg App
	if err := toml.Unmarshal([]byte(SampleConfig()), &cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	if cfg.Player.SkipSeconds != Default().Player.SkipSeconds {
		t.Fatalf("sample skip_seconds %d differs from default", cfg.Player.SkipSeconds)
	}
}

func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	cfg := Default()
	cfg.Storage.DatabasePath = filepath.Join(root, "data", "state.db")
	cfg.Storage.LockPath = filepath.Join(root, "run", "player.lock")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, dir := range []string{"data", "run"} {
		if info, err := os.Stat(filepath.Join(root, dir)); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s to exist", dir)
		}
	}
}

func TestCreateSampleRoundTrip(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected sample at %q, got %q (exists=%v)", path, resolved, exists)
	}
	if cfg.Probe.Concurrency != defaultProbeConcurrency {
		t.Fatalf("unexpected probe concurrency %d", cfg.Probe.Concurrency)
	}
}
