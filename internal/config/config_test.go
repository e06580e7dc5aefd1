package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/amonks/mindful/internal/config"
	"github.com/amonks/mindful/internal/testsupport"
)

func writeGlobalConfig(t *testing.T, home, content string) {
	t.Helper()
	path := filepath.Join(home, ".config", "mindful", "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write global config: %v", err)
	}
}

func writeProjectConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func TestLoad_NotFound(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if cfg.Store.Backend != "" {
		t.Errorf("expected empty backend, got %q", cfg.Store.Backend)
	}
	if cfg.Reminder.Interval != 0 {
		t.Errorf("expected zero interval, got %v", time.Duration(cfg.Reminder.Interval))
	}
}

func TestLoad_Full(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeProjectConfig(t, tmpDir, `
[store]
backend = "sqlite"
dir = "/var/lib/mindful"

[reminder]
interval = "10s"
window = "2m"
command = ["notify-send", "MindfulTask Reminder"]

[checkin]
policy = "every"
probability = 0.25
every = 3

[display]
backlog-limit = 8
done-limit = 2

[log]
level = "debug"
`)

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Store.Backend != "sqlite" {
		t.Errorf("Backend = %q, expected sqlite", cfg.Store.Backend)
	}
	if cfg.Store.Dir != "/var/lib/mindful" {
		t.Errorf("Dir = %q, expected /var/lib/mindful", cfg.Store.Dir)
	}
	if time.Duration(cfg.Reminder.Interval) != 10*time.Second {
		t.Errorf("Interval = %v, expected 10s", time.Duration(cfg.Reminder.Interval))
	}
	if time.Duration(cfg.Reminder.Window) != 2*time.Minute {
		t.Errorf("Window = %v, expected 2m", time.Duration(cfg.Reminder.Window))
	}
	if strings.Join(cfg.Reminder.Command, " ") != "notify-send MindfulTask Reminder" {
		t.Errorf("Command = %v", cfg.Reminder.Command)
	}
	if cfg.CheckIn.Policy != "every" || cfg.CheckIn.Every != 3 || cfg.CheckIn.Probability != 0.25 {
		t.Errorf("unexpected checkin config %+v", cfg.CheckIn)
	}
	if cfg.Display.BacklogLimit != 8 || cfg.Display.DoneLimit != 2 {
		t.Errorf("unexpected display config %+v", cfg.Display)
	}

	level, err := cfg.LogLevel()
	if err != nil {
		t.Fatalf("unexpected log level error: %v", err)
	}
	if level != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", level)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeProjectConfig(t, tmpDir, "[store\nbackend = ")

	if _, err := config.Load(tmpDir); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeProjectConfig(t, tmpDir, "[reminder]\ninterval = \"soon\"\n")

	if _, err := config.Load(tmpDir); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestLoad_GlobalOnly(t *testing.T) {
	home := testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeGlobalConfig(t, home, `
[store]
backend = "badger"

[reminder]
command = ["say"]
`)

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Store.Backend != "badger" {
		t.Errorf("Backend = %q, expected badger", cfg.Store.Backend)
	}
	if len(cfg.Reminder.Command) != 1 || cfg.Reminder.Command[0] != "say" {
		t.Errorf("Command = %v, expected [say]", cfg.Reminder.Command)
	}
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	home := testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeGlobalConfig(t, home, `
[store]
backend = "badger"

[checkin]
policy = "always"
every = 4

[reminder]
command = ["say"]
`)
	writeProjectConfig(t, tmpDir, `
[checkin]
policy = "never"

[reminder]
command = []
`)

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Store.Backend != "badger" {
		t.Errorf("Backend = %q, expected global badger", cfg.Store.Backend)
	}
	if cfg.CheckIn.Policy != "never" {
		t.Errorf("Policy = %q, expected project never", cfg.CheckIn.Policy)
	}
	if cfg.CheckIn.Every != 4 {
		t.Errorf("Every = %d, expected global 4", cfg.CheckIn.Every)
	}
	if len(cfg.Reminder.Command) != 0 {
		t.Errorf("expected project to clear command, got %v", cfg.Reminder.Command)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeProjectConfig(t, tmpDir, "[store]\nbackend = \"sqlite\"\ndir = \"/from/file\"\n")
	t.Setenv(config.EnvDataDir, "/from/env")
	t.Setenv(config.EnvStore, "badger")

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Store.Dir != "/from/env" {
		t.Errorf("Dir = %q, expected /from/env", cfg.Store.Dir)
	}
	if cfg.Store.Backend != "badger" {
		t.Errorf("Backend = %q, expected badger", cfg.Store.Backend)
	}
}

func TestDataDirDefault(t *testing.T) {
	home := testsupport.SetupTestHome(t)

	cfg := &config.Config{}
	dir, err := cfg.DataDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := filepath.Join(home, ".local", "share", "mindful")
	if dir != expected {
		t.Fatalf("expected %s, got %s", expected, dir)
	}
}

func TestLogLevel(t *testing.T) {
	cases := []struct {
		level   string
		want    slog.Level
		wantErr bool
	}{
		{level: "", want: slog.LevelWarn},
		{level: "info", want: slog.LevelInfo},
		{level: "ERROR", want: slog.LevelError},
		{level: "chatty", wantErr: true},
	}

	for _, tc := range cases {
		cfg := &config.Config{Log: config.Log{Level: tc.level}}
		got, err := cfg.LogLevel()
		if tc.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tc.level)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tc.level, err)
		}
		if got != tc.want {
			t.Fatalf("expected %v for %q, got %v", tc.want, tc.level, got)
		}
	}
}
