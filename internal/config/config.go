// Package config handles loading mindful.toml configuration files.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/amonks/mindful/internal/paths"
)

// FileName is the project-local config file name.
const FileName = "mindful.toml"

// Environment overrides applied after both files are merged.
const (
	EnvDataDir = "MINDFUL_DATA_DIR"
	EnvStore   = "MINDFUL_STORE"
)

// Config represents the mindful.toml configuration file.
type Config struct {
	Store    Store    `toml:"store"`
	Reminder Reminder `toml:"reminder"`
	CheckIn  CheckIn  `toml:"checkin"`
	Display  Display  `toml:"display"`
	Log      Log      `toml:"log"`
}

// Store selects where tasks and emotions are kept.
type Store struct {
	// Backend is one of file, sqlite or badger. Empty means file.
	Backend string `toml:"backend"`
	// Dir overrides the data directory.
	Dir string `toml:"dir"`
}

// Reminder configures the reminder scheduler.
type Reminder struct {
	Interval Duration `toml:"interval"`
	Window   Duration `toml:"window"`
	// Command is run for each reminder with the message appended.
	Command []string `toml:"command"`
}

// CheckIn configures how often completion check-ins are offered.
type CheckIn struct {
	// Policy is one of random, every, always or never.
	Policy      string  `toml:"policy"`
	Probability float64 `toml:"probability"`
	Every       int     `toml:"every"`
}

// Display contains list rendering limits.
type Display struct {
	BacklogLimit int `toml:"backlog-limit"`
	DoneLimit    int `toml:"done-limit"`
}

// Log configures the process logger.
type Log struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration written as a Go duration string in TOML.
type Duration time.Duration

// UnmarshalText parses strings like "30s".
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if parsed < 0 {
		return fmt.Errorf("duration must not be negative: %s", text)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText renders the duration as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Load loads configuration from workDir and the global config file, then
// applies environment overrides. Returns an empty config if no config
// files exist.
func Load(workDir string) (*Config, error) {
	globalPath, err := paths.DefaultConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(workDir, FileName))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	applyEnv(merged)
	return merged, nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Store.Backend = mergeString(projectMeta.IsDefined("store", "backend"), projectCfg.Store.Backend, globalCfg.Store.Backend)
	merged.Store.Dir = mergeString(projectMeta.IsDefined("store", "dir"), projectCfg.Store.Dir, globalCfg.Store.Dir)

	merged.Reminder.Interval = mergeValue(projectMeta.IsDefined("reminder", "interval"), projectCfg.Reminder.Interval, globalCfg.Reminder.Interval)
	merged.Reminder.Window = mergeValue(projectMeta.IsDefined("reminder", "window"), projectCfg.Reminder.Window, globalCfg.Reminder.Window)
	if projectMeta.IsDefined("reminder", "command") {
		merged.Reminder.Command = append([]string(nil), projectCfg.Reminder.Command...)
	} else if globalMeta.IsDefined("reminder", "command") {
		merged.Reminder.Command = append([]string(nil), globalCfg.Reminder.Command...)
	}

	merged.CheckIn.Policy = mergeString(projectMeta.IsDefined("checkin", "policy"), projectCfg.CheckIn.Policy, globalCfg.CheckIn.Policy)
	merged.CheckIn.Probability = mergeValue(projectMeta.IsDefined("checkin", "probability"), projectCfg.CheckIn.Probability, globalCfg.CheckIn.Probability)
	merged.CheckIn.Every = mergeValue(projectMeta.IsDefined("checkin", "every"), projectCfg.CheckIn.Every, globalCfg.CheckIn.Every)

	merged.Display.BacklogLimit = mergeValue(projectMeta.IsDefined("display", "backlog-limit"), projectCfg.Display.BacklogLimit, globalCfg.Display.BacklogLimit)
	merged.Display.DoneLimit = mergeValue(projectMeta.IsDefined("display", "done-limit"), projectCfg.Display.DoneLimit, globalCfg.Display.DoneLimit)

	merged.Log.Level = mergeString(projectMeta.IsDefined("log", "level"), projectCfg.Log.Level, globalCfg.Log.Level)

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func mergeValue[T any](projectDefined bool, projectValue, globalValue T) T {
	if projectDefined {
		return projectValue
	}
	return globalValue
}

func applyEnv(cfg *Config) {
	if dir := strings.TrimSpace(os.Getenv(EnvDataDir)); dir != "" {
		cfg.Store.Dir = dir
	}
	if backend := strings.TrimSpace(os.Getenv(EnvStore)); backend != "" {
		cfg.Store.Backend = backend
	}
}

// DataDir returns the configured data directory or the default one.
func (c *Config) DataDir() (string, error) {
	return paths.ResolveWithDefault(c.Store.Dir, paths.DefaultDataDir)
}

// LogLevel parses the configured level. Empty means warn.
func (c *Config) LogLevel() (slog.Level, error) {
	if c.Log.Level == "" {
		return slog.LevelWarn, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return level, nil
}
