package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	defaultPollIntervalSec = 60
	minPollIntervalSec     = 10
)

// Ignore backends.
const (
	IgnoreBackendFile   = "file"
	IgnoreBackendSQLite = "sqlite"
)

// ReviewConfig controls the foreground review command.
type ReviewConfig struct {
	// BaseDir holds local clones laid out as <BaseDir>/<owner>/<repo>.
	BaseDir string `mapstructure:"base_dir" yaml:"base_dir"`

	// Editor is launched as: <Editor> -c "ReviewPR <url> --analyze".
	Editor string `mapstructure:"editor" yaml:"editor"`
}

// IgnoreConfig selects where dismissed pull requests are persisted.
type IgnoreConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// StoreConfig locates the sqlite database.
type StoreConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// LogConfig controls the file logger.
type LogConfig struct {
	Path  string `mapstructure:"path" yaml:"path"`
	Level string `mapstructure:"level" yaml:"level"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	PollIntervalSec int          `mapstructure:"poll_interval_sec" yaml:"poll_interval_sec"`
	IncludeRead     bool         `mapstructure:"include_read" yaml:"include_read"`
	Review          ReviewConfig `mapstructure:"review" yaml:"review"`
	Ignore          IgnoreConfig `mapstructure:"ignore" yaml:"ignore"`
	Store           StoreConfig  `mapstructure:"store" yaml:"store"`
	Log             LogConfig    `mapstructure:"log" yaml:"log"`
}

// DefaultConfigPath returns ~/.config/ghn/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "ghn", "config.yaml")
}

// ConfigDir returns $XDG_CONFIG_HOME/ghn, falling back to APPDATA and
// then ~/.config.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "ghn")
	}
	if dir := os.Getenv("APPDATA"); dir != "" {
		return filepath.Join(dir, "ghn")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "ghn"
	}
	return filepath.Join(home, ".config", "ghn")
}

func stateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "ghn")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "state", "ghn")
}

func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "ghn")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "ghn")
}

// DefaultAppConfig returns the configuration used when no file exists.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		PollIntervalSec: defaultPollIntervalSec,
		IncludeRead:     false,
		Review: ReviewConfig{
			BaseDir: "~/Developer",
			Editor:  "nvim",
		},
		Ignore: IgnoreConfig{
			Backend: IgnoreBackendFile,
			Path:    filepath.Join(ConfigDir(), "ignores.txt"),
		},
		Store: StoreConfig{
			Path: filepath.Join(dataDir(), "ghn.db"),
		},
		Log: LogConfig{
			Path:  filepath.Join(stateDir(), "ghn.log"),
			Level: "info",
		},
	}
}

// NewViper returns a viper instance bound to path with every default set,
// so flags can be bound to it before LoadConfig reads the file.
func NewViper(path string) *viper.Viper {
	d := DefaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("poll_interval_sec", d.PollIntervalSec)
	v.SetDefault("include_read", d.IncludeRead)
	v.SetDefault("review.base_dir", d.Review.BaseDir)
	v.SetDefault("review.editor", d.Review.Editor)
	v.SetDefault("ignore.backend", d.Ignore.Backend)
	v.SetDefault("ignore.path", d.Ignore.Path)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("log.level", d.Log.Level)

	return v
}

// LoadConfig reads the YAML file behind v. A missing file is not an
// error: defaults and any bound flags still apply.
func LoadConfig(v *viper.Viper) (*AppConfig, error) {
	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", v.ConfigFileUsed(), err)
		}
	}

	cfg := DefaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", v.ConfigFileUsed(), err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFile is LoadConfig for callers without flags to bind.
func LoadConfigFile(path string) (*AppConfig, error) {
	return LoadConfig(NewViper(path))
}

func (c *AppConfig) normalize() error {
	if c.PollIntervalSec < minPollIntervalSec {
		c.PollIntervalSec = minPollIntervalSec
	}

	switch c.Ignore.Backend {
	case IgnoreBackendFile, IgnoreBackendSQLite:
	case "":
		c.Ignore.Backend = IgnoreBackendFile
	default:
		return fmt.Errorf("unknown ignore backend %q (want %q or %q)",
			c.Ignore.Backend, IgnoreBackendFile, IgnoreBackendSQLite)
	}

	for _, p := range []*string{&c.Review.BaseDir, &c.Ignore.Path, &c.Store.Path, &c.Log.Path} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("expanding path %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// SaveConfig writes cfg to a YAML file at path, creating parent
// directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("poll_interval_sec", cfg.PollIntervalSec)
	v.Set("include_read", cfg.IncludeRead)
	v.Set("review", cfg.Review)
	v.Set("ignore", cfg.Ignore)
	v.Set("store", cfg.Store)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
