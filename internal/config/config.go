// Package config handles configuration loading and defaults.
package config

import (
	"flag"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultStore     = StoreJSON
	DefaultDataDir   = "~/.taskman"
	DefaultKey       = "tasks"
	DefaultTheme     = "classic"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultLogFile   = "taskman.log"
	FallbackName     = "friend"

	ConfigFileName = "taskman.toml"
	DotEnvFileName = ".env"
)

// Storage backends.
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

// Config holds the full configuration for taskman.
type Config struct {
	// Identity shown in the heading.
	Name string `toml:"name"`

	// Storage
	Store   string `toml:"store"`
	DataDir string `toml:"data_dir"`
	Key     string `toml:"key"`

	// Output
	Theme string `toml:"theme"`

	// Logging. LogFile is relative to DataDir unless absolute; "-" means stderr.
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	LogFile   string `toml:"log_file"`
}

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.taskman/taskman.toml)
// 3. Project config file (taskman.toml in the current directory)
// 4. .env in the current directory, then the environment
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if p := findUserConfigFile(); p != "" {
		if err := loadConfigFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", p, err)
		}
	}
	if p := findProjectConfigFile(); p != "" {
		if err := loadConfigFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", p, err)
		}
	}

	if err := loadDotEnv(DotEnvFileName); err != nil {
		return nil, fmt.Errorf("loading %s: %w", DotEnvFileName, err)
	}
	loadFromEnv(cfg)

	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.Name = defaultName()
	cfg.Store = DefaultStore
	cfg.DataDir = DefaultDataDir
	cfg.Key = DefaultKey
	cfg.Theme = DefaultTheme
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogFile = DefaultLogFile
}

func defaultName() string {
	u, err := user.Current()
	if err != nil {
		return FallbackName
	}
	if n := strings.TrimSpace(u.Name); n != "" {
		return n
	}
	if n := strings.TrimSpace(u.Username); n != "" {
		return n
	}
	return FallbackName
}

// loadConfigFile loads TOML config from the given file.
func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// finalizeConfig normalizes values and validates enums.
func finalizeConfig(cfg *Config) error {
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	switch cfg.Store {
	case StoreJSON, StoreSQLite:
	default:
		return fmt.Errorf("unknown store %q (want %s or %s)", cfg.Store, StoreJSON, StoreSQLite)
	}

	cfg.Key = strings.TrimSpace(cfg.Key)
	if cfg.Key == "" {
		return fmt.Errorf("empty storage key")
	}
	if strings.TrimSpace(cfg.Name) == "" {
		cfg.Name = FallbackName
	}

	cfg.DataDir = expandPath(cfg.DataDir)
	if !filepath.IsAbs(cfg.DataDir) {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.DataDir = filepath.Join(wd, cfg.DataDir)
	}
	return nil
}

// LogPath resolves LogFile against DataDir. It returns "" for stderr.
func (c *Config) LogPath() string {
	switch c.LogFile {
	case "", "-":
		return ""
	}
	p := expandPath(c.LogFile)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.DataDir, p)
}

// SQLitePath is the database file used by the sqlite backend.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "taskman.db")
}
