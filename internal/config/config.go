// Package config loads application settings from defaults, an optional YAML
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	FileName  = "report-catalog"
	EnvPrefix = "REPORT_CATALOG"

	// DefaultHeaderRow is the zero-based row holding column names in the
	// report spreadsheets.
	DefaultHeaderRow = 16
)

type Config struct {
	DataDir      string `mapstructure:"data_dir"`
	HeaderRow    int    `mapstructure:"header_row"`
	LogLevel     string `mapstructure:"log_level"`
	LogJSON      bool   `mapstructure:"log_json"`
	WindowWidth  int    `mapstructure:"window_width"`
	WindowHeight int    `mapstructure:"window_height"`
}

// CatalogPath is the location of the catalog database.
func (c *Config) CatalogPath() string {
	return filepath.Join(c.DataDir, "reports.db")
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("data_dir must not be empty")
	}
	if c.HeaderRow < 0 {
		return fmt.Errorf("header_row must be >= 0, got %d", c.HeaderRow)
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.WindowWidth, c.WindowHeight)
	}
	return nil
}

// Load reads configuration. An explicit path must exist; otherwise
// report-catalog.yaml is looked up next to the executable and in the working
// directory, and its absence is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	exeDir := executableDir()
	v.SetDefault("data_dir", filepath.Join(exeDir, "data"))
	v.SetDefault("header_row", DefaultHeaderRow)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)
	v.SetDefault("window_width", 1280)
	v.SetDefault("window_height", 720)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("log_level", EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("bind log level: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(exeDir)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if os.Getenv("DEBUG") == "1" && os.Getenv("LOG_LEVEL") == "" && os.Getenv(EnvPrefix+"_LOG_LEVEL") == "" {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// EnsureDataDir creates the data directory if needed.
func (c *Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return nil
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		wd, _ := os.Getwd()
		return wd
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}
