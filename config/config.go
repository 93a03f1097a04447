package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	IsProd        bool          `yaml:"is_prod" env:"OSS_IS_PROD"`
	OutputDir     string        `yaml:"output_dir" env:"OSS_OUTPUT_DIR"`
	ActivityLog   string        `yaml:"activity_log" env:"OSS_ACTIVITY_LOG"`
	OpenViewer    bool          `yaml:"open_viewer" env:"OSS_OPEN_VIEWER"`
	TemplateDir   string        `yaml:"template_dir" env:"OSS_TEMPLATE_DIR"`
	MaxIDAttempts int           `yaml:"max_id_attempts" env:"OSS_MAX_ID_ATTEMPTS"`
	MaxExpiration time.Duration `yaml:"max_expiration" env:"OSS_MAX_EXPIRATION"`
}

func Default() *Config {
	return &Config{
		IsProd:        true,
		OutputDir:     filepath.Join(os.TempDir(), "onetime-secrets"),
		ActivityLog:   "onetime-secrets.log",
		OpenViewer:    true,
		MaxIDAttempts: 64,
		MaxExpiration: 7 * 24 * time.Hour,
	}
}

// Load applies, in order, the defaults, the YAML file at path (if any) and
// OSS_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadFromFile(path); err != nil {
			return nil, err
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output_dir is required")
	}
	if c.ActivityLog == "" {
		return errors.New("activity_log is required")
	}
	if c.MaxIDAttempts < 1 {
		return fmt.Errorf("max_id_attempts must be at least 1, got %d", c.MaxIDAttempts)
	}
	if c.MaxExpiration <= 0 {
		return errors.New("max_expiration must be positive")
	}
	return nil
}

// ActivityLogPath resolves a relative activity log against OutputDir.
func (c *Config) ActivityLogPath() string {
	if filepath.IsAbs(c.ActivityLog) {
		return c.ActivityLog
	}
	return filepath.Join(c.OutputDir, c.ActivityLog)
}
