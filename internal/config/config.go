// Package config holds all ninedocs configuration, loaded from a
// ninedocs.yml file at the project root with environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config filename looked up in the working directory.
const DefaultPath = "ninedocs.yml"

// Config holds all ninedocs configuration.
type Config struct {
	// Site identity and content layout
	Site SiteConfig `yaml:"site"`

	// Screenshot capture tool
	Capture CaptureConfig `yaml:"capture"`

	// Dev server
	Serve ServeConfig `yaml:"serve"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns the configuration used when no ninedocs.yml exists.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Title:          "9Boxer Documentation",
			ContentDir:     "docs",
			OutputDir:      "site",
			NavFile:        "docs/nav.yml",
			ImagesDir:      "images",
			ScreenshotsDir: "images/screenshots",
		},
		Capture: CaptureConfig{
			AppURL:            "http://localhost:5173",
			Headless:          true,
			ViewportWidth:     1280,
			ViewportHeight:    800,
			NavigationTimeout: "30s",
			ActionTimeout:     "10s",
			SettleDelay:       "400ms",
			PlanFile:          "docs/screenshots.yml",
			DismissSelectors:  []string{
				"[data-testid='modal-close']",
				".MuiBackdrop-root",
			},
		},
		Serve: ServeConfig{
			Addr:     "127.0.0.1:8000",
			Debounce: "300ms",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads config from path, falling back to defaults when the file
// does not exist. Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories as needed.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides lets CI point capture at a different app instance
// without editing the checked-in config.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("NINEDOCS_APP_URL"); v != "" {
		c.Capture.AppURL = v
	}
	if v := os.Getenv("NINEDOCS_CHROME_BIN"); v != "" {
		c.Capture.ChromeBin = v
	}
	if v := os.Getenv("NINEDOCS_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the parts of the config every command depends on.
func (c *Config) Validate() error {
	if c.Site.ContentDir == "" {
		return fmt.Errorf("site.content_dir must not be empty")
	}
	if c.Site.OutputDir == "" {
		return fmt.Errorf("site.output_dir must not be empty")
	}
	if c.Site.NavFile == "" {
		return fmt.Errorf("site.nav_file must not be empty")
	}
	return nil
}
