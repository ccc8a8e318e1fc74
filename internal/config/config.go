// Package config loads the application configuration: global card-making
// policy, compositor settings, and the shared font label map.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/ljmurray/marquee/internal/font"
)

// Config is the top-level application configuration.
type Config struct {
	General GeneralSection        `toml:"general"`
	Fonts   map[string]*font.Spec `toml:"fonts"`
}

// GeneralSection holds process-wide policy.
type GeneralSection struct {
	// ValidateFonts toggles glyph-coverage checking of title text; fonts can
	// override it per card.
	ValidateFonts *bool `toml:"validate_fonts"`

	// Convert is the ImageMagick binary used for compositing.
	Convert string `toml:"convert"`

	// AssetsDir holds the reference fonts and gradients card variants use.
	AssetsDir string `toml:"assets_dir"`

	LogLevel string `toml:"log_level"`
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetConfigFilePath returns the default path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "marquee", "config.toml")
}

// GetDefaultAssetsDir returns the default path to the assets directory
func GetDefaultAssetsDir() string {
	return filepath.Join(GetXDGDataHome(), "marquee", "assets")
}

// Load reads the config at path, or the default XDG location when path is
// empty. A missing default config is created first.
func Load(path string) (*Config, error) {
	if path == "" {
		path = GetConfigFilePath()
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return createDefaultConfig(path)
		}
	}

	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %v", err)
	}
	config.applyDefaults()

	return &config, nil
}

// createDefaultConfig writes and returns a default config file.
func createDefaultConfig(path string) (*Config, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %v", err)
	}

	validate := true
	config := &Config{General: GeneralSection{ValidateFonts: &validate}}
	config.applyDefaults()

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("error creating config file: %v", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return nil, fmt.Errorf("error encoding config: %v", err)
	}

	return config, nil
}

func (c *Config) applyDefaults() {
	if c.General.Convert == "" {
		c.General.Convert = "convert"
	}
	if c.General.AssetsDir == "" {
		c.General.AssetsDir = GetDefaultAssetsDir()
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.Fonts == nil {
		c.Fonts = map[string]*font.Spec{}
	}
}

// Policy returns the font resolution policy this config implies.
func (c *Config) Policy() font.Policy {
	validate := true
	if c.General.ValidateFonts != nil {
		validate = *c.General.ValidateFonts
	}
	return font.Policy{ValidateGlyphs: validate}
}
