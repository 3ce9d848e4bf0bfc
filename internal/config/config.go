// Package config loads the ~/.sketchrc settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the rc file looked up in the home directory.
const FileName = ".sketchrc"

type Keybindings struct {
	Undo []string `yaml:"undo"`
	Redo []string `yaml:"redo"`
}

type Config struct {
	SaveDirectory string      `yaml:"save_directory"`
	StartMenu     bool        `yaml:"start_menu"`
	Confirmations bool        `yaml:"confirmations"`
	MaxHistory    int         `yaml:"max_history"`
	LogFile       string      `yaml:"log_file"`
	LogLevel      string      `yaml:"log_level"`
	Keybindings   Keybindings `yaml:"keybindings"`
}

// Default returns the settings used when no rc file exists.
func Default() *Config {
	return &Config{
		StartMenu:     true,
		Confirmations: true,
		MaxHistory:    50,
		LogLevel:      "info",
	}
}

// Path returns ~/.sketchrc, or "" when the home directory is unknown.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, FileName)
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.SaveDirectory = ExpandHome(cfg.SaveDirectory)
	cfg.LogFile = ExpandHome(cfg.LogFile)
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = Default().MaxHistory
	}
	return cfg, nil
}

// GetSavePath places filename in the save directory, creating it if needed.
func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	_ = os.MkdirAll(c.SaveDirectory, 0o755)
	return filepath.Join(c.SaveDirectory, filename)
}

// ExpandHome resolves a leading ~ and makes p absolute.
func ExpandHome(p string) string {
	if p == "" {
		return p
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if !filepath.IsAbs(p) {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
	}
	return p
}
