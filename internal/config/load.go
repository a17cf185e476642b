package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked for in the working and config
// directories.
const FileName = "bazaar.yaml"

// Load builds the configuration from defaults, then the config file, then
// command-line flags, and validates the result.
func Load() (*Config, error) {
	cfg := Default()

	path, err := resolveConfigPath(ConfigPath())
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfigPath picks the file Load reads. An explicit path must exist;
// otherwise the working directory is searched before UserConfigPath, and an
// empty result means run on defaults.
func resolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}
	for _, path := range []string{FileName, UserConfigPath()} {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// UserConfigPath is where --save-config writes and the last place Load
// searches.
func UserConfigPath() string {
	return filepath.Join(ConfigDir(), FileName)
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Bazaar")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Bazaar")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "bazaar")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "bazaar")
	}
}

// loadFromFile overlays a YAML file onto cfg. Keys the file leaves out keep
// their current values; unknown keys are an error so typos don't pass
// silently.
func loadFromFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
