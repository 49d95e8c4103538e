package config

import (
	"os"
	"path/filepath"
)

// ConfigDirEnv overrides the directory the config file is read from and written to.
const ConfigDirEnv = "MIA_CONFIG_DIR"

// ConfigFileName is the config file's name inside the config directory.
const ConfigFileName = "config.yaml"

// DefaultConfigPath returns the path of the config file.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// ConfigDir returns the config directory path.
// MIA_CONFIG_DIR takes precedence over ~/.config/mia.
func ConfigDir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return ExpandPath(dir)
	}
	home := resolveHomeDir()
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "mia")
}

// ConfigExists returns true if the config file exists at the default path.
func ConfigExists() bool {
	return ConfigExistsAt(DefaultConfigPath())
}

// ConfigExistsAt returns true if a config file exists at the specified path.
func ConfigExistsAt(path string) bool {
	_, err := os.Stat(ExpandPath(path))
	return err == nil
}

// ExpandPath expands a leading ~ in path to the user's home directory.
// Only "~" alone or "~/..." are expanded; "~user" is returned unchanged, as is
// any path when the home directory cannot be determined.
func ExpandPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	// Only expand "~" or "~/..."
	if len(path) > 1 && path[1] != '/' {
		return path
	}

	home := resolveHomeDir()
	if home == "" {
		return path
	}

	if len(path) == 1 {
		return home
	}

	return filepath.Join(home, path[2:])
}

func resolveHomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}
