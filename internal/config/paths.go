package config

import (
	"os"
	"path/filepath"
)

const appDirName = "linescope"

// GetConfigDir returns the directory holding settings.json.
func GetConfigDir() string {
	if dir := os.Getenv("LINESCOPE_CONFIG_DIR"); dir != "" {
		return dir
	}
	base, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appDirName)
}

// GetStateDir returns the directory for logs and other generated files.
func GetStateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appDirName)
	}
	return filepath.Join(GetConfigDir(), "state")
}
