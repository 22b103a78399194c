// Package paths resolves configuration and data directory locations for
// the stockbook CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName is the per-application directory under the platform bases.
const appDirName = "stockbook"

// DefaultDataDirName is the CWD-relative data directory used when no
// other location is configured.
const DefaultDataDirName = ".stockbook-db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "STOCKBOOK_CONFIG_DIR"
	EnvDataDir   = "STOCKBOOK_DATA_DIR"
)

// xdgDir resolves one XDG base directory on Linux: the env override if
// set, otherwise home joined with the fallback segments. On other
// platforms os.UserConfigDir already picks the conventional location
// (~/Library/Application Support on macOS, %APPDATA% on Windows).
func xdgDir(envVar string, fallback ...string) (string, error) {
	if runtime.GOOS == "linux" {
		if base := os.Getenv(envVar); base != "" {
			return filepath.Join(base, appDirName), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		parts := append([]string{home}, fallback...)
		parts = append(parts, appDirName)
		return filepath.Join(parts...), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appDirName), nil
}

// DefaultConfigDir returns the platform-specific default configuration
// directory: $XDG_CONFIG_HOME/stockbook on Linux (fallback
// ~/.config/stockbook), the user config dir elsewhere.
func DefaultConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform-specific default data directory:
// $XDG_DATA_HOME/stockbook on Linux (fallback ~/.local/share/stockbook),
// the user config dir elsewhere.
func DefaultDataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > STOCKBOOK_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	for _, candidate := range []string{flag, os.Getenv(EnvConfigDir)} {
		if candidate != "" {
			return filepath.Abs(candidate)
		}
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence
// chain: flag > config.yaml data_dir > STOCKBOOK_DATA_DIR env >
// $(CWD)/.stockbook-db.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	for _, candidate := range []string{flag, configYAMLValue, os.Getenv(EnvDataDir)} {
		if candidate != "" {
			return filepath.Abs(candidate)
		}
	}
	// CWD-relative default keeps per-project stock books isolated.
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
