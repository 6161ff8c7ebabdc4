// Package config resolves installer configuration: the config directory, the
// optional YAML config file, and the layered environment the installer reads.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the config directory.
const AppName = "tsdl-install"

// Dir returns the tsdl-install configuration directory.
//
// Resolution:
//   - $TSDL_INSTALL_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/tsdl-install if set (respects XDG on any platform)
//   - %AppData%/tsdl-install on Windows
//   - ~/.config/tsdl-install on macOS and Linux
func Dir() string {
	if dir := os.Getenv("TSDL_INSTALL_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path of config.yaml inside Dir, or "" when no
// directory could be resolved.
func FilePath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}
