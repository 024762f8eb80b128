// Package paths resolves the per-user directories facekey reads and writes.
// It follows the XDG base directory layout (with the platform equivalents
// on macOS and Windows, as resolved by github.com/adrg/xdg).
package paths

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName is the directory name used under every base directory.
const AppName = "facekey"

// DataDir returns the application-private data directory holding the
// persisted documents.
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// ConfigFile returns the default configuration file path.
func ConfigFile() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.toml")
}

// LogFile returns the path of the log file.
func LogFile() string {
	return filepath.Join(xdg.StateHome, AppName, AppName+".log")
}

// AutostartDir returns the XDG autostart directory for desktop entries.
func AutostartDir() string {
	return filepath.Join(xdg.ConfigHome, "autostart")
}
