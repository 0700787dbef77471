package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DataDir returns the default data directory for wayfarer.
// Windows: %LOCALAPPDATA%\wayfarer
// Linux/Mac: ~/.local/share/wayfarer
func DataDir() string {
	if dir := os.Getenv("WAYFARER_DATA_DIR"); dir != "" {
		return dir
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "wayfarer")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "wayfarer")
}

// MemoryDir returns the directory where per-user vector collections are stored.
func MemoryDir() string {
	return filepath.Join(DataDir(), "memory")
}

// PrefsDir returns the directory where per-user preference files are stored.
func PrefsDir() string {
	return filepath.Join(DataDir(), "preferences")
}

// EnsureDirs creates the required directories if they don't exist.
func EnsureDirs(cfg *Config) error {
	for _, dir := range []string{cfg.DataDir, cfg.MemoryDir, cfg.PrefsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
