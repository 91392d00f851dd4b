package bddir

import (
	"os"
	"path/filepath"
	"runtime"
)

func Home() (string, error) {
	if runtime.GOOS == "windows" {
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, "builddeps"), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "AppData", "Local", "builddeps"), nil
	}

	if data := os.Getenv("XDG_DATA_HOME"); data != "" {
		return filepath.Join(data, "builddeps"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "builddeps"), nil
}

func MustHome() string {
	home, err := Home()
	if err != nil {
		return ".builddeps"
	}
	return home
}

func ConfigFile() string {
	return filepath.Join(MustHome(), "config.yaml")
}

// TraceDir holds the JSONL traces written by `run --trace`.
func TraceDir() string {
	return filepath.Join(MustHome(), "traces")
}

// EnsureHome creates the data directory that holds config.yaml.
func EnsureHome() error {
	return os.MkdirAll(MustHome(), 0755)
}
