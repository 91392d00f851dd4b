package bddir

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestHomeHonorsXDGDataHome(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG_DATA_HOME is not consulted on windows")
	}
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	home, err := Home()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if home != filepath.Join(dir, "builddeps") {
		t.Fatalf("expected %s, got %s", filepath.Join(dir, "builddeps"), home)
	}
	if ConfigFile() != filepath.Join(dir, "builddeps", "config.yaml") {
		t.Fatalf("unexpected config file: %s", ConfigFile())
	}
	if TraceDir() != filepath.Join(dir, "builddeps", "traces") {
		t.Fatalf("unexpected trace dir: %s", TraceDir())
	}
}

func TestEnsureHomeCreatesDataDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG_DATA_HOME is not consulted on windows")
	}
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	if err := EnsureHome(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, err := os.Stat(filepath.Join(dir, "builddeps"))
	if err != nil {
		t.Fatalf("expected data dir to exist: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected a directory at %s", filepath.Join(dir, "builddeps"))
	}
}
