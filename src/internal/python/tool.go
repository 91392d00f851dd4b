package python

import (
	"builddeps/src/internal/telemetry"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	// DefaultScript is looked up relative to the working directory.
	DefaultScript = "pip_find_builddeps.py"
	ScriptURL     = "https://raw.githubusercontent.com/containerbuildsystem/cachito/master/bin/pip_find_builddeps.py"
)

// ErrToolNotFound is returned when the interpreter or the helper script
// cannot be located.
var ErrToolNotFound = errors.New("build dependency tool not found")

// ErrInterpreterNotFound wraps ErrToolNotFound when no Python interpreter
// could be found; a missing helper script is reported with ErrToolNotFound
// alone.
var ErrInterpreterNotFound = fmt.Errorf("%w: no python interpreter", ErrToolNotFound)

var defaultInterpreters = []string{"python3", "python"}

// Tool runs pip_find_builddeps.py under a Python interpreter.
type Tool struct {
	// Python is an interpreter name or path. Empty tries python3, then python.
	Python string
	// Script is the helper script path. Empty means DefaultScript.
	Script string

	Stdout io.Writer
	Stderr io.Writer
}

// Locate resolves the interpreter and script to absolute paths.
func (t *Tool) Locate() (exe string, script string, err error) {
	exe, err = t.interpreter()
	if err != nil {
		return "", "", err
	}

	script = t.Script
	if script == "" {
		script = DefaultScript
	}
	info, err := os.Stat(script)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", "", fmt.Errorf("%w: %s does not exist", ErrToolNotFound, script)
		}
		return "", "", err
	}
	if info.IsDir() {
		return "", "", fmt.Errorf("%w: %s is a directory", ErrToolNotFound, script)
	}
	if abs, err := filepath.Abs(script); err == nil {
		script = abs
	}
	return exe, script, nil
}

func (t *Tool) interpreter() (string, error) {
	candidates := defaultInterpreters
	if t.Python != "" {
		candidates = []string{t.Python}
	}
	for _, c := range candidates {
		if p, err := exec.LookPath(c); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w (%s) on PATH", ErrInterpreterNotFound, strings.Join(candidates, ", "))
}

// Run invokes the helper with requirementsFile as its only argument and
// waits for it to exit. A non-zero exit is returned as *exec.ExitError.
func (t *Tool) Run(ctx context.Context, requirementsFile string) (retErr error) {
	done := telemetry.StartSpan("tool.run", "requirements_file", requirementsFile)
	defer func() {
		fields := []any{"status", "ok"}
		if retErr != nil {
			fields[1] = "error"
			fields = append(fields, "error", retErr.Error())
		}
		done(fields...)
	}()

	exe, script, err := t.Locate()
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, exe, script, requirementsFile)
	cmd.Env = standardEnv(exe)
	cmd.Stdout = writerOr(t.Stdout, os.Stdout)
	cmd.Stderr = writerOr(t.Stderr, os.Stderr)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return err
		}
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %v", ErrToolNotFound, err)
		}
		return err
	}
	return nil
}

// standardEnv puts the interpreter's directory first on PATH and forces
// UTF-8 I/O so pip output decodes the same everywhere.
func standardEnv(exe string) []string {
	env := os.Environ()
	newPath := filepath.Dir(exe) + string(os.PathListSeparator) + os.Getenv("PATH")

	pathFound := false
	for i, e := range env {
		if len(e) > 5 && strings.EqualFold(e[:5], "PATH=") {
			env[i] = "PATH=" + newPath
			pathFound = true
			break
		}
	}
	if !pathFound {
		env = append(env, "PATH="+newPath)
	}
	env = append(env, "PYTHONIOENCODING=utf-8")
	env = append(env, "PYTHONUTF8=1")
	return env
}

func writerOr(w io.Writer, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}
