// Package builddeps drives the per-package build dependency discovery loop:
// each requirement is written to its own single-line requirements file and
// handed to the discovery tool, one at a time, stopping at the first failure.
package builddeps

import (
	"builddeps/src/internal/python"
	"builddeps/src/internal/requirements"
	"builddeps/src/internal/telemetry"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/pterm/pterm"
	"github.com/spf13/afero"
)

// TempPattern names the per-package requirements files.
const TempPattern = "builddeps-req-*.txt"

// Tool discovers the build dependencies listed in a requirements file.
type Tool interface {
	Run(ctx context.Context, requirementsFile string) error
}

// PackageError reports a discovery tool that exited non-zero for Package.
// TempFile is left on disk.
type PackageError struct {
	Package  string
	TempFile string
	ExitCode int
	Err      error
}

func (e *PackageError) Error() string {
	return fmt.Sprintf("finding build dependencies for %s: %v", e.Package, e.Err)
}

func (e *PackageError) Unwrap() error {
	return e.Err
}

type Result struct {
	Processed []string
}

type Runner struct {
	Tool Tool
	// Fs holds both the requirements file and the per-package temp files.
	// The external tool reads the temp files by path, so production code
	// must use the OS filesystem.
	Fs afero.Fs
	// TempDir is where per-package files are created. Empty means the OS
	// temp directory.
	TempDir string
}

func NewRunner(tool Tool, tempDir string) *Runner {
	return &Runner{
		Tool:    tool,
		Fs:      afero.NewOsFs(),
		TempDir: tempDir,
	}
}

// Run processes every package in requirementsFile in file order. The first
// error stops the run; Result lists the packages finished before it.
func (r *Runner) Run(ctx context.Context, requirementsFile string) (result Result, retErr error) {
	done := telemetry.StartSpan("run.total", "requirements_file", requirementsFile)
	defer func() {
		fields := []any{"status", "ok", "processed", len(result.Processed)}
		if retErr != nil {
			fields[1] = "error"
			fields = append(fields, "error", retErr.Error())
		}
		done(fields...)
	}()

	packages, err := requirements.ParseFile(r.fs(), requirementsFile)
	if err != nil {
		return result, fmt.Errorf("read requirements file %s: %w", requirementsFile, err)
	}
	telemetry.Event("run.parsed", "packages", len(packages))

	for _, pkg := range packages {
		if err := r.process(ctx, pkg); err != nil {
			return result, err
		}
		result.Processed = append(result.Processed, pkg)
	}
	return result, nil
}

func (r *Runner) process(ctx context.Context, pkg string) (retErr error) {
	done := telemetry.StartSpan("run.package", "package", pkg)
	defer func() {
		fields := []any{"status", "ok"}
		if retErr != nil {
			fields[1] = "error"
			fields = append(fields, "error", retErr.Error())
		}
		done(fields...)
	}()

	pterm.Info.Printf("Finding build dependencies for %s...\n", pkg)

	tempPath, err := r.writeTemp(pkg)
	if err != nil {
		return fmt.Errorf("write requirements file for %s: %w", pkg, err)
	}

	if err := r.Tool.Run(ctx, tempPath); err != nil {
		if errors.Is(err, python.ErrToolNotFound) {
			return err
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &PackageError{
				Package:  pkg,
				TempFile: tempPath,
				ExitCode: exitErr.ExitCode(),
				Err:      err,
			}
		}
		return fmt.Errorf("run build dependency tool for %s: %w", pkg, err)
	}

	if err := r.fs().Remove(tempPath); err != nil {
		return fmt.Errorf("remove %s: %w", tempPath, err)
	}
	pterm.Success.Printf("Finished finding build dependencies for %s.\n", pkg)
	return nil
}

// writeTemp creates a fresh file holding exactly "<pkg>\n".
func (r *Runner) writeTemp(pkg string) (string, error) {
	f, err := afero.TempFile(r.fs(), r.TempDir, TempPattern)
	if err != nil {
		return "", err
	}
	name := f.Name()
	if _, err := f.WriteString(pkg + "\n"); err != nil {
		f.Close()
		return name, err
	}
	return name, f.Close()
}

func (r *Runner) fs() afero.Fs {
	if r.Fs == nil {
		r.Fs = afero.NewOsFs()
	}
	return r.Fs
}
