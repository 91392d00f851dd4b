// Package fetch downloads the pip_find_builddeps.py helper.
package fetch

import (
	"builddeps/src/internal/python"
	"builddeps/src/internal/telemetry"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
)

type Fetcher struct {
	Client *http.Client
	// Progress receives the download bar. Nil discards it.
	Progress io.Writer
}

// Script downloads url into destDir as pip_find_builddeps.py and marks it
// executable. The file is only replaced once the download completed.
func (f *Fetcher) Script(ctx context.Context, url, destDir string) (path string, retErr error) {
	done := telemetry.StartSpan("fetch.script", "url", url, "dest_dir", destDir)
	defer func() {
		fields := []any{"status", "ok", "path", path}
		if retErr != nil {
			fields[1] = "error"
			fields = append(fields, "error", retErr.Error())
		}
		done(fields...)
	}()

	if url == "" {
		url = python.ScriptURL
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := f.client().Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s failed: %s", url, resp.Status)
	}

	tmp, err := os.CreateTemp(destDir, ".pip_find_builddeps-*")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	bar := progressbar.NewOptions64(
		resp.ContentLength,
		progressbar.OptionSetWriter(f.progress()),
		progressbar.OptionSetDescription(python.DefaultScript),
		progressbar.OptionShowBytes(true),
		progressbar.OptionClearOnFinish(),
	)
	if _, err := io.Copy(io.MultiWriter(tmp, bar), resp.Body); err != nil {
		tmp.Close()
		return "", err
	}
	_ = bar.Finish()
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmpPath, 0755); err != nil {
		return "", err
	}

	path = filepath.Join(destDir, python.DefaultScript)
	if err := os.Rename(tmpPath, path); err != nil {
		return "", err
	}
	return path, nil
}

func (f *Fetcher) client() *http.Client {
	if f.Client == nil {
		return http.DefaultClient
	}
	return f.Client
}

func (f *Fetcher) progress() io.Writer {
	if f.Progress == nil {
		return io.Discard
	}
	return f.Progress
}
