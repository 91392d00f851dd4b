package telemetry

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
)

type SessionInfo struct {
	RunID   string
	LogPath string
}

type session struct {
	startedAt time.Time
	info      SessionInfo
	logFile   *os.File
	logger    *slog.Logger
}

var (
	mu     sync.RWMutex
	active *session
)

// Start opens a JSONL trace in traceDir. Spans and events are dropped
// until Start is called; a second Start returns the running session.
func Start(traceDir string) (SessionInfo, error) {
	mu.Lock()
	defer mu.Unlock()

	if active != nil {
		return active.info, nil
	}

	if err := os.MkdirAll(traceDir, 0755); err != nil {
		return SessionInfo{}, err
	}

	runID := uuid.NewString()
	stamp := time.Now().UTC().Format("20060102-150405.000")
	info := SessionInfo{
		RunID:   runID,
		LogPath: filepath.Join(traceDir, fmt.Sprintf("trace-%s-%s.jsonl", stamp, runID[:8])),
	}

	logFile, err := os.Create(info.LogPath)
	if err != nil {
		return SessionInfo{}, err
	}

	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelInfo})).
		With("run_id", runID)
	active = &session{
		startedAt: time.Now(),
		info:      info,
		logFile:   logFile,
		logger:    logger,
	}
	logger.Info(
		"trace.session_start",
		"log_path", info.LogPath,
		"pid", os.Getpid(),
		"goos", runtime.GOOS,
		"goarch", runtime.GOARCH,
	)
	return info, nil
}

func Stop() (SessionInfo, error) {
	mu.Lock()
	s := active
	active = nil
	mu.Unlock()

	if s == nil {
		return SessionInfo{}, nil
	}

	s.logger.Info("trace.session_stop", "elapsed_ms", time.Since(s.startedAt).Milliseconds())
	return s.info, s.logFile.Close()
}

func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return active != nil
}

func Event(name string, kv ...any) {
	mu.RLock()
	s := active
	mu.RUnlock()
	if s == nil {
		return
	}
	s.logger.Info(name, normalizeKV(kv)...)
}

// StartSpan emits name+".start" and returns a func that emits name+".done"
// with the start fields, the done fields and the elapsed time.
func StartSpan(name string, kv ...any) func(kv ...any) {
	if !Enabled() {
		return func(...any) {}
	}
	started := time.Now()
	Event(name+".start", kv...)
	return func(doneKV ...any) {
		fields := make([]any, 0, len(kv)+len(doneKV)+2)
		fields = append(fields, kv...)
		fields = append(fields, doneKV...)
		fields = append(fields, "duration_ms", time.Since(started).Milliseconds())
		Event(name+".done", fields...)
	}
}

func normalizeKV(kv []any) []any {
	if len(kv)%2 == 0 {
		return kv
	}
	out := make([]any, len(kv)+1)
	copy(out, kv)
	out[len(out)-1] = "(missing)"
	return out
}
