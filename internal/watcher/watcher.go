// Package watcher monitors the scan inbox directory for dropped OCR text
// files and feeds them into the lineup pipeline.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	processedDir = "processed"
	failedDir    = "failed"
)

// Handler processes the OCR text from one inbox file. name is the file's
// base name without its extension, used as the playlist title seed.
type Handler func(ctx context.Context, name, text string) error

// Service watches an inbox directory for newly dropped .txt files,
// debounces bursts of writes, and hands each file's contents to the
// configured handler. Handled files are moved into a processed/
// subdirectory, files whose handler failed into failed/.
type Service struct {
	dir          string
	handle       Handler
	logger       *slog.Logger
	debounce     time.Duration
	pollInterval time.Duration

	mu      sync.Mutex
	pending map[string]struct{}
}

// NewService creates a new inbox watcher for dir.
func NewService(dir string, handle Handler, logger *slog.Logger) *Service {
	return &Service{
		dir:          dir,
		handle:       handle,
		logger:       logger.With("component", "inbox-watcher"),
		debounce:     500 * time.Millisecond,
		pollInterval: 30 * time.Second,
		pending:      make(map[string]struct{}),
	}
}

// SetDebounce overrides the default debounce interval (for testing).
func (s *Service) SetDebounce(d time.Duration) {
	s.debounce = d
}

// Start blocks until ctx is canceled. It processes any files already
// sitting in the inbox, then dispatches fsnotify events as new files
// arrive. If fsnotify is unavailable, the service still runs with
// poll-only support.
func (s *Service) Start(ctx context.Context) {
	for _, sub := range []string{processedDir, failedDir} {
		if err := os.MkdirAll(filepath.Join(s.dir, sub), 0o755); err != nil {
			s.logger.Error("creating inbox subdirectory failed", "dir", sub, "error", err)
			return
		}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		s.logger.Warn("fsnotify unavailable, running poll-only", "error", err)
	} else {
		defer w.Close() //nolint:errcheck
		if err := w.Add(s.dir); err != nil {
			s.logger.Warn("watching inbox failed, running poll-only", "dir", s.dir, "error", err)
			w.Close() //nolint:errcheck
			w = nil
		}
	}

	s.logger.Info("inbox watcher starting", "dir", s.dir)

	// Pick up anything dropped before the watcher came up.
	s.enqueueExisting()
	s.drainPending(ctx)

	pollTicker := time.NewTicker(s.pollInterval)
	defer pollTicker.Stop()

	// Debounce timer for coalescing write events into a single drain.
	// Starts stopped; reset on each relevant event.
	debounceTimer := time.NewTimer(0)
	if !debounceTimer.Stop() {
		<-debounceTimer.C
	}

	var eventCh <-chan fsnotify.Event
	var errCh <-chan error
	if w != nil {
		eventCh = w.Events
		errCh = w.Errors
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("inbox watcher stopping")
			return

		case ev, ok := <-eventCh:
			if !ok {
				return
			}
			if s.handleFSEvent(ev) {
				resetTimer(debounceTimer, s.debounce)
			}

		case err, ok := <-errCh:
			if !ok {
				return
			}
			s.logger.Error("fsnotify error", "error", err)

		case <-debounceTimer.C:
			s.drainPending(ctx)

		case <-pollTicker.C:
			if s.enqueueExisting() {
				resetTimer(debounceTimer, s.debounce)
			}
		}
	}
}

func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}

// handleFSEvent reports whether the event queued a new file.
func (s *Service) handleFSEvent(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return false
	}
	if !s.isScanFile(ev.Name) {
		return false
	}
	s.mu.Lock()
	s.pending[ev.Name] = struct{}{}
	s.mu.Unlock()
	return true
}

// isScanFile reports whether path is a .txt file sitting directly in the
// inbox, not in one of the bookkeeping subdirectories.
func (s *Service) isScanFile(path string) bool {
	if filepath.Dir(path) != filepath.Clean(s.dir) {
		return false
	}
	return strings.EqualFold(filepath.Ext(path), ".txt")
}

// enqueueExisting scans the inbox for unprocessed .txt files and reports
// whether any new ones were queued.
func (s *Service) enqueueExisting() bool {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Error("reading inbox failed", "error", err)
		return false
	}
	queued := false
	s.mu.Lock()
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		if _, ok := s.pending[path]; !ok {
			s.pending[path] = struct{}{}
			queued = true
		}
	}
	s.mu.Unlock()
	return queued
}

// drainPending processes every queued file in one pass.
func (s *Service) drainPending(ctx context.Context) {
	s.mu.Lock()
	paths := make([]string, 0, len(s.pending))
	for p := range s.pending {
		paths = append(paths, p)
	}
	s.pending = make(map[string]struct{})
	s.mu.Unlock()

	for _, path := range paths {
		if ctx.Err() != nil {
			return
		}
		s.process(ctx, path)
	}
}

func (s *Service) process(ctx context.Context, path string) {
	text, err := os.ReadFile(path)
	if err != nil {
		// The file may have been picked up and moved already.
		if os.IsNotExist(err) {
			return
		}
		s.logger.Error("reading scan file failed", "path", path, "error", err)
		return
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if err := s.handle(ctx, name, string(text)); err != nil {
		s.logger.Error("processing scan file failed", "path", path, "error", err)
		s.moveTo(path, failedDir)
		return
	}

	s.logger.Info("scan file processed", "path", path)
	s.moveTo(path, processedDir)
}

func (s *Service) moveTo(path, sub string) {
	dest := filepath.Join(s.dir, sub, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		s.logger.Error("moving scan file failed", "path", path, "dest", dest, "error", err)
	}
}
