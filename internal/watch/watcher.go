// Package watch re-formats Turtle files when they change on disk.
package watch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler formats the file at path in place.
type Handler func(ctx context.Context, path string) error

// Config configures a Watcher.
type Config struct {
	// Debounce is how long changes are collected before they are handled.
	Debounce time.Duration
	// Extensions lists the file extensions to react to.
	Extensions []string
	// ExcludeDirs lists directory names that are never watched.
	ExcludeDirs []string
}

// DefaultConfig returns a configuration watching .ttl files.
func DefaultConfig() Config {
	return Config{
		Debounce:    300 * time.Millisecond,
		Extensions:  []string{".ttl"},
		ExcludeDirs: []string{".git", "node_modules", "vendor"},
	}
}

// Watcher collects file system events and hands each changed file to a
// Handler once the debounce interval has passed.
type Watcher struct {
	cfg        Config
	fsw        *fsnotify.Watcher
	handle     Handler
	metrics    *Metrics
	logger     *slog.Logger
	extensions map[string]bool
	excludes   map[string]bool

	mu      sync.Mutex
	pending map[string]fsnotify.Op
}

// New creates a Watcher. metrics may be nil.
func New(cfg Config, handle Handler, metrics *Metrics, logger *slog.Logger) (*Watcher, error) {
	if handle == nil {
		return nil, errors.New("watch: nil handler")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultConfig().Debounce
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = DefaultConfig().Extensions
	}

	extensions := make(map[string]bool, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions[strings.ToLower(ext)] = true
	}
	excludes := make(map[string]bool, len(cfg.ExcludeDirs))
	for _, dir := range cfg.ExcludeDirs {
		excludes[dir] = true
	}

	return &Watcher{
		cfg:        cfg,
		fsw:        fsw,
		handle:     handle,
		metrics:    metrics,
		logger:     logger,
		extensions: extensions,
		excludes:   excludes,
		pending:    make(map[string]fsnotify.Op),
	}, nil
}

// Add watches root and every directory below it.
func (w *Watcher) Add(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.skipDir(filepath.Base(path)) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Warn("could not watch directory", "path", path, "error", err)
			return nil
		}
		w.logger.Debug("watching directory", "path", path)
		return nil
	})
}

func (w *Watcher) skipDir(base string) bool {
	return w.excludes[base] || (strings.HasPrefix(base, ".") && base != ".")
}

// Run handles events until ctx is done, then closes the underlying watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	ticker := time.NewTicker(w.cfg.Debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	if !w.extensions[strings.ToLower(filepath.Ext(path))] {
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(path); err == nil && info.IsDir() && !w.skipDir(filepath.Base(path)) {
				if err := w.Add(path); err != nil {
					w.logger.Warn("could not watch new directory", "path", path, "error", err)
				}
			}
		}
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	w.mu.Lock()
	w.pending[path] |= event.Op
	w.mu.Unlock()
	w.logger.Debug("change detected", "path", path, "op", event.Op.String())
}

// flush handles every pending path in lexical order.
func (w *Watcher) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]fsnotify.Op)
	w.mu.Unlock()

	sort.Strings(paths)
	for _, path := range paths {
		if ctx.Err() != nil {
			return
		}
		if _, err := os.Stat(path); err != nil {
			// removed again before the debounce interval ended
			continue
		}
		start := time.Now()
		err := w.handle(ctx, path)
		w.metrics.observe(start, err)
		if err != nil {
			w.logger.Error("could not format file", "path", path, "error", err)
			continue
		}
		w.logger.Info("formatted", "path", path, "duration", time.Since(start))
	}
}
