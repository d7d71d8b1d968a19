package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"mercator-hq/boolexpr/pkg/config"
)

// ErrAlreadyRunning is returned by Watch when the watcher is already watching.
var ErrAlreadyRunning = errors.New("watcher already running")

// Config contains configuration for the file watcher.
type Config struct {
	// Path is the expression file or directory to watch
	Path string

	// Debounce is the quiet period after the last change before the
	// callback runs (default: 100ms)
	Debounce time.Duration

	// Extensions limits directory watches to files with these extensions.
	// A watched single file is reported regardless of its extension.
	Extensions []string

	// SkipHidden skips dot files and directories
	SkipHidden bool
}

// DefaultConfig returns the default watcher configuration.
func DefaultConfig() Config {
	return Config{
		Debounce:   config.DefaultWatchDebounce,
		Extensions: append([]string(nil), config.DefaultWatchExtensions...),
		SkipHidden: true,
	}
}

// FromConfig builds a watcher configuration for path from the watch
// section of the application configuration.
func FromConfig(cfg config.WatchConfig, path string) Config {
	c := DefaultConfig()
	c.Path = path
	if cfg.Debounce > 0 {
		c.Debounce = cfg.Debounce
	}
	if len(cfg.Extensions) > 0 {
		c.Extensions = append([]string(nil), cfg.Extensions...)
	}
	return c
}

// ChangeFunc is called with the sorted, de-duplicated paths that changed
// during one debounce window.
type ChangeFunc func(paths []string) error

// Watcher watches expression files and reports changes in batches.
type Watcher struct {
	fsw      *fsnotify.Watcher
	logger   *slog.Logger
	config   Config
	file     string // Cleaned target when watching a single file
	debounce *Debouncer

	mu      sync.Mutex
	pending map[string]struct{}
	running bool

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// New creates a watcher and registers cfg.Path with the operating system.
// Changes made after New returns are observed by a later Watch call.
func New(cfg Config, logger *slog.Logger) (*Watcher, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("watch path is required")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = config.DefaultWatchDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	info, err := os.Stat(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat watch path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		logger:   logger,
		config:   cfg,
		debounce: NewDebouncer(cfg.Debounce),
		pending:  make(map[string]struct{}),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	if info.IsDir() {
		err = w.addDirectory(cfg.Path)
	} else {
		// Editors often replace files by rename, which drops a watch on the
		// file itself; watch the parent and filter by name instead.
		w.file = filepath.Clean(cfg.Path)
		err = fsw.Add(filepath.Dir(w.file))
	}
	if err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch path: %w", err)
	}

	return w, nil
}

// Watch delivers batched changes to onChange until ctx is canceled or Stop
// is called. Errors from onChange are logged and watching continues.
func (w *Watcher) Watch(ctx context.Context, onChange ChangeFunc) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return ErrAlreadyRunning
	}
	w.running = true
	w.mu.Unlock()

	defer close(w.doneCh)

	w.logger.InfoContext(ctx, "file watcher started",
		"path", w.config.Path,
		"debounce_ms", w.config.Debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.InfoContext(ctx, "file watcher stopped (context canceled)")
			return nil

		case <-w.stopCh:
			w.logger.InfoContext(ctx, "file watcher stopped")
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.shouldProcess(event) {
				continue
			}

			w.logger.DebugContext(ctx, "file event detected",
				"path", event.Name,
				"op", event.Op.String(),
			)

			w.mu.Lock()
			w.pending[event.Name] = struct{}{}
			w.mu.Unlock()

			w.debounce.Trigger(func() {
				paths := w.drain()
				if len(paths) == 0 {
					return
				}
				if err := onChange(paths); err != nil {
					w.logger.ErrorContext(ctx, "change handler failed", "error", err)
				}
			})

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.ErrorContext(ctx, "file watcher error", "error", err)
		}
	}
}

// Stop stops a running Watch, cancels any pending callback and releases the
// operating system watch. It is safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)

		w.mu.Lock()
		running := w.running
		w.mu.Unlock()
		if running {
			<-w.doneCh
		}

		w.debounce.Stop()
		if cerr := w.fsw.Close(); cerr != nil {
			err = fmt.Errorf("failed to close watcher: %w", cerr)
		}
	})
	return err
}

// drain returns and clears the pending paths.
func (w *Watcher) drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	clear(w.pending)
	sort.Strings(paths)
	return paths
}

// addDirectory adds a directory and all subdirectories to the watcher.
func (w *Watcher) addDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.config.SkipHidden && path != dir && isHidden(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}
		w.logger.Debug("watching directory", "path", path)
		return nil
	})
}

// shouldProcess reports whether an event names a changed expression file.
func (w *Watcher) shouldProcess(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	if w.file != "" {
		return filepath.Clean(event.Name) == w.file
	}
	if w.config.SkipHidden && isHidden(event.Name) {
		return false
	}
	return w.hasValidExtension(filepath.Ext(event.Name))
}

// hasValidExtension checks if a file extension should be watched.
func (w *Watcher) hasValidExtension(ext string) bool {
	for _, valid := range w.config.Extensions {
		if strings.EqualFold(ext, valid) {
			return true
		}
	}
	return false
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
