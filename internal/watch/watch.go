// Package watch re-runs a build when stylesheet sources change.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/yacobolo/esincss/internal/discover"
	"github.com/yacobolo/esincss/internal/logging"
)

// Handler is called with the de-duplicated paths changed during one
// debounce window. It is always called from a single goroutine.
type Handler func(paths []string)

// Options configures a Watcher.
type Options struct {
	// Debounce is how long to wait for more changes before calling the handler.
	// Default: 100ms
	Debounce time.Duration
	// IgnoreDirs are directory names that are never watched.
	// Default: .git, node_modules
	IgnoreDirs []string
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Debounce:   100 * time.Millisecond,
		IgnoreDirs: []string{".git", "node_modules"},
	}
}

// Watcher watches the directories that input glob patterns can match and
// reports changes to files matching those patterns.
type Watcher struct {
	patterns []string
	opts     Options
	fsw      *fsnotify.Watcher

	changes  chan string
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a watcher for patterns. Each pattern's static prefix (e.g.
// "src" for "src/**/*.css.tmpl") is watched recursively.
func New(patterns []string, opts Options) (*Watcher, error) {
	defaults := DefaultOptions()
	if opts.Debounce <= 0 {
		opts.Debounce = defaults.Debounce
	}
	if opts.IgnoreDirs == nil {
		opts.IgnoreDirs = defaults.IgnoreDirs
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		patterns: patterns,
		opts:     opts,
		fsw:      fsw,
		changes:  make(chan string, 1000),
		done:     make(chan struct{}),
	}

	for _, root := range Roots(patterns) {
		if err := w.addRecursive(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Roots returns the de-duplicated static directory prefixes of patterns.
func Roots(patterns []string) []string {
	var roots []string
	seen := make(map[string]bool)
	for _, p := range patterns {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(p))
		if !doublestar.ValidatePattern(p) || base == "" {
			base = "."
		}
		if info, err := os.Stat(base); err == nil && !info.IsDir() {
			base = filepath.Dir(base)
		}
		if !seen[base] {
			seen[base] = true
			roots = append(roots, base)
		}
	}
	return roots
}

// Run delivers changes to handler until ctx is canceled or Stop is called.
func (w *Watcher) Run(ctx context.Context, handler Handler) error {
	go w.processEvents(ctx)
	w.debounceLoop(ctx, handler)
	return ctx.Err()
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsw.Close()
	})
}

// Matches reports whether path matches any of the watched patterns.
func (w *Watcher) Matches(path string) bool {
	path = filepath.ToSlash(filepath.Clean(path))
	for _, p := range w.patterns {
		if ok, _ := doublestar.Match(filepath.ToSlash(filepath.Clean(p)), path); ok {
			return true
		}
	}
	return false
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// unreadable entries are skipped
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.ignoredDir(path) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

func (w *Watcher) ignoredDir(path string) bool {
	base := filepath.Base(path)
	for _, name := range w.opts.IgnoreDirs {
		if base == name {
			return true
		}
	}
	return false
}

func (w *Watcher) processEvents(ctx context.Context) {
	logger := logging.GetLogger("watch")
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			// New directories are watched as they appear
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !w.ignoredDir(event.Name) {
					if err := w.addRecursive(event.Name); err != nil {
						logger.Warn().Err(err).Str("dir", event.Name).Msg("Failed to watch directory")
					}
					continue
				}
			}

			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			if discover.IsEditorArtifact(event.Name) || !w.Matches(event.Name) {
				continue
			}

			logger.Trace().Str("path", event.Name).Str("op", event.Op.String()).Msg("Change detected")
			select {
			case w.changes <- event.Name:
			default:
				// buffer full; the pending batch already triggers a rebuild
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn().Err(err).Msg("Watcher error")
		}
	}
}

func (w *Watcher) debounceLoop(ctx context.Context, handler Handler) {
	var batch []string
	seen := make(map[string]bool)
	var timer *time.Timer
	var timerC <-chan time.Time

	flush := func() {
		if len(batch) > 0 && handler != nil {
			handler(batch)
		}
		batch = nil
		seen = make(map[string]bool)
		if timer != nil {
			timer.Stop()
			timer = nil
			timerC = nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case path := <-w.changes:
			if !seen[path] {
				seen[path] = true
				batch = append(batch, path)
			}
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.opts.Debounce)
			}
		case <-timerC:
			flush()
		}
	}
}
