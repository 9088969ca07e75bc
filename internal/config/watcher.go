package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/bethropolis/stage/internal/logger"
	"github.com/bethropolis/stage/internal/utils"
	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file when it changes on disk and hands the
// new configuration to its callback.
type Watcher struct {
	path     string
	flags    *Flags
	onChange func(*Config)
	debounce time.Duration
	reloads  utils.Debouncer

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewWatcher creates a watcher for path. Flag overrides are re-applied on
// every reload so the command line keeps precedence.
func NewWatcher(path string, flags *Flags, onChange func(*Config)) *Watcher {
	return &Watcher{
		path:     path,
		flags:    flags,
		onChange: onChange,
		debounce: ReloadDebounce,
	}
}

// Start begins watching. The directory is watched rather than the file so
// editors that replace the file on save are handled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher != nil {
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return fmt.Errorf("watch directory: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w.watcher = fw
	w.cancel = cancel
	w.done = make(chan struct{})
	go w.watchLoop(ctx, fw, w.done)

	logger.DebugTagf("config", "Watching %s for changes", w.path)
	return nil
}

// Stop ends watching and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	fw, cancel, done := w.watcher, w.cancel, w.done
	w.watcher, w.cancel, w.done = nil, nil, nil
	w.mu.Unlock()

	if fw == nil {
		return
	}
	cancel()
	fw.Close()
	<-done
}

func (w *Watcher) watchLoop(ctx context.Context, fw *fsnotify.Watcher, done chan struct{}) {
	defer close(done)
	defer w.reloads.Stop()

	target := filepath.Clean(w.path)
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.reloads.Debounce(w.debounce, w.reload)

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.WarnTagf("config", "Config watcher error: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path, w.flags)
	if err != nil {
		logger.WarnTagf("config", "Config reload failed, keeping current settings: %v", err)
		return
	}
	logger.InfoTagf("config", "Reloaded configuration from %s", w.path)
	if w.onChange != nil {
		w.onChange(cfg)
	}
}
