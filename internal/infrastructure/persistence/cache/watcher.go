package cache

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"teamboard/internal/common/logger"
	"teamboard/pkg/filesystem"
)

// Invalidator drops cached state for a board
type Invalidator interface {
	Invalidate(boardID string)
}

// BoardLocator maps a changed path to the board it belongs to
type BoardLocator interface {
	BoardsRoot() string
	BoardIDFromPath(path string) (string, bool)
}

// Watcher invalidates cached boards when their files change on disk, so
// hand edits to the markdown files are picked up by the daemon.
type Watcher struct {
	watcher *fsnotify.Watcher
	locator BoardLocator
	target  Invalidator
	log     *logger.Logger

	stopCh chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

// NewWatcher creates a watcher over every directory below the boards root
func NewWatcher(locator BoardLocator, target Invalidator, log *logger.Logger) (*Watcher, error) {
	root := locator.BoardsRoot()
	if err := filesystem.EnsureDir(root, 0755); err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		watcher: fw,
		locator: locator,
		target:  target,
		log:     log.WithFields(zap.String("component", "board-watcher")),
		stopCh:  make(chan struct{}),
	}
	if err := w.addRecursive(root); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

// Start runs the event loop until ctx is done or Stop is called
func (w *Watcher) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.loop(ctx)
}

// Stop ends the event loop and releases the watcher
func (w *Watcher) Stop() error {
	var err error
	w.once.Do(func() {
		close(w.stopCh)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Debug("filesystem watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	// Permission changes leave content alone
	if event.Op == fsnotify.Chmod {
		return
	}

	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				w.log.Debug("failed to watch new directory", zap.String("path", event.Name), zap.Error(err))
			}
		}
	}

	boardID, ok := w.locator.BoardIDFromPath(event.Name)
	if !ok {
		return
	}
	w.target.Invalidate(boardID)
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			w.log.Debug("failed to watch directory", zap.String("path", path), zap.Error(err))
		}
		return nil
	})
}
