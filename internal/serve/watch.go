package serve

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watch runs the fsnotify loop until the context is cancelled. Events
// are debounced so an editor's save burst becomes one rebuild.
func (s *Server) watch(ctx context.Context) error {
	if len(s.WatchPaths) == 0 || s.Rebuild == nil {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, root := range s.WatchPaths {
		if err := addRecursive(watcher, root); err != nil {
			return err
		}
	}

	debounce := s.Debounce
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New directories need their own watch.
			if event.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					_ = addRecursive(watcher, event.Name)
				}
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				timer.Reset(debounce)
			}
			s.Log.Debug("content changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.Log.Warn("watcher error", zap.Error(err))

		case <-timerC:
			timer = nil
			timerC = nil
			start := time.Now()
			if err := s.Rebuild(ctx); err != nil {
				s.Log.Error("rebuild failed", zap.Error(err))
				continue
			}
			s.Log.Info("rebuilt", zap.Duration("elapsed", time.Since(start)))
		}
	}
}

func addRecursive(watcher *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return watcher.Add(root)
	}
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
}
