package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// settleDelay groups the burst of events an editor save produces.
const settleDelay = 100 * time.Millisecond

// Watch processes the file at path once, then again after every change,
// passing each report to fn. It blocks until ctx is done.
func (e *Engine) Watch(ctx context.Context, path string, fn func(*Report, error)) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	defer watcher.Close()

	// editors often replace the file, so watch its directory
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("error adding directory to watcher: %w", err)
	}

	fn(e.ProcessFile(ctx, path))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				pending = time.After(settleDelay)
			}
		case <-pending:
			pending = nil
			e.logger.Debug("file changed", zap.String("file", path))
			fn(e.ProcessFile(ctx, path))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			e.logger.Error("watch error", zap.Error(err))
		}
	}
}
