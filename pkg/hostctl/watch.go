package hostctl

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	pkgerr "github.com/pkg/errors"

	"github.com/bft-labs/hostctl/pkg/log"
)

// WatchDebounce is how long Watch waits for a burst of file events to settle
// before reading the file again.
const WatchDebounce = 100 * time.Millisecond

// WatchFunc receives a snapshot of a watched file, or the error that
// prevented reading it.
type WatchFunc func(lines []Line, err error)

// Watch calls fn with the lines of the hosts file at path, then again every
// time the file changes, until ctx is done. Snapshots are read the same way
// as GetFile and are delivered from the calling goroutine.
//
// The parent directory is watched so that replacements by rename are seen
// as well as in-place writes.
func (h *Hosts) Watch(ctx context.Context, path string, preserveFormatting bool, fn WatchFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return pkgerr.Wrap(err, "create watcher")
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return pkgerr.Wrapf(err, "watch %s", path)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return pkgerr.Wrapf(err, "watch %s", filepath.Dir(abs))
	}

	fn(h.GetFile(ctx, path, preserveFormatting))

	fire := make(chan struct{}, 1)
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(WatchDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			h.logger.Debug("hosts file changed", log.String("path", path))
			fn(h.GetFile(ctx, path, preserveFormatting))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			h.logger.Warn("hosts file watcher error", log.String("path", path), log.Err(err))
		}
	}
}
