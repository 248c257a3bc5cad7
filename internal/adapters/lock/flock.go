package lock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/minio/highwayhash"
	pkgerr "github.com/pkg/errors"

	"github.com/bft-labs/hostctl/internal/domain"
	"github.com/bft-labs/hostctl/internal/ports"
	"github.com/bft-labs/hostctl/pkg/log"
)

// hashKey is the HighwayHash key for lock file names. Changing it changes
// every lock file name, so processes of different versions would stop excluding
// each other.
var hashKey = []byte("hostctl:lock-name:0123456789abcd")

// Config holds lock timing.
type Config struct {
	// Dir holds the lock files. Default: os.TempDir()
	Dir string

	// Wait bounds how long Acquire waits for a held lock.
	// Default: 15 seconds
	Wait time.Duration

	// Stale is the age after which a held lock is presumed abandoned.
	// Holders refresh the lock file every Stale/2.
	// Default: 10 seconds
	Stale time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Dir:   os.TempDir(),
		Wait:  15 * time.Second,
		Stale: 10 * time.Second,
	}
}

// FileLocker implements ports.Locker with OS file locks (flock(2) /
// LockFileEx) on one lock file per target path.
type FileLocker struct {
	cfg    Config
	logger ports.Logger
}

// NewFileLocker creates a locker. Zero config fields take their defaults.
func NewFileLocker(cfg Config, logger ports.Logger) *FileLocker {
	def := DefaultConfig()
	if cfg.Dir == "" {
		cfg.Dir = def.Dir
	}
	if cfg.Wait <= 0 {
		cfg.Wait = def.Wait
	}
	if cfg.Stale <= 0 {
		cfg.Stale = def.Stale
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &FileLocker{cfg: cfg, logger: logger}
}

// Path returns the lock file used for target. The name is derived from a
// hash of the absolute target path, so every process locking the same file
// agrees on it and different targets never contend.
func (l *FileLocker) Path(target string) (string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", pkgerr.WithStack(&domain.PathError{Op: "lock", Path: target, Kind: domain.ErrMalformedPath, Err: err})
	}
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		return "", err
	}
	if _, err := h.Write([]byte(filepath.Clean(abs))); err != nil {
		return "", err
	}
	return filepath.Join(l.cfg.Dir, fmt.Sprintf("hostctl-%016x.lock", h.Sum64())), nil
}

// Acquire blocks until the lock for target is held. A lock file that has not
// been refreshed for longer than the staleness threshold is removed and the
// lock is taken on a fresh file. Returns an error wrapping
// domain.ErrLockTimeout when the wait bound expires.
func (l *FileLocker) Acquire(ctx context.Context, target string) (ports.Unlocker, error) {
	path, err := l.Path(target)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	deadline := start.Add(l.cfg.Wait)
	bo := newBackoff(DefaultBackoffInitial, DefaultBackoffMax)
	fl := flock.New(path)
	guard := flock.New(path + ".guard")

	for attempt := 1; ; attempt++ {
		h, err := l.attempt(fl, guard)
		if err != nil {
			return nil, err
		}
		if h != nil {
			go h.keepalive()
			l.logger.Debug("lock acquired",
				log.String("target", target),
				log.String("lock", path),
				log.Int("attempts", attempt),
				log.Duration("waited", time.Since(start)),
			)
			return h, nil
		}

		if !time.Now().Before(deadline) {
			l.logger.Warn("lock wait exceeded",
				log.String("target", target),
				log.String("lock", path),
				log.Duration("wait", l.cfg.Wait),
			)
			return nil, pkgerr.WithStack(&domain.PathError{Op: "lock", Path: target, Kind: domain.ErrLockTimeout})
		}
		if err := bo.Wait(ctx, deadline); err != nil {
			return nil, err
		}
	}
}

// attempt tries once to take the lock, reclaiming it if it is stale. It runs
// under the guard lock, so taking and refreshing a lock file never
// interleaves with another process deciding that file is stale and removing
// it. Returns a nil handle if the lock is held by someone else.
func (l *FileLocker) attempt(fl, guard *flock.Flock) (*Handle, error) {
	ok, err := guard.TryLock()
	if err != nil {
		return nil, pkgerr.Wrapf(err, "lock %s", guard.Path())
	}
	if !ok {
		return nil, nil
	}
	defer func() {
		if err := guard.Unlock(); err != nil {
			l.logger.Warn("guard unlock failed", log.String("lock", guard.Path()), log.Err(err))
		}
	}()

	h, err := l.take(fl)
	if h != nil || err != nil {
		return h, err
	}
	if !l.reclaimStale(fl.Path()) {
		return nil, nil
	}
	return l.take(fl)
}

// take locks fl and stamps it fresh. Returns a nil handle if fl is held.
func (l *FileLocker) take(fl *flock.Flock) (*Handle, error) {
	ok, err := fl.TryLock()
	if err != nil {
		return nil, pkgerr.Wrapf(err, "lock %s", fl.Path())
	}
	if !ok {
		return nil, nil
	}
	h := newHandle(fl, l.cfg.Stale, l.logger)
	if err := h.touch(); err != nil {
		_ = fl.Unlock()
		return nil, pkgerr.Wrapf(err, "refresh lock %s", fl.Path())
	}
	return h, nil
}

// reclaimStale removes the lock file if its holder stopped refreshing it.
// The caller holds the guard lock. The next TryLock then creates and locks a
// new file; an abandoned holder keeps its lock on the unlinked file only.
func (l *FileLocker) reclaimStale(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	age := time.Since(fi.ModTime())
	if age < l.cfg.Stale {
		return false
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		l.logger.Warn("cannot reclaim stale lock", log.String("lock", path), log.Err(err))
		return false
	}
	l.logger.Warn("reclaimed stale lock",
		log.String("lock", path),
		log.Duration("age", age),
	)
	return true
}

// Handle is a held lock.
type Handle struct {
	fl       *flock.Flock
	interval time.Duration
	logger   ports.Logger

	once sync.Once
	stop chan struct{}
	done chan struct{}
	err  error
}

func newHandle(fl *flock.Flock, stale time.Duration, logger ports.Logger) *Handle {
	return &Handle{
		fl:       fl,
		interval: stale / 2,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Path returns the lock file path.
func (h *Handle) Path() string {
	return h.fl.Path()
}

// Release stops refreshing the lock file and unlocks it.
func (h *Handle) Release() error {
	h.once.Do(func() {
		close(h.stop)
		<-h.done
		h.err = h.fl.Unlock()
	})
	return h.err
}

func (h *Handle) touch() error {
	now := time.Now()
	return os.Chtimes(h.fl.Path(), now, now)
}

// keepalive refreshes the lock file's modification time so a live holder
// is never taken for stale.
func (h *Handle) keepalive() {
	defer close(h.done)
	if h.interval <= 0 {
		<-h.stop
		return
	}

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
			if err := h.touch(); err != nil {
				h.logger.Warn("lock refresh failed", log.String("lock", h.fl.Path()), log.Err(err))
			}
		}
	}
}
