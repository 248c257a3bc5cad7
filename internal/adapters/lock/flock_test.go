package lock

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"github.com/bft-labs/hostctl/internal/domain"
)

func newTestLocker(t *testing.T, wait, stale time.Duration) *FileLocker {
	t.Helper()
	return NewFileLocker(Config{Dir: t.TempDir(), Wait: wait, Stale: stale}, nil)
}

// holdRaw takes the lock for target the way a crashed or hung process would
// leave it: locked, and never refreshed.
func holdRaw(t *testing.T, l *FileLocker, target string) *flock.Flock {
	t.Helper()
	path, err := l.Path(target)
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil || !ok {
		t.Fatalf("TryLock = %v, %v", ok, err)
	}
	t.Cleanup(func() { _ = fl.Unlock() })
	return fl
}

func TestFileLocker_Path(t *testing.T) {
	l := newTestLocker(t, time.Second, time.Second)
	dir := t.TempDir()

	a1, err := l.Path(filepath.Join(dir, "hosts"))
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	a2, _ := l.Path(filepath.Join(dir, ".", "sub", "..", "hosts"))
	b, _ := l.Path(filepath.Join(dir, "other"))

	if a1 != a2 {
		t.Errorf("equivalent paths produced different locks: %s vs %s", a1, a2)
	}
	if a1 == b {
		t.Errorf("different targets share lock %s", a1)
	}
	if filepath.Dir(a1) != l.cfg.Dir {
		t.Errorf("lock %s not in %s", a1, l.cfg.Dir)
	}
}

func TestFileLocker_AcquireRelease(t *testing.T) {
	l := newTestLocker(t, time.Second, time.Minute)
	target := filepath.Join(t.TempDir(), "hosts")

	h, err := l.Acquire(context.Background(), target)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := h.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := h.Release(); err != nil {
		t.Fatalf("second Release: %v", err)
	}

	h2, err := l.Acquire(context.Background(), target)
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	_ = h2.Release()
}

func TestFileLocker_Timeout(t *testing.T) {
	l := newTestLocker(t, 150*time.Millisecond, time.Hour)
	target := filepath.Join(t.TempDir(), "hosts")
	holdRaw(t, l, target)

	start := time.Now()
	_, err := l.Acquire(context.Background(), target)
	if !errors.Is(err, domain.ErrLockTimeout) {
		t.Fatalf("Acquire error = %v, want ErrLockTimeout", err)
	}
	if waited := time.Since(start); waited < 150*time.Millisecond {
		t.Errorf("gave up after %v, before the wait bound", waited)
	}
}

func TestFileLocker_ReclaimsStaleLock(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("a locked file cannot be removed on windows")
	}
	l := newTestLocker(t, 2*time.Second, 100*time.Millisecond)
	target := filepath.Join(t.TempDir(), "hosts")
	fl := holdRaw(t, l, target)

	old := time.Now().Add(-time.Minute)
	if err := os.Chtimes(fl.Path(), old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	h, err := l.Acquire(context.Background(), target)
	if err != nil {
		t.Fatalf("Acquire over stale lock: %v", err)
	}
	_ = h.Release()
}

func TestFileLocker_KeepaliveProtectsLiveHolder(t *testing.T) {
	l := newTestLocker(t, 800*time.Millisecond, 300*time.Millisecond)
	target := filepath.Join(t.TempDir(), "hosts")

	h, err := l.Acquire(context.Background(), target)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer h.Release()

	_, err = l.Acquire(context.Background(), target)
	if !errors.Is(err, domain.ErrLockTimeout) {
		t.Fatalf("second Acquire error = %v, want ErrLockTimeout", err)
	}
}

func TestFileLocker_DifferentTargetsDoNotContend(t *testing.T) {
	l := newTestLocker(t, 100*time.Millisecond, time.Hour)
	dir := t.TempDir()
	holdRaw(t, l, filepath.Join(dir, "a"))

	h, err := l.Acquire(context.Background(), filepath.Join(dir, "b"))
	if err != nil {
		t.Fatalf("Acquire on other target: %v", err)
	}
	_ = h.Release()
}

func TestFileLocker_ContextCanceled(t *testing.T) {
	l := newTestLocker(t, time.Minute, time.Hour)
	target := filepath.Join(t.TempDir(), "hosts")
	holdRaw(t, l, target)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := l.Acquire(ctx, target)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Acquire error = %v, want context.DeadlineExceeded", err)
	}
}

func TestFileLocker_SerializesHolders(t *testing.T) {
	l := newTestLocker(t, 5*time.Second, time.Minute)
	target := filepath.Join(t.TempDir(), "hosts")

	var (
		mu     sync.Mutex
		inside int
		maxIn  int
		wg     sync.WaitGroup
	)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := l.Acquire(context.Background(), target)
			if err != nil {
				t.Errorf("Acquire: %v", err)
				return
			}
			mu.Lock()
			inside++
			maxIn = max(maxIn, inside)
			mu.Unlock()

			time.Sleep(20 * time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			_ = h.Release()
		}()
	}
	wg.Wait()

	if maxIn != 1 {
		t.Errorf("%d holders inside the lock at once, want 1", maxIn)
	}
}

func TestFileLocker_StaleLockReclaimedOnceByConcurrentWaiters(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("a locked file cannot be removed on windows")
	}
	l := newTestLocker(t, 5*time.Second, 200*time.Millisecond)
	target := filepath.Join(t.TempDir(), "hosts")
	fl := holdRaw(t, l, target)

	old := time.Now().Add(-time.Minute)
	if err := os.Chtimes(fl.Path(), old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	var (
		mu     sync.Mutex
		inside int
		maxIn  int
		wg     sync.WaitGroup
	)
	start := make(chan struct{})
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			h, err := l.Acquire(context.Background(), target)
			if err != nil {
				t.Errorf("Acquire: %v", err)
				return
			}
			mu.Lock()
			inside++
			maxIn = max(maxIn, inside)
			mu.Unlock()

			time.Sleep(20 * time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			_ = h.Release()
		}()
	}
	close(start)
	wg.Wait()

	if maxIn != 1 {
		t.Errorf("%d holders inside the lock at once after reclaiming, want 1", maxIn)
	}
}

func TestBackoff(t *testing.T) {
	b := newBackoff(10*time.Millisecond, 40*time.Millisecond)
	deadline := time.Now().Add(time.Second)

	for i := 0; i < 4; i++ {
		if err := b.Wait(context.Background(), deadline); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
	if b.current != 40*time.Millisecond {
		t.Errorf("backoff = %v, want cap of 40ms", b.current)
	}
}

func TestBackoff_StopsAtDeadline(t *testing.T) {
	b := newBackoff(time.Second, time.Second)

	start := time.Now()
	if err := b.Wait(context.Background(), start.Add(20*time.Millisecond)); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if waited := time.Since(start); waited > 500*time.Millisecond {
		t.Errorf("Wait slept %v past a 20ms deadline", waited)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := b.Wait(ctx, time.Now().Add(time.Minute)); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait error = %v, want context.Canceled", err)
	}
}
