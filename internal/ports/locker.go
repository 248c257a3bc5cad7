package ports

import "context"

// Locker guards a target file against concurrent read-modify-write cycles,
// including cycles run by other processes.
type Locker interface {
	// Acquire blocks until the lock for target is held, the wait bound
	// expires (domain.ErrLockTimeout) or ctx is done.
	Acquire(ctx context.Context, target string) (Unlocker, error)
}

// Unlocker releases a held lock. Release is safe to call more than once.
type Unlocker interface {
	Release() error
}
