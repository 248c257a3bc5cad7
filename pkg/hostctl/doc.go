// Package hostctl reads and edits static hosts files while keeping their
// comments, blank lines and column alignment intact.
//
// # Basic Usage
//
//	hosts, err := hostctl.New(hostctl.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if err := hosts.Set(ctx, "127.0.0.1", "app.local"); err != nil {
//	    log.Fatal(err)
//	}
//
//	entries, err := hosts.Get(ctx, false)
//
// # Concurrency
//
// Every mutation runs as acquire lock, read, mutate, write, release on the
// target file. The lock is an OS file lock on a file in [Config.LockDir], so
// it serializes writers in this process and in any other process using the
// same lock directory. A lock whose holder stopped refreshing it for longer
// than [Config.LockStale] is reclaimed. Reads never lock.
//
// Each blocking method has an Async form returning a [Pending] result.
//
// # Errors
//
// Failures on a target file are *[PathError] values that match one of
// [ErrNotFound], [ErrPermissionDenied], [ErrMalformedPath] or
// [ErrLockTimeout] with errors.Is.
//
// # Dependency Injection
//
// For testing, the file store and the locker can be replaced:
//
//	hosts, err := hostctl.New(cfg,
//	    hostctl.WithStore(memStore),
//	    hostctl.WithLocker(memLocker),
//	    hostctl.WithLogger(logger),
//	)
package hostctl
