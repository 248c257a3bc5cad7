package hostctl

import (
	"github.com/bft-labs/hostctl/internal/ports"
	"github.com/bft-labs/hostctl/pkg/log"
)

// Logger is the interface for structured logging.
type Logger = log.Logger

// DocumentStore reads and writes parsed hosts files.
// The default store works on the local file system.
type DocumentStore = ports.DocumentStore

// Locker serializes mutations of one target file across processes.
// The default locker uses OS file locks.
type Locker = ports.Locker

// Unlocker releases a lock taken by a Locker.
type Unlocker = ports.Unlocker

// Option configures optional behavior of Hosts.
type Option func(*options)

type options struct {
	logger ports.Logger
	store  ports.DocumentStore
	locker ports.Locker
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStore replaces the file system store, for example with an in-memory
// fake in tests.
func WithStore(store DocumentStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithLocker replaces the cross-process file locker.
func WithLocker(locker Locker) Option {
	return func(o *options) {
		o.locker = locker
	}
}
