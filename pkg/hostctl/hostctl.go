package hostctl

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/bft-labs/hostctl/internal/adapters/fs"
	"github.com/bft-labs/hostctl/internal/adapters/lock"
	"github.com/bft-labs/hostctl/internal/ports"
	"github.com/bft-labs/hostctl/pkg/hostsfile"
	"github.com/bft-labs/hostctl/pkg/log"
)

// Line is one line of a hosts file: an entry or a passthrough line.
type Line = hostsfile.Line

// Document is a parsed hosts file.
type Document = hostsfile.Document

// Mutation edits a document in place. Returning ErrAbort ends the update
// without writing; any other error is returned to the caller.
type Mutation func(doc *Document) error

// Hosts reads and edits hosts files. It holds no per-file state, so one
// instance can be shared by any number of goroutines.
type Hosts struct {
	config Config
	store  ports.DocumentStore
	locker ports.Locker
	logger ports.Logger
}

// New creates a Hosts instance with the given configuration.
// Returns an error if configuration is invalid.
func New(cfg Config, opts ...Option) (*Hosts, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateModuleVersions(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.NewNoopLogger()
	}
	if o.store == nil {
		o.store = fs.NewHostsFileStore(cfg.AtomicWrite, o.logger)
	}
	if o.locker == nil {
		o.locker = lock.NewFileLocker(lock.Config{
			Dir:   cfg.LockDir,
			Wait:  cfg.LockWait,
			Stale: cfg.LockStale,
		}, o.logger)
	}

	return &Hosts{
		config: cfg,
		store:  o.store,
		locker: o.locker,
		logger: o.logger,
	}, nil
}

// HostsFile returns the default target of Get, Set and Remove.
func (h *Hosts) HostsFile() string {
	return h.config.HostsFile
}

// Get returns the lines of the default hosts file. See GetFile.
func (h *Hosts) Get(ctx context.Context, preserveFormatting bool) ([]Line, error) {
	return h.GetFile(ctx, h.config.HostsFile, preserveFormatting)
}

// GetFile returns the entries of the hosts file at path in file order.
// With preserveFormatting, comment and blank lines are included as
// passthrough lines. Reads do not take the lock.
func (h *Hosts) GetFile(ctx context.Context, path string, preserveFormatting bool) ([]Line, error) {
	doc, err := h.store.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	return doc.Query(preserveFormatting), nil
}

// Lookup returns the entries of the default hosts file that list host.
func (h *Hosts) Lookup(ctx context.Context, host string) ([]Line, error) {
	doc, err := h.store.Read(ctx, h.config.HostsFile)
	if err != nil {
		return nil, err
	}
	return doc.Lookup(host), nil
}

// Set maps hostnames to address in the default hosts file. Every entry with
// exactly these hostnames and an address of the same family is updated;
// when there is none, a new entry is appended.
func (h *Hosts) Set(ctx context.Context, address, hostnames string) error {
	if err := hostsfile.ValidateEntry(address, hostnames); err != nil {
		return err
	}
	return h.UpdateFile(ctx, h.config.HostsFile, SetEntry(address, hostnames))
}

// Remove deletes every entry of the default hosts file whose address and
// hostnames both equal the arguments. Removing an absent entry succeeds.
func (h *Hosts) Remove(ctx context.Context, address, hostnames string) error {
	return h.UpdateFile(ctx, h.config.HostsFile, RemoveEntry(address, hostnames))
}

// RemoveHost deletes every entry of the default hosts file with exactly the
// given hostnames, whatever its address.
func (h *Hosts) RemoveHost(ctx context.Context, hostnames string) error {
	return h.UpdateFile(ctx, h.config.HostsFile, RemoveHostEntry(hostnames))
}

// UpdateFile runs m on the hosts file at path under the cross-process lock:
// acquire, read, mutate, write, release. The write is skipped when m leaves
// the document unchanged. The lock is released on every path.
func (h *Hosts) UpdateFile(ctx context.Context, path string, m Mutation) (err error) {
	unlock, err := h.locker.Acquire(ctx, path)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := unlock.Release(); rerr != nil {
			h.logger.Warn("lock release failed", log.String("path", path), log.Err(rerr))
			if err == nil {
				err = fmt.Errorf("release lock for %s: %w", path, rerr)
			}
		}
	}()

	doc, err := h.store.Read(ctx, path)
	if err != nil {
		return err
	}

	if err := m(doc); err != nil {
		if errors.Is(err, ErrAbort) {
			return nil
		}
		return err
	}
	if !doc.Changed() {
		h.logger.Debug("hosts file unchanged", log.String("path", path))
		return nil
	}

	if err := h.store.Write(ctx, path, doc); err != nil {
		return err
	}
	h.logger.Info("hosts file updated", log.String("path", path))
	return nil
}

// Apply runs m on every file in paths concurrently, each under its own lock.
// Duplicate paths are updated once. It returns the first error.
func (h *Hosts) Apply(ctx context.Context, paths []string, m Mutation) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, path := range lo.Uniq(paths) {
		path := path
		g.Go(func() error {
			return h.UpdateFile(gctx, path, m)
		})
	}
	return g.Wait()
}

// SetEntry returns a Mutation that upserts address for hostnames. The
// mutation fails with ErrInvalidEntry for input that would not be read back
// as the same entry.
func SetEntry(address, hostnames string) Mutation {
	return func(doc *Document) error {
		_, err := doc.Upsert(address, hostnames)
		return err
	}
}

// RemoveEntry returns a Mutation that deletes exact (address, hostnames) entries.
func RemoveEntry(address, hostnames string) Mutation {
	return func(doc *Document) error {
		doc.Delete(address, hostnames)
		return nil
	}
}

// RemoveHostEntry returns a Mutation that deletes every entry with exactly
// the given hostnames.
func RemoveHostEntry(hostnames string) Mutation {
	return func(doc *Document) error {
		doc.DeleteHost(hostnames)
		return nil
	}
}

// validateModuleVersions checks that the packages this one is built from are
// recent enough.
func validateModuleVersions() error {
	modules := map[string]struct {
		version    string
		minVersion string
	}{
		"hostsfile": {hostsfile.Version, hostsfile.MinCompatibleVersion},
		"log":       {log.Version, log.MinCompatibleVersion},
	}

	for name, m := range modules {
		if !isVersionCompatible(m.version, m.minVersion) {
			return fmt.Errorf("module %s version %s is below minimum compatible version %s",
				name, m.version, m.minVersion)
		}
	}
	return nil
}

// isVersionCompatible reports whether version >= minVersion.
// Versions are "major.minor.patch".
func isVersionCompatible(version, minVersion string) bool {
	var vMajor, vMinor, vPatch int
	var mMajor, mMinor, mPatch int

	_, _ = fmt.Sscanf(version, "%d.%d.%d", &vMajor, &vMinor, &vPatch)
	_, _ = fmt.Sscanf(minVersion, "%d.%d.%d", &mMajor, &mMinor, &mPatch)

	if vMajor != mMajor {
		return vMajor > mMajor
	}
	if vMinor != mMinor {
		return vMinor > mMinor
	}
	return vPatch >= mPatch
}
