package hostctl

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/bft-labs/hostctl/internal/adapters/lock"
	"github.com/bft-labs/hostctl/internal/domain"
)

// Config holds the configuration of a Hosts instance.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config struct {
	// HostsFile is the target file of Get, Set and Remove.
	// Default: /etc/hosts, or %SystemRoot%\System32\drivers\etc\hosts on Windows
	HostsFile string

	// LockDir holds the cross-process lock files.
	// Default: os.TempDir()
	LockDir string

	// LockWait bounds how long a mutation waits for the lock.
	// Default: 15 seconds
	LockWait time.Duration

	// LockStale is the age after which a held lock is presumed abandoned.
	// Default: 10 seconds
	LockStale time.Duration

	// AtomicWrite replaces the target through a temporary file and rename
	// instead of rewriting it in place. Leave it off for bind-mounted files
	// such as /etc/hosts inside containers.
	AtomicWrite bool
}

// DefaultHostsFile returns the platform's static hosts file.
func DefaultHostsFile() string {
	if runtime.GOOS == "windows" {
		root := os.Getenv("SystemRoot")
		if root == "" {
			root = `C:\Windows`
		}
		return filepath.Join(root, "System32", "drivers", "etc", "hosts")
	}
	return "/etc/hosts"
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	lc := lock.DefaultConfig()
	return Config{
		HostsFile: DefaultHostsFile(),
		LockDir:   lc.Dir,
		LockWait:  lc.Wait,
		LockStale: lc.Stale,
	}
}

// SetDefaults fills zero fields with default values.
func (c *Config) SetDefaults() {
	def := DefaultConfig()
	if c.HostsFile == "" {
		c.HostsFile = def.HostsFile
	}
	if c.LockDir == "" {
		c.LockDir = def.LockDir
	}
	if c.LockWait == 0 {
		c.LockWait = def.LockWait
	}
	if c.LockStale == 0 {
		c.LockStale = def.LockStale
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.HostsFile == "" {
		return fmt.Errorf("%w: hosts file is required", domain.ErrInvalidConfig)
	}
	if c.LockWait < 0 {
		return fmt.Errorf("%w: lock wait must not be negative", domain.ErrInvalidConfig)
	}
	if c.LockStale <= 0 {
		return fmt.Errorf("%w: lock stale threshold must be positive", domain.ErrInvalidConfig)
	}
	return nil
}
