// Package hostctl is a shortcut to the hosts file editor in pkg/hostctl.
//
// Example usage:
//
//	cfg := hostctl.DefaultConfig()
//	cfg.HostsFile = "/etc/hosts"
//	hosts, err := hostctl.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := hosts.Set(context.Background(), "127.0.0.1", "app.local"); err != nil {
//	    log.Fatal(err)
//	}
package hostctl

import (
	"github.com/bft-labs/hostctl/pkg/hostctl"
)

// Config holds the configuration for a Hosts instance.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = hostctl.Config

// Hosts reads and edits hosts files.
type Hosts = hostctl.Hosts

// Line is one line of a hosts file.
type Line = hostctl.Line

// Option configures optional behavior of Hosts.
type Option = hostctl.Option

// New creates a Hosts instance. See hostctl.New in pkg/hostctl.
func New(cfg Config, opts ...Option) (*Hosts, error) {
	return hostctl.New(cfg, opts...)
}

// DefaultConfig returns a Config targeting the platform hosts file.
func DefaultConfig() Config {
	return hostctl.DefaultConfig()
}
