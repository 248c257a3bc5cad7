package cliconfig

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bft-labs/hostctl/internal/domain"
	"github.com/bft-labs/hostctl/pkg/hostctl"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.HostsFile != hostctl.DefaultHostsFile() {
		t.Errorf("HostsFile = %v, want %v", cfg.HostsFile, hostctl.DefaultHostsFile())
	}
	if cfg.LockWait != 15*time.Second {
		t.Errorf("LockWait = %v, want 15s", cfg.LockWait)
	}
	if cfg.LockStale != 10*time.Second {
		t.Errorf("LockStale = %v, want 10s", cfg.LockStale)
	}
	if cfg.Output != OutputText {
		t.Errorf("Output = %v, want text", cfg.Output)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing hosts file", func(c *Config) { c.HostsFile = "" }, "file"},
		{"negative lock wait", func(c *Config) { c.LockWait = -time.Second }, "lock-wait"},
		{"zero lock stale", func(c *Config) { c.LockStale = 0 }, "lock-stale"},
		{"unknown output", func(c *Config) { c.Output = "xml" }, "output"},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }, "log-level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, domain.ErrInvalidConfig) {
				t.Fatalf("Validate() error = %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.wantField+":") {
				t.Errorf("error %q does not name field %s", err, tt.wantField)
			}
		})
	}
}

func TestConfig_HostctlConfig(t *testing.T) {
	cfg := Config{
		HostsFile:   "/tmp/hosts",
		LockDir:     "/tmp/locks",
		LockWait:    time.Second,
		LockStale:   2 * time.Second,
		AtomicWrite: true,
	}
	got := cfg.HostctlConfig()
	want := hostctl.Config{
		HostsFile:   "/tmp/hosts",
		LockDir:     "/tmp/locks",
		LockWait:    time.Second,
		LockStale:   2 * time.Second,
		AtomicWrite: true,
	}
	if got != want {
		t.Errorf("HostctlConfig() = %+v, want %+v", got, want)
	}
}

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		address string
		wantErr bool
	}{
		{"127.0.0.1", false},
		{"::1", false},
		{"fe80::1", false},
		{"", true},
		{"localhost", true},
		{"256.0.0.1", true},
		{"1.2.3", true},
	}
	for _, tt := range tests {
		if err := ValidateAddress(tt.address); (err != nil) != tt.wantErr {
			t.Errorf("ValidateAddress(%q) error = %v, wantErr %v", tt.address, err, tt.wantErr)
		}
	}
}
