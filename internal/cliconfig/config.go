package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bft-labs/hostctl/pkg/hostctl"
)

// Output formats accepted by --output.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config holds CLI configuration for hostctl.
type Config struct {
	HostsFile   string        `flag:"file" validate:"required"`
	LockDir     string        `flag:"lock-dir"`
	LockWait    time.Duration `flag:"lock-wait" validate:"gte=0"`
	LockStale   time.Duration `flag:"lock-stale" validate:"gt=0"`
	AtomicWrite bool          `flag:"atomic"`

	LogLevel string `flag:"log-level" validate:"oneof=debug info warn error disabled"`
	LogFile  string `flag:"log-file"`
	Output   string `flag:"output" validate:"oneof=text json yaml"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	lib := hostctl.DefaultConfig()
	return Config{
		HostsFile: lib.HostsFile,
		LockDir:   lib.LockDir,
		LockWait:  lib.LockWait,
		LockStale: lib.LockStale,
		LogLevel:  "warn",
		Output:    OutputText,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return validationError(err)
	}
	return nil
}

// HostctlConfig converts c to the library configuration.
func (c *Config) HostctlConfig() hostctl.Config {
	return hostctl.Config{
		HostsFile:   c.HostsFile,
		LockDir:     c.LockDir,
		LockWait:    c.LockWait,
		LockStale:   c.LockStale,
		AtomicWrite: c.AtomicWrite,
	}
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = b
	return nil
}
