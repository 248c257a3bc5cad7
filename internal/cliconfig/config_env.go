package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (HOSTCTL_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("file", os.Getenv("HOSTCTL_HOSTS_FILE"), &cfg.HostsFile)
	s.setString("lock-dir", os.Getenv("HOSTCTL_LOCK_DIR"), &cfg.LockDir)
	s.setString("log-level", os.Getenv("HOSTCTL_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-file", os.Getenv("HOSTCTL_LOG_FILE"), &cfg.LogFile)
	s.setString("output", os.Getenv("HOSTCTL_OUTPUT"), &cfg.Output)

	if err := s.setDuration("lock-wait", os.Getenv("HOSTCTL_LOCK_WAIT"), &cfg.LockWait); err != nil {
		return err
	}
	if err := s.setDuration("lock-stale", os.Getenv("HOSTCTL_LOCK_STALE"), &cfg.LockStale); err != nil {
		return err
	}

	return s.setBoolFromString("atomic", os.Getenv("HOSTCTL_ATOMIC_WRITE"), &cfg.AtomicWrite)
}
