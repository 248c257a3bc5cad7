package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	HostsFile   string `toml:"hosts_file"`
	LockDir     string `toml:"lock_dir"`
	LockWait    string `toml:"lock_wait"`
	LockStale   string `toml:"lock_stale"`
	AtomicWrite *bool  `toml:"atomic_write"`
	LogLevel    string `toml:"log_level"`
	LogFile     string `toml:"log_file"`
	Output      string `toml:"output"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.hostctl/config.toml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".hostctl", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("file", fc.HostsFile, &cfg.HostsFile)
	s.setString("lock-dir", fc.LockDir, &cfg.LockDir)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-file", fc.LogFile, &cfg.LogFile)
	s.setString("output", fc.Output, &cfg.Output)

	if err := s.setDuration("lock-wait", fc.LockWait, &cfg.LockWait); err != nil {
		return err
	}
	if err := s.setDuration("lock-stale", fc.LockStale, &cfg.LockStale); err != nil {
		return err
	}

	s.setBool("atomic", fc.AtomicWrite, &cfg.AtomicWrite)
	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
