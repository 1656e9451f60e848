// Package config resolves the on-disk layout for browsershield: the config
// directory, the trust configuration file, and the audit log.
package config

import (
	"os"
	"path/filepath"
)

const (
	DefaultConfigDir = ".browsershield"
	DefaultTrustFile = "trust.yaml"
	DefaultLogFile   = "audit.jsonl"
)

type Config struct {
	TrustPath string
	LogPath   string
	ConfigDir string
}

// Load resolves paths, creating the config directory if needed. Explicit
// paths override the defaults under ~/.browsershield.
func Load(trustPath, logPath string) (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configDir := filepath.Join(homeDir, DefaultConfigDir)

	if err := ensureDir(configDir); err != nil {
		return nil, err
	}

	cfg := &Config{ConfigDir: configDir}

	if trustPath != "" {
		cfg.TrustPath = trustPath
	} else {
		cfg.TrustPath = filepath.Join(configDir, DefaultTrustFile)
	}

	if logPath != "" {
		cfg.LogPath = logPath
	} else {
		cfg.LogPath = filepath.Join(configDir, DefaultLogFile)
	}

	return cfg, nil
}

func ensureDir(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, 0700)
	}
	return nil
}
