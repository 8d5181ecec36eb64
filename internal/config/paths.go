package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".runscaffold/config.toml"
	}
	return filepath.Join(home, ".runscaffold", "config.toml")
}

func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", errors.New("empty path")
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
	}
	return path, nil
}

// ResolveAuditPath returns the configured audit file, expanded. An empty
// result means the audit trail goes to the run's status directory.
func ResolveAuditPath(cfg Config) (string, error) {
	if cfg.Audit.Path == "" {
		return "", nil
	}
	expanded, err := ExpandPath(cfg.Audit.Path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(expanded), nil
}
