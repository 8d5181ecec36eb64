package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

var allowedLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

var allowedLogFormats = map[string]struct{}{
	"text": {},
	"json": {},
}

func Validate(cfg Config) error {
	if cfg.Version != SchemaVersion {
		return fmt.Errorf("DOC_CONFIG_VERSION: unsupported version %d", cfg.Version)
	}
	if _, ok := allowedLogLevels[cfg.Logging.Level]; !ok {
		return fmt.Errorf("DOC_CONFIG_LOGGING: invalid log level %q", cfg.Logging.Level)
	}
	if _, ok := allowedLogFormats[cfg.Logging.Format]; !ok {
		return fmt.Errorf("DOC_CONFIG_LOGGING: invalid log format %q", cfg.Logging.Format)
	}
	if cfg.MinVersion != "" && normalizeSemver(cfg.MinVersion) == "" {
		return fmt.Errorf("DOC_CONFIG_VERSION: min_version %q is not a semantic version", cfg.MinVersion)
	}

	names := map[string]string{}
	for key, v := range map[string]string{
		"recalibrated_dir": cfg.Layout.RecalibratedDir,
		"archive_dir":      cfg.Layout.ArchiveDir,
		"no_archive_dir":   cfg.Layout.NoArchiveDir,
		"pp_archive_dir":   cfg.Layout.PPArchiveDir,
	} {
		if v == "" || v == "." || v == ".." || strings.ContainsRune(v, filepath.Separator) || strings.Contains(v, "/") {
			return fmt.Errorf("DOC_CONFIG_LAYOUT: %s must be a single directory name, got %q", key, v)
		}
		if key != "archive_dir" {
			if other, ok := names[v]; ok {
				return fmt.Errorf("DOC_CONFIG_LAYOUT: %s and %s are both %q", other, key, v)
			}
			names[v] = key
		}
	}
	return nil
}
