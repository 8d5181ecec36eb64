package config

import "strings"

func Normalize(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Version == 0 {
		cfg.Version = SchemaVersion
	}
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = def.Logging.Format
	}
	cfg.MinVersion = strings.TrimSpace(cfg.MinVersion)
	if cfg.Layout.RecalibratedDir == "" {
		cfg.Layout.RecalibratedDir = def.Layout.RecalibratedDir
	}
	if cfg.Layout.ArchiveDir == "" {
		cfg.Layout.ArchiveDir = def.Layout.ArchiveDir
	}
	if cfg.Layout.NoArchiveDir == "" {
		cfg.Layout.NoArchiveDir = def.Layout.NoArchiveDir
	}
	if cfg.Layout.PPArchiveDir == "" {
		cfg.Layout.PPArchiveDir = def.Layout.PPArchiveDir
	}
	return cfg
}
