package config

// Config is the v1 global schema.
type Config struct {
	Version    int           `toml:"version"`
	MinVersion string        `toml:"min_version,omitempty"`
	Logging    LoggingConfig `toml:"logging"`
	Audit      AuditConfig   `toml:"audit"`
	Layout     LayoutConfig  `toml:"layout"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// AuditConfig controls the JSON-lines audit trail. An empty Path means
// <analysis>/status/scaffold_audit.jsonl of the run being scaffolded.
type AuditConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path,omitempty"`
}

// LayoutConfig names the leaf directories of the analysis tree.
type LayoutConfig struct {
	RecalibratedDir string `toml:"recalibrated_dir" json:"recalibratedDir"`
	ArchiveDir      string `toml:"archive_dir" json:"archiveDir"`
	NoArchiveDir    string `toml:"no_archive_dir" json:"noArchiveDir"`
	PPArchiveDir    string `toml:"pp_archive_dir" json:"ppArchiveDir"`
}
