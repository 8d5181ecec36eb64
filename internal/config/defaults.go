package config

const (
	SchemaVersion = 1
)

// DefaultConfig returns a fully-populated v1 config document.
func DefaultConfig() Config {
	return Config{
		Version: SchemaVersion,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Audit: AuditConfig{
			Enabled: true,
		},
		Layout: LayoutConfig{
			RecalibratedDir: "no_cal",
			ArchiveDir:      "archive",
			NoArchiveDir:    "no_archive",
			PPArchiveDir:    "pp_archive",
		},
	}
}
