package config

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// Build metadata, set with -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// CheckMinVersion fails when the running binary is older than the
// configured min_version. Development builds are not checked.
func CheckMinVersion(cfg Config, current string) error {
	if cfg.MinVersion == "" {
		return nil
	}
	want := normalizeSemver(cfg.MinVersion)
	if want == "" {
		return fmt.Errorf("DOC_CONFIG_VERSION: min_version %q is not a semantic version", cfg.MinVersion)
	}
	have := normalizeSemver(current)
	if have == "" {
		return nil
	}
	if semver.Compare(have, want) < 0 {
		return fmt.Errorf("DOC_VERSION_TOO_OLD: runscaffold %s is older than required %s", current, cfg.MinVersion)
	}
	return nil
}

func normalizeSemver(v string) string {
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return v
}
