// Package doctor checks an existing analysis directory against the layout
// the scaffolder would create, without changing anything on disk.
package doctor

import (
	"os"
	"path/filepath"

	"runscaffold/internal/config"
	"runscaffold/internal/fsutil"
	"runscaffold/internal/runfolder"
	"runscaffold/internal/scaffold"
)

type Finding struct {
	Code    string `json:"code"`
	Level   string `json:"level"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

type Report struct {
	Healthy  bool      `json:"healthy"`
	Findings []Finding `json:"findings"`
}

type Service struct {
	ConfigPath string
}

// Run inspects the tree of run. Products may be nil, in which case only the
// run-wide directories are checked.
func (s *Service) Run(run *runfolder.Run, products scaffold.ProductSource) Report {
	findings := []Finding{}
	if s.ConfigPath != "" {
		if _, err := os.Stat(s.ConfigPath); err != nil {
			findings = append(findings, Finding{Code: "DOC_CONFIG_MISSING", Level: "warn", Path: s.ConfigPath, Message: err.Error()})
		} else if _, err := config.Load(s.ConfigPath); err != nil {
			findings = append(findings, Finding{Code: "DOC_CONFIG_INVALID", Level: "error", Path: s.ConfigPath, Message: err.Error()})
		}
	}

	top, err := scaffold.TopLevelPlan(run)
	if err != nil {
		findings = append(findings, Finding{Code: "DOC_LAYOUT_UNKNOWN", Level: "error", Message: err.Error()})
		return report(findings)
	}
	findings = append(findings, checkDirs(top)...)

	if indexPath, err := scaffold.RunIndexPath(run); err == nil {
		if _, err := os.Stat(indexPath); err != nil {
			findings = append(findings, Finding{Code: "DOC_INDEX_MISSING", Level: "warn", Path: indexPath, Message: "run tileviz index not written"})
		}
	}

	if products == nil {
		return report(findings)
	}
	dirs, err := scaffold.ProductPlan(run, products)
	if err != nil {
		findings = append(findings, Finding{Code: "DOC_LAYOUT_UNKNOWN", Level: "error", Message: err.Error()})
		return report(findings)
	}
	findings = append(findings, checkDirs(dirs)...)
	for _, lane := range products.Lanes() {
		findings = append(findings, checkLanePage(run, lane.Position())...)
	}
	layout, _ := run.Layout()
	for _, p := range products.DataProducts() {
		link, target := scaffold.StageOneLink(layout, p)
		findings = append(findings, checkLink(link, target)...)
	}
	return report(findings)
}

func report(findings []Finding) Report {
	healthy := true
	for _, f := range findings {
		if f.Level == "error" {
			healthy = false
			break
		}
	}
	return Report{Healthy: healthy, Findings: findings}
}

func checkDirs(dirs []string) []Finding {
	out := []Finding{}
	for _, d := range dirs {
		info, err := os.Stat(d)
		switch {
		case os.IsNotExist(err):
			out = append(out, Finding{Code: "DOC_DIR_MISSING", Level: "error", Path: d, Message: "directory does not exist"})
		case err != nil:
			out = append(out, Finding{Code: "DOC_DIR_UNREADABLE", Level: "error", Path: d, Message: err.Error()})
		case !info.IsDir():
			out = append(out, Finding{Code: "DOC_DIR_NOT_DIRECTORY", Level: "error", Path: d, Message: "exists but is not a directory"})
		}
	}
	return out
}

func checkLanePage(run *runfolder.Run, position int) []Finding {
	path, err := scaffold.LaneIndexPath(run, position)
	if err != nil {
		return nil
	}
	blob, err := os.ReadFile(path)
	if err != nil {
		return []Finding{{Code: "DOC_LANE_PAGE_MISSING", Level: "warn", Path: path, Message: "lane tileviz page not written"}}
	}
	if fsutil.IsPlaceholder(blob) {
		return []Finding{{Code: "DOC_LANE_PAGE_PLACEHOLDER", Level: "info", Path: path, Message: "lane tileviz page is still a placeholder"}}
	}
	return nil
}

func checkLink(link, target string) []Finding {
	info, err := os.Lstat(link)
	if err != nil {
		return []Finding{{Code: "DOC_LINK_MISSING", Level: "warn", Path: link, Message: "stage1 link not created"}}
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return []Finding{{Code: "DOC_LINK_NOT_SYMLINK", Level: "error", Path: link, Message: "stage1 output exists but is not a symlink"}}
	}
	got, err := os.Readlink(link)
	if err != nil {
		return []Finding{{Code: "DOC_LINK_UNREADABLE", Level: "error", Path: link, Message: err.Error()}}
	}
	if !filepath.IsAbs(got) {
		got = filepath.Join(filepath.Dir(link), got)
	}
	if filepath.Clean(got) != filepath.Clean(target) {
		return []Finding{{Code: "DOC_LINK_TARGET_MISMATCH", Level: "warn", Path: link, Message: "points at " + got + ", expected " + target}}
	}
	return nil
}
