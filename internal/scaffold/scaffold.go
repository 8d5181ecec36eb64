// Package scaffold creates the analysis directory tree of a run ahead of the
// pipeline: run-wide directories first, then per-product directories, tileviz
// pages and stage1 output links.
//
// Two kinds of failure are distinguished. Missing inputs and symlink failures
// are returned as errors and abort the call. Directory creation failures are
// collected in Result.Errors so one bad path does not stop the rest.
package scaffold

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"runscaffold/internal/audit"
	"runscaffold/internal/product"
	"runscaffold/internal/runfolder"
)

var (
	ErrNoIntensityPath = errors.New("SCF_NO_INTENSITY: intensity path not found")
	ErrNoTimestamp     = errors.New("SCF_NO_TIMESTAMP: run timestamp is not set")
	ErrNoBamBasecall   = errors.New("SCF_NO_BAM_BASECALL: bam basecall path is not set")
	ErrNoProducts      = errors.New("SCF_NO_PRODUCTS: no product source given")
)

// Product renders the directories of one product under a root directory.
type Product interface {
	Path(root string) string
	QCOutPath(root string) string
	ShortFilesCachePath(root string) string
	StageOneOutPath(root string) string
	FilePath(dir, ext string) string
}

// Lane is a product tied to a single sequencing lane.
type Lane interface {
	Product
	Position() int
	TilevizPath(root string) string
}

// ProductSource enumerates the products of a run.
type ProductSource interface {
	Lanes() []Lane
	DataProducts() []Product
}

type collectionSource struct {
	c *product.Collection
}

// FromCollection adapts a product collection to a ProductSource.
func FromCollection(c *product.Collection) ProductSource {
	if c == nil {
		return nil
	}
	return collectionSource{c: c}
}

func (s collectionSource) Lanes() []Lane {
	out := make([]Lane, 0, len(s.c.Lanes))
	for _, l := range s.c.Lanes {
		out = append(out, l)
	}
	return out
}

func (s collectionSource) DataProducts() []Product {
	out := make([]Product, 0, len(s.c.DataProducts))
	for _, d := range s.c.DataProducts {
		out = append(out, d)
	}
	return out
}

// Result is what one scaffolding pass reports back: what it found or made,
// and the directories it could not create.
type Result struct {
	Info   []string `json:"info"`
	Errors []string `json:"errors"`
}

func (r Result) OK() bool { return len(r.Errors) == 0 }

func (r *Result) merge(other Result) {
	r.Info = append(r.Info, other.Info...)
	r.Errors = append(r.Errors, other.Errors...)
}

// AuditFileName is the audit log kept in the run's status directory.
const AuditFileName = "scaffold_audit.jsonl"

type Service struct {
	Logger *slog.Logger
	Audit  *audit.Logger
	// StatusAudit writes events to <status>/scaffold_audit.jsonl of the run
	// being scaffolded when Audit is nil.
	StatusAudit bool

	statusAudit *audit.Logger
}

func (s *Service) logger() *slog.Logger {
	if s == nil || s.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.Logger
}

func (s *Service) auditLogger(run *runfolder.Run) *audit.Logger {
	if s == nil {
		return nil
	}
	if s.Audit != nil || !s.StatusAudit {
		return s.Audit
	}
	status, err := runfolder.StatusFilesPath(run.Analysis())
	if err != nil {
		return nil
	}
	path := filepath.Join(status, AuditFileName)
	if s.statusAudit == nil || s.statusAudit.Path() != path {
		s.statusAudit = audit.New(path)
	}
	return s.statusAudit
}

func (s *Service) audit(run *runfolder.Run, ev audit.Event) {
	logger := s.auditLogger(run)
	if logger == nil {
		return
	}
	ev.RunID = run.ID
	if err := logger.Log(ev); err != nil {
		s.logger().Warn("audit write failed", "path", logger.Path(), "error", err)
	}
}

func errorStrings(errs []error) []string {
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}

func isDir(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
