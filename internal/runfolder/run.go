// Package runfolder models a sequencing run and derives the analysis
// directory layout from it.
package runfolder

import (
	"fmt"
	"path/filepath"
)

// Names holds the leaf directory names of the analysis tree. Empty fields
// fall back to the defaults.
type Names struct {
	Recalibrated string
	Archive      string
	NoArchive    string
	PPArchive    string
}

func DefaultNames() Names {
	return Names{
		Recalibrated: "no_cal",
		Archive:      "archive",
		NoArchive:    "no_archive",
		PPArchive:    "pp_archive",
	}
}

func (n Names) normalized() Names {
	def := DefaultNames()
	if n.Recalibrated == "" {
		n.Recalibrated = def.Recalibrated
	}
	if n.Archive == "" {
		n.Archive = def.Archive
	}
	if n.NoArchive == "" {
		n.NoArchive = def.NoArchive
	}
	if n.PPArchive == "" {
		n.PPArchive = def.PPArchive
	}
	return n
}

// Run is the metadata the scaffolder needs about one sequencing run.
//
// AnalysisPath and BamBasecallPath are optional. BamBasecallPath is filled in
// once by the top-level scaffolder and read afterwards.
type Run struct {
	ID              int
	Timestamp       string
	IntensityPath   string
	BasecallPath    string
	AnalysisPath    string
	BamBasecallPath string
	Names           Names
}

// HasBamBasecallPath reports whether the bam basecall path is already known.
func (r *Run) HasBamBasecallPath() bool {
	return r.BamBasecallPath != ""
}

// SetBamBasecallPath records the bam basecall path. It refuses to replace a
// different value that was set earlier.
func (r *Run) SetBamBasecallPath(path string) error {
	if path == "" {
		return fmt.Errorf("bam basecall path must not be empty")
	}
	path = filepath.Clean(path)
	if r.BamBasecallPath != "" && r.BamBasecallPath != path {
		return fmt.Errorf("bam basecall path already set to %s", r.BamBasecallPath)
	}
	r.BamBasecallPath = path
	return nil
}

// Analysis returns the analysis root: the explicit analysis path when given,
// the bam basecall path otherwise.
func (r *Run) Analysis() string {
	if r.AnalysisPath != "" {
		return r.AnalysisPath
	}
	return r.BamBasecallPath
}

func (r *Run) RecalibratedPath() (string, error) {
	a := r.Analysis()
	if a == "" {
		return "", fmt.Errorf("recalibrated path: %w", ErrNoAnalysisPath)
	}
	return filepath.Join(a, r.Names.normalized().Recalibrated), nil
}

func (r *Run) ArchivePath() (string, error) {
	recal, err := r.RecalibratedPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(recal, r.Names.normalized().Archive), nil
}

func (r *Run) NoArchivePath() (string, error) {
	a := r.Analysis()
	if a == "" {
		return "", fmt.Errorf("no-archive path: %w", ErrNoAnalysisPath)
	}
	return filepath.Join(a, r.Names.normalized().NoArchive), nil
}

func (r *Run) PPArchivePath() (string, error) {
	a := r.Analysis()
	if a == "" {
		return "", fmt.Errorf("pp-archive path: %w", ErrNoAnalysisPath)
	}
	return filepath.Join(a, r.Names.normalized().PPArchive), nil
}

// Layout is every run-wide root derived for one run.
type Layout struct {
	Analysis              string `json:"analysis"`
	BamBasecall           string `json:"bamBasecall"`
	Recalibrated          string `json:"recalibrated"`
	Archive               string `json:"archive"`
	NoArchive             string `json:"noArchive"`
	PPArchive             string `json:"ppArchive"`
	Status                string `json:"status"`
	MetadataCache         string `json:"metadataCache"`
	TilevizIndex          string `json:"tilevizIndex"`
	IrodsPublisherRestart string `json:"irodsPublisherRestart"`
	IrodsLocations        string `json:"irodsLocations"`
}

// Layout derives all run-wide roots. It fails when no analysis root is known.
func (r *Run) Layout() (Layout, error) {
	a := r.Analysis()
	if a == "" {
		return Layout{}, fmt.Errorf("run %d layout: %w", r.ID, ErrNoAnalysisPath)
	}
	l := Layout{Analysis: a, BamBasecall: r.BamBasecallPath}
	var err error
	if l.Recalibrated, err = r.RecalibratedPath(); err != nil {
		return Layout{}, err
	}
	if l.Archive, err = r.ArchivePath(); err != nil {
		return Layout{}, err
	}
	if l.NoArchive, err = r.NoArchivePath(); err != nil {
		return Layout{}, err
	}
	if l.PPArchive, err = r.PPArchivePath(); err != nil {
		return Layout{}, err
	}
	if l.Status, err = StatusFilesPath(a); err != nil {
		return Layout{}, err
	}
	if l.MetadataCache, err = MetadataCachePath(a, r.ID); err != nil {
		return Layout{}, err
	}
	if l.IrodsPublisherRestart, err = IrodsPublisherRestartPath(a); err != nil {
		return Layout{}, err
	}
	if l.IrodsLocations, err = IrodsLocationsPath(a); err != nil {
		return Layout{}, err
	}
	l.TilevizIndex = TilevizIndexPath(l.Archive)
	return l, nil
}
