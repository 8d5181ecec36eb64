package scaffold

import (
	"fmt"
	"strconv"
	"strings"

	"runscaffold/internal/audit"
	"runscaffold/internal/fsutil"
	"runscaffold/internal/runfolder"
)

// EnsureBamBasecallPath reports on the intensity and basecall directories and
// sets the run's bam basecall path if it is not known yet. It is derived from
// the run timestamp when the intensity directory exists, otherwise from the
// analysis path. With neither available the run cannot be scaffolded.
func (s *Service) EnsureBamBasecallPath(run *runfolder.Run) ([]string, error) {
	info := []string{}
	intensityFound := isDir(run.IntensityPath)
	if intensityFound {
		info = append(info, "Intensity path found: "+run.IntensityPath)
	} else {
		info = append(info, "Intensity path not found: "+run.IntensityPath)
	}
	if isDir(run.BasecallPath) {
		info = append(info, "Basecall path found: "+run.BasecallPath)
	} else {
		info = append(info, "Basecall path not found: "+run.BasecallPath)
	}

	if run.HasBamBasecallPath() {
		info = append(info, "BAM_basecall path already set: "+run.BamBasecallPath)
		return info, nil
	}

	switch {
	case intensityFound:
		if run.Timestamp == "" {
			return info, ErrNoTimestamp
		}
		if err := run.SetBamBasecallPath(runfolder.BamBasecallPathFromTimestamp(run.IntensityPath, run.Timestamp)); err != nil {
			return info, err
		}
	case run.AnalysisPath != "":
		if err := run.SetBamBasecallPath(run.AnalysisPath); err != nil {
			return info, err
		}
	default:
		return info, fmt.Errorf("%w: %q; bam_basecall_path or analysis_path should be given", ErrNoIntensityPath, run.IntensityPath)
	}
	info = append(info, "BAM_basecall path set to "+run.BamBasecallPath)
	s.logger().Debug("bam basecall path derived", "run", run.ID, "path", run.BamBasecallPath)
	return info, nil
}

// TopLevelPlan lists the run-wide directories, in creation order.
func TopLevelPlan(run *runfolder.Run) ([]string, error) {
	if !run.HasBamBasecallPath() {
		return nil, ErrNoBamBasecall
	}
	l, err := run.Layout()
	if err != nil {
		return nil, err
	}
	return []string{
		l.BamBasecall,
		l.Recalibrated,
		l.MetadataCache,
		l.Archive,
		l.NoArchive,
		l.PPArchive,
		l.Status,
		l.TilevizIndex,
		l.IrodsPublisherRestart,
		l.IrodsLocations,
	}, nil
}

// CreateTopLevel creates the run-wide directories in one batch. Directories
// that could not be created end up in Result.Errors; missing inputs are
// returned as an error.
func (s *Service) CreateTopLevel(run *runfolder.Run) (Result, error) {
	log := s.logger().With("run", run.ID, "operation", "top_level")
	res := Result{Info: []string{}, Errors: []string{}}

	info, err := s.EnsureBamBasecallPath(run)
	res.Info = append(res.Info, info...)
	if err != nil {
		log.Error("cannot derive bam basecall path", "error", err)
		s.audit(run, audit.Event{Operation: "top_level", Phase: "derive", Status: "error", Message: err.Error()})
		return res, err
	}

	dirs, err := TopLevelPlan(run)
	if err != nil {
		return res, err
	}
	res.Info = append(res.Info, "Analysis path: "+run.Analysis())

	errs := fsutil.MakeDirectories(dirs)
	res.Errors = append(res.Errors, errorStrings(errs)...)
	for _, e := range res.Errors {
		log.Warn("directory not created", "error", e)
	}
	res.Info = append(res.Info, "Top level directories: "+strings.Join(dirs, ", "))
	log.Info("top level scaffolding done", "directories", len(dirs), "errors", len(errs))

	status := "ok"
	if len(errs) > 0 {
		status = "partial"
	}
	s.audit(run, audit.Event{
		Operation: "top_level",
		Phase:     "commit",
		Status:    status,
		Fields: map[string]string{
			"analysis":     run.Analysis(),
			"bam_basecall": run.BamBasecallPath,
			"directories":  strconv.Itoa(len(dirs)),
			"errors":       strconv.Itoa(len(errs)),
		},
	})
	return res, nil
}
