package runfolder

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ErrNoAnalysisPath is returned by every helper that needs an analysis root
// when none is known yet.
var ErrNoAnalysisPath = errors.New("analysis path is not set")

const (
	bamBasecallPrefix        = "BAM_basecalls_"
	statusDir                = "status"
	metadataCachePrefix      = "metadata_cache_"
	irodsPublisherRestartDir = "irods_publisher_restart_files"
	irodsLocationsDir        = "irods_locations_files"
	tilevizDir               = "tileviz"
	intensitiesRel           = "Data/Intensities"
	basecallsDir             = "BaseCalls"
)

func DefaultIntensityPath(runfolder string) string {
	return filepath.Join(runfolder, filepath.FromSlash(intensitiesRel))
}

func DefaultBasecallPath(intensity string) string {
	return filepath.Join(intensity, basecallsDir)
}

// BamBasecallPathFromTimestamp returns <intensity>/BAM_basecalls_<timestamp>.
func BamBasecallPathFromTimestamp(intensity, timestamp string) string {
	return filepath.Join(intensity, bamBasecallPrefix+timestamp)
}

func StatusFilesPath(analysis string) (string, error) {
	if analysis == "" {
		return "", fmt.Errorf("status files path: %w", ErrNoAnalysisPath)
	}
	return filepath.Join(analysis, statusDir), nil
}

func MetadataCachePath(analysis string, idRun int) (string, error) {
	if analysis == "" {
		return "", fmt.Errorf("metadata cache path: %w", ErrNoAnalysisPath)
	}
	return filepath.Join(analysis, fmt.Sprintf("%s%d", metadataCachePrefix, idRun)), nil
}

func IrodsPublisherRestartPath(analysis string) (string, error) {
	if analysis == "" {
		return "", fmt.Errorf("irods publisher restart path: %w", ErrNoAnalysisPath)
	}
	return filepath.Join(analysis, irodsPublisherRestartDir), nil
}

func IrodsLocationsPath(analysis string) (string, error) {
	if analysis == "" {
		return "", fmt.Errorf("irods locations path: %w", ErrNoAnalysisPath)
	}
	return filepath.Join(analysis, irodsLocationsDir), nil
}

func TilevizIndexPath(archive string) string {
	return filepath.Join(archive, tilevizDir)
}
