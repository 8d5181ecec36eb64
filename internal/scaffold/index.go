package scaffold

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"sort"
	"strconv"

	"runscaffold/internal/fsutil"
	"runscaffold/internal/runfolder"
)

const (
	indexFileName = "index.html"
	pagePerm      = 0o644
)

var runIndexTemplate = template.Must(template.New("run_index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
<ul>
{{- range .Lanes}}
<li><a href="../tileviz_lane{{.}}.html">Lane {{.}}</a></li>
{{- end}}
</ul>
</body>
</html>
`))

var laneIndexTemplate = template.Must(template.New("lane_index").Parse(`<!DOCTYPE html>
<html>
{{.Marker}}
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<p>No tileviz data available for lane {{.Position}}.</p>
</body>
</html>
`))

// RunIndexPath is <archive>/tileviz/index.html.
func RunIndexPath(run *runfolder.Run) (string, error) {
	archive, err := run.ArchivePath()
	if err != nil {
		return "", err
	}
	return filepath.Join(runfolder.TilevizIndexPath(archive), indexFileName), nil
}

// LaneIndexPath is <archive>/tileviz_lane<N>.html, next to the lane's tileviz
// directory rather than inside it.
func LaneIndexPath(run *runfolder.Run, position int) (string, error) {
	archive, err := run.ArchivePath()
	if err != nil {
		return "", err
	}
	return filepath.Join(archive, "tileviz_lane"+strconv.Itoa(position)+".html"), nil
}

func sortedPositions(lanes []Lane) []int {
	out := make([]int, 0, len(lanes))
	for _, l := range lanes {
		out = append(out, l.Position())
	}
	sort.Ints(out)
	return out
}

// CreateRunIndex writes the run-level tileviz index linking to every lane
// page. The page is rewritten on every call.
func (s *Service) CreateRunIndex(run *runfolder.Run, lanes []Lane) (string, error) {
	path, err := RunIndexPath(run)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	data := struct {
		Title string
		Lanes []int
	}{
		Title: fmt.Sprintf("Run %d: tileviz reports", run.ID),
		Lanes: sortedPositions(lanes),
	}
	if err := runIndexTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	if errs := fsutil.MakeDirectories([]string{filepath.Dir(path)}); len(errs) > 0 {
		return "", errs[0]
	}
	if err := fsutil.AtomicWrite(path, buf.Bytes(), pagePerm); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	s.logger().Debug("run tileviz index written", "run", run.ID, "path", path)
	return path, nil
}

// CreateLaneIndexes writes a placeholder page for every lane that has none
// yet. Existing pages may hold real reports and are never replaced. It
// returns the pages it wrote.
func (s *Service) CreateLaneIndexes(run *runfolder.Run, lanes []Lane) ([]string, error) {
	written := []string{}
	for _, pos := range sortedPositions(lanes) {
		path, err := LaneIndexPath(run, pos)
		if err != nil {
			return written, err
		}
		var buf bytes.Buffer
		data := struct {
			Title    string
			Position int
			Marker   template.HTML
		}{
			Title:    fmt.Sprintf("Run %d lane %d: tileviz", run.ID, pos),
			Position: pos,
			Marker:   template.HTML(fsutil.PlaceholderMarker),
		}
		if err := laneIndexTemplate.Execute(&buf, data); err != nil {
			return written, err
		}
		ok, err := fsutil.WriteIfAbsent(path, buf.Bytes(), pagePerm)
		if err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		if ok {
			written = append(written, path)
		}
	}
	return written, nil
}
