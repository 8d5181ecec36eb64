package scaffold

import (
	"fmt"
	"strconv"
	"strings"

	"runscaffold/internal/audit"
	"runscaffold/internal/fsutil"
	"runscaffold/internal/runfolder"
)

const stageOneExt = "cram"

// ProductPlan lists the per-product directories of a run: for every product
// its archive, qc, short-file cache, no-archive, stage1 and pp-archive
// directories, plus the tileviz directory of every lane.
func ProductPlan(run *runfolder.Run, src ProductSource) ([]string, error) {
	if src == nil {
		return nil, ErrNoProducts
	}
	l, err := run.Layout()
	if err != nil {
		return nil, err
	}
	lanes := src.Lanes()
	all := make([]Product, 0, len(lanes)+len(src.DataProducts()))
	for _, lane := range lanes {
		all = append(all, lane)
	}
	all = append(all, src.DataProducts()...)

	dirs := []string{}
	for _, p := range all {
		dirs = append(dirs,
			p.Path(l.Archive),
			p.QCOutPath(l.Archive),
			p.ShortFilesCachePath(l.Archive),
			p.Path(l.NoArchive),
			p.StageOneOutPath(l.NoArchive),
			p.Path(l.PPArchive),
		)
	}
	for _, lane := range lanes {
		dirs = append(dirs, lane.TilevizPath(l.Archive))
	}
	return dirs, nil
}

// StageOneLink returns where the stage1 output link of p lives and what it
// points at.
func StageOneLink(l runfolder.Layout, p Product) (link, target string) {
	link = p.FilePath(p.StageOneOutPath(l.NoArchive), stageOneExt)
	target = p.FilePath(l.Recalibrated, stageOneExt)
	return link, target
}

// CreateProductLevel creates the per-product directories in one batch. Lane
// placeholder pages and stage1 links are only created when every directory
// was made. A stage1 link that already exists is left as it is, whatever it
// points at; its target does not need to exist yet.
func (s *Service) CreateProductLevel(run *runfolder.Run, src ProductSource) (Result, error) {
	res := Result{Info: []string{}, Errors: []string{}}
	if src == nil {
		return res, ErrNoProducts
	}
	log := s.logger().With("run", run.ID, "operation", "product_level")
	l, err := run.Layout()
	if err != nil {
		return res, err
	}
	dirs, err := ProductPlan(run, src)
	if err != nil {
		return res, err
	}
	lanes := src.Lanes()

	indexPath, err := s.CreateRunIndex(run, lanes)
	if err != nil {
		res.Errors = append(res.Errors, err.Error())
		log.Warn("run tileviz index not written", "error", err)
	} else {
		res.Info = append(res.Info, "Run tileviz index: "+indexPath)
	}

	errs := fsutil.MakeDirectories(dirs)
	res.Errors = append(res.Errors, errorStrings(errs)...)
	res.Info = append(res.Info, "Product directories: "+strings.Join(dirs, ", "))
	if len(errs) > 0 {
		for _, e := range errs {
			log.Warn("directory not created", "error", e)
		}
		log.Warn("skipping lane pages and stage1 links", "errors", len(errs))
		s.audit(run, audit.Event{
			Operation: "product_level",
			Phase:     "directories",
			Status:    "partial",
			Fields:    map[string]string{"directories": strconv.Itoa(len(dirs)), "errors": strconv.Itoa(len(errs))},
		})
		return res, nil
	}

	pages, err := s.CreateLaneIndexes(run, lanes)
	if err != nil {
		res.Errors = append(res.Errors, err.Error())
		log.Warn("lane tileviz pages not written", "error", err)
	}
	for _, p := range pages {
		res.Info = append(res.Info, "Lane tileviz placeholder: "+p)
	}

	links := 0
	for _, p := range src.DataProducts() {
		link, target := StageOneLink(l, p)
		if fsutil.IsSymlink(link) {
			log.Debug("stage1 link exists", "link", link)
			continue
		}
		rel, err := fsutil.RelativeSymlink(target, link)
		if err != nil {
			s.audit(run, audit.Event{Operation: "product_level", Phase: "link", Status: "error", Message: err.Error()})
			return res, fmt.Errorf("SCF_SYMLINK: failed to link %s to %s: %w", link, target, err)
		}
		links++
		res.Info = append(res.Info, fmt.Sprintf("Stage1 link %s -> %s", link, rel))
	}
	log.Info("product level scaffolding done", "directories", len(dirs), "pages", len(pages), "links", links)
	s.audit(run, audit.Event{
		Operation: "product_level",
		Phase:     "commit",
		Status:    "ok",
		Fields: map[string]string{
			"directories": strconv.Itoa(len(dirs)),
			"pages":       strconv.Itoa(len(pages)),
			"links":       strconv.Itoa(links),
		},
	})
	return res, nil
}

// CreateAll runs top-level then product-level scaffolding. Product-level
// scaffolding is skipped when the top level reported errors.
func (s *Service) CreateAll(run *runfolder.Run, src ProductSource) (Result, error) {
	res, err := s.CreateTopLevel(run)
	if err != nil || !res.OK() {
		return res, err
	}
	products, err := s.CreateProductLevel(run, src)
	res.merge(products)
	return res, err
}
