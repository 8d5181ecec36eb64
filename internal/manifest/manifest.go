// Package manifest reads a run description file: the run metadata plus the
// lanes and data products to scaffold. TOML and HCL files are accepted and
// describe the same document.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pelletier/go-toml/v2"

	"runscaffold/internal/product"
	"runscaffold/internal/runfolder"
)

type document struct {
	Run          runBlock           `toml:"run" hcl:"run,block"`
	Lanes        []int              `toml:"lanes" hcl:"lanes,optional"`
	DataProducts []dataProductBlock `toml:"data_product" hcl:"data_product,block"`
}

type runBlock struct {
	IDRun           int    `toml:"id_run" hcl:"id_run"`
	Timestamp       string `toml:"timestamp" hcl:"timestamp,optional"`
	RunfolderPath   string `toml:"runfolder_path" hcl:"runfolder_path,optional"`
	IntensityPath   string `toml:"intensity_path" hcl:"intensity_path,optional"`
	BasecallPath    string `toml:"basecall_path" hcl:"basecall_path,optional"`
	AnalysisPath    string `toml:"analysis_path" hcl:"analysis_path,optional"`
	BamBasecallPath string `toml:"bam_basecall_path" hcl:"bam_basecall_path,optional"`
}

type dataProductBlock struct {
	Components []componentBlock `toml:"component" hcl:"component,block"`
}

type componentBlock struct {
	Position int  `toml:"position" hcl:"position"`
	TagIndex *int `toml:"tag_index" hcl:"tag_index,optional"`
}

// Manifest is a decoded run description.
type Manifest struct {
	Run      *runfolder.Run
	Products *product.Collection
}

// Load reads a .toml or .hcl run description.
func Load(path string) (Manifest, error) {
	var doc document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		blob, err := os.ReadFile(path)
		if err != nil {
			return Manifest{}, err
		}
		if err := toml.Unmarshal(blob, &doc); err != nil {
			return Manifest{}, fmt.Errorf("MAN_PARSE: %s: %w", path, err)
		}
	case ".hcl":
		parser := hclparse.NewParser()
		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return Manifest{}, fmt.Errorf("MAN_PARSE: %s: %w", path, diags)
		}
		if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
			return Manifest{}, fmt.Errorf("MAN_DECODE: %s: %w", path, diags)
		}
	default:
		return Manifest{}, fmt.Errorf("MAN_FORMAT: unsupported run description %q, want .toml or .hcl", path)
	}
	m, err := doc.build()
	if err != nil {
		return Manifest{}, fmt.Errorf("%w (in %s)", err, path)
	}
	return m, nil
}

func (d document) build() (Manifest, error) {
	if d.Run.IDRun <= 0 {
		return Manifest{}, fmt.Errorf("MAN_RUN: id_run must be positive, got %d", d.Run.IDRun)
	}
	run := &runfolder.Run{
		ID:              d.Run.IDRun,
		Timestamp:       d.Run.Timestamp,
		IntensityPath:   cleanOptional(d.Run.IntensityPath),
		BasecallPath:    cleanOptional(d.Run.BasecallPath),
		AnalysisPath:    cleanOptional(d.Run.AnalysisPath),
		BamBasecallPath: cleanOptional(d.Run.BamBasecallPath),
	}
	if run.IntensityPath == "" && d.Run.RunfolderPath != "" {
		run.IntensityPath = runfolder.DefaultIntensityPath(d.Run.RunfolderPath)
	}
	if run.BasecallPath == "" && run.IntensityPath != "" {
		run.BasecallPath = runfolder.DefaultBasecallPath(run.IntensityPath)
	}

	coll := &product.Collection{}
	for _, pos := range d.Lanes {
		lane, err := product.NewLane(run.ID, pos)
		if err != nil {
			return Manifest{}, err
		}
		coll.Lanes = append(coll.Lanes, lane)
	}
	for i, dp := range d.DataProducts {
		comps := make([]product.Component, 0, len(dp.Components))
		for _, c := range dp.Components {
			comps = append(comps, product.Component{Position: c.Position, TagIndex: c.TagIndex})
		}
		p, err := product.NewDataProduct(run.ID, comps...)
		if err != nil {
			return Manifest{}, fmt.Errorf("data product %d: %w", i+1, err)
		}
		coll.DataProducts = append(coll.DataProducts, p)
	}
	if err := coll.Validate(); err != nil {
		return Manifest{}, err
	}
	return Manifest{Run: run, Products: coll}, nil
}

func cleanOptional(p string) string {
	if p == "" {
		return ""
	}
	return filepath.Clean(p)
}
