// Package product describes the units a run is split into (lanes and data
// products) and renders their locations under a given root directory.
package product

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

type Category string

const (
	CategoryLane        Category = "lane"
	CategoryDataProduct Category = "data_product"
)

const (
	qcDir              = "qc"
	shortFilesCacheDir = ".npg_cache_10000"
	stageOneDir        = "stage1"
	tilevizPrefix      = "tileviz_"
)

// Component is one lane (optionally one tagged plex in it) of a composition.
type Component struct {
	Position int  `toml:"position" json:"position"`
	TagIndex *int `toml:"tag_index,omitempty" json:"tagIndex,omitempty"`
}

func (c Component) String() string {
	if c.TagIndex == nil {
		return strconv.Itoa(c.Position)
	}
	return fmt.Sprintf("%d#%d", c.Position, *c.TagIndex)
}

// Product is a lane or a data product of one run.
type Product struct {
	IDRun       int
	Category    Category
	Composition []Component
}

// NewLane returns the lane product for position.
func NewLane(idRun, position int) (*Product, error) {
	p := &Product{IDRun: idRun, Category: CategoryLane, Composition: []Component{{Position: position}}}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// NewDataProduct returns a data product made of comps. Components are sorted
// by position.
func NewDataProduct(idRun int, comps ...Component) (*Product, error) {
	sorted := append([]Component(nil), comps...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })
	p := &Product{IDRun: idRun, Category: CategoryDataProduct, Composition: sorted}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Product) Validate() error {
	if p.IDRun <= 0 {
		return fmt.Errorf("PRD_RUN_ID: invalid run id %d", p.IDRun)
	}
	if len(p.Composition) == 0 {
		return fmt.Errorf("PRD_COMPOSITION: empty composition")
	}
	seen := map[int]struct{}{}
	for _, c := range p.Composition {
		if c.Position <= 0 {
			return fmt.Errorf("PRD_COMPOSITION: invalid position %d", c.Position)
		}
		if c.TagIndex != nil && *c.TagIndex < 0 {
			return fmt.Errorf("PRD_COMPOSITION: invalid tag index %d", *c.TagIndex)
		}
		if _, ok := seen[c.Position]; ok {
			return fmt.Errorf("PRD_COMPOSITION: duplicate position %d", c.Position)
		}
		seen[c.Position] = struct{}{}
	}
	switch p.Category {
	case CategoryLane:
		if len(p.Composition) != 1 || p.Composition[0].TagIndex != nil {
			return fmt.Errorf("PRD_LANE: lane must be a single untagged component, got %s", p.ID())
		}
	case CategoryDataProduct:
		first := p.Composition[0].TagIndex
		for _, c := range p.Composition[1:] {
			if (first == nil) != (c.TagIndex == nil) || (first != nil && *first != *c.TagIndex) {
				return fmt.Errorf("PRD_COMPOSITION: components of %s disagree on tag index", p.ID())
			}
		}
	default:
		return fmt.Errorf("PRD_CATEGORY: unknown category %q", p.Category)
	}
	return nil
}

// ID is a human readable composition id, e.g. "1000:1-2#3".
func (p *Product) ID() string {
	parts := make([]string, 0, len(p.Composition))
	for _, c := range p.Composition {
		parts = append(parts, c.String())
	}
	return fmt.Sprintf("%d:%s", p.IDRun, strings.Join(parts, ","))
}

func (p *Product) IsLane() bool { return p.Category == CategoryLane }

// Position is the lane number of the first component.
func (p *Product) Position() int {
	if len(p.Composition) == 0 {
		return 0
	}
	return p.Composition[0].Position
}

func (p *Product) tagIndex() *int {
	if len(p.Composition) == 0 {
		return nil
	}
	return p.Composition[0].TagIndex
}

func (p *Product) positionsLabel() string {
	parts := make([]string, 0, len(p.Composition))
	for _, c := range p.Composition {
		parts = append(parts, strconv.Itoa(c.Position))
	}
	return strings.Join(parts, "-")
}

// DirName is the product's directory relative to any root:
// lane1, lane1/plex3, lane1-2 or plex3 for merged products.
func (p *Product) DirName() string {
	tag := p.tagIndex()
	if len(p.Composition) == 1 {
		lane := "lane" + strconv.Itoa(p.Position())
		if tag == nil {
			return lane
		}
		return filepath.Join(lane, "plex"+strconv.Itoa(*tag))
	}
	if tag == nil {
		return "lane" + p.positionsLabel()
	}
	return "plex" + strconv.Itoa(*tag)
}

// FileNameRoot is the stem shared by the product's files, e.g. 1000_1#3.
func (p *Product) FileNameRoot() string {
	name := fmt.Sprintf("%d_%s", p.IDRun, p.positionsLabel())
	if tag := p.tagIndex(); tag != nil {
		name += "#" + strconv.Itoa(*tag)
	}
	return name
}

func (p *Product) Path(root string) string {
	return filepath.Join(root, p.DirName())
}

func (p *Product) QCOutPath(root string) string {
	return filepath.Join(p.Path(root), qcDir)
}

func (p *Product) ShortFilesCachePath(root string) string {
	return filepath.Join(p.Path(root), shortFilesCacheDir)
}

func (p *Product) StageOneOutPath(root string) string {
	return filepath.Join(p.Path(root), stageOneDir)
}

// FilePath is <dir>/<file name root>[.<ext>].
func (p *Product) FilePath(dir, ext string) string {
	name := p.FileNameRoot()
	if ext != "" {
		name += "." + strings.TrimPrefix(ext, ".")
	}
	return filepath.Join(dir, name)
}

// TilevizPath is the per-lane tileviz report directory, <root>/tileviz_lane<N>.
// It is only meaningful for lanes.
func (p *Product) TilevizPath(root string) string {
	return filepath.Join(root, tilevizPrefix+"lane"+strconv.Itoa(p.Position()))
}

// Collection is every product of one run, split by category.
type Collection struct {
	Lanes        []*Product
	DataProducts []*Product
}

// All returns lanes first, then data products.
func (c *Collection) All() []*Product {
	out := make([]*Product, 0, len(c.Lanes)+len(c.DataProducts))
	out = append(out, c.Lanes...)
	return append(out, c.DataProducts...)
}

// Validate checks every product and rejects duplicate lanes or data products.
func (c *Collection) Validate() error {
	seen := map[string]struct{}{}
	for _, p := range c.All() {
		if err := p.Validate(); err != nil {
			return err
		}
		key := string(p.Category) + "/" + p.ID()
		if _, ok := seen[key]; ok {
			return fmt.Errorf("PRD_DUPLICATE: duplicate %s %s", p.Category, p.ID())
		}
		seen[key] = struct{}{}
	}
	for _, l := range c.Lanes {
		if !l.IsLane() {
			return fmt.Errorf("PRD_CATEGORY: %s %s listed as lane", l.Category, l.ID())
		}
	}
	for _, d := range c.DataProducts {
		if d.IsLane() {
			return fmt.Errorf("PRD_CATEGORY: lane %s listed as data product", d.ID())
		}
	}
	return nil
}
