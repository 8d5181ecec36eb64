package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"runscaffold/internal/product"
	"runscaffold/internal/runfolder"
)

func newIntensityRun(t *testing.T, id int) *runfolder.Run {
	t.Helper()
	runfolderPath := filepath.Join(t.TempDir(), "runfolder")
	intensity := runfolder.DefaultIntensityPath(runfolderPath)
	basecall := runfolder.DefaultBasecallPath(intensity)
	if err := os.MkdirAll(basecall, 0o755); err != nil {
		t.Fatalf("create runfolder failed: %v", err)
	}
	return &runfolder.Run{
		ID:            id,
		Timestamp:     "20240102-030405",
		IntensityPath: intensity,
		BasecallPath:  basecall,
	}
}

func intPtr(v int) *int { return &v }

func newCollection(t *testing.T, id int, lanes []int, plexes ...product.Component) *product.Collection {
	t.Helper()
	c := &product.Collection{}
	for _, pos := range lanes {
		l, err := product.NewLane(id, pos)
		if err != nil {
			t.Fatalf("new lane failed: %v", err)
		}
		c.Lanes = append(c.Lanes, l)
	}
	for _, comp := range plexes {
		d, err := product.NewDataProduct(id, comp)
		if err != nil {
			t.Fatalf("new data product failed: %v", err)
		}
		c.DataProducts = append(c.DataProducts, d)
	}
	return c
}

// fakeProduct renders every location straight under the root it is given.
type fakeProduct struct {
	name string
}

func (f fakeProduct) Path(root string) string                { return filepath.Join(root, f.name) }
func (f fakeProduct) QCOutPath(root string) string           { return filepath.Join(root, f.name, "qc") }
func (f fakeProduct) ShortFilesCachePath(root string) string { return filepath.Join(root, f.name, "cache") }
func (f fakeProduct) StageOneOutPath(root string) string     { return root }
func (f fakeProduct) FilePath(dir, ext string) string        { return filepath.Join(dir, f.name+"."+ext) }

type fakeLane struct {
	fakeProduct
	position int
}

func (f fakeLane) Position() int { return f.position }
func (f fakeLane) TilevizPath(root string) string {
	return filepath.Join(root, "tileviz_"+f.name)
}

type fakeSource struct {
	lanes []Lane
	data  []Product
}

func (f fakeSource) Lanes() []Lane           { return f.lanes }
func (f fakeSource) DataProducts() []Product { return f.data }

func readFile(t *testing.T, path string) string {
	t.Helper()
	blob, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s failed: %v", path, err)
	}
	return string(blob)
}
