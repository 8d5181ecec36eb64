package product

import (
	"path/filepath"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestRendering(t *testing.T) {
	lane, err := NewLane(1000, 1)
	if err != nil {
		t.Fatalf("new lane failed: %v", err)
	}
	plex, err := NewDataProduct(1000, Component{Position: 1, TagIndex: intPtr(3)})
	if err != nil {
		t.Fatalf("new plex failed: %v", err)
	}
	merged, err := NewDataProduct(1000,
		Component{Position: 2, TagIndex: intPtr(5)},
		Component{Position: 1, TagIndex: intPtr(5)},
	)
	if err != nil {
		t.Fatalf("new merged failed: %v", err)
	}
	mergedLanes, err := NewDataProduct(1000, Component{Position: 1}, Component{Position: 2})
	if err != nil {
		t.Fatalf("new merged lanes failed: %v", err)
	}

	tests := []struct {
		name     string
		p        *Product
		dir      string
		fileRoot string
	}{
		{"lane", lane, "lane1", "1000_1"},
		{"plex", plex, filepath.Join("lane1", "plex3"), "1000_1#3"},
		{"merged plex", merged, "plex5", "1000_1-2#5"},
		{"merged lanes", mergedLanes, "lane1-2", "1000_1-2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.DirName(); got != tt.dir {
				t.Errorf("DirName = %q, want %q", got, tt.dir)
			}
			if got := tt.p.FileNameRoot(); got != tt.fileRoot {
				t.Errorf("FileNameRoot = %q, want %q", got, tt.fileRoot)
			}
			if got := tt.p.Path("/r"); got != filepath.Join("/r", tt.dir) {
				t.Errorf("Path = %q", got)
			}
		})
	}

	if got := plex.QCOutPath("/a"); got != "/a/lane1/plex3/qc" {
		t.Errorf("QCOutPath = %q", got)
	}
	if got := plex.ShortFilesCachePath("/a"); got != "/a/lane1/plex3/.npg_cache_10000" {
		t.Errorf("ShortFilesCachePath = %q", got)
	}
	if got := plex.StageOneOutPath("/n"); got != "/n/lane1/plex3/stage1" {
		t.Errorf("StageOneOutPath = %q", got)
	}
	if got := plex.FilePath("/recal", "cram"); got != "/recal/1000_1#3.cram" {
		t.Errorf("FilePath = %q", got)
	}
	if got := plex.FilePath("/recal", ".bam"); got != "/recal/1000_1#3.bam" {
		t.Errorf("FilePath with dot = %q", got)
	}
	if got := lane.TilevizPath("/archive"); got != "/archive/tileviz_lane1" {
		t.Errorf("TilevizPath = %q", got)
	}
}

func TestValidateRejectsBadProducts(t *testing.T) {
	tests := []struct {
		name string
		p    Product
	}{
		{"no run id", Product{Category: CategoryLane, Composition: []Component{{Position: 1}}}},
		{"empty", Product{IDRun: 1, Category: CategoryDataProduct}},
		{"tagged lane", Product{IDRun: 1, Category: CategoryLane, Composition: []Component{{Position: 1, TagIndex: intPtr(1)}}}},
		{"two component lane", Product{IDRun: 1, Category: CategoryLane, Composition: []Component{{Position: 1}, {Position: 2}}}},
		{"mixed tags", Product{IDRun: 1, Category: CategoryDataProduct, Composition: []Component{{Position: 1, TagIndex: intPtr(1)}, {Position: 2}}}},
		{"different tags", Product{IDRun: 1, Category: CategoryDataProduct, Composition: []Component{{Position: 1, TagIndex: intPtr(1)}, {Position: 2, TagIndex: intPtr(2)}}}},
		{"duplicate position", Product{IDRun: 1, Category: CategoryDataProduct, Composition: []Component{{Position: 1}, {Position: 1}}}},
		{"zero position", Product{IDRun: 1, Category: CategoryDataProduct, Composition: []Component{{Position: 0}}}},
		{"unknown category", Product{IDRun: 1, Category: "tile", Composition: []Component{{Position: 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.p.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestCollectionValidate(t *testing.T) {
	l1, _ := NewLane(5, 1)
	l1again, _ := NewLane(5, 1)
	d, _ := NewDataProduct(5, Component{Position: 1, TagIndex: intPtr(2)})

	ok := Collection{Lanes: []*Product{l1}, DataProducts: []*Product{d}}
	if err := ok.Validate(); err != nil {
		t.Fatalf("expected valid collection: %v", err)
	}
	if got := len(ok.All()); got != 2 {
		t.Fatalf("All() returned %d products", got)
	}
	dup := Collection{Lanes: []*Product{l1, l1again}}
	if err := dup.Validate(); err == nil {
		t.Fatalf("expected duplicate lane error")
	}
	misfiled := Collection{Lanes: []*Product{d}}
	if err := misfiled.Validate(); err == nil {
		t.Fatalf("expected category error")
	}
}
