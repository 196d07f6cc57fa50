package analyzer

import (
	"testing"

	"land-sentinel/internal/raster"
	"land-sentinel/pkg/models"
)

func fillBlock(m raster.Mask, x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			m.SetOn(x, y)
		}
	}
}

func TestExtractRegions_TwoSeparateBlobs(t *testing.T) {
	m := raster.NewMask(20, 20)
	fillBlock(m, 1, 1, 5, 5)    // 16 px
	fillBlock(m, 10, 10, 16, 14) // 24 px

	regions := extractRegions(m, 1, models.RegionEncroachment)
	if len(regions) != 2 {
		t.Fatalf("Expected 2 regions, got %d", len(regions))
	}

	first := regions[0]
	if first.AreaPx != 16 {
		t.Errorf("Expected first region area 16, got %d", first.AreaPx)
	}
	if first.Bounds != (models.Rect{MinX: 1, MinY: 1, MaxX: 5, MaxY: 5}) {
		t.Errorf("Unexpected first region bounds: %+v", first.Bounds)
	}
	if first.Centroid.X != 2.5 || first.Centroid.Y != 2.5 {
		t.Errorf("Expected centroid (2.5, 2.5), got (%v, %v)", first.Centroid.X, first.Centroid.Y)
	}

	second := regions[1]
	if second.AreaPx != 24 {
		t.Errorf("Expected second region area 24, got %d", second.AreaPx)
	}
	if second.Label != models.RegionEncroachment {
		t.Errorf("Expected encroachment label, got %s", second.Label)
	}
}

func TestExtractRegions_MinAreaFilter(t *testing.T) {
	m := raster.NewMask(20, 20)
	fillBlock(m, 0, 0, 2, 2)   // 4 px, below threshold
	fillBlock(m, 5, 5, 10, 10) // 25 px

	regions := extractRegions(m, 10, models.RegionVacantDeviation)
	if len(regions) != 1 {
		t.Fatalf("Expected small blob to be filtered, got %d regions", len(regions))
	}
	if regions[0].AreaPx != 25 {
		t.Errorf("Expected surviving region area 25, got %d", regions[0].AreaPx)
	}
}

func TestExtractRegions_DiagonalPixelsAreSeparate(t *testing.T) {
	// 4-connectivity: diagonal contact does not join components.
	m := raster.NewMask(10, 10)
	m.SetOn(3, 3)
	m.SetOn(4, 4)

	regions := extractRegions(m, 1, models.RegionEncroachment)
	if len(regions) != 2 {
		t.Errorf("Expected diagonal pixels to form 2 regions, got %d", len(regions))
	}
}

func TestExtractRegions_EmptyMask(t *testing.T) {
	regions := extractRegions(raster.NewMask(16, 16), 1, models.RegionEncroachment)
	if len(regions) != 0 {
		t.Errorf("Expected no regions on an empty mask, got %d", len(regions))
	}
}

func TestExtractRegions_DeterministicOrder(t *testing.T) {
	m := raster.NewMask(20, 20)
	fillBlock(m, 12, 2, 16, 6)
	fillBlock(m, 2, 12, 6, 16)

	a := extractRegions(m, 1, models.RegionEncroachment)
	b := extractRegions(m, 1, models.RegionEncroachment)
	if len(a) != 2 || len(b) != 2 {
		t.Fatalf("Expected 2 regions in both runs, got %d and %d", len(a), len(b))
	}
	// Scan order: the upper blob comes first every time.
	if a[0].Bounds.MinY != 2 || b[0].Bounds.MinY != 2 {
		t.Error("Expected the upper blob to be emitted first in scan order")
	}
}
