package analyzer

import (
	"image"
	"image/color"
	"testing"

	"land-sentinel/internal/raster"
	"land-sentinel/pkg/models"
)

func testClassification() Classification {
	boundary := raster.NewMask(20, 20)
	fillBlock(boundary, 0, 0, 16, 20) // right edge outside the parcel

	ref := raster.NewMask(20, 20)
	fillBlock(ref, 2, 2, 6, 6) // expected structure

	tgt := raster.NewMask(20, 20)
	fillBlock(tgt, 10, 10, 14, 14) // built elsewhere instead

	enc := raster.And(boundary, raster.AndNot(tgt, ref))
	vac := raster.And(boundary, raster.AndNot(ref, tgt))

	return Classification{
		Boundary:     boundary,
		RefStruct:    ref,
		TgtStruct:    tgt,
		Encroachment: enc,
		Vacant:       vac,
		Regions: []models.ChangeRegion{{
			Label:  models.RegionEncroachment,
			AreaPx: 16,
			Bounds: models.Rect{MinX: 10, MinY: 10, MaxX: 14, MaxY: 14},
		}},
	}
}

func nrgbaAt(t *testing.T, img image.Image, x, y int) color.NRGBA {
	t.Helper()
	n, ok := img.(*image.NRGBA)
	if !ok {
		t.Fatalf("Expected NRGBA artifact, got %T", img)
	}
	return n.NRGBAAt(x, y)
}

func TestRenderHeatmap_PixelClasses(t *testing.T) {
	r := NewRenderer()
	tgt := createPlotImage(20, 20)
	art := r.Render(createPlotImage(20, 20), tgt, testClassification())

	// Encroached pixel renders red.
	if got := nrgbaAt(t, art.Heatmap, 12, 12); got != colorEncroachment {
		t.Errorf("Expected encroachment color at (12,12), got %v", got)
	}
	// Vacant-deviation pixel renders amber.
	if got := nrgbaAt(t, art.Heatmap, 3, 3); got != colorVacant {
		t.Errorf("Expected vacant color at (3,3), got %v", got)
	}
	// Open ground inside the parcel renders slate.
	if got := nrgbaAt(t, art.Heatmap, 8, 3); got != colorGround {
		t.Errorf("Expected ground color at (8,3), got %v", got)
	}
	// Outside the boundary renders black.
	if got := nrgbaAt(t, art.Heatmap, 18, 3); got != colorOutside {
		t.Errorf("Expected outside color at (18,3), got %v", got)
	}
}

func TestRenderMask_BinaryChangeMask(t *testing.T) {
	r := NewRenderer()
	cls := testClassification()
	art := r.Render(createPlotImage(20, 20), createPlotImage(20, 20), cls)

	gray, ok := art.Mask.(*image.Gray)
	if !ok {
		t.Fatalf("Expected grayscale mask artifact, got %T", art.Mask)
	}
	if gray.GrayAt(12, 12).Y != 255 {
		t.Error("Expected encroached pixel to be white in the mask")
	}
	if gray.GrayAt(3, 3).Y != 0 {
		t.Error("Expected vacant pixel to be absent from the change mask")
	}
}

func TestRenderComparison_SideBySide(t *testing.T) {
	r := NewRenderer()
	art := r.Render(createPlotImage(20, 20), createPlotImage(20, 20), testClassification())

	b := art.Comparison.Bounds()
	if b.Dx() != 40 || b.Dy() != 20 {
		t.Errorf("Expected 40x20 comparison strip, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRenderAnnotated_RegionBoxAndWash(t *testing.T) {
	r := NewRenderer()
	tgt := createPlotImage(20, 20)
	art := r.Render(createPlotImage(20, 20), tgt, testClassification())

	// The bounding box outline is drawn in the encroachment color.
	if got := nrgbaAt(t, art.Annotated, 10, 10); got != colorEncroachment {
		t.Errorf("Expected region box corner in encroachment color, got %v", got)
	}
	// Encroached interior pixels are washed toward red but keep some of the
	// underlying tone.
	interior := nrgbaAt(t, art.Annotated, 12, 12)
	if interior.R <= testGround.R {
		t.Errorf("Expected red wash to raise the red channel, got %v", interior)
	}
}

func TestRender_Deterministic(t *testing.T) {
	r := NewRenderer()
	cls := testClassification()
	ref, tgt := createPlotImage(20, 20), createPlotImage(20, 20)

	a := r.Render(ref, tgt, cls)
	b := r.Render(ref, tgt, cls)

	ai := a.Heatmap.(*image.NRGBA)
	bi := b.Heatmap.(*image.NRGBA)
	for i := range ai.Pix {
		if ai.Pix[i] != bi.Pix[i] {
			t.Fatal("Heatmap differs between identical renders")
		}
	}
}
