package analyzer

import (
	"testing"

	"land-sentinel/internal/raster"
)

func TestDilateGrowsSinglePixel(t *testing.T) {
	m := raster.NewMask(9, 9)
	m.SetOn(4, 4)

	d := dilate(m, 3, 1)
	if got := d.CountNonZero(); got != 9 {
		t.Errorf("Expected a 3x3 block after one dilation, got %d pixels", got)
	}
	if !d.On(3, 3) || !d.On(5, 5) {
		t.Error("Expected neighbors of the seed to be set")
	}
}

func TestErodeRemovesThinFeatures(t *testing.T) {
	// A 1px-wide vertical line cannot survive a 3x3 erosion.
	m := raster.NewMask(9, 9)
	for y := 0; y < 9; y++ {
		m.SetOn(4, y)
	}
	e := erode(m, 3, 1)
	if got := e.CountNonZero(); got != 0 {
		t.Errorf("Expected thin line to be eroded away, got %d pixels", got)
	}
}

func TestCloseMaskFillsSmallGap(t *testing.T) {
	// Solid 5x5 block with a one-pixel hole in the middle.
	m := raster.NewMask(11, 11)
	for y := 3; y < 8; y++ {
		for x := 3; x < 8; x++ {
			m.SetOn(x, y)
		}
	}
	m.SetOff(5, 5)

	closed := closeMask(m, 3, 1)
	if !closed.On(5, 5) {
		t.Error("Expected closing to fill the interior hole")
	}
}

func TestOpenMaskDropsSpeckle(t *testing.T) {
	m := raster.NewMask(11, 11)
	// A solid block plus an isolated speckle pixel.
	for y := 2; y < 8; y++ {
		for x := 2; x < 8; x++ {
			m.SetOn(x, y)
		}
	}
	m.SetOn(10, 10)

	opened := openMask(m, 3, 1)
	if opened.On(10, 10) {
		t.Error("Expected opening to remove the isolated speckle")
	}
	if !opened.On(4, 4) {
		t.Error("Expected the interior of the block to survive opening")
	}
}
