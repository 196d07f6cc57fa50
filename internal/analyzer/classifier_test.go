package analyzer

import (
	"testing"

	apperrors "land-sentinel/internal/errors"
	"land-sentinel/internal/raster"
	"land-sentinel/pkg/models"
)

func fullMask(w, h int) raster.Mask {
	m := raster.NewMask(w, h)
	for i := range m.Pix {
		m.Pix[i] = 255
	}
	return m
}

func TestClassify_IdenticalMasksAreCompliant(t *testing.T) {
	opts := DefaultOptions().WithMinRegionArea(1)
	ref := raster.NewMask(20, 20)
	fillBlock(ref, 5, 5, 15, 15)
	tgt := ref.Clone()

	_, det, err := Classify(ref, tgt, fullMask(20, 20), opts)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if det.ChangePercentage != 0 {
		t.Errorf("Expected zero change, got %v%%", det.ChangePercentage)
	}
	if det.Status != models.StatusCompliant {
		t.Errorf("Expected compliant status, got %s", det.Status)
	}
	if det.Severity != models.SeverityLow {
		t.Errorf("Expected low severity, got %s", det.Severity)
	}
	if det.NumChangeRegions != 0 {
		t.Errorf("Expected no change regions, got %d", det.NumChangeRegions)
	}
	if score := complianceScore(det.ChangePercentage, opts); score != 100 {
		t.Errorf("Expected perfect score, got %d", score)
	}
}

func TestClassify_EncroachmentInsideBoundary(t *testing.T) {
	opts := DefaultOptions().WithMinRegionArea(1)
	ref := raster.NewMask(20, 20)
	tgt := raster.NewMask(20, 20)
	fillBlock(tgt, 0, 0, 10, 10) // 100 px of new structure

	_, det, err := Classify(ref, tgt, fullMask(20, 20), opts)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if det.ApprovedAreaPx != 400 {
		t.Errorf("Expected 400 approved pixels, got %d", det.ApprovedAreaPx)
	}
	if det.ChangedPixels != 100 {
		t.Errorf("Expected 100 encroaching pixels, got %d", det.ChangedPixels)
	}
	if det.ChangePercentage != 25 {
		t.Errorf("Expected 25%% change, got %v", det.ChangePercentage)
	}
	if det.Severity != models.SeverityCritical {
		t.Errorf("Expected critical severity at 25%%, got %s", det.Severity)
	}
	if det.Status != models.StatusViolation {
		t.Errorf("Expected violation status, got %s", det.Status)
	}
	if det.NumChangeRegions != 1 {
		t.Errorf("Expected one encroachment region, got %d", det.NumChangeRegions)
	}
}

func TestClassify_StructureOutsideBoundaryIgnored(t *testing.T) {
	opts := DefaultOptions().WithMinRegionArea(1)
	ref := raster.NewMask(20, 20)
	tgt := raster.NewMask(20, 20)
	fillBlock(tgt, 12, 12, 18, 18) // structure entirely outside the boundary

	boundary := raster.NewMask(20, 20)
	fillBlock(boundary, 0, 0, 10, 20) // left half approved

	_, det, err := Classify(ref, tgt, boundary, opts)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if det.ChangedPixels != 0 {
		t.Errorf("Off-parcel structure must not count as encroachment, got %d pixels", det.ChangedPixels)
	}
	if det.Status != models.StatusCompliant {
		t.Errorf("Expected compliant status, got %s", det.Status)
	}
}

func TestClassify_VacantDeviation(t *testing.T) {
	opts := DefaultOptions().WithMinRegionArea(1)
	ref := fullMask(20, 20) // entire plot expected to be built
	tgt := raster.NewMask(20, 20)

	_, det, err := Classify(ref, tgt, fullMask(20, 20), opts)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if det.VacantPixels != 400 {
		t.Errorf("Expected all 400 pixels vacant, got %d", det.VacantPixels)
	}
	if det.VacantFraction != 1 {
		t.Errorf("Expected vacant fraction 1, got %v", det.VacantFraction)
	}
	if det.Status != models.StatusVacant {
		t.Errorf("Expected vacant status, got %s", det.Status)
	}
	if det.ChangedPixels != 0 {
		t.Errorf("Missing structure is not encroachment, got %d changed pixels", det.ChangedPixels)
	}
	// Vacant regions are reported but not counted as encroachment events.
	if det.NumChangeRegions != 0 {
		t.Errorf("Expected zero encroachment regions, got %d", det.NumChangeRegions)
	}
	if len(det.ChangeRegions) != 1 {
		t.Errorf("Expected the vacant region to be reported, got %d regions", len(det.ChangeRegions))
	}
}

func TestClassify_ZeroAreaBoundary(t *testing.T) {
	opts := DefaultOptions().WithMinRegionArea(1)
	ref := raster.NewMask(20, 20)
	tgt := fullMask(20, 20)

	_, det, err := Classify(ref, tgt, raster.NewMask(20, 20), opts)
	if err != nil {
		t.Fatalf("Degenerate boundary must not error: %v", err)
	}

	if det.ApprovedAreaPx != 0 {
		t.Errorf("Expected zero approved area, got %d", det.ApprovedAreaPx)
	}
	if det.ChangePercentage != 0 || det.UtilizationPct != 0 || det.VacantFraction != 0 {
		t.Errorf("Expected all ratios zero, got change=%v util=%v vacant=%v",
			det.ChangePercentage, det.UtilizationPct, det.VacantFraction)
	}
}

func TestClassify_DimensionMismatch(t *testing.T) {
	opts := DefaultOptions()
	_, _, err := Classify(raster.NewMask(10, 10), raster.NewMask(12, 10), fullMask(10, 10), opts)
	if err == nil {
		t.Fatal("Expected dimension error")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeDimension) {
		t.Errorf("Expected dimension error type, got %v", err)
	}
}

func TestClassify_TwoEncroachmentBlobs(t *testing.T) {
	opts := DefaultOptions().WithMinRegionArea(1)
	ref := raster.NewMask(30, 30)
	tgt := raster.NewMask(30, 30)
	fillBlock(tgt, 2, 2, 8, 8)
	fillBlock(tgt, 20, 20, 27, 27)

	_, det, err := Classify(ref, tgt, fullMask(30, 30), opts)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if det.NumChangeRegions != 2 {
		t.Errorf("Expected 2 encroachment regions, got %d", det.NumChangeRegions)
	}
}
