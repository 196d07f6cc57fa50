package analyzer

import (
	"fmt"

	apperrors "land-sentinel/internal/errors"
	"land-sentinel/internal/raster"
	"land-sentinel/pkg/models"
)

// Classify combines the reference expected-structure mask and the target
// observed-structure mask under the boundary mask.
//
// The per-pixel rule: a pixel is encroachment iff it lies inside the
// boundary, is not expected structure per the reference, and is built-up in
// the target. It is vacant-deviation iff it lies inside the boundary, is
// expected structure, and is not built-up. Everything else inside the
// boundary is compliant; pixels outside the boundary are excluded from all
// percentages.
func Classify(refStruct, tgtStruct, boundary raster.Mask, opts Options) (Classification, models.ChangeDetection, error) {
	cls := Classification{Boundary: boundary, RefStruct: refStruct, TgtStruct: tgtStruct}
	var det models.ChangeDetection

	if !refStruct.SameSize(tgtStruct) || !refStruct.SameSize(boundary) {
		return cls, det, apperrors.NewDimensionError(
			fmt.Sprintf("mask dimensions diverged: ref %dx%d, tgt %dx%d, boundary %dx%d",
				refStruct.Width(), refStruct.Height(),
				tgtStruct.Width(), tgtStruct.Height(),
				boundary.Width(), boundary.Height()), nil)
	}

	cls.Encroachment = raster.And(boundary, raster.AndNot(tgtStruct, refStruct))
	cls.Vacant = raster.And(boundary, raster.AndNot(refStruct, tgtStruct))
	builtInside := raster.And(boundary, tgtStruct)

	det.TotalPixels = boundary.Width() * boundary.Height()
	det.ApprovedAreaPx = boundary.CountNonZero()
	det.ChangedPixels = cls.Encroachment.CountNonZero()
	det.VacantPixels = cls.Vacant.CountNonZero()
	det.BuiltInsidePx = builtInside.CountNonZero()

	// Explicit divide-by-zero guard: a zero-area boundary yields zero
	// percentages, never NaN and never an error.
	if det.ApprovedAreaPx > 0 {
		det.ChangePercentage = clampPct(float64(det.ChangedPixels) / float64(det.ApprovedAreaPx) * 100.0)
		det.UtilizationPct = clampPct(float64(det.BuiltInsidePx) / float64(det.ApprovedAreaPx) * 100.0)
		det.VacantFraction = float64(det.VacantPixels) / float64(det.ApprovedAreaPx)
		if det.VacantFraction > 1 {
			det.VacantFraction = 1
		}
	}

	encroachRegions := extractRegions(cls.Encroachment, opts.MinRegionAreaPx, models.RegionEncroachment)
	vacantRegions := extractRegions(cls.Vacant, opts.MinRegionAreaPx, models.RegionVacantDeviation)

	cls.Regions = append(encroachRegions, vacantRegions...)
	det.ChangeRegions = cls.Regions
	// The violation count covers encroachment components only; vacant
	// regions are reported but are not encroachment events.
	det.NumChangeRegions = len(encroachRegions)

	det.Severity = severityFor(det.ChangePercentage, opts)
	det.Status = statusFor(det.ChangePercentage, det.VacantFraction, det.UtilizationPct, opts)

	return cls, det, nil
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
