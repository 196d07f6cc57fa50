package validation

import "image"

// RasterThresholds defines configurable limits for input imagery.
type RasterThresholds struct {
	MinWidth       int
	MinHeight      int
	MinTotalPixels int

	// MaxScaleRatio is the largest tolerated linear scale difference between
	// a reference map and a satellite capture before alignment quality
	// becomes suspect.
	MaxScaleRatio float64
}

// DefaultRasterThresholds returns limits suited to plot maps and satellite
// tiles. Captures smaller than 64px on a side rarely survive normalization
// with usable structure.
func DefaultRasterThresholds() RasterThresholds {
	return RasterThresholds{
		MinWidth:       64,
		MinHeight:      64,
		MinTotalPixels: 64 * 64,
		MaxScaleRatio:  4.0,
	}
}

// Issue is one problem found with an input raster. Severity is "error",
// "warning" or "info"; only errors should block an analysis.
type Issue struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// RasterValidator checks input imagery before analysis.
type RasterValidator struct {
	thresholds RasterThresholds
}

// NewRasterValidator creates a validator with default thresholds.
func NewRasterValidator() *RasterValidator {
	return &RasterValidator{thresholds: DefaultRasterThresholds()}
}

// NewRasterValidatorWithThresholds creates a validator with custom limits.
func NewRasterValidatorWithThresholds(t RasterThresholds) *RasterValidator {
	return &RasterValidator{thresholds: t}
}

// ValidateRaster checks a single decoded image.
func (v *RasterValidator) ValidateRaster(img image.Image, role string) []Issue {
	var issues []Issue
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if w <= 0 || h <= 0 {
		return append(issues, Issue{
			Type:     "empty_raster",
			Message:  role + " image has zero area",
			Severity: "error",
		})
	}
	if w < v.thresholds.MinWidth || h < v.thresholds.MinHeight {
		issues = append(issues, Issue{
			Type:     "low_resolution",
			Message:  role + " image is below the recommended minimum resolution",
			Severity: "warning",
		})
	} else if w*h < v.thresholds.MinTotalPixels {
		issues = append(issues, Issue{
			Type:     "low_resolution",
			Message:  role + " image has too few pixels for reliable extraction",
			Severity: "warning",
		})
	}
	return issues
}

// ValidatePair checks a reference and satellite image together, including
// their relative scale.
func (v *RasterValidator) ValidatePair(reference, satellite image.Image) []Issue {
	issues := v.ValidateRaster(reference, "reference")
	issues = append(issues, v.ValidateRaster(satellite, "satellite")...)

	rb, sb := reference.Bounds(), satellite.Bounds()
	if rb.Dx() > 0 && rb.Dy() > 0 && sb.Dx() > 0 && sb.Dy() > 0 {
		rx := scaleRatio(rb.Dx(), sb.Dx())
		ry := scaleRatio(rb.Dy(), sb.Dy())
		if rx > v.thresholds.MaxScaleRatio || ry > v.thresholds.MaxScaleRatio {
			issues = append(issues, Issue{
				Type:     "scale_mismatch",
				Message:  "reference and satellite resolutions differ enough to degrade alignment",
				Severity: "warning",
			})
		}
	}
	return issues
}

func scaleRatio(a, b int) float64 {
	if a > b {
		return float64(a) / float64(b)
	}
	return float64(b) / float64(a)
}
