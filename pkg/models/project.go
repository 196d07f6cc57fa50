package models

import "time"

// Project statuses.
const (
	ProjectUploaded = "uploaded"
	ProjectAnalyzed = "analyzed"
)

// Project groups one reference raster, one target raster and at most one
// analysis result. It is created on upload and transitions to "analyzed"
// once a result is attached.
type Project struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	CreatedAt      time.Time       `json:"created_at"`
	ReferenceImage string          `json:"reference_image"`
	SatelliteImage string          `json:"satellite_image"`
	PlotID         string          `json:"plot_id,omitempty"`
	Status         string          `json:"status"`
	Result         *AnalysisResult `json:"results,omitempty"`
}

// BoundarySpec tells the pipeline where the legally approved parcel lies.
// An empty polygon with FullFrame set means the whole frame is treated as
// approved. That is an explicit policy for plots without digitized
// boundaries, not a silent fallback.
type BoundarySpec struct {
	Polygon   []Point `json:"polygon,omitempty"`
	FullFrame bool    `json:"full_frame"`
}

// FullFrameBoundary returns the explicit whole-frame boundary.
func FullFrameBoundary() BoundarySpec {
	return BoundarySpec{FullFrame: true}
}

// PolygonBoundary returns a boundary restricted to the given pixel polygon.
func PolygonBoundary(pts []Point) BoundarySpec {
	return BoundarySpec{Polygon: pts}
}

// PlotScale carries the optional economic calibration for a plot. A zero
// ApprovedAreaSqm means the pixels-per-sqm scale is undefined and financial
// figures must be omitted.
type PlotScale struct {
	ApprovedAreaSqm   float64 `json:"approved_area_sqm,omitempty"`
	LeakageRatePerSqm float64 `json:"leakage_rate_per_sqm,omitempty"`
	PenaltyRatePerSqm float64 `json:"penalty_rate_per_sqm,omitempty"`
}
