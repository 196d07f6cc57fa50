package models

import "time"

// Severity buckets derived from the encroachment percentage.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
)

// Status is the overall classification of a plot after analysis.
type Status string

const (
	StatusCompliant         Status = "compliant"
	StatusVacant            Status = "vacant"
	StatusViolation         Status = "violation"
	StatusUnderConstruction Status = "under_construction"
	StatusFullyConstructed  Status = "fully_constructed"
)

// RegionLabel classifies a connected change region.
type RegionLabel string

const (
	RegionEncroachment    RegionLabel = "encroachment"
	RegionVacantDeviation RegionLabel = "vacant_deviation"
)

// Point is a pixel-space coordinate. Boundary polygons are expressed in the
// working resolution of the analysis raster pair.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned bounding box in pixel coordinates, max exclusive.
type Rect struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

// Width returns the horizontal extent in pixels.
func (r Rect) Width() int { return r.MaxX - r.MinX }

// Height returns the vertical extent in pixels.
func (r Rect) Height() int { return r.MaxY - r.MinY }

// ChangeRegion is one connected component of anomalous pixels, recomputed on
// every analysis run and never persisted as mutable state.
type ChangeRegion struct {
	Label    RegionLabel `json:"label"`
	AreaPx   int         `json:"area_px"`
	Bounds   Rect        `json:"bounds"`
	Centroid Point       `json:"centroid"`
}

// ChangeDetection holds the raw classification numbers of one comparison.
type ChangeDetection struct {
	TotalPixels      int     `json:"total_pixels"`
	ApprovedAreaPx   int     `json:"approved_area_px"`
	ChangedPixels    int     `json:"changed_pixels"`
	VacantPixels     int     `json:"vacant_pixels"`
	BuiltInsidePx    int     `json:"built_inside_px"`
	ChangePercentage float64 `json:"change_percentage"`
	UtilizationPct   float64 `json:"utilization_pct"`
	VacantFraction   float64 `json:"vacant_fraction"`

	Severity         Severity       `json:"severity"`
	Status           Status         `json:"status"`
	NumChangeRegions int            `json:"num_change_regions"`
	ChangeRegions    []ChangeRegion `json:"change_regions"`
}

// FinancialImpact carries currency estimates derived from the physical
// metrics. It is omitted entirely when no pixels-per-sqm scale is known; a
// missing scale must stay observable rather than collapse to zero.
type FinancialImpact struct {
	EstimatedRevenueLeakage float64 `json:"estimated_revenue_leakage"`
	RecoverablePenalty      float64 `json:"recoverable_penalty"`
	Currency                string  `json:"currency"`
}

// RiskScore is the legal-risk annotation attached to an analysis.
type RiskScore struct {
	Level string `json:"level"`
	Score int    `json:"score"`
}

// Artifacts references the four rendered rasters produced for human review.
// Values are opaque identifiers assigned by the artifact store (paths or URLs).
type Artifacts struct {
	Heatmap    string `json:"heatmap"`
	Annotated  string `json:"annotated"`
	Mask       string `json:"mask"`
	Comparison string `json:"comparison"`
}

// AnalysisResult is the immutable output of one comparison. A re-analysis
// produces a new result; an existing result is never patched.
type AnalysisResult struct {
	ProjectID         string    `json:"project_id"`
	Timestamp         time.Time `json:"timestamp"`
	ProcessingTimeSec float64   `json:"processing_time_sec"`

	ChangeDetection ChangeDetection `json:"change_detection"`

	ComplianceScore       int              `json:"compliance_score"`
	Risk                  RiskScore        `json:"risk"`
	IndustrialHealthIndex float64          `json:"industrial_health_index"`
	FinancialImpact       *FinancialImpact `json:"financial_impact,omitempty"`

	Artifacts Artifacts `json:"outputs"`
}
