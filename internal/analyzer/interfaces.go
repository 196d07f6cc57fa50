package analyzer

import (
	"image"

	"land-sentinel/internal/raster"
	"land-sentinel/pkg/models"
)

// Engine runs the full change-detection pipeline: structural extraction on
// both rasters, boundary masking, classification, metrics, economics and
// rendering. Analyze is pure apart from CPU use; identical inputs and options
// yield identical outcomes.
type Engine interface {
	Analyze(ref, tgt image.Image, boundary models.BoundarySpec, opts Options) (*Outcome, error)
	Close() error
}

// StructuralExtractor reduces a color raster to a binary mask of likely
// built-structure pixels.
type StructuralExtractor interface {
	Extract(img image.Image, opts Options) raster.Mask
}

// Renderer produces the review artifacts from rasters and classification
// masks. Purely a function of its inputs.
type Renderer interface {
	Render(ref, tgt image.Image, cls Classification) RenderedArtifacts
}

// Classification bundles the per-pixel masks of one comparison.
type Classification struct {
	Boundary     raster.Mask
	RefStruct    raster.Mask
	TgtStruct    raster.Mask
	Encroachment raster.Mask
	Vacant       raster.Mask
	Regions      []models.ChangeRegion
}

// RenderedArtifacts holds the four review rasters before they are persisted.
type RenderedArtifacts struct {
	Heatmap    image.Image
	Annotated  image.Image
	Mask       image.Image
	Comparison image.Image
}

// Outcome is the in-memory result of one pipeline invocation, before the
// service wraps it into a persisted AnalysisResult.
type Outcome struct {
	Detection       models.ChangeDetection
	ComplianceScore int
	Risk            models.RiskScore
	HealthIndex     float64
	Financial       *models.FinancialImpact
	Artifacts       RenderedArtifacts
}
