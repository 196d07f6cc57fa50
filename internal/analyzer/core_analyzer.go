package analyzer

import (
	"fmt"
	"image"

	apperrors "land-sentinel/internal/errors"
	"land-sentinel/internal/logger"
	"land-sentinel/internal/raster"
	"land-sentinel/pkg/models"
)

// engine implements Engine and orchestrates the pipeline stages:
// extract → mask → classify → measure → render.
type engine struct {
	extractor StructuralExtractor
	renderer  Renderer
	pool      *WorkerPool
}

// NewEngine creates the change-detection engine with default components.
func NewEngine() Engine {
	pool := NewWorkerPool(0)
	pool.Start()
	return &engine{
		extractor: NewStructuralExtractor(),
		renderer:  NewRenderer(),
		pool:      pool,
	}
}

// Analyze runs one full comparison. Inputs must already be normalized to a
// shared resolution; a size mismatch here is a normalizer bug and aborts the
// invocation rather than being silently corrected.
func (e *engine) Analyze(ref, tgt image.Image, boundary models.BoundarySpec, opts Options) (*Outcome, error) {
	rb, tb := ref.Bounds(), tgt.Bounds()
	if rb.Dx() != tb.Dx() || rb.Dy() != tb.Dy() {
		return nil, apperrors.NewDimensionError(
			fmt.Sprintf("raster pair not normalized: ref %dx%d vs target %dx%d",
				rb.Dx(), rb.Dy(), tb.Dx(), tb.Dy()), nil)
	}
	w, h := rb.Dx(), rb.Dy()

	boundaryMask := BoundaryMask(w, h, boundary)

	var refStruct, tgtStruct raster.Mask
	e.pool.Run(
		func() { refStruct = e.extractor.Extract(ref, opts) },
		func() { tgtStruct = e.extractor.Extract(tgt, opts) },
	)

	cls, det, err := Classify(refStruct, tgtStruct, boundaryMask, opts)
	if err != nil {
		return nil, err
	}

	if det.ApprovedAreaPx == 0 {
		logger.WithComponent("analyzer").Warn("degenerate boundary: approved area is zero")
	}

	score := complianceScore(det.ChangePercentage, opts)
	outcome := &Outcome{
		Detection:       det,
		ComplianceScore: score,
		Risk:            riskFor(det.ChangePercentage, opts),
		HealthIndex:     healthIndex(score, det.VacantFraction, opts),
		Financial:       financialImpact(det, opts),
		Artifacts:       e.renderer.Render(ref, tgt, cls),
	}

	logger.WithComponent("analyzer").WithField("change_pct", det.ChangePercentage).
		WithField("status", det.Status).
		WithField("regions", det.NumChangeRegions).
		Debug("analysis complete")

	return outcome, nil
}

// Close releases the worker pool.
func (e *engine) Close() error {
	e.pool.Close()
	return nil
}
