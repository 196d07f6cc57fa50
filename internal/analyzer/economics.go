package analyzer

import (
	"math"

	"land-sentinel/pkg/models"
)

// financialImpact translates the physical metrics into currency estimates
// with linear per-sqm rates. The pixels-per-sqm scale comes from the plot's
// approved area in sqm divided by its approved area in pixels; when that
// scale is undefined the function returns nil so the absence stays
// observable, instead of fabricating a zero.
func financialImpact(det models.ChangeDetection, opts Options) *models.FinancialImpact {
	if opts.ApprovedAreaSqm <= 0 || det.ApprovedAreaPx == 0 {
		return nil
	}
	sqmPerPx := opts.ApprovedAreaSqm / float64(det.ApprovedAreaPx)

	leakage := float64(det.VacantPixels) * sqmPerPx * opts.LeakageRatePerSqm
	penalty := float64(det.ChangedPixels) * sqmPerPx * opts.PenaltyRatePerSqm

	return &models.FinancialImpact{
		EstimatedRevenueLeakage: round2(leakage),
		RecoverablePenalty:      round2(penalty),
		Currency:                opts.Currency,
	}
}

// healthIndex blends the compliance score with a utilization measure
// (1 − vacant fraction) into a 0-100 composite, weights configurable.
func healthIndex(score int, vacantFraction float64, opts Options) float64 {
	utilization := (1.0 - vacantFraction) * 100.0
	h := float64(score)*opts.ComplianceWeight + utilization*opts.UtilizationWeight
	if h < 0 {
		h = 0
	}
	if h > 100 {
		h = 100
	}
	return round1(h)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
