package analyzer

import (
	"math"

	"land-sentinel/pkg/models"
)

// severityFor buckets the change percentage into a severity tier. The cut
// points are configuration, not per-call magic.
func severityFor(changePct float64, opts Options) models.Severity {
	switch {
	case changePct >= opts.CriticalThreshold:
		return models.SeverityCritical
	case changePct >= opts.MajorThreshold:
		return models.SeverityMajor
	case changePct >= opts.ModerateThreshold:
		return models.SeverityModerate
	default:
		return models.SeverityLow
	}
}

// complianceScore maps the change percentage to a 0-100 score, higher is
// better. The penalty is linear up to the moderate threshold and gains a
// quadratic term past it, so large deviations crater the score
// disproportionately.
func complianceScore(changePct float64, opts Options) int {
	penalty := changePct
	if changePct > opts.ModerateThreshold {
		over := changePct - opts.ModerateThreshold
		penalty += opts.QuadraticPenaltyGain * over * over
	}
	score := int(math.Round(100.0 - penalty))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// statusFor derives the status label from the classification numbers.
// Precedence, in order: vacant-deviation dominance, encroachment above the
// moderate threshold, exact match with the reference, then a construction
// label from how much of the approved footprint shows structure.
// Deterministic given its inputs; no hidden state.
func statusFor(changePct, vacantFraction, utilizationPct float64, opts Options) models.Status {
	if vacantFraction >= opts.VacantDominanceFraction {
		return models.StatusVacant
	}
	if changePct > opts.ModerateThreshold {
		return models.StatusViolation
	}
	if changePct == 0 && vacantFraction == 0 {
		return models.StatusCompliant
	}
	if utilizationPct < opts.VacantUtilizationMax {
		return models.StatusVacant
	}
	if utilizationPct < opts.UnderConstructionMax {
		return models.StatusUnderConstruction
	}
	return models.StatusFullyConstructed
}

// riskFor maps the change percentage to a legal-risk level and score.
func riskFor(changePct float64, opts Options) models.RiskScore {
	switch {
	case changePct >= opts.CriticalThreshold:
		return models.RiskScore{Level: "CRITICAL", Score: 100}
	case changePct >= opts.MajorThreshold:
		return models.RiskScore{Level: "MAJOR_VIOLATION", Score: 75}
	case changePct >= opts.ModerateThreshold:
		return models.RiskScore{Level: "MODERATE_RISK", Score: 40}
	case changePct > 0.5:
		return models.RiskScore{Level: "LOW_RISK", Score: 10}
	default:
		return models.RiskScore{Level: "COMPLIANT", Score: 0}
	}
}
