package reporting

import (
	"fmt"
	"time"

	"land-sentinel/internal/registry"
	"land-sentinel/pkg/models"
)

// BuildAuditReport assembles the audit-ready record for an analyzed project.
// The registry entry may be the zero value when the plot was never matched.
func BuildAuditReport(project *models.Project, entry registry.Entry) *models.AuditReport {
	result := project.Result
	now := time.Now().UTC()

	report := &models.AuditReport{
		ReportID:    fmt.Sprintf("RPT-%s-%d", project.ID, now.Unix()),
		GeneratedAt: now.Format(time.RFC3339),
		ProjectID:   project.ID,
	}

	report.Plot.PlotID = project.PlotID
	report.Plot.Name = entry.Name
	report.Plot.ApprovedAreaSqm = entry.ApprovedAreaSqm

	cd := result.ChangeDetection
	report.Compliance.Status = cd.Status
	report.Compliance.Severity = cd.Severity
	report.Compliance.RiskLevel = result.Risk.Level
	report.Compliance.EncroachmentPct = cd.ChangePercentage
	report.Compliance.UtilizationPct = cd.UtilizationPct
	report.Compliance.ComplianceScore = result.ComplianceScore
	report.Compliance.RecommendedActions = RecommendActions(result.Risk.Level, cd.Status)

	if result.FinancialImpact != nil {
		leakage := result.FinancialImpact.EstimatedRevenueLeakage
		penalty := result.FinancialImpact.RecoverablePenalty
		report.Economics.EstimatedRevenueLeakage = &leakage
		report.Economics.RecoverablePenalty = &penalty
	}
	report.Economics.IndustrialHealthIndex = result.IndustrialHealthIndex

	return report
}

// RecommendActions maps a risk level and occupancy status to the
// administrative steps officials should take next.
func RecommendActions(riskLevel string, status models.Status) []string {
	var actions []string

	switch riskLevel {
	case "CRITICAL":
		actions = append(actions,
			"Issue Immediate Stop-Work Notice",
			"Schedule Field Inspection (High Priority)",
			"Legal Escalation for Demolition")
	case "MAJOR_VIOLATION":
		actions = append(actions,
			"Issue Warning Notice",
			"Schedule Field Inspection",
			"Review Lease Agreement Conditions")
	case "MODERATE_RISK":
		actions = append(actions,
			"Notify Allottee to Rectify Boundary",
			"Monitor via Satellite Next Cycle")
	case "LOW_RISK":
		actions = append(actions, "Monitor Only")
	}

	if status == models.StatusVacant {
		actions = append(actions, "Check Non-Utilization Penalty Applicability")
	}
	if len(actions) == 0 {
		actions = append(actions, "Compliance Verified - No Action Needed")
	}
	return actions
}
