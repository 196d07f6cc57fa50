package models

// UploadResponse is returned after a successful image pair upload.
type UploadResponse struct {
	Message string   `json:"message"`
	Project *Project `json:"project"`
}

// ErrorResponse is the uniform error envelope of the API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AuditReport is the structured, audit-ready record generated from one
// analysis result.
type AuditReport struct {
	ReportID    string `json:"report_id"`
	GeneratedAt string `json:"generated_at"`
	ProjectID   string `json:"project_id"`

	Plot struct {
		PlotID          string  `json:"plot_id"`
		Name            string  `json:"name,omitempty"`
		ApprovedAreaSqm float64 `json:"approved_area_sqm,omitempty"`
	} `json:"plot"`

	Compliance struct {
		Status             Status   `json:"status"`
		Severity           Severity `json:"severity"`
		RiskLevel          string   `json:"risk_level"`
		EncroachmentPct    float64  `json:"encroachment_pct"`
		UtilizationPct     float64  `json:"utilization_pct"`
		ComplianceScore    int      `json:"compliance_score"`
		RecommendedActions []string `json:"recommended_actions"`
	} `json:"compliance"`

	Economics struct {
		EstimatedRevenueLeakage *float64 `json:"estimated_revenue_leakage,omitempty"`
		RecoverablePenalty      *float64 `json:"recoverable_penalty,omitempty"`
		IndustrialHealthIndex   float64  `json:"industrial_health_index"`
	} `json:"economics"`
}
