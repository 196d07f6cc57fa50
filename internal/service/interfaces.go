package service

import (
	"context"

	"land-sentinel/pkg/models"
)

// CreateProjectInput carries everything needed to register a new monitoring
// project. Reference is the approved plot map, Satellite the current capture.
type CreateProjectInput struct {
	Name          string
	PlotID        string
	Reference     []byte
	ReferenceName string
	Satellite     []byte
	SatelliteName string
}

// LandAnalysisService is the application-facing API: project lifecycle,
// compliance analysis and audit reporting.
type LandAnalysisService interface {
	// CreateProject validates and stores an image pair as a new project
	CreateProject(ctx context.Context, in CreateProjectInput) (*models.Project, error)

	// AnalyzeProject runs the comparison pipeline and persists the result
	AnalyzeProject(ctx context.Context, projectID string) (*models.AnalysisResult, error)

	// GetProject returns a single project with any attached result
	GetProject(ctx context.Context, id string) (*models.Project, error)

	// ListProjects returns all projects, newest first
	ListProjects(ctx context.Context) ([]*models.Project, error)

	// BuildReport generates the audit report for an analyzed project
	BuildReport(ctx context.Context, id string) (*models.AuditReport, error)
}
