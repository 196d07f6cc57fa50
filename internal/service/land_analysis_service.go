package service

import (
	"context"
	"errors"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"land-sentinel/internal/analyzer"
	"land-sentinel/internal/config"
	apperrors "land-sentinel/internal/errors"
	"land-sentinel/internal/logger"
	"land-sentinel/internal/raster"
	"land-sentinel/internal/registry"
	"land-sentinel/internal/reporting"
	"land-sentinel/internal/repository"
	"land-sentinel/internal/storage"
	"land-sentinel/pkg/models"
	"land-sentinel/pkg/validation"
)

type landAnalysisService struct {
	cfg       *config.Config
	repo      repository.ProjectRepository
	engine    analyzer.Engine
	artifacts storage.ArtifactStore
	registry  *registry.Registry
	plotIDs   registry.PlotIDReader
	validator *validation.RasterValidator
	log       *logrus.Entry
}

// New wires the application service from its collaborators. The plot ID
// reader may be nil when OCR is unavailable; plots then rely on the ID given
// at upload time.
func New(
	cfg *config.Config,
	repo repository.ProjectRepository,
	engine analyzer.Engine,
	artifacts storage.ArtifactStore,
	reg *registry.Registry,
	plotIDs registry.PlotIDReader,
) LandAnalysisService {
	return &landAnalysisService{
		cfg:       cfg,
		repo:      repo,
		engine:    engine,
		artifacts: artifacts,
		registry:  reg,
		plotIDs:   plotIDs,
		validator: validation.NewRasterValidator(),
		log:       logger.WithComponent("service"),
	}
}

func (s *landAnalysisService) CreateProject(ctx context.Context, in CreateProjectInput) (*models.Project, error) {
	if len(in.Reference) == 0 || len(in.Satellite) == 0 {
		return nil, apperrors.NewValidationError("both reference and satellite images are required", nil)
	}

	refImg, err := raster.Decode(in.Reference)
	if err != nil {
		return nil, err
	}
	satImg, err := raster.Decode(in.Satellite)
	if err != nil {
		return nil, err
	}
	for _, issue := range s.validator.ValidatePair(refImg, satImg) {
		s.log.WithFields(logrus.Fields{"type": issue.Type, "severity": issue.Severity}).Warn(issue.Message)
	}

	project := &models.Project{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		CreatedAt: time.Now().UTC(),
		PlotID:    strings.TrimSpace(in.PlotID),
		Status:    models.ProjectUploaded,
	}
	if project.Name == "" {
		project.Name = "untitled-plot"
	}

	refPath, err := s.repo.SaveUpload(ctx, project.ID, uploadName("reference", in.ReferenceName), in.Reference)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to store reference image", err)
	}
	satPath, err := s.repo.SaveUpload(ctx, project.ID, uploadName("satellite", in.SatelliteName), in.Satellite)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to store satellite image", err)
	}
	project.ReferenceImage = refPath
	project.SatelliteImage = satPath

	if err := s.repo.Save(ctx, project); err != nil {
		return nil, apperrors.NewStorageError("failed to persist project", err)
	}

	s.log.WithFields(logrus.Fields{"project_id": project.ID, "plot_id": project.PlotID}).Info("project created")
	return project, nil
}

func (s *landAnalysisService) AnalyzeProject(ctx context.Context, projectID string) (*models.AnalysisResult, error) {
	started := time.Now()

	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	refData, err := s.repo.ReadUpload(ctx, project.ReferenceImage)
	if err != nil {
		return nil, apperrors.NewStorageError("reference image unavailable", err)
	}
	satData, err := s.repo.ReadUpload(ctx, project.SatelliteImage)
	if err != nil {
		return nil, apperrors.NewStorageError("satellite image unavailable", err)
	}

	refImg, err := raster.Decode(refData)
	if err != nil {
		return nil, err
	}
	satImg, err := raster.Decode(satData)
	if err != nil {
		return nil, err
	}

	ref, sat := raster.NormalizePair(refImg, satImg, s.cfg.Analysis.MaxImageDimension)
	w, h := ref.Bounds().Dx(), ref.Bounds().Dy()

	boundary, entry := s.resolveBoundary(project, refImg, w, h)
	opts := s.buildOptions(entry)

	outcome, err := s.runAnalysis(ctx, ref, sat, boundary, opts)
	if err != nil {
		return nil, err
	}

	artifacts, err := s.storeArtifacts(ctx, project.ID, outcome.Artifacts)
	if err != nil {
		return nil, err
	}

	result := &models.AnalysisResult{
		ProjectID:             project.ID,
		Timestamp:             time.Now().UTC(),
		ProcessingTimeSec:     time.Since(started).Seconds(),
		ChangeDetection:       outcome.Detection,
		ComplianceScore:       outcome.ComplianceScore,
		Risk:                  outcome.Risk,
		IndustrialHealthIndex: outcome.HealthIndex,
		FinancialImpact:       outcome.Financial,
		Artifacts:             artifacts,
	}

	project.Result = result
	project.Status = models.ProjectAnalyzed
	if err := s.repo.Save(ctx, project); err != nil {
		return nil, apperrors.NewStorageError("failed to persist analysis result", err)
	}

	s.log.WithFields(logrus.Fields{
		"project_id":       project.ID,
		"status":           result.ChangeDetection.Status,
		"severity":         result.ChangeDetection.Severity,
		"change_pct":       result.ChangeDetection.ChangePercentage,
		"compliance_score": result.ComplianceScore,
		"elapsed_sec":      result.ProcessingTimeSec,
	}).Info("analysis completed")
	return result, nil
}

func (s *landAnalysisService) GetProject(ctx context.Context, id string) (*models.Project, error) {
	return s.getProject(ctx, id)
}

func (s *landAnalysisService) ListProjects(ctx context.Context) ([]*models.Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list projects", err)
	}
	return projects, nil
}

func (s *landAnalysisService) BuildReport(ctx context.Context, id string) (*models.AuditReport, error) {
	project, err := s.getProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.Result == nil {
		return nil, apperrors.NewValidationError("project has not been analyzed yet", nil)
	}
	entry, _ := s.registry.Get(project.PlotID)
	return reporting.BuildAuditReport(project, entry), nil
}

func (s *landAnalysisService) getProject(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, apperrors.NewNotFoundError("project not found", err)
		}
		return nil, apperrors.NewStorageError("failed to load project", err)
	}
	return project, nil
}

// resolveBoundary decides where the approved parcel lies in the working
// raster. Registry geometry wins; without it the whole frame is treated as
// approved, which is an explicit policy rather than a silent default.
func (s *landAnalysisService) resolveBoundary(project *models.Project, refImg image.Image, w, h int) (models.BoundarySpec, registry.Entry) {
	entry, ok := s.lookupEntry(project, refImg)
	if !ok || len(entry.Polygon) < 3 {
		return models.FullFrameBoundary(), entry
	}
	return models.PolygonBoundary(entry.PixelPolygon(w, h)), entry
}

func (s *landAnalysisService) lookupEntry(project *models.Project, refImg image.Image) (registry.Entry, bool) {
	if project.PlotID != "" {
		if entry, ok := s.registry.Get(project.PlotID); ok {
			return entry, true
		}
		// Uploaded IDs can be hand-typed; tolerate small typos.
		return s.registry.Match(project.PlotID)
	}

	// No ID supplied: try to read the printed identifier off the plot map.
	if s.plotIDs == nil || s.registry.Len() == 0 {
		return registry.Entry{}, false
	}
	plotID, err := s.plotIDs.ReadPlotID(refImg)
	if err != nil {
		s.log.WithError(err).Debug("plot ID extraction failed, proceeding without registry match")
		return registry.Entry{}, false
	}
	entry, ok := s.registry.Match(plotID)
	if ok {
		project.PlotID = entry.PlotID
		s.log.WithFields(logrus.Fields{"project_id": project.ID, "plot_id": entry.PlotID}).Info("plot identified from reference map")
	}
	return entry, ok
}

func (s *landAnalysisService) buildOptions(entry registry.Entry) analyzer.Options {
	opts := analyzer.DefaultOptions().
		WithMinRegionArea(s.cfg.Analysis.MinRegionAreaPx).
		WithEconomicRates(s.cfg.Analysis.LeakageRatePerSqm, s.cfg.Analysis.PenaltyRatePerSqm)
	opts.Currency = s.cfg.Analysis.Currency
	if entry.ApprovedAreaSqm > 0 {
		opts = opts.WithPlotScale(entry.ApprovedAreaSqm)
	}
	return opts
}

// runAnalysis executes the pipeline under the configured deadline. The
// engine itself is compute-only, so the deadline is enforced around it.
func (s *landAnalysisService) runAnalysis(ctx context.Context, ref, sat image.Image, boundary models.BoundarySpec, opts analyzer.Options) (*analyzer.Outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Server.AnalysisTimeout)
	defer cancel()

	type reply struct {
		outcome *analyzer.Outcome
		err     error
	}
	done := make(chan reply, 1)
	go func() {
		outcome, err := s.engine.Analyze(ref, sat, boundary, opts)
		done <- reply{outcome, err}
	}()

	select {
	case r := <-done:
		return r.outcome, r.err
	case <-ctx.Done():
		return nil, apperrors.NewTimeoutError("analysis deadline exceeded", ctx.Err())
	}
}

func (s *landAnalysisService) storeArtifacts(ctx context.Context, projectID string, rendered analyzer.RenderedArtifacts) (models.Artifacts, error) {
	var out models.Artifacts
	items := []struct {
		name string
		img  image.Image
		dst  *string
	}{
		{"heatmap", rendered.Heatmap, &out.Heatmap},
		{"annotated", rendered.Annotated, &out.Annotated},
		{"mask", rendered.Mask, &out.Mask},
		{"comparison", rendered.Comparison, &out.Comparison},
	}
	for _, item := range items {
		ref, err := s.artifacts.PutArtifact(ctx, projectID, item.name, item.img)
		if err != nil {
			return models.Artifacts{}, err
		}
		*item.dst = ref
	}
	return out, nil
}

// uploadName builds the stored filename for one side of the pair. The role
// prefix keeps a reference and satellite upload that share a client-side
// name from landing on the same path, and keeps hostile names like
// project.json away from the persisted record.
func uploadName(role, given string) string {
	base := filepath.Base(strings.TrimSpace(given))
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "upload.png"
	}
	return role + "_" + base
}
