package container

import (
	"fmt"
	"net/http"

	"land-sentinel/internal/analyzer"
	"land-sentinel/internal/config"
	"land-sentinel/internal/registry"
	"land-sentinel/internal/repository"
	"land-sentinel/internal/service"
	"land-sentinel/internal/storage"
	"land-sentinel/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config   *config.Config
	engine   analyzer.Engine
	repo     repository.ProjectRepository
	registry *registry.Registry
	service  service.LandAnalysisService
	handler  http.Handler
}

// NewContainer builds the dependency graph from configuration.
func NewContainer(cfg *config.Config) (*Container, error) {
	repo, err := repository.NewFileProjectRepository(cfg.Paths.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize project repository: %w", err)
	}

	reg, err := registry.Load(cfg.Paths.RegistryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load plot registry: %w", err)
	}

	artifacts, serveResults, err := buildArtifactStore(cfg)
	if err != nil {
		return nil, err
	}

	engine := analyzer.NewEngine()
	fetcher := storage.NewHTTPImageFetcher(cfg.Server.MaxUploadBytes)
	svc := service.New(cfg, repo, engine, artifacts, reg, registry.NewPlotIDReader())
	handler := transport.NewHandler(svc, fetcher, cfg, serveResults)

	return &Container{
		config:   cfg,
		engine:   engine,
		repo:     repo,
		registry: reg,
		service:  svc,
		handler:  handler,
	}, nil
}

func buildArtifactStore(cfg *config.Config) (storage.ArtifactStore, string, error) {
	switch cfg.Storage.Backend {
	case "azure":
		store, err := storage.NewAzureArtifactStore(
			cfg.Storage.AzureAccount, cfg.Storage.AzureKey, cfg.Storage.AzureContainer)
		if err != nil {
			return nil, "", fmt.Errorf("failed to initialize azure storage: %w", err)
		}
		return store, "", nil
	default:
		return storage.NewFileArtifactStore(cfg.Paths.ResultsDir, "/results"), cfg.Paths.ResultsDir, nil
	}
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Close releases analyzer resources.
func (c *Container) Close() error {
	return c.engine.Close()
}
