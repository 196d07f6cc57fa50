package repository

import (
	"context"

	"land-sentinel/pkg/models"
)

// ProjectRepository defines persistence for projects and their uploads.
type ProjectRepository interface {
	// Save persists the project record, creating or overwriting it
	Save(ctx context.Context, project *models.Project) error

	// Get retrieves a project by ID, returning ErrProjectNotFound if absent
	Get(ctx context.Context, id string) (*models.Project, error)

	// List returns all projects, newest first
	List(ctx context.Context) ([]*models.Project, error)

	// SaveUpload stores raw image bytes for a project and returns the path
	SaveUpload(ctx context.Context, projectID, filename string, data []byte) (string, error)

	// ReadUpload loads previously stored image bytes by path
	ReadUpload(ctx context.Context, path string) ([]byte, error)
}
