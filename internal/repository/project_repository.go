package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"land-sentinel/pkg/models"
)

const projectFile = "project.json"

// FileProjectRepository stores each project as a directory holding its
// uploaded imagery plus a project.json record.
type FileProjectRepository struct {
	baseDir string
	mu      sync.RWMutex
}

// NewFileProjectRepository creates the base directory if needed.
func NewFileProjectRepository(baseDir string) (*FileProjectRepository, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, err
	}
	return &FileProjectRepository{baseDir: baseDir}, nil
}

func (r *FileProjectRepository) projectDir(id string) string {
	return filepath.Join(r.baseDir, filepath.Base(id))
}

func (r *FileProjectRepository) Save(_ context.Context, project *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dir := r.projectDir(project.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(project, "", "  ")
	if err != nil {
		return err
	}

	// Write-then-rename keeps the record intact if the process dies mid-write.
	tmp := filepath.Join(dir, projectFile+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, filepath.Join(dir, projectFile))
}

func (r *FileProjectRepository) Get(_ context.Context, id string) (*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.readProject(r.projectDir(id))
}

func (r *FileProjectRepository) List(_ context.Context) ([]*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		return nil, ErrRepositoryUnavailable
	}

	projects := make([]*models.Project, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		p, err := r.readProject(filepath.Join(r.baseDir, e.Name()))
		if err != nil {
			// Skip directories without a valid record rather than failing the listing.
			continue
		}
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
	return projects, nil
}

func (r *FileProjectRepository) SaveUpload(_ context.Context, projectID, filename string, data []byte) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dir := r.projectDir(projectID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, sanitizeFilename(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (r *FileProjectRepository) ReadUpload(_ context.Context, path string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, ErrUploadNotFound
	}
	base, err := filepath.Abs(r.baseDir)
	if err != nil {
		return nil, ErrRepositoryUnavailable
	}
	if !strings.HasPrefix(abs, base+string(filepath.Separator)) {
		return nil, ErrUploadNotFound
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrUploadNotFound
		}
		return nil, err
	}
	return data, nil
}

func (r *FileProjectRepository) readProject(dir string) (*models.Project, error) {
	data, err := os.ReadFile(filepath.Join(dir, projectFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	var p models.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "upload.bin"
	}
	return name
}
