package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"land-sentinel/pkg/models"
)

func newTestRepo(t *testing.T) *FileProjectRepository {
	t.Helper()
	repo, err := NewFileProjectRepository(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	return repo
}

func TestSaveAndGetProject(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := &models.Project{
		ID:        "proj-1",
		Name:      "Urla Plot 42",
		PlotID:    "CSIDC-1042",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Status:    models.ProjectUploaded,
	}
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := repo.Get(ctx, "proj-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != p.Name || got.PlotID != p.PlotID || got.Status != p.Status {
		t.Errorf("Roundtrip mismatch: %+v", got)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Expected ErrProjectNotFound, got %v", err)
	}
}

func TestSave_OverwritesExisting(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := &models.Project{ID: "proj-1", Status: models.ProjectUploaded, CreatedAt: time.Now().UTC()}
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	p.Status = models.ProjectAnalyzed
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("Re-save failed: %v", err)
	}

	got, err := repo.Get(ctx, "proj-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != models.ProjectAnalyzed {
		t.Errorf("Expected analyzed status after overwrite, got %s", got.Status)
	}
}

func TestList_NewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i, id := range []string{"old", "mid", "new"} {
		p := &models.Project{
			ID:        id,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Status:    models.ProjectUploaded,
		}
		if err := repo.Save(ctx, p); err != nil {
			t.Fatalf("Save %s failed: %v", id, err)
		}
	}

	projects, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(projects) != 3 {
		t.Fatalf("Expected 3 projects, got %d", len(projects))
	}
	if projects[0].ID != "new" || projects[2].ID != "old" {
		t.Errorf("Expected newest-first ordering, got %s, %s, %s",
			projects[0].ID, projects[1].ID, projects[2].ID)
	}
}

func TestUploadRoundtrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	data := []byte{0x89, 0x50, 0x4E, 0x47, 1, 2, 3}
	path, err := repo.SaveUpload(ctx, "proj-1", "satellite.png", data)
	if err != nil {
		t.Fatalf("SaveUpload failed: %v", err)
	}

	got, err := repo.ReadUpload(ctx, path)
	if err != nil {
		t.Fatalf("ReadUpload failed: %v", err)
	}
	if string(got) != string(data) {
		t.Error("Upload bytes did not survive the roundtrip")
	}
}

func TestSaveUpload_StripsPathComponents(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	path, err := repo.SaveUpload(ctx, "proj-1", "../../escape.png", []byte("x"))
	if err != nil {
		t.Fatalf("SaveUpload failed: %v", err)
	}
	if _, err := repo.ReadUpload(ctx, path); err != nil {
		t.Errorf("Sanitized upload should be readable within the base dir: %v", err)
	}
}

func TestReadUpload_RejectsOutsidePaths(t *testing.T) {
	repo := newTestRepo(t)

	if _, err := repo.ReadUpload(context.Background(), "/etc/hostname"); !errors.Is(err, ErrUploadNotFound) {
		t.Errorf("Expected ErrUploadNotFound for a path outside the base dir, got %v", err)
	}
}
