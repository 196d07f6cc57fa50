package storage

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"

	apperrors "land-sentinel/internal/errors"
)

// ArtifactStore persists rendered analysis artifacts and returns a reference
// (a URL path or blob URL) that clients can use to retrieve them.
type ArtifactStore interface {
	PutArtifact(ctx context.Context, projectID, name string, img image.Image) (string, error)
}

type fileArtifactStore struct {
	baseDir string
	baseURL string
}

// NewFileArtifactStore writes artifacts as PNG files under baseDir/<project>/
// and returns references rooted at baseURL (typically "/results").
func NewFileArtifactStore(baseDir, baseURL string) ArtifactStore {
	return &fileArtifactStore{baseDir: baseDir, baseURL: baseURL}
}

func (s *fileArtifactStore) PutArtifact(_ context.Context, projectID, name string, img image.Image) (string, error) {
	dir := filepath.Join(s.baseDir, projectID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperrors.NewStorageError("failed to create artifact directory", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", apperrors.NewStorageError("failed to encode artifact", err)
	}

	filename := name + ".png"
	if err := os.WriteFile(filepath.Join(dir, filename), buf.Bytes(), 0o644); err != nil {
		return "", apperrors.NewStorageError("failed to write artifact", err)
	}
	return s.baseURL + "/" + projectID + "/" + filename, nil
}
