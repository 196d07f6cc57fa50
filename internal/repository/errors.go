package repository

import "errors"

var (
	// ErrProjectNotFound indicates the requested project does not exist
	ErrProjectNotFound = errors.New("project not found")

	// ErrUploadNotFound indicates a stored upload is missing on disk
	ErrUploadNotFound = errors.New("uploaded image not found")

	// ErrRepositoryUnavailable indicates the backing store is unavailable
	ErrRepositoryUnavailable = errors.New("repository unavailable")
)
