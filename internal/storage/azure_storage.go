package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	apperrors "land-sentinel/internal/errors"
)

type azureArtifactStore struct {
	client    *azblob.Client
	container string
	baseURL   string
}

// NewAzureArtifactStore uploads artifacts as PNG blobs to the given container
// using shared key credentials.
func NewAzureArtifactStore(accountName, accountKey, container string) (ArtifactStore, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, err
	}

	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net", accountName)
	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, credential, nil)
	if err != nil {
		return nil, err
	}

	return &azureArtifactStore{
		client:    client,
		container: container,
		baseURL:   serviceURL + "/" + container,
	}, nil
}

func (s *azureArtifactStore) PutArtifact(ctx context.Context, projectID, name string, img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", apperrors.NewStorageError("failed to encode artifact", err)
	}

	blobName := projectID + "/" + name + ".png"
	if _, err := s.client.UploadStream(ctx, s.container, blobName, &buf, nil); err != nil {
		return "", apperrors.NewStorageError("blob upload failed", err)
	}
	return s.baseURL + "/" + blobName, nil
}
