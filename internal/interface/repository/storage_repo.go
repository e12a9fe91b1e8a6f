// internal/interface/repository/storage_repo.go
package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"claimdesk-service/internal/domain/entity"
	"claimdesk-service/internal/domain/repository"
	"claimdesk-service/internal/infrastructure/persistence"
	"claimdesk-service/pkg/logger"
)

// ObjectDocumentStore implements the DocumentStore interface against the
// backend's object storage API
type ObjectDocumentStore struct {
	client *persistence.Client
	bucket string
	logger logger.Logger
}

// NewObjectDocumentStore creates a new object-storage document store
func NewObjectDocumentStore(client *persistence.Client, bucket string, log logger.Logger) repository.DocumentStore {
	return &ObjectDocumentStore{
		client: client,
		bucket: bucket,
		logger: log,
	}
}

// Upload stores the file under <claimId>/<unix-millis>.<ext> and returns the
// public URL of the object
func (s *ObjectDocumentStore) Upload(ctx context.Context, claimID, filename string, content io.Reader) (string, error) {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	key := fmt.Sprintf("%s/%d.%s", claimID, time.Now().UnixMilli(), ext)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("failed to read file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload form: %w", err)
	}

	endpoint := s.client.StorageEndpoint("/object/"+s.bucket+"/"+key, nil)
	_, _, err = s.client.Do(ctx, "uploadDocument", http.MethodPost, endpoint, buf.Bytes(), writer.FormDataContentType(), nil)
	if err != nil {
		var apiErr *entity.APIError
		if errors.As(err, &apiErr) && apiErr.Status != 0 {
			return "", entity.NewUploadFailedError(apiErr.Status)
		}
		return "", err
	}

	publicURL := s.client.PublicObjectURL(s.bucket, key)
	s.logger.Debug("document stored", "claimId", claimID, "key", key)

	return publicURL, nil
}
