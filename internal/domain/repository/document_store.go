package repository

import (
	"context"
	"io"
)

// DocumentStore defines the interface for binary document storage
type DocumentStore interface {
	// Upload stores the file content under a key derived from the claim id,
	// the current timestamp and the file extension, and returns the public
	// URL of the stored object.
	Upload(ctx context.Context, claimID, filename string, content io.Reader) (string, error)
}
