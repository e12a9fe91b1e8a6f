package repository

import (
	"context"

	"claimdesk-service/internal/domain/entity"
)

// ClaimRepository defines the interface for claim storage operations
type ClaimRepository interface {
	List(ctx context.Context) ([]entity.Claim, error)
	FindByID(ctx context.Context, id string) (*entity.Claim, error)
	Create(ctx context.Context, claim *entity.Claim) (*entity.Claim, error)
	// Update sends a partial replacement for the record matched by id.
	// Only the keys present in fields are changed; the merge with the
	// existing record happens at the backend, never in this layer.
	Update(ctx context.Context, id string, fields map[string]interface{}) (*entity.Claim, error)
}
