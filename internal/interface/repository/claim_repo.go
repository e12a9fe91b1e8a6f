// internal/interface/repository/claim_repo.go
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"claimdesk-service/internal/domain/entity"
	"claimdesk-service/internal/domain/repository"
	"claimdesk-service/internal/infrastructure/persistence"
	"claimdesk-service/pkg/logger"
)

// Claims are rows of a PostgREST-style collection: point lookups use the
// id=eq.<value> filter and writes ask for the changed representation back.
var representationHeader = map[string]string{"Prefer": "return=representation"}

// RestClaimRepository implements the ClaimRepository interface against the
// claims REST collection
type RestClaimRepository struct {
	client *persistence.Client
	logger logger.Logger
}

// NewRestClaimRepository creates a new REST-backed claim repository
func NewRestClaimRepository(client *persistence.Client, log logger.Logger) repository.ClaimRepository {
	return &RestClaimRepository{
		client: client,
		logger: log,
	}
}

// List fetches the entire claims collection in one call
func (r *RestClaimRepository) List(ctx context.Context) ([]entity.Claim, error) {
	data, _, err := r.client.Do(ctx, "listClaims", http.MethodGet, r.client.RestEndpoint("/claims", nil), nil, "", nil)
	if err != nil {
		return nil, err
	}

	var claims []entity.Claim
	if err := json.Unmarshal(data, &claims); err != nil {
		return nil, fmt.Errorf("failed to decode claims: %w", err)
	}

	return claims, nil
}

// FindByID fetches a claim by equality filter on id
func (r *RestClaimRepository) FindByID(ctx context.Context, id string) (*entity.Claim, error) {
	params := url.Values{}
	params.Set("id", "eq."+id)

	data, _, err := r.client.Do(ctx, "getClaimById", http.MethodGet, r.client.RestEndpoint("/claims", params), nil, "", nil)
	if err != nil {
		return nil, err
	}

	var claims []entity.Claim
	if err := json.Unmarshal(data, &claims); err != nil {
		return nil, fmt.Errorf("failed to decode claim: %w", err)
	}

	if len(claims) == 0 {
		return nil, entity.NewNotFoundError(id)
	}

	return &claims[0], nil
}

// Create sends the full record, id included, as a new row
func (r *RestClaimRepository) Create(ctx context.Context, claim *entity.Claim) (*entity.Claim, error) {
	body, err := json.Marshal(claim)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal claim: %w", err)
	}

	data, _, err := r.client.Do(ctx, "createClaim", http.MethodPost, r.client.RestEndpoint("/claims", nil), body, "application/json", representationHeader)
	if err != nil {
		return nil, err
	}

	created := *claim
	var rows []entity.Claim
	if err := json.Unmarshal(data, &rows); err == nil && len(rows) > 0 {
		created = rows[0]
		// the id is client-assigned and authoritative
		created.ID = claim.ID
	}

	r.logger.Debug("claim created", "claimId", created.ID)
	return &created, nil
}

// Update sends a partial replacement for the record matched by id
func (r *RestClaimRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*entity.Claim, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal update: %w", err)
	}

	params := url.Values{}
	params.Set("id", "eq."+id)

	data, _, err := r.client.Do(ctx, "updateClaim", http.MethodPatch, r.client.RestEndpoint("/claims", params), body, "application/json", representationHeader)
	if err != nil {
		return nil, err
	}

	var rows []entity.Claim
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode updated claim: %w", err)
	}

	if len(rows) == 0 {
		return nil, entity.NewNotFoundError(id)
	}

	return &rows[0], nil
}
