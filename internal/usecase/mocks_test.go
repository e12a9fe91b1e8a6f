package usecase_test

import (
	"context"
	"io"

	"claimdesk-service/internal/domain/entity"
)

type mockClaimRepository struct {
	listFn   func(ctx context.Context) ([]entity.Claim, error)
	findFn   func(ctx context.Context, id string) (*entity.Claim, error)
	createFn func(ctx context.Context, claim *entity.Claim) (*entity.Claim, error)
	updateFn func(ctx context.Context, id string, fields map[string]interface{}) (*entity.Claim, error)
}

func (m *mockClaimRepository) List(ctx context.Context) ([]entity.Claim, error) {
	return m.listFn(ctx)
}

func (m *mockClaimRepository) FindByID(ctx context.Context, id string) (*entity.Claim, error) {
	return m.findFn(ctx, id)
}

func (m *mockClaimRepository) Create(ctx context.Context, claim *entity.Claim) (*entity.Claim, error) {
	return m.createFn(ctx, claim)
}

func (m *mockClaimRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*entity.Claim, error) {
	return m.updateFn(ctx, id, fields)
}

type mockDocumentStore struct {
	uploadFn func(ctx context.Context, claimID, filename string, content io.Reader) (string, error)
}

func (m *mockDocumentStore) Upload(ctx context.Context, claimID, filename string, content io.Reader) (string, error) {
	return m.uploadFn(ctx, claimID, filename, content)
}
