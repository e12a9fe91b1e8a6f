package usecase

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"claimdesk-service/internal/domain/entity"
	"claimdesk-service/internal/domain/repository"
	"claimdesk-service/pkg/logger"
	"claimdesk-service/pkg/metrics"
)

// ClaimService handles claim lifecycle operations: create, status and notes
// updates, and document attachment. Document appends are serialized per claim
// so concurrent uploads for the same claim cannot overwrite each other's URL.
type ClaimService struct {
	claimRepo repository.ClaimRepository
	documents repository.DocumentStore
	validate  *validator.Validate
	logger    logger.Logger
	metrics   *metrics.Metrics

	mu         sync.Mutex
	claimLocks map[string]*sync.Mutex
}

// NewClaimService creates a new claim service
func NewClaimService(
	claimRepo repository.ClaimRepository,
	documents repository.DocumentStore,
	log logger.Logger,
	m *metrics.Metrics,
) *ClaimService {
	validate := validator.New()
	validate.RegisterCustomTypeFunc(decimalAsFloat, decimal.Decimal{})

	return &ClaimService{
		claimRepo:  claimRepo,
		documents:  documents,
		validate:   validate,
		logger:     log,
		metrics:    m,
		claimLocks: make(map[string]*sync.Mutex),
	}
}

// decimalAsFloat lets validator apply numeric rules to decimal amounts
func decimalAsFloat(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// ListPage fetches the full collection and reduces it to the requested page
func (s *ClaimService) ListPage(ctx context.Context, filters entity.ClaimFilters, sortParams entity.SortParams, pagination entity.PaginationParams) (*entity.ClaimsPage, error) {
	claims, err := s.claimRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	page := BuildClaimsPage(claims, filters, sortParams, pagination)
	return &page, nil
}

// Get fetches a single claim by id
func (s *ClaimService) Get(ctx context.Context, id string) (*entity.Claim, error) {
	return s.claimRepo.FindByID(ctx, id)
}

// Create validates the input, stamps identity, submission date and the
// pending status, and persists the new claim
func (s *ClaimService) Create(ctx context.Context, input entity.ClaimInput) (*entity.Claim, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, s.validationError(err)
	}

	claim := &entity.Claim{
		ID:                uuid.NewString(),
		PolicyNumber:      input.PolicyNumber,
		PolicyholderName:  input.PolicyholderName,
		PolicyholderEmail: input.PolicyholderEmail,
		PolicyholderPhone: input.PolicyholderPhone,
		IncidentDate:      input.IncidentDate,
		SubmissionDate:    time.Now().UTC().Format(time.RFC3339),
		Status:            entity.StatusPending,
		ClaimType:         input.ClaimType,
		Description:       input.Description,
		Amount:            input.Amount,
	}

	created, err := s.claimRepo.Create(ctx, claim)
	if err != nil {
		return nil, err
	}

	s.metrics.ClaimsCreated.Inc()
	s.logger.Info("claim created", "claimId", created.ID, "claimType", created.ClaimType)

	return created, nil
}

// UpdateStatus sets the claim status. Any status may be set to any other
// status here; which transitions are offered is a presentation concern
// (entity.AllowedTransitions).
func (s *ClaimService) UpdateStatus(ctx context.Context, id string, status entity.ClaimStatus) (*entity.Claim, error) {
	if !status.Valid() {
		return nil, entity.NewValidationError(map[string]string{
			"status": fmt.Sprintf("unknown status %q", status),
		})
	}

	claim, err := s.claimRepo.Update(ctx, id, map[string]interface{}{"status": status})
	if err != nil {
		return nil, err
	}

	s.logger.Info("claim status updated", "claimId", id, "status", status)
	return claim, nil
}

// UpdateNotes replaces the claim's notes with the saved draft
func (s *ClaimService) UpdateNotes(ctx context.Context, id, notes string) (*entity.Claim, error) {
	claim, err := s.claimRepo.Update(ctx, id, map[string]interface{}{"notes": notes})
	if err != nil {
		return nil, err
	}

	s.logger.Info("claim notes updated", "claimId", id)
	return claim, nil
}

// UploadDocument stores one file and appends its public URL to the claim's
// document list. The read-modify-write of the list runs under the claim's
// lock; if the write-back fails the object stays stored without a document
// entry and the error surfaces to the caller.
func (s *ClaimService) UploadDocument(ctx context.Context, claimID, filename string, content io.Reader) (string, error) {
	publicURL, err := s.documents.Upload(ctx, claimID, filename, content)
	if err != nil {
		return "", err
	}

	lock := s.lockFor(claimID)
	lock.Lock()
	defer lock.Unlock()

	claim, err := s.claimRepo.FindByID(ctx, claimID)
	if err != nil {
		return "", fmt.Errorf("document stored but claim lookup failed: %w", err)
	}

	documents := append(append([]string{}, claim.Documents...), publicURL)
	if _, err := s.claimRepo.Update(ctx, claimID, map[string]interface{}{"documents": documents}); err != nil {
		return "", fmt.Errorf("document stored but claim not updated: %w", err)
	}

	s.metrics.DocumentsUploaded.Inc()
	s.logger.Info("document attached", "claimId", claimID, "url", publicURL)

	return publicURL, nil
}

// UploadFile is one file in an upload batch
type UploadFile struct {
	Name    string
	Content io.Reader
}

// UploadResult is the per-file outcome of an upload batch
type UploadResult struct {
	Filename string `json:"filename"`
	URL      string `json:"url,omitempty"`
	Err      error  `json:"-"`
}

// UploadDocuments uploads a batch of files for one claim concurrently. Each
// file succeeds or fails on its own: a failure does not cancel its siblings
// and does not roll back URLs already appended.
func (s *ClaimService) UploadDocuments(ctx context.Context, claimID string, files []UploadFile) []UploadResult {
	results := make([]UploadResult, len(files))

	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file UploadFile) {
			defer wg.Done()
			url, err := s.UploadDocument(ctx, claimID, file.Name, file.Content)
			results[i] = UploadResult{Filename: file.Name, URL: url, Err: err}
		}(i, file)
	}
	wg.Wait()

	return results
}

// lockFor returns the mutex serializing document updates for one claim
func (s *ClaimService) lockFor(claimID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.claimLocks[claimID]
	if !ok {
		lock = &sync.Mutex{}
		s.claimLocks[claimID] = lock
	}
	return lock
}

// validationError converts validator failures into the normalized error
// shape with the field messages the submission form shows
func (s *ClaimService) validationError(err error) error {
	fields := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range validationErrors {
			fields[fieldErr.Field()] = fieldMessage(fieldErr)
		}
	} else {
		fields["input"] = err.Error()
	}

	return entity.NewValidationError(fields)
}

func fieldMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldErr.Field())
	case "email":
		return "must be a valid email address"
	case "gt":
		return "must be greater than zero"
	default:
		return fmt.Sprintf("failed %s validation", fieldErr.Tag())
	}
}
