package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"claimdesk-service/internal/domain/entity"
	"claimdesk-service/internal/usecase"
	"claimdesk-service/pkg/logger"
	"claimdesk-service/pkg/metrics"
)

var _ = Describe("ClaimService", func() {
	var (
		svc       *usecase.ClaimService
		mockRepo  *mockClaimRepository
		mockStore *mockDocumentStore
		ctx       context.Context
	)

	newService := func() *usecase.ClaimService {
		m := metrics.NewMetricsWith("test", prometheus.NewRegistry())
		return usecase.NewClaimService(mockRepo, mockStore, logger.NewLogger("error"), m)
	}

	validInput := func() entity.ClaimInput {
		return entity.ClaimInput{
			PolicyNumber:      "POL-42",
			PolicyholderName:  "Test Holder",
			PolicyholderEmail: "holder@example.com",
			IncidentDate:      "2024-03-01",
			ClaimType:         "auto",
			Description:       "Fender bender",
			Amount:            decimal.NewFromInt(500),
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		mockRepo = &mockClaimRepository{}
		mockStore = &mockDocumentStore{}
	})

	Describe("Create", func() {
		Context("when the input is valid", func() {
			It("should stamp id, submission date and pending status", func() {
				var captured *entity.Claim
				mockRepo.createFn = func(_ context.Context, c *entity.Claim) (*entity.Claim, error) {
					captured = c
					return c, nil
				}

				svc = newService()
				before := time.Now().UTC()
				claim, err := svc.Create(ctx, validInput())

				Expect(err).NotTo(HaveOccurred())
				Expect(claim.ID).NotTo(BeEmpty())
				Expect(claim.Status).To(Equal(entity.StatusPending))

				submitted, parseErr := time.Parse(time.RFC3339, claim.SubmissionDate)
				Expect(parseErr).NotTo(HaveOccurred())
				Expect(submitted).To(BeTemporally(">=", before.Truncate(time.Second)))

				Expect(captured).NotTo(BeNil())
				Expect(captured.ID).To(Equal(claim.ID))
			})

			It("should generate a distinct id per claim", func() {
				mockRepo.createFn = func(_ context.Context, c *entity.Claim) (*entity.Claim, error) {
					return c, nil
				}

				svc = newService()
				first, err := svc.Create(ctx, validInput())
				Expect(err).NotTo(HaveOccurred())
				second, err := svc.Create(ctx, validInput())
				Expect(err).NotTo(HaveOccurred())

				Expect(first.ID).NotTo(Equal(second.ID))
			})
		})

		Context("when the input is invalid", func() {
			It("should reject missing required fields with per-field messages", func() {
				svc = newService()

				input := validInput()
				input.PolicyNumber = ""
				input.PolicyholderEmail = "not-an-email"

				_, err := svc.Create(ctx, input)

				var apiErr *entity.APIError
				Expect(errors.As(err, &apiErr)).To(BeTrue())
				Expect(apiErr.Code).To(Equal(entity.CodeValidation))
				Expect(apiErr.Fields).To(HaveKey("PolicyNumber"))
				Expect(apiErr.Fields).To(HaveKey("PolicyholderEmail"))
			})

			It("should reject a non-positive amount", func() {
				svc = newService()

				input := validInput()
				input.Amount = decimal.Zero

				_, err := svc.Create(ctx, input)

				var apiErr *entity.APIError
				Expect(errors.As(err, &apiErr)).To(BeTrue())
				Expect(apiErr.Code).To(Equal(entity.CodeValidation))
				Expect(apiErr.Fields).To(HaveKey("Amount"))
			})

			It("should not touch the repository", func() {
				called := false
				mockRepo.createFn = func(_ context.Context, c *entity.Claim) (*entity.Claim, error) {
					called = true
					return c, nil
				}

				svc = newService()
				_, err := svc.Create(ctx, entity.ClaimInput{})

				Expect(err).To(HaveOccurred())
				Expect(called).To(BeFalse())
			})
		})
	})

	Describe("UpdateStatus", func() {
		It("should allow any valid status regardless of the current one", func() {
			var sent map[string]interface{}
			mockRepo.updateFn = func(_ context.Context, id string, fields map[string]interface{}) (*entity.Claim, error) {
				sent = fields
				return &entity.Claim{ID: id, Status: fields["status"].(entity.ClaimStatus)}, nil
			}

			svc = newService()
			claim, err := svc.UpdateStatus(ctx, "claim-1", entity.StatusPending)

			Expect(err).NotTo(HaveOccurred())
			Expect(claim.Status).To(Equal(entity.StatusPending))
			Expect(sent).To(HaveLen(1))
		})

		It("should reject an unknown status without calling the repository", func() {
			called := false
			mockRepo.updateFn = func(_ context.Context, id string, fields map[string]interface{}) (*entity.Claim, error) {
				called = true
				return nil, nil
			}

			svc = newService()
			_, err := svc.UpdateStatus(ctx, "claim-1", entity.ClaimStatus("archived"))

			var apiErr *entity.APIError
			Expect(errors.As(err, &apiErr)).To(BeTrue())
			Expect(apiErr.Code).To(Equal(entity.CodeValidation))
			Expect(called).To(BeFalse())
		})
	})

	Describe("UpdateNotes", func() {
		It("should send only the notes field", func() {
			var sent map[string]interface{}
			mockRepo.updateFn = func(_ context.Context, id string, fields map[string]interface{}) (*entity.Claim, error) {
				sent = fields
				return &entity.Claim{ID: id, Notes: fields["notes"].(string)}, nil
			}

			svc = newService()
			claim, err := svc.UpdateNotes(ctx, "claim-1", "called the adjuster")

			Expect(err).NotTo(HaveOccurred())
			Expect(claim.Notes).To(Equal("called the adjuster"))
			Expect(sent).To(Equal(map[string]interface{}{"notes": "called the adjuster"}))
		})
	})

	Describe("UploadDocument", func() {
		It("should upload, append the public URL and persist the list", func() {
			mockStore.uploadFn = func(_ context.Context, claimID, filename string, _ io.Reader) (string, error) {
				return "https://storage.example.com/object/public/oscar/" + claimID + "/1." + filename, nil
			}
			mockRepo.findFn = func(_ context.Context, id string) (*entity.Claim, error) {
				return &entity.Claim{ID: id, Documents: []string{"existing-url"}}, nil
			}
			var savedDocs []string
			mockRepo.updateFn = func(_ context.Context, id string, fields map[string]interface{}) (*entity.Claim, error) {
				savedDocs = fields["documents"].([]string)
				return &entity.Claim{ID: id, Documents: savedDocs}, nil
			}

			svc = newService()
			url, err := svc.UploadDocument(ctx, "claim-1", "photo.jpg", strings.NewReader("bytes"))

			Expect(err).NotTo(HaveOccurred())
			Expect(url).To(ContainSubstring("claim-1"))
			Expect(savedDocs).To(Equal([]string{"existing-url", url}))
		})

		It("should not touch the claim when the upload fails", func() {
			mockStore.uploadFn = func(_ context.Context, _, _ string, _ io.Reader) (string, error) {
				return "", entity.NewUploadFailedError(500)
			}
			findCalled := false
			mockRepo.findFn = func(_ context.Context, id string) (*entity.Claim, error) {
				findCalled = true
				return nil, nil
			}

			svc = newService()
			_, err := svc.UploadDocument(ctx, "claim-1", "photo.jpg", strings.NewReader("bytes"))

			var apiErr *entity.APIError
			Expect(errors.As(err, &apiErr)).To(BeTrue())
			Expect(apiErr.Code).To(Equal(entity.CodeUploadFailed))
			Expect(findCalled).To(BeFalse())
		})

		It("should surface a write-back failure as a partial-failure error", func() {
			mockStore.uploadFn = func(_ context.Context, _, _ string, _ io.Reader) (string, error) {
				return "https://storage.example.com/u", nil
			}
			mockRepo.findFn = func(_ context.Context, id string) (*entity.Claim, error) {
				return &entity.Claim{ID: id}, nil
			}
			mockRepo.updateFn = func(_ context.Context, id string, fields map[string]interface{}) (*entity.Claim, error) {
				return nil, &entity.APIError{Message: "backend returned status 500", Status: 500}
			}

			svc = newService()
			_, err := svc.UploadDocument(ctx, "claim-1", "photo.jpg", strings.NewReader("bytes"))

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("document stored but claim not updated"))
		})

		It("should not lose URLs when two uploads for the same claim race", func() {
			// the mock repo emulates the backend's replace-by-id semantics:
			// without the per-claim lock the second write would drop the
			// first upload's URL
			var (
				stateMu sync.Mutex
				state   = entity.Claim{ID: "claim-1", Documents: []string{}}
				counter int32
			)

			mockStore.uploadFn = func(_ context.Context, claimID, filename string, _ io.Reader) (string, error) {
				stateMu.Lock()
				counter++
				n := counter
				stateMu.Unlock()
				return fmt.Sprintf("https://storage.example.com/%s/%d", claimID, n), nil
			}
			mockRepo.findFn = func(_ context.Context, id string) (*entity.Claim, error) {
				stateMu.Lock()
				defer stateMu.Unlock()
				snapshot := state
				snapshot.Documents = append([]string{}, state.Documents...)
				return &snapshot, nil
			}
			mockRepo.updateFn = func(_ context.Context, id string, fields map[string]interface{}) (*entity.Claim, error) {
				stateMu.Lock()
				defer stateMu.Unlock()
				state.Documents = fields["documents"].([]string)
				result := state
				return &result, nil
			}

			svc = newService()
			results := svc.UploadDocuments(ctx, "claim-1", []usecase.UploadFile{
				{Name: "one.pdf", Content: strings.NewReader("1")},
				{Name: "two.pdf", Content: strings.NewReader("2")},
			})

			Expect(results).To(HaveLen(2))
			for _, result := range results {
				Expect(result.Err).NotTo(HaveOccurred())
			}
			Expect(state.Documents).To(HaveLen(2))
		})

		It("should let sibling uploads finish when one file fails", func() {
			mockStore.uploadFn = func(_ context.Context, claimID, filename string, _ io.Reader) (string, error) {
				if filename == "bad.pdf" {
					return "", entity.NewUploadFailedError(500)
				}
				return "https://storage.example.com/" + filename, nil
			}
			mockRepo.findFn = func(_ context.Context, id string) (*entity.Claim, error) {
				return &entity.Claim{ID: id}, nil
			}
			mockRepo.updateFn = func(_ context.Context, id string, fields map[string]interface{}) (*entity.Claim, error) {
				return &entity.Claim{ID: id}, nil
			}

			svc = newService()
			results := svc.UploadDocuments(ctx, "claim-1", []usecase.UploadFile{
				{Name: "bad.pdf", Content: strings.NewReader("1")},
				{Name: "good.pdf", Content: strings.NewReader("2")},
			})

			byName := map[string]usecase.UploadResult{}
			for _, result := range results {
				byName[result.Filename] = result
			}
			Expect(byName["bad.pdf"].Err).To(HaveOccurred())
			Expect(byName["good.pdf"].Err).NotTo(HaveOccurred())
			Expect(byName["good.pdf"].URL).NotTo(BeEmpty())
		})
	})
})
