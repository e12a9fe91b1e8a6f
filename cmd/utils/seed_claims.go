// Seeds a handful of sample claims through the service stack. Useful for
// exercising a fresh backend before pointing the dashboard at it.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"claimdesk-service/internal/domain/entity"
	"claimdesk-service/internal/infrastructure/config"
	"claimdesk-service/internal/infrastructure/persistence"
	restRepo "claimdesk-service/internal/interface/repository"
	"claimdesk-service/internal/usecase"
	"claimdesk-service/pkg/logger"
	"claimdesk-service/pkg/metrics"
)

func main() {
	appLogger := logger.NewLogger("info")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	m := metrics.NewMetrics("claimdesk_seed")
	client := persistence.NewClient(cfg, appLogger, m)
	claimRepository := restRepo.NewRestClaimRepository(client, appLogger)
	documentStore := restRepo.NewObjectDocumentStore(client, cfg.StorageBucket, appLogger)
	service := usecase.NewClaimService(claimRepository, documentStore, appLogger, m)

	samples := []entity.ClaimInput{
		{
			PolicyNumber:      "POL-1001",
			PolicyholderName:  "Alice Hargreaves",
			PolicyholderEmail: "alice@example.com",
			PolicyholderPhone: "5551234567",
			IncidentDate:      "2026-07-14",
			ClaimType:         "auto",
			Description:       "Rear-end collision at a stop light, bumper and trunk damage.",
			Amount:            decimal.NewFromFloat(2450.00),
		},
		{
			PolicyNumber:      "POL-1002",
			PolicyholderName:  "Benjamin Okafor",
			PolicyholderEmail: "b.okafor@example.com",
			PolicyholderPhone: "5559876543",
			IncidentDate:      "2026-08-02",
			ClaimType:         "home",
			Description:       "Burst pipe in the upstairs bathroom, water damage to ceiling.",
			Amount:            decimal.NewFromFloat(8900.50),
		},
		{
			PolicyNumber:      "POL-1003",
			PolicyholderName:  "Carmen Diaz",
			PolicyholderEmail: "carmen.diaz@example.com",
			PolicyholderPhone: "5550012233",
			IncidentDate:      "2026-08-21",
			ClaimType:         "travel",
			Description:       "Checked luggage lost on a connecting flight.",
			Amount:            decimal.NewFromFloat(640.75),
		},
	}

	ctx := context.Background()
	for _, input := range samples {
		claim, err := service.Create(ctx, input)
		if err != nil {
			log.Fatalf("failed to create claim for %s: %v", input.PolicyholderName, err)
		}
		fmt.Printf("created claim %s (%s, %s)\n", claim.ID, claim.PolicyholderName, claim.ClaimType)
	}
}
