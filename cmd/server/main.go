package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"claimdesk-service/internal/infrastructure/config"
	"claimdesk-service/internal/infrastructure/persistence"
	"claimdesk-service/internal/interface/httpapi"
	restRepo "claimdesk-service/internal/interface/repository"
	"claimdesk-service/internal/usecase"
	"claimdesk-service/pkg/logger"
	"claimdesk-service/pkg/metrics"
)

func main() {
	// Create logger
	log := logger.NewLogger(os.Getenv("LOG_LEVEL"))
	log.Info("Starting Claimdesk Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up metrics and the retry-wrapped backend client
	m := metrics.NewMetrics("claimdesk")
	client := persistence.NewClient(cfg, log, m)

	// Set up repositories
	claimRepository := restRepo.NewRestClaimRepository(client, log)
	documentStore := restRepo.NewObjectDocumentStore(client, cfg.StorageBucket, log)

	// Set up the claim service
	claimService := usecase.NewClaimService(claimRepository, documentStore, log, m)

	// Set up HTTP API
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	handler := httpapi.NewHandler(claimService, log)
	handler.Register(router)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "Healthy")
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	log.Info("Claimdesk Service stopped")
}
