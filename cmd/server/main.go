package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ticketflow-service/internal/infrastructure/config"
	"ticketflow-service/internal/infrastructure/oauth"
	"ticketflow-service/internal/infrastructure/persistence"
	ifaceRepo "ticketflow-service/internal/interface/repository"
	"ticketflow-service/internal/usecase"
	"ticketflow-service/pkg/extract"
	"ticketflow-service/pkg/logger"
	"ticketflow-service/pkg/metrics"

	domainRepo "ticketflow-service/internal/domain/repository"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Ticketflow Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Lookup tables for airport timezones and airline codes
	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	airlineRepository := ifaceRepo.NewGormAirlineRepository(gormDB)
	timezoneRepository := ifaceRepo.NewGormTimezoneRepository(gormDB)

	// Set up repositories
	ticketRepo := ifaceRepo.NewMongoTicketRepository(db)
	flightRecordRepo := ifaceRepo.NewMongoFlightRecordRepository(db)

	var passengerRepo domainRepo.PassengerRepository
	switch cfg.RosterBackend {
	case config.RosterBackendSheets:
		log.Info("Using Google Sheets roster backend", "spreadsheetId", cfg.SheetsSpreadsheetID)
		googleOAuth := oauth.NewGoogleOAuth(
			cfg.SheetsClientID,
			cfg.SheetsClientSecret,
			cfg.SheetsRefreshToken,
			log,
		)
		passengerRepo, err = ifaceRepo.NewSheetsPassengerRepository(
			ctx,
			googleOAuth.GetTokenSource(ctx),
			cfg.SheetsSpreadsheetID,
			cfg.SheetsRange,
			log,
		)
		if err != nil {
			log.Fatal("Failed to create Sheets roster", "error", err)
		}
	default:
		passengerRepo = ifaceRepo.NewMongoPassengerRepository(db)
	}

	// Set up the extraction and resolution pipeline
	m := metrics.NewMetrics("ticketflow")
	parser := extract.NewTicketParser(extract.DefaultRegistry(), log)
	aiNormalizer := extract.NewAINormalizer(timezoneRepository, log)

	matcherConfig := usecase.MatcherConfig{
		ComponentThreshold: cfg.ComponentMatchThreshold,
		FuzzyThreshold:     cfg.FuzzyMatchThreshold,
	}
	var scorer usecase.SimilarityScorer
	if cfg.FuzzyMatchEnabled {
		scorer = usecase.LevenshteinScorer{}
	}
	matcher := usecase.NewPassengerMatcher(matcherConfig, scorer, log)
	resolver := usecase.NewPassengerResolver(passengerRepo, matcher, log)

	processor := usecase.NewTicketProcessor(
		ticketRepo,
		flightRecordRepo,
		airlineRepository,
		parser,
		aiNormalizer,
		resolver,
		m,
		log,
	)

	// Start ticket processor in a goroutine
	go func() {
		processTicker := time.NewTicker(cfg.ProcessInterval)
		defer processTicker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Ticket processor stopped")
				return
			case <-processTicker.C:
				log.Info("Processing pending tickets")
				if err := processor.ProcessPendingTickets(ctx); err != nil {
					log.Error("Error processing tickets", "error", err)
				}
			}
		}
	}()

	// Set up HTTP server for metrics
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
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

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(ctx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Ticketflow Service stopped")
}
