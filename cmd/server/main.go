package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"helpcenter/internal/app"
	"helpcenter/internal/auth"
	"helpcenter/internal/config"
	kbSvc "helpcenter/internal/domain/services/kb"
	"helpcenter/internal/handler"
	"helpcenter/internal/middleware"
	"helpcenter/internal/repository/memory"
	"helpcenter/internal/seed"
	kbService "helpcenter/internal/service/kb"
	"helpcenter/internal/service/richtext"
	"helpcenter/internal/service/richtext/converter"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging, mirrored to a file when LOG_DIR is set
	var logOutput io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}
	logger := config.NewLogger(logOutput, cfg.LogLevel)
	// Set as default logger
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"admin_gate", cfg.AdminGateEnabled(),
	)

	if cfg.SessionSecret == "" {
		log.Fatalf("SESSION_SECRET is required in %s", cfg.Environment)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Admin gate
	verifier, err := auth.NewVerifier(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create admin verifier: %v", err)
	}
	if verifier != nil {
		defer verifier.Close()
	}

	// Seed data is validated before anything starts
	seedData, err := seed.Load(cfg.SeedFile)
	if err != nil {
		log.Fatalf("Failed to load seed data: %v", err)
	}

	// Create repositories
	repoConfig := &memory.RepositoryConfig{
		Store:  memory.NewStore(),
		Logger: logger,
	}
	articleRepo := memory.NewArticleRepository(repoConfig)
	updateRepo := memory.NewUpdateRepository(repoConfig)
	trashRepo := memory.NewTrashRepository(repoConfig)
	vocabRepo := memory.NewVocabularyRepository(repoConfig)
	txManager := memory.NewTransactionManager(repoConfig.Store)

	// Create services
	clock := kbSvc.ClockFunc(time.Now)
	contentAnalyzer := richtext.NewContentAnalyzer()
	parser := richtext.NewParser()
	converters := converter.NewConverterRegistry()

	services := app.Services{
		Articles:   kbService.NewArticleService(articleRepo, clock, contentAnalyzer, logger),
		Updates:    kbService.NewUpdateService(updateRepo, clock, logger),
		Trash:      kbService.NewTrashService(articleRepo, updateRepo, trashRepo, txManager, clock, logger),
		Schedule:   kbService.NewScheduleService(articleRepo, clock),
		Versions:   kbService.NewVersionService(articleRepo, txManager, logger),
		Vocabulary: kbService.NewVocabularyService(vocabRepo, logger),
		Analytics:  kbService.NewAnalyticsService(articleRepo, clock, contentAnalyzer, logger),
		Converters: converters,
		Parser:     parser,
	}

	// The controller starts in the loading state until the seed lands
	ctrl := app.NewController(services, seedData.Emojis, logger)
	defer ctrl.Close()

	loader := seed.NewLoader(articleRepo, updateRepo, vocabRepo, txManager, parser, kbService.FormatRussianDate, logger)
	ctrl.LoadAfter(ctx, cfg.SeedDelay, func(ctx context.Context) error {
		return loader.Load(ctx, seedData, clock.Now())
	})

	logger.Info("services initialized")

	// Create handlers
	flashes := handler.NewFlashStore(cfg.SessionSecret, cfg.Environment == "prod")
	pageHandler, err := handler.NewPageHandler(ctrl, verifier, flashes, converters, logger)
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}
	apiHandler := handler.NewAPIHandler(ctrl, services, richtext.NewMarkdownExporter(), logger)

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, pageHandler, apiHandler)

	// Build middleware chain
	// Order: CORS → Request log → Recovery → Routes
	var h http.Handler = mux
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLogger(logger)(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Origins(),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	// Start server
	logger.Info("listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
}
