package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/capture-portal/internal/api/http"
	"github.com/spec-kit/capture-portal/internal/api/http/handlers"
	"github.com/spec-kit/capture-portal/internal/api/http/views"
	"github.com/spec-kit/capture-portal/internal/auth"
	"github.com/spec-kit/capture-portal/internal/config"
	"github.com/spec-kit/capture-portal/internal/domain"
	"github.com/spec-kit/capture-portal/internal/events"
	"github.com/spec-kit/capture-portal/internal/mirror"
	"github.com/spec-kit/capture-portal/internal/modestore"
	"github.com/spec-kit/capture-portal/internal/observability"
	"github.com/spec-kit/capture-portal/internal/persistence"
	"github.com/spec-kit/capture-portal/internal/repository"
	"github.com/spec-kit/capture-portal/internal/service"
	"github.com/spec-kit/capture-portal/internal/uploads"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	applicantCSV := mirror.NewCSV(cfg.Storage.ApplicantCSV)
	credentialCSV := mirror.NewCSV(cfg.Storage.CredentialCSV)
	surveyCSV := mirror.NewCSV(cfg.Storage.SurveyCSV)
	if err := ensureStorage(ctx, pg.PoolHandle(), applicantCSV, credentialCSV, logger); err != nil {
		logger.Fatal("failed to initialise storage", zap.Error(err))
	}

	healthDeps := map[string]handlers.Pinger{"postgres": pg}
	var modes modestore.Store = modestore.NewFileStore(cfg.Mode.File)
	if cfg.Mode.UsesRedis() {
		redis := persistence.NewRedis(ctx, cfg.Redis, logger)
		defer redis.Close()
		modes = modestore.NewRedisStore(redis.Client, cfg.Mode.RedisKey)
		healthDeps["redis"] = redis
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	service.NewNotificationService(dispatcher, logger, metrics).RegisterHandlers()

	pool := pg.PoolHandle()
	applicantRepo := repository.NewApplicantRepository(pool)
	credentialRepo := repository.NewCredentialRepository(pool)

	adminGate := auth.NewAdminGate(
		cfg.Admin.Token,
		auth.NewTokenManager(cfg.Admin.SessionSecret, cfg.Admin.SessionTTLMinutes),
		cfg.App.TLSEnabled(),
		logger,
	)
	if cfg.Admin.Token == "" {
		logger.Warn("ADMIN_TOKEN is empty; admin routes are disabled")
	}

	recorderService := service.NewRecorderService(service.RecorderDependencies{
		Applicants:    applicantRepo,
		Credentials:   credentialRepo,
		ApplicantCSV:  applicantCSV,
		CredentialCSV: credentialCSV,
		Dispatcher:    dispatcher,
		Logger:        logger,
		BcryptCost:    cfg.Admin.BcryptCost,
	})
	adminService := service.NewAdminService(service.AdminDependencies{
		Applicants:  applicantRepo,
		Credentials: credentialRepo,
		Modes:       modes,
		Authorizer:  adminGate,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Views:        views.New(),
		BodyLimit:    cfg.App.BodyLimit(),
		ErrorHandler: httptransport.ErrorHandler(logger),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	flash := handlers.NewFlash(session.New(session.Config{CookieHTTPOnly: true}))

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, healthDeps),
		Portal: handlers.NewPortalHandler(modes, cfg.Portal.Enabled, cfg.Portal.GatewayURL),
		Forms: handlers.NewFormsHandler(handlers.FormsDependencies{
			Recorder: recorderService,
			Surveys:  service.NewSurveyService(surveyCSV, dispatcher, logger),
			Resumes:  uploads.NewResumeIntake(cfg.Storage.UploadDir, logger),
			Flash:    flash,
			Logger:   logger,
		}),
		Admin:     handlers.NewAdminHandler(adminService, flash, logger),
		AdminGate: adminGate,
		Metrics:   metrics,
	})

	go func() {
		var err error
		if cfg.App.TLSEnabled() {
			logger.Info("listening with TLS", zap.String("addr", cfg.App.Addr()))
			err = app.ListenTLS(cfg.App.Addr(), cfg.App.TLSCertFile, cfg.App.TLSKeyFile)
		} else {
			logger.Info("listening", zap.String("addr", cfg.App.Addr()))
			err = app.Listen(cfg.App.Addr())
		}
		if err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// ensureStorage creates the tables and the CSV mirrors with their headers.
// It runs on every start; existing tables and files are left as they are.
func ensureStorage(ctx context.Context, db persistence.DB, applicantCSV, credentialCSV *mirror.CSV, logger *zap.Logger) error {
	if err := persistence.EnsureSchema(ctx, db, logger); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	if err := applicantCSV.EnsureHeader(domain.ApplicantColumns); err != nil {
		return fmt.Errorf("applicant csv: %w", err)
	}
	if err := credentialCSV.EnsureHeader(domain.CredentialColumns); err != nil {
		return fmt.Errorf("credential csv: %w", err)
	}
	return nil
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
