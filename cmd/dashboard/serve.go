package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"organizerdashboard/config"
	"organizerdashboard/internal/adapters/auth"
	"organizerdashboard/internal/adapters/email"
	"organizerdashboard/internal/adapters/eventapi"
	deliveryhttp "organizerdashboard/internal/delivery/http"
	"organizerdashboard/internal/delivery/http/controllers"
	"organizerdashboard/internal/delivery/http/middleware"
	"organizerdashboard/internal/domain"
	"organizerdashboard/internal/metrics"
	"organizerdashboard/internal/repository/postgres"
	"organizerdashboard/internal/services"
)

const (
	evictionInterval = time.Minute
	shutdownTimeout  = 15 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, config.NewLogger())
	},
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	var audit domain.SaveAuditRepository
	if cfg.DBUrl != "" {
		db, err := sql.Open("postgres", cfg.DBUrl)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("ping database: %w", err)
		}
		audit = postgres.NewSaveAuditRepository(db)
	} else {
		logger.Warn("DATABASE_URL not set, save journal disabled")
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	api := eventapi.NewHTTPClient(cfg.UpstreamURL, &http.Client{})
	recorder := metrics.NewRecorder()
	reconciler := services.NewReconciler(api, recorder, logger, cfg.UpstreamTimeout)
	settings := services.NewSettingsService(api, reconciler, audit, emailSvc, logger, cfg.SessionIdleTTL)
	wizard := services.NewWizardService(reconciler, audit, logger)

	mux := deliveryhttp.NewRouter(deliveryhttp.RouterDeps{
		Settings: controllers.NewSettingsController(logger, settings),
		Wizard:   controllers.NewWizardController(logger, wizard),
		Verifier: auth.NewJWTVerifier(cfg.JWTSecret),
		Metrics:  recorder.Handler(),
		Logger:   logger,
	})
	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux, "/metrics", "/healthz"))

	go settings.RunEviction(ctx, evictionInterval)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
