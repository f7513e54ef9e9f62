// Package app assembles the auth service: config, database, services and
// the HTTP server, with graceful shutdown.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/crewdeskhq/crewdesk/internal/auth/http"
	"github.com/crewdeskhq/crewdesk/internal/auth/mailer"
	"github.com/crewdeskhq/crewdesk/internal/auth/service"
	"github.com/crewdeskhq/crewdesk/internal/auth/store"
	"github.com/crewdeskhq/crewdesk/internal/auth/store/drivers/sqlite"
	"github.com/crewdeskhq/crewdesk/pkg/jwtx"
	"github.com/crewdeskhq/crewdesk/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application encapsulates the auth service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	sender mailer.Sender

	tokenService  *service.TokenService
	authService   *service.AuthService
	inviteService *service.InviteService
	userService   *service.UserService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initMailer(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully stops the HTTP server and closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initMailer() error {
	sender, err := mailer.NewSMTPSender(mailer.SMTPConfig{
		Host:           app.cfg.SMTPHost,
		Port:           app.cfg.SMTPPort,
		Username:       app.cfg.SMTPUser,
		Password:       app.cfg.SMTPPass,
		From:           app.cfg.EmailFrom,
		SendsPerSecond: app.cfg.SendsPerSecond,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize mailer: %w", err)
	}
	app.sender = sender
	return nil
}

func (app *Application) initServices() error {
	signer, err := jwtx.NewSignerHS256([]byte(app.cfg.JWTSecret))
	if err != nil {
		return fmt.Errorf("failed to initialize token signer: %w", err)
	}

	app.tokenService = &service.TokenService{
		Signer:    signer,
		Verifier:  jwtx.NewVerifierHS256([]byte(app.cfg.JWTSecret), app.cfg.Issuer),
		Issuer:    app.cfg.Issuer,
		AccessTTL: app.cfg.TokenTTL,
	}

	otpService := &service.OtpService{
		Store:      app.db,
		TTL:        app.cfg.OtpTTL,
		BcryptCost: app.cfg.BcryptCost,
	}

	app.authService = &service.AuthService{
		Store:      app.db,
		Mailer:     app.sender,
		Tokens:     app.tokenService,
		Otp:        otpService,
		BcryptCost: app.cfg.BcryptCost,
	}

	app.inviteService = &service.InviteService{
		Store:      app.db,
		Mailer:     app.sender,
		Tokens:     app.tokenService,
		BaseURL:    app.cfg.BaseURL,
		InviteTTL:  service.DefaultInviteTTL,
		BcryptCost: app.cfg.BcryptCost,
	}

	app.userService = &service.UserService{Store: app.db}
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.tokenService.Verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AuthService = app.authService
	router.InviteService = app.inviteService
	router.UserService = app.userService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
