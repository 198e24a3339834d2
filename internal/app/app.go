package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"CakeshopWebhooks/config"
	"CakeshopWebhooks/internal/controller/rest"
	"CakeshopWebhooks/internal/controller/rest/handlers"
	"CakeshopWebhooks/internal/domain/checkout"
	"CakeshopWebhooks/internal/external/stripe"
	"CakeshopWebhooks/pkg/health"
	"CakeshopWebhooks/pkg/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Run bootstraps the webhook service and blocks until SIGINT/SIGTERM.
func Run(cfg config.Config) error {
	l := logger.Setup(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Never log the secret itself.
	l.Info("Stripe webhook secret loaded",
		slog.Bool("configured", cfg.StripeWebhookSecret != ""),
		slog.Duration("tolerance", cfg.StripeWebhookTolerance))

	backend, err := newFulfillmentBackend(cfg)
	if err != nil {
		return fmt.Errorf("app - Run - newFulfillmentBackend: %w", err)
	}
	defer func() {
		if err := backend.close(); err != nil {
			l.Error("Failed to close fulfillment backend", slog.Any("error", err))
		}
	}()

	gin.SetMode(gin.ReleaseMode)
	engine := newWebhookEngine(cfg, backend, l)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      engine,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		l.Info("Webhook service started", slog.Int("port", cfg.Port), slog.String("path", cfg.WebhookPath))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("app - Run - ListenAndServe: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		l.Info("Shutting down webhook service...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("app - Run - Shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	l.Info("Webhook service stopped")
	return nil
}

func newWebhookEngine(cfg config.Config, backend fulfillmentBackend, l *slog.Logger) *gin.Engine {
	verifier := stripe.NewVerifier(cfg.StripeWebhookSecret, cfg.StripeWebhookTolerance)
	service := checkout.NewWebhookService(verifier, backend.fulfiller, checkout.NewLogObserver(l))

	webhookHandler := handlers.NewWebhookHandler(service, cfg.WebhookMaxBodyBytes)
	healthRegistry := health.NewRegistry(backend.checker)

	engine := NewGinEngine()
	rest.NewWebhookRouter(webhookHandler, cfg.WebhookPath, healthRegistry).SetUp(engine)
	return engine
}
