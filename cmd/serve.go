package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"newsletter/internal/api"
	"newsletter/internal/api/handler/v1handler"
	"newsletter/internal/config"
	"newsletter/internal/subscription"
	"newsletter/internal/worker"
	"newsletter/pkg/domain"
	"newsletter/pkg/logger"
	"newsletter/pkg/mailer"
	"newsletter/pkg/mailer/httpmail"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// getMailer constructs the provider-backed email client from configuration.
// It returns nil when no provider base URL is configured, which disables
// confirmation emails while leaving subscription intact.
func getMailer(ctx context.Context, cfg *config.Config) mailer.Sender {
	if cfg.EmailClient.BaseURL == "" {
		logger.Warn(ctx, "no email provider configured, confirmation emails disabled")

		return nil
	}

	sender, err := domain.ParseSubscriberEmail(cfg.EmailClient.SenderEmail)
	if err != nil {
		logger.Fatal(ctx, "invalid sender email in config", zap.Error(err))
	}

	return httpmail.New(
		&http.Client{Timeout: cfg.EmailClient.Timeout},
		cfg.EmailClient.BaseURL,
		sender,
		cfg.EmailClient.AuthToken,
	)
}

func setupServer(ctx context.Context, deps api.Deps, cfg *config.Config) func(ctx context.Context) {
	server, err := api.NewServer(deps, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...")
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server and background workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			sender := getMailer(ctx, cfg)

			svc := subscription.New(strg, sender, subscription.NewOptions(cfg))

			stopWebserver := setupServer(ctx, api.Deps{
				Deps: v1handler.Deps{Service: svc},
			}, cfg)

			var stopWorkers func(ctx context.Context)
			if sender != nil {
				riverClient, err := worker.Start(ctx, strg.Pool, sender)
				if err != nil {
					logger.Fatal(ctx, "could not start background workers", zap.Error(err))
				}
				stopWorkers = func(ctx context.Context) {
					logger.Info(ctx, "stopping background workers...")
					if err := riverClient.Stop(ctx); err != nil {
						logger.Error(ctx, "could not stop background workers", zap.Error(err))
					}
				}
			} else {
				logger.Warn(ctx, "no email provider configured, issue delivery workers disabled")
			}

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)

			if stopWorkers != nil {
				stopWorkers(shutdownCtx)
			}
		},
	}

	return cmd
}
