package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/jirabridge/pkg/cli/config"
	controller "github.com/m-mizutani/jirabridge/pkg/controller/http"
	"github.com/m-mizutani/jirabridge/pkg/domain/interfaces"
	"github.com/m-mizutani/jirabridge/pkg/infra/confluence"
	"github.com/m-mizutani/jirabridge/pkg/infra/jira"
	"github.com/m-mizutani/jirabridge/pkg/infra/slack"
	"github.com/m-mizutani/jirabridge/pkg/infra/translate"
	"github.com/m-mizutani/jirabridge/pkg/usecase"
	"github.com/m-mizutani/jirabridge/pkg/utils/async"
	"github.com/m-mizutani/jirabridge/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const spacesLoadTimeout = 30 * time.Second

func cmdServe(loggerCfg *config.Logger) *cli.Command {
	var (
		serverCfg     config.Server
		appCfg        config.App
		uploadCfg     config.Upload
		confluenceCfg config.Confluence
		geminiCfg     config.Gemini
		slackCfg      config.Slack
		sentryCfg     config.Sentry
	)

	var flags []cli.Flag
	flags = append(flags, serverCfg.Flags()...)
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, uploadCfg.Flags()...)
	flags = append(flags, confluenceCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.From(ctx)
			addr := serverCfg.ListenAddr(loggerCfg.IsProduction())

			logger.Info("Starting jirabridge server",
				slog.String("addr", addr),
				slog.String("env", loggerCfg.Env),
			)

			appFile, err := appCfg.Load()
			if err != nil {
				return err
			}

			if err := sentryCfg.Configure(); err != nil {
				return err
			}
			if sentryCfg.Enabled() {
				defer sentry.Flush(2 * time.Second)
			}

			store, uploadDir, closeStore, err := uploadCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeStore(); err != nil {
					logger.Warn("failed to close upload store", slog.Any("error", err))
				}
			}()

			translators, err := buildTranslators(ctx, &geminiCfg)
			if err != nil {
				return err
			}

			confluenceFactory := confluence.NewFactory()
			notifyUC := usecase.NewNotify(slack.New(), slackCfg.WebhookURL)
			spacesUC := usecase.NewSpaces(confluenceFactory, confluenceCfg.Credential())

			uc := usecase.New(
				usecase.NewJira(jira.NewFactory(), appFile.JiraOptions()...),
				usecase.NewRelease(confluenceFactory, notifyUC),
				usecase.NewTranslate(appFile.Translate.Source, appFile.Translate.Target, translators...),
				usecase.NewUpload(store),
				spacesUC,
				notifyUC,
			)

			async.Dispatch(ctx, spacesLoadTimeout, spacesUC.LoadSpaces)

			server, err := controller.NewServer(
				ctx,
				uc,
				controller.WithAddr(addr),
				controller.WithUploadDir(uploadDir),
				controller.WithSentry(sentryCfg.Enabled()),
				controller.WithSchemaValidation(serverCfg.SchemaValidation),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}

// buildTranslators returns the translation providers in the order they are
// tried: the LLM when configured, then the public endpoints.
func buildTranslators(ctx context.Context, geminiCfg *config.Gemini) ([]interfaces.Translator, error) {
	var translators []interfaces.Translator

	if geminiCfg.Enabled() {
		llm, err := geminiCfg.Configure(ctx)
		if err != nil {
			return nil, err
		}
		translators = append(translators, translate.NewLLM(llm))
	}

	translators = append(translators,
		translate.NewGoogle(),
		translate.NewMyMemory(),
	)
	return translators, nil
}
