package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"storefront/api"
	"storefront/cmd"
	httpin "storefront/internal/adapters/in/http"
	"storefront/internal/pkg/tracing"

	"github.com/labstack/gommon/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	logger := cmd.NewLogger(configs)

	shutdownTracing, err := tracing.Init(ctx, logger, tracing.Config{
		Enabled:     configs.OTelEnabled,
		ServiceName: configs.OTelServiceName,
		Environment: configs.AppEnv,
		Endpoint:    configs.OTelEndpoint,
		Insecure:    configs.OTelInsecure,
		SampleRatio: configs.OTelSampleRatio,
	})
	if err != nil {
		log.Fatalf("Error initialising tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("Tracing shutdown failed", "error", err)
		}
	}()

	db, err := cmd.OpenDatabase(configs)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	app := cmd.NewCompositionRoot(configs, db, logger)

	sessions, err := app.CreateSessionStore(ctx)
	if err != nil {
		log.Fatalf("Error creating session store: %v", err)
	}
	blobs, err := app.CreateBlobStore(ctx)
	if err != nil {
		log.Fatalf("Error creating blob store: %v", err)
	}
	contract, err := httpin.LoadContract(ctx, api.OpenAPI)
	if err != nil {
		log.Fatalf("Error loading API contract: %v", err)
	}

	jobManager := app.CreateJobManager(blobs)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	payments := app.CreatePaymentGateway()
	server := httpin.NewServer(app.CreateHTTPHandlers(payments), payments, sessions, contract, app.CreateHTTPConfig(), logger)
	e := server.Echo()
	if configs.BlobDriver == "" || configs.BlobDriver == "fs" {
		e.Static("/media", configs.BlobFSRoot)
	}
	e.Static("/static", "static")

	addr := fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)
	logger.Info("Starting HTTP server", "addr", addr, "api_version", contract.Version())
	if err = httpin.Start(ctx, e, addr); err != nil {
		logger.Error("HTTP server stopped", "error", err)
	}
}
