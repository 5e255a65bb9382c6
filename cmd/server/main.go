package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/miniforum/internal/adapter"
	"github.com/MKhiriev/miniforum/internal/config"
	"github.com/MKhiriev/miniforum/internal/crypto"
	"github.com/MKhiriev/miniforum/internal/handler"
	"github.com/MKhiriev/miniforum/internal/logger"
	"github.com/MKhiriev/miniforum/internal/metrics"
	"github.com/MKhiriev/miniforum/internal/server"
	"github.com/MKhiriev/miniforum/internal/service"
	"github.com/MKhiriev/miniforum/internal/store"
	"github.com/MKhiriev/miniforum/internal/workers"
	"github.com/MKhiriev/miniforum/models"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("miniforum-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if buildVersion != "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	log.Debug().
		Str("address", cfg.Server.HTTPAddress).
		Str("session_backend", cfg.Storage.Sessions.Backend).
		Bool("mailer_enabled", cfg.Mailer.Enabled()).
		Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, cfg.App.SessionTTL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if closeErr := storages.Close(); closeErr != nil {
			log.Err(closeErr).Msg("error closing storages")
		}
	}()

	hasher, err := crypto.NewBcryptHasher(cfg.App.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating password hasher")
	}

	var mailer adapter.Mailer
	if cfg.Mailer.Enabled() {
		mailer, err = adapter.NewSendGridMailer(cfg.Mailer, log.Component("mailer"))
		if err != nil {
			log.Fatal().Err(err).Msg("error creating mailer")
		}
	} else {
		log.Warn().Msg("mailer is not configured, password reset is unavailable")
	}

	services, err := service.NewServices(storages, hasher, mailer, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	m := metrics.NewMetrics(prometheus.NewRegistry())
	m.RegisterDBStats(storages.SQLDB(), "miniforum")

	handlers, err := handler.NewHandlers(services, m, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	jobs, err := workers.NewWorkers(cfg.Workers, services.SessionService, m, log.Component("workers"))
	if err != nil {
		log.Fatal().Err(err).Msg("error creating workers")
	}

	srv, err := server.NewServer(handlers.HTTP.Init(), jobs, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Err(err).Msg("server stopped with error")
	}
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
