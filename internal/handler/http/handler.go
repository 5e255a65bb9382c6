package http

import (
	"time"

	"github.com/MKhiriev/miniforum/internal/config"
	"github.com/MKhiriev/miniforum/internal/logger"
	"github.com/MKhiriev/miniforum/internal/metrics"
	"github.com/MKhiriev/miniforum/internal/service"
)

// cookieSettings describes the session cookie written by withSession.
type cookieSettings struct {
	name   string
	secure bool
}

type Handler struct {
	services *service.Services
	metrics  *metrics.Metrics

	cookie         cookieSettings
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, metrics *metrics.Metrics, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		metrics:  metrics,
		cookie: cookieSettings{
			name:   cfg.App.SessionCookieName,
			secure: cfg.App.SessionCookieSecure,
		},
		requestTimeout: cfg.Server.RequestTimeout,
		logger:         logger,
	}
}
