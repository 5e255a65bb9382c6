package http

import (
	"testing"
	"time"

	"github.com/MKhiriev/miniforum/internal/config"
	"github.com/MKhiriev/miniforum/internal/logger"
	"github.com/MKhiriev/miniforum/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandler(t *testing.T) {
	svc := &service.Services{}
	log := logger.Nop()
	cfg := config.StructuredConfig{
		App: config.App{
			SessionCookieName:   "sid",
			SessionCookieSecure: true,
		},
		Server: config.Server{RequestTimeout: 3 * time.Second},
	}

	h := NewHandler(svc, nil, cfg, log)

	require.NotNil(t, h)
	assert.Equal(t, svc, h.services)
	assert.Equal(t, log, h.logger)
	assert.Equal(t, cookieSettings{name: "sid", secure: true}, h.cookie)
	assert.Equal(t, 3*time.Second, h.requestTimeout)
}

func TestNewHandler_IndependentInstances(t *testing.T) {
	h1 := NewHandler(&service.Services{}, nil, testConfig(), logger.Nop())
	h2 := NewHandler(&service.Services{}, nil, testConfig(), logger.Nop())

	assert.NotSame(t, h1, h2)
}
