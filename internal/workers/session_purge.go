package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/miniforum/internal/logger"
	"github.com/MKhiriev/miniforum/internal/metrics"
	"github.com/MKhiriev/miniforum/internal/service"
)

// purgeTimeout bounds a single purge pass.
const purgeTimeout = time.Minute

// SessionPurgeWorker deletes expired sessions.
type SessionPurgeWorker struct {
	sessions service.SessionService
	metrics  *metrics.Metrics

	now func() time.Time

	logger *logger.Logger
}

func NewSessionPurgeWorker(sessions service.SessionService, m *metrics.Metrics, logger *logger.Logger) *SessionPurgeWorker {
	return &SessionPurgeWorker{
		sessions: sessions,
		metrics:  m,
		now:      time.Now,
		logger:   logger.Component("session-purge"),
	}
}

func (s *SessionPurgeWorker) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	ctx = s.logger.WithContext(ctx)

	purged, err := s.sessions.PurgeExpired(ctx, s.now().UTC())
	if err != nil {
		s.logger.Err(err).Msg("purging expired sessions failed")
		return
	}

	s.metrics.ObserveSessionsPurged(purged)
	s.logger.Info().Int64("purged", purged).Msg("expired sessions purged")
}
