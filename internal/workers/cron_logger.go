package workers

import (
	"github.com/MKhiriev/miniforum/internal/logger"
	"github.com/rs/zerolog"
)

// cronLogger adapts *logger.Logger to [cron.Logger]. Scheduler chatter goes
// to debug, failures to error.
type cronLogger struct {
	logger *logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	withFields(c.logger.Debug(), keysAndValues).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	withFields(c.logger.Error().Err(err), keysAndValues).Msg(msg)
}

func withFields(event *zerolog.Event, keysAndValues []any) *zerolog.Event {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		event = event.Interface(key, keysAndValues[i+1])
	}
	return event
}
