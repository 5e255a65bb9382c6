package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultedConfig(t *testing.T, mutate func(cfg *StructuredConfig)) *StructuredConfig {
	t.Helper()
	b := newConfigBuilder()
	b.configs = append(b.configs, validConfig())
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)
	if mutate != nil {
		mutate(cfg)
	}
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *StructuredConfig)
		target error
	}{
		{name: "valid", mutate: nil, target: nil},
		{name: "bcrypt cost too low", mutate: func(c *StructuredConfig) { c.App.BcryptCost = 3 }, target: ErrInvalidAppConfigs},
		{name: "bcrypt cost too high", mutate: func(c *StructuredConfig) { c.App.BcryptCost = 32 }, target: ErrInvalidAppConfigs},
		{name: "short secret", mutate: func(c *StructuredConfig) { c.App.SessionSecret = "short" }, target: ErrInvalidAppConfigs},
		{name: "zero ttl", mutate: func(c *StructuredConfig) { c.App.SessionTTL = 0 }, target: ErrInvalidAppConfigs},
		{name: "no dsn", mutate: func(c *StructuredConfig) { c.Storage.DB.DSN = "" }, target: ErrInvalidStorageConfigs},
		{name: "no query timeout", mutate: func(c *StructuredConfig) { c.Storage.DB.QueryTimeout = 0 }, target: ErrInvalidStorageConfigs},
		{name: "unknown backend", mutate: func(c *StructuredConfig) { c.Storage.Sessions.Backend = "files" }, target: ErrInvalidStorageConfigs},
		{name: "redis without url", mutate: func(c *StructuredConfig) { c.Storage.Sessions.Backend = SessionBackendRedis }, target: ErrInvalidStorageConfigs},
		{
			name: "redis with url",
			mutate: func(c *StructuredConfig) {
				c.Storage.Sessions.Backend = SessionBackendRedis
				c.Storage.Sessions.RedisURL = "redis://localhost:6379"
			},
			target: nil,
		},
		{name: "memory backend", mutate: func(c *StructuredConfig) { c.Storage.Sessions.Backend = SessionBackendMemory }, target: nil},
		{name: "no request timeout", mutate: func(c *StructuredConfig) { c.Server.RequestTimeout = -time.Second }, target: ErrInvalidServerConfigs},
		{name: "mailer without sender", mutate: func(c *StructuredConfig) { c.Mailer.APIKey = "SG.key" }, target: ErrInvalidMailerConfigs},
		{name: "no purge schedule", mutate: func(c *StructuredConfig) { c.Workers.SessionPurgeSchedule = "" }, target: ErrInvalidWorkerConfigs},
		{name: "malformed purge schedule", mutate: func(c *StructuredConfig) { c.Workers.SessionPurgeSchedule = "every now and then" }, target: ErrInvalidWorkerConfigs},
		{name: "five-field purge schedule", mutate: func(c *StructuredConfig) { c.Workers.SessionPurgeSchedule = "*/10 * * * *" }, target: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultedConfig(t, tt.mutate)

			err := cfg.validate()
			if tt.target == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.target)
		})
	}
}
