package config

import "time"

// Defaults applied to every field left unset by env, flags and JSON.
const (
	DefaultBcryptCost           = 12
	DefaultSessionTTL           = 30 * 24 * time.Hour
	DefaultSessionCookieName    = "miniforum.sid"
	DefaultTokenIssuer          = "miniforum"
	DefaultVersion              = "dev"
	DefaultQueryTimeout         = 5 * time.Second
	DefaultMaxOpenConns         = 20
	DefaultMaxIdleConns         = 5
	DefaultConnMaxLifetime      = 30 * time.Minute
	DefaultRedisPoolSize        = 10
	DefaultHTTPAddress          = "localhost:8080"
	DefaultRequestTimeout       = 30 * time.Second
	DefaultShutdownTimeout      = 10 * time.Second
	DefaultMailerBaseURL        = "https://api.sendgrid.com"
	DefaultMailerFromName       = "Miniforum"
	DefaultMailerRequestTimeout = 10 * time.Second
	DefaultSessionPurgeSchedule = "@every 15m"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			BcryptCost:        DefaultBcryptCost,
			SessionTTL:        DefaultSessionTTL,
			SessionCookieName: DefaultSessionCookieName,
			TokenIssuer:       DefaultTokenIssuer,
			Version:           DefaultVersion,
		},
		Storage: Storage{
			DB: DB{
				QueryTimeout:    DefaultQueryTimeout,
				MaxOpenConns:    DefaultMaxOpenConns,
				MaxIdleConns:    DefaultMaxIdleConns,
				ConnMaxLifetime: DefaultConnMaxLifetime,
			},
			Sessions: Sessions{
				Backend:       SessionBackendPostgres,
				RedisPoolSize: DefaultRedisPoolSize,
			},
		},
		Server: Server{
			HTTPAddress:     DefaultHTTPAddress,
			RequestTimeout:  DefaultRequestTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Mailer: Mailer{
			BaseURL:        DefaultMailerBaseURL,
			FromName:       DefaultMailerFromName,
			RequestTimeout: DefaultMailerRequestTimeout,
		},
		Workers: Workers{
			SessionPurgeSchedule: DefaultSessionPurgeSchedule,
		},
	}
}
