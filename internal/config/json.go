package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for the optional JSON file.
// Durations are accepted as strings ("30s") or integer nanoseconds.
type StructuredJSONConfig struct {
	App struct {
		BcryptCost          int      `json:"bcrypt_cost"`
		SessionSecret       string   `json:"session_secret"`
		SessionTTL          Duration `json:"session_ttl"`
		SessionCookieName   string   `json:"session_cookie_name"`
		SessionCookieSecure bool     `json:"session_cookie_secure"`
		TokenIssuer         string   `json:"token_issuer"`
		Version             string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN             string   `json:"dsn"`
			QueryTimeout    Duration `json:"query_timeout"`
			MaxOpenConns    int      `json:"max_open_conns"`
			MaxIdleConns    int      `json:"max_idle_conns"`
			ConnMaxLifetime Duration `json:"conn_max_lifetime"`
		} `json:"db,omitempty"`

		Sessions struct {
			Backend       string `json:"backend"`
			RedisURL      string `json:"redis_url"`
			RedisPoolSize int    `json:"redis_pool_size"`
		} `json:"sessions,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Mailer struct {
		APIKey         string   `json:"api_key"`
		BaseURL        string   `json:"base_url"`
		FromEmail      string   `json:"from_email"`
		FromName       string   `json:"from_name"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"mailer,omitempty"`

	Workers struct {
		SessionPurgeSchedule string `json:"session_purge_schedule"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			BcryptCost:          jsonCfg.App.BcryptCost,
			SessionSecret:       jsonCfg.App.SessionSecret,
			SessionTTL:          time.Duration(jsonCfg.App.SessionTTL),
			SessionCookieName:   jsonCfg.App.SessionCookieName,
			SessionCookieSecure: jsonCfg.App.SessionCookieSecure,
			TokenIssuer:         jsonCfg.App.TokenIssuer,
			Version:             jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN:             jsonCfg.Storage.DB.DSN,
				QueryTimeout:    time.Duration(jsonCfg.Storage.DB.QueryTimeout),
				MaxOpenConns:    jsonCfg.Storage.DB.MaxOpenConns,
				MaxIdleConns:    jsonCfg.Storage.DB.MaxIdleConns,
				ConnMaxLifetime: time.Duration(jsonCfg.Storage.DB.ConnMaxLifetime),
			},
			Sessions: Sessions{
				Backend:       jsonCfg.Storage.Sessions.Backend,
				RedisURL:      jsonCfg.Storage.Sessions.RedisURL,
				RedisPoolSize: jsonCfg.Storage.Sessions.RedisPoolSize,
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		Mailer: Mailer{
			APIKey:         jsonCfg.Mailer.APIKey,
			BaseURL:        jsonCfg.Mailer.BaseURL,
			FromEmail:      jsonCfg.Mailer.FromEmail,
			FromName:       jsonCfg.Mailer.FromName,
			RequestTimeout: time.Duration(jsonCfg.Mailer.RequestTimeout),
		},
		Workers: Workers{
			SessionPurgeSchedule: jsonCfg.Workers.SessionPurgeSchedule,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
