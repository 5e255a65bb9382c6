// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"golang.org/x/crypto/bcrypt"
)

// minSessionSecretLength keeps HS256 keys at a sane size.
const minSessionSecretLength = 16

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if err := cfg.App.validate(); err != nil {
		return err
	}
	if err := cfg.Storage.validate(); err != nil {
		return err
	}
	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return fmt.Errorf("%w: address and request timeout are required", ErrInvalidServerConfigs)
	}
	if cfg.Mailer.Enabled() && (cfg.Mailer.FromEmail == "" || cfg.Mailer.BaseURL == "") {
		return fmt.Errorf("%w: from email and base url are required when api key is set", ErrInvalidMailerConfigs)
	}
	if cfg.Workers.SessionPurgeSchedule == "" {
		return fmt.Errorf("%w: session purge schedule is required", ErrInvalidWorkerConfigs)
	}
	if _, err := cron.ParseStandard(cfg.Workers.SessionPurgeSchedule); err != nil {
		return fmt.Errorf("%w: session purge schedule: %w", ErrInvalidWorkerConfigs, err)
	}

	return nil
}

func (a App) validate() error {
	if a.BcryptCost < bcrypt.MinCost || a.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt cost must be within [%d, %d], got %d",
			ErrInvalidAppConfigs, bcrypt.MinCost, bcrypt.MaxCost, a.BcryptCost)
	}
	if len(a.SessionSecret) < minSessionSecretLength {
		return fmt.Errorf("%w: session secret must be at least %d characters", ErrInvalidAppConfigs, minSessionSecretLength)
	}
	if a.SessionTTL <= 0 {
		return fmt.Errorf("%w: session ttl must be positive", ErrInvalidAppConfigs)
	}
	if a.SessionCookieName == "" || a.TokenIssuer == "" {
		return fmt.Errorf("%w: session cookie name and token issuer are required", ErrInvalidAppConfigs)
	}

	return nil
}

func (s Storage) validate() error {
	if s.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}
	if s.DB.QueryTimeout <= 0 {
		return fmt.Errorf("%w: query timeout must be positive", ErrInvalidStorageConfigs)
	}

	switch s.Sessions.Backend {
	case SessionBackendPostgres, SessionBackendMemory:
	case SessionBackendRedis:
		if s.Sessions.RedisURL == "" {
			return fmt.Errorf("%w: redis url is required for the redis session backend", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown session backend %q", ErrInvalidStorageConfigs, s.Sessions.Backend)
	}

	return nil
}
