package service

import (
	"github.com/MKhiriev/miniforum/internal/adapter"
	"github.com/MKhiriev/miniforum/internal/config"
	"github.com/MKhiriev/miniforum/internal/crypto"
	"github.com/MKhiriev/miniforum/internal/logger"
	"github.com/MKhiriev/miniforum/internal/store"
)

type Services struct {
	AuthService    AuthService
	SessionService SessionService
	PostService    PostService
	AppInfoService AppInfoService
}

// NewServices wires the services over storages. mailer may be nil when
// password reset is disabled.
func NewServices(storages *store.Storages, hasher crypto.PasswordHasher, mailer adapter.Mailer, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	authService := NewAuthValidationService().
		Wrap(NewAuthService(storages.UserRepository, storages.SessionStorage, hasher, mailer, logger))

	postService := NewPostValidationService().
		Wrap(NewPostService(storages.PostRepository, logger))

	return &Services{
		AuthService:    authService,
		SessionService: NewSessionService(storages.SessionStorage, storages.UserRepository, cfg.App, logger),
		PostService:    postService,
		AppInfoService: appInfoService,
	}, nil
}
