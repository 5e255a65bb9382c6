package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/miniforum/internal/config"
	"github.com/MKhiriev/miniforum/internal/crypto"
	"github.com/MKhiriev/miniforum/internal/logger"
	"github.com/MKhiriev/miniforum/internal/store"
	"github.com/MKhiriev/miniforum/internal/utils"
	"github.com/MKhiriev/miniforum/models"
)

// sessionService issues signed session tokens and keeps the matching
// records in a [store.SessionStorage].
//
// The raw session ID only travels inside the token. Records are addressed by
// HMAC(secret, ID), so a leaked session table cannot be replayed as cookies.
type sessionService struct {
	sessions       store.SessionStorage
	userRepository store.UserRepository

	// secret signs tokens and keys records.
	secret string

	// issuer is the "iss" claim of every token.
	issuer string

	ttl time.Duration

	// now is replaceable in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewSessionService constructs a SessionService from the session settings in
// cfg.
func NewSessionService(sessions store.SessionStorage, userRepository store.UserRepository, cfg config.App, logger *logger.Logger) SessionService {
	return &sessionService{
		sessions:       sessions,
		userRepository: userRepository,
		secret:         cfg.SessionSecret,
		issuer:         cfg.TokenIssuer,
		ttl:            cfg.SessionTTL,
		now:            time.Now,
		logger:         logger,
	}
}

func (s *sessionService) Start(ctx context.Context) (models.Session, models.Token, error) {
	return s.create(ctx, 0)
}

func (s *sessionService) Login(ctx context.Context, currentToken string, user models.User) (models.Session, models.Token, error) {
	if currentToken != "" {
		if err := s.Logout(ctx, currentToken); err != nil {
			return models.Session{}, models.Token{}, err
		}
	}

	session, token, err := s.create(ctx, user.UserID)
	if err != nil {
		return models.Session{}, models.Token{}, err
	}

	logger.FromContext(ctx).Info().Int64("user_id", user.UserID).Msg("session bound to user")
	return session, token, nil
}

// Resolve fails with [ErrUnauthenticated] for forged, expired or unknown
// tokens. A session whose user no longer exists is deleted on the spot.
func (s *sessionService) Resolve(ctx context.Context, token string) (models.Session, *models.User, error) {
	log := logger.FromContext(ctx)

	parsed, err := utils.ValidateAndParseSessionToken(token, s.secret, s.issuer)
	if err != nil {
		log.Debug().Err(err).Msg("session token rejected")
		return models.Session{}, nil, ErrUnauthenticated
	}

	key := s.key(parsed.SessionID)
	session, err := s.sessions.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrSessionNotFound) {
			log.Err(err).Msg("session lookup failed")
		}
		return models.Session{}, nil, fromStoreError(err)
	}
	session.ID = parsed.SessionID
	session.Key = key

	if session.IsAnonymous() {
		return session, nil, nil
	}

	user, err := s.userRepository.FindUserByID(ctx, session.UserID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Warn().Int64("user_id", session.UserID).Msg("session user vanished, forcing logout")
		if err = s.sessions.Delete(ctx, key); err != nil {
			log.Err(err).Msg("deleting orphaned session failed")
		}
		return models.Session{}, nil, ErrUnauthenticated
	}
	if err != nil {
		log.Err(err).Int64("user_id", session.UserID).Msg("session user lookup failed")
		return models.Session{}, nil, fromStoreError(err)
	}

	return session, &user, nil
}

func (s *sessionService) Logout(ctx context.Context, token string) error {
	parsed, err := utils.ValidateAndParseSessionToken(token, s.secret, s.issuer)
	if err != nil {
		return nil
	}

	if err = s.sessions.Delete(ctx, s.key(parsed.SessionID)); err != nil {
		logger.FromContext(ctx).Err(err).Msg("session delete failed")
		return fromStoreError(err)
	}

	return nil
}

func (s *sessionService) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	purged, err := s.sessions.DeleteExpired(ctx, now)
	if err != nil {
		return 0, fromStoreError(err)
	}
	return purged, nil
}

func (s *sessionService) create(ctx context.Context, userID int64) (models.Session, models.Token, error) {
	id, err := crypto.GenerateSessionID()
	if err != nil {
		return models.Session{}, models.Token{}, fmt.Errorf("generating session id: %w", err)
	}

	now := s.now().UTC()
	session := models.Session{
		ID:        id,
		Key:       s.key(id),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	token, err := utils.GenerateSessionToken(s.issuer, id, session.ExpiresAt, s.secret)
	if err != nil {
		return models.Session{}, models.Token{}, err
	}

	if err = s.sessions.Create(ctx, session); err != nil {
		logger.FromContext(ctx).Err(err).Msg("session create failed")
		return models.Session{}, models.Token{}, fromStoreError(err)
	}

	return session, token, nil
}

func (s *sessionService) key(sessionID string) string {
	return utils.HashString(sessionID, s.secret)
}
