package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/miniforum/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateSessionToken creates a signed HMAC-SHA256 JWT wrapping a session ID.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - ID        (jti): the raw session identifier
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the session expiry
//
// All parameters are required. Returns an error if any of them are empty or zero.
//
// Example usage:
//
//	token, err := utils.GenerateSessionToken("miniforum", session.ID, session.ExpiresAt, "secret")
func GenerateSessionToken(issuer, sessionID string, expiresAt time.Time, signKey string) (models.Token, error) {
	if issuer == "" || sessionID == "" || expiresAt.IsZero() || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating session token")
	}

	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		ID:        sessionID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing session token: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString, SessionID: sessionID}, nil
}

// ValidateAndParseSessionToken validates the given session token string and
// extracts the session ID.
//
// Validation includes:
//   - HS256 signature verification using the provided sign key
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check
//   - ID (jti) claim presence
//
// Example usage:
//
//	token, err := utils.ValidateAndParseSessionToken(cookie.Value, "secret", "miniforum")
//	if err != nil {
//	    // forged, corrupted or expired cookie
//	}
func ValidateAndParseSessionToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	parsed := &models.Token{}
	token, err := jwt.ParseWithClaims(tokenString, parsed, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	sessionID, err := parsed.GetSessionID()
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting session id from token: %w", err)
	}

	return models.Token{Token: token, RegisteredClaims: parsed.RegisteredClaims, SignedString: tokenString, SessionID: sessionID}, nil
}
