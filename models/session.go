package models

import "time"

// Session is the server-side record of a client session.
//
// ID is the raw random identifier handed to the client inside the signed
// session token. Storages never persist it as is: records are keyed by the
// HMAC of the ID, see [Session.Key].
type Session struct {
	ID        string    `json:"-"`
	Key       string    `json:"-"`
	UserID    int64     `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAnonymous reports whether no user is bound to the session.
func (s Session) IsAnonymous() bool {
	return s.UserID == 0
}

// IsExpired reports whether the session is past its expiry at moment now.
func (s Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// TTL returns how long the session remains valid from moment now.
func (s Session) TTL(now time.Time) time.Duration {
	return s.ExpiresAt.Sub(now)
}
