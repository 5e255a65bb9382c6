package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an attempt to register a new user
	// fails because the username is already taken. The unique constraint on
	// users.username is the authoritative source of this error.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrPostNotFound is returned when a post does not exist, or does not
	// belong to the user an update or delete was scoped to.
	ErrPostNotFound = errors.New("post was not found")

	// ErrSessionNotFound is returned when a session record is missing or
	// expired.
	ErrSessionNotFound = errors.New("session was not found")

	// ErrUnknownSessionBackend is returned by [NewSessionStorage] for an
	// unsupported backend name.
	ErrUnknownSessionBackend = errors.New("unknown session backend")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a storage-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// row-returning query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrSessionBackend is returned when the redis or in-memory session
	// backend fails.
	ErrSessionBackend = errors.New("session backend error")
)
