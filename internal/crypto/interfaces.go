// Package crypto holds the password hashing and random secret generation
// used by the authentication flows.
package crypto

// PasswordHasher produces and checks salted, deliberately slow password
// hashes. Implementations must compare in constant time.
type PasswordHasher interface {
	// Hash returns a self-describing salted hash of plaintext. Hashing the
	// same plaintext twice yields different hashes.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches hash. A mismatch is reported
	// as false with a nil error; a malformed hash is an error.
	Verify(plaintext, hash string) (bool, error)

	// VerifyDummy spends the same work as a real Verify against a fixed
	// hash. It is used when no stored hash exists so that the response time
	// does not reveal whether a username is registered.
	VerifyDummy(plaintext string)

	// GenerateRandomPassword returns a fresh temporary password suitable for
	// mailing to a user who requested a reset.
	GenerateRandomPassword() (string, error)
}
