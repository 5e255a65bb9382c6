package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"math/big"
	"strings"
	"unicode"
)

const (
	// SessionIDBytes is the amount of entropy in a session ID.
	SessionIDBytes = 32

	// RandomPasswordLength is the length of generated reset passwords.
	RandomPasswordLength = 12

	// minRandomPasswordLength keeps generated passwords above the policy minimum.
	minRandomPasswordLength = 10

	passwordAlphabet = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// GenerateSessionID returns 32 bytes from the OS CSPRNG encoded as
// unpadded base64url.
func GenerateSessionID() (string, error) {
	buf := make([]byte, SessionIDBytes)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("error generating session id: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// GenerateRandomPassword returns a password of the given length (at least 10)
// drawn uniformly from an alphabet without look-alike characters. The result
// always contains a lower case letter, an upper case letter and a digit.
func GenerateRandomPassword(length int) (string, error) {
	length = max(length, minRandomPasswordLength)
	alphabetLen := big.NewInt(int64(len(passwordAlphabet)))

	for {
		var sb strings.Builder
		sb.Grow(length)
		for range length {
			n, err := rand.Int(rand.Reader, alphabetLen)
			if err != nil {
				return "", fmt.Errorf("error generating random password: %w", err)
			}
			sb.WriteByte(passwordAlphabet[n.Int64()])
		}

		password := sb.String()
		if hasAllClasses(password) {
			return password, nil
		}
	}
}

func hasAllClasses(s string) bool {
	var lower, upper, digit bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}
