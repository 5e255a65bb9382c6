// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// ErrPasswordTooLong is returned by Hash for inputs over [MaxPasswordBytes].
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// bcryptHasher is the bcrypt implementation of [PasswordHasher].
type bcryptHasher struct {
	cost      int
	dummyHash []byte
}

// NewBcryptHasher constructs a [PasswordHasher] with the given bcrypt work
// factor. Costs outside [bcrypt.MinCost, bcrypt.MaxCost] are clamped.
//
// A dummy hash at the same cost is computed once up front for VerifyDummy.
func NewBcryptHasher(cost int) (PasswordHasher, error) {
	cost = min(max(cost, bcrypt.MinCost), bcrypt.MaxCost)

	dummy, err := bcrypt.GenerateFromPassword([]byte("miniforum-timing-equalizer"), cost)
	if err != nil {
		return nil, fmt.Errorf("error preparing dummy hash: %w", err)
	}

	return &bcryptHasher{cost: cost, dummyHash: dummy}, nil
}

// Hash implements [PasswordHasher]. bcrypt embeds a fresh 128-bit salt and
// the cost into the returned string.
func (b *bcryptHasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

// Verify implements [PasswordHasher] using bcrypt.CompareHashAndPassword,
// which compares in constant time.
func (b *bcryptHasher) Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("error verifying password: %w", err)
	}
}

// VerifyDummy implements [PasswordHasher].
func (b *bcryptHasher) VerifyDummy(plaintext string) {
	_ = bcrypt.CompareHashAndPassword(b.dummyHash, []byte(plaintext))
}

// GenerateRandomPassword implements [PasswordHasher].
func (b *bcryptHasher) GenerateRandomPassword() (string, error) {
	return GenerateRandomPassword(RandomPasswordLength)
}
