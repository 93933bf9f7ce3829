// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"htga/config"
	"htga/internal/domain/service"
)

// hashPrefix is the fixed prefix that distinguishes hashed credentials from
// legacy plaintext records ("$2a$", "$2b$", "$2y$" bcrypt variants).
const hashPrefix = "$2"

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg != nil && cfg.Auth != nil && cfg.Auth.BcryptCost > 0 {
		cost = cfg.Auth.BcryptCost
	}

	return &bcryptHasher{cost: cost}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a stored credential. Hashed
// credentials go through bcrypt; legacy plaintext records are compared in
// constant time until they are upgraded on login.
func (h *bcryptHasher) Check(password, stored string) bool {
	if h.IsHashed(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}

	return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1
}

// IsHashed reports whether the stored credential is a bcrypt hash.
func (h *bcryptHasher) IsHashed(stored string) bool {
	return strings.HasPrefix(stored, hashPrefix)
}
