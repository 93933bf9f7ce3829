package service

import "time"

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateTokens creates a new access token and refresh token for a
	// given subject (evaluator portal ID or admin account UID).
	GenerateTokens(subject string, roles []string) (accessToken string, refreshToken string, err error)

	// ValidateAccessToken checks an access token and returns its subject and roles.
	ValidateAccessToken(tokenString string) (subject string, roles []string, err error)

	// ValidateRefreshToken checks a refresh token and returns its subject.
	// Refresh tokens carry no roles; roles are re-read at refresh time.
	ValidateRefreshToken(tokenString string) (subject string, err error)

	// GetRefreshTokenDuration returns the configured duration for refresh tokens.
	GetRefreshTokenDuration() time.Duration
}
