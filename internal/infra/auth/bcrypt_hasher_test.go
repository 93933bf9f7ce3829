package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"htga/config"
)

func newTestHasher() *bcryptHasher {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 4}}

	return NewBcryptHasher(cfg).(*bcryptHasher)
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := newTestHasher()

	hash, err := hasher.Hash("s3cret-password")
	require.NoError(t, err)

	assert.True(t, hasher.IsHashed(hash))
	assert.True(t, hasher.Check("s3cret-password", hash))
	assert.False(t, hasher.Check("wrong-password", hash))
}

func TestBcryptHasher_LegacyPlaintext(t *testing.T) {
	hasher := newTestHasher()

	// Legacy records store the raw credential; both forms must be accepted.
	assert.False(t, hasher.IsHashed("legacy-password"))
	assert.True(t, hasher.Check("legacy-password", "legacy-password"))
	assert.False(t, hasher.Check("other", "legacy-password"))
}
