package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey(t *testing.T) {
	existing := map[string]any{
		"firebase": map[string]any{
			"databaseUrl":     "https://htga.firebaseio.com",
			"credentialsPath": "sa.json",
		},
		"secretKey": map[string]any{
			"access": "a",
		},
	}

	tests := []struct {
		rawKey string
		want   string
	}{
		{"FIREBASE_DATABASEURL", "firebase.databaseUrl"},
		{"FIREBASE_CREDENTIALSPATH", "firebase.credentialsPath"},
		{"SECRETKEY_ACCESS", "secretKey.access"},
		// Unknown segments fall back to lowercase pass-through.
		{"MAIL_HOST", "mail.host"},
	}

	for _, tt := range tests {
		t.Run(tt.rawKey, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.rawKey, existing))
		})
	}
}
