package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	auth "github.com/goliatone/go-accounts"
)

func TestNewCredentials(t *testing.T) {
	creds := auth.NewCredentials("access-token", "refresh-token")

	assert.Equal(t, "Bearer access-token", creds.AccessToken)
	assert.Equal(t, "refresh-token", creds.RefreshToken)
}

func TestClearCredentials(t *testing.T) {
	creds := auth.ClearCredentials()

	assert.Empty(t, creds.AccessToken)
	assert.Empty(t, creds.RefreshToken)
}

func TestStripBearer(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"prefixed", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"raw token passes through", "abc.def.ghi", "abc.def.ghi"},
		{"empty", "", ""},
		{"prefix only", "Bearer ", ""},
		{"lowercase scheme is not stripped", "bearer abc", "bearer abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, auth.StripBearer(tt.input))
		})
	}
}
