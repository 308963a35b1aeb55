package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		fullName string
		wantErr  bool
	}{
		{"valid", "jane@example.com", "Str0ng!pass", "Jane Doe", false},
		{"bad email", "not-an-email", "Str0ng!pass", "Jane Doe", true},
		{"blank email", "", "Str0ng!pass", "Jane Doe", true},
		{"short password", "jane@example.com", "S1!a", "Jane Doe", true},
		{"no uppercase", "jane@example.com", "str0ng!pass", "Jane Doe", true},
		{"no digit", "jane@example.com", "Strong!pass", "Jane Doe", true},
		{"no special", "jane@example.com", "Str0ngpass", "Jane Doe", true},
		{"blank name", "jane@example.com", "Str0ng!pass", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSignup(tt.email, tt.password, tt.fullName)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePasswordReset(t *testing.T) {
	assert.NoError(t, ValidatePasswordReset("483920", "Str0ng!pass"))
	assert.Error(t, ValidatePasswordReset("", "Str0ng!pass"))
	assert.Error(t, ValidatePasswordReset("483920", "weak"))
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Str0ng!pass")
	require.NoError(t, err)
	require.NotEqual(t, "Str0ng!pass", hash)

	assert.True(t, CheckPassword(hash, "Str0ng!pass"))
	assert.False(t, CheckPassword(hash, "Wr0ng!pass"))
}
