package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "inkwell/internal/errors"
)

func TestDefaultPasswordPolicy(t *testing.T) {
	policy := DefaultPasswordPolicy()

	tests := []struct {
		name            string
		password        string
		username        string
		expectedMessage string
	}{
		{
			name:     "acceptable password",
			password: "correct-horse-battery",
			username: "alice",
		},
		{
			name:            "too short",
			password:        "abc1234",
			username:        "alice",
			expectedMessage: "This password is too short. It must contain at least 8 characters.",
		},
		{
			name:            "entirely numeric",
			password:        "1029384756",
			username:        "alice",
			expectedMessage: "This password is entirely numeric.",
		},
		{
			name:            "common password",
			password:        "password123",
			username:        "alice",
			expectedMessage: "This password is too common.",
		},
		{
			name:            "common password ignores case",
			password:        "QWERTY123",
			username:        "alice",
			expectedMessage: "This password is too common.",
		},
		{
			name:            "contains username",
			password:        "xXalice1990Xx",
			username:        "alice",
			expectedMessage: "The password is too similar to the username.",
		},
		{
			name:            "username contains password",
			password:        "alexander",
			username:        "alexanderhamilton",
			expectedMessage: "The password is too similar to the username.",
		},
		{
			name:     "similarity check skipped without username",
			password: "unrelated-secret",
			username: "",
		},
		{
			name:     "short username does not poison the check",
			password: "salamander99",
			username: "al",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.Validate(tt.password, tt.username)

			if tt.expectedMessage == "" {
				assert.NoError(t, err)
				return
			}

			assert.Error(t, err)
			vErr, ok := err.(*apperrors.ValidationError)
			assert.True(t, ok)
			assert.Equal(t, []string{tt.expectedMessage}, vErr.Fields["password"])
		})
	}
}

func TestPasswordPolicy_RuleOrder(t *testing.T) {
	// A password that is both too short and numeric reports the length
	// failure first.
	err := DefaultPasswordPolicy().Validate("1234", "alice")

	vErr, ok := err.(*apperrors.ValidationError)
	assert.True(t, ok)
	assert.Equal(t, []string{"This password is too short. It must contain at least 8 characters."}, vErr.Fields["password"])
}
