package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig_Defaults(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("PASSWORD_PEPPER", "")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Empty(t, cfg.Pepper)
}

func TestNewPasswordConfig_CustomCost(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "house-secret")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "house-secret", cfg.Pepper)
}

func TestNewPasswordConfig_BadCost(t *testing.T) {
	cases := []struct {
		name string
		cost string
	}{
		{"non-numeric", "strong"},
		{"below minimum", "9"},
		{"above maximum", "15"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tc.cost)

			cfg, err := NewPasswordConfig()
			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "BCRYPT_COST")
		})
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	// Minimum cost keeps the test fast.
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("correct horse battery")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, cfg.VerifyPassword("correct horse battery", hash))
	assert.False(t, cfg.VerifyPassword("wrong horse battery", hash))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	first, err := cfg.HashPassword("same-password")
	require.NoError(t, err)
	second, err := cfg.HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, cfg.VerifyPassword("same-password", first))
	assert.True(t, cfg.VerifyPassword("same-password", second))
}

func TestHashPassword_OverlongPassword(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	// Bcrypt refuses inputs over 72 bytes.
	hash, err := cfg.HashPassword(strings.Repeat("a", 80))
	assert.Error(t, err)
	assert.Empty(t, hash)
}

func TestVerifyPassword_PepperMismatch(t *testing.T) {
	peppered := &PasswordConfig{BcryptCost: 10, Pepper: "rollout-1"}

	hash, err := peppered.HashPassword("admin-password")
	require.NoError(t, err)

	assert.True(t, peppered.VerifyPassword("admin-password", hash))

	// Without the pepper, or with a rotated one, the hash no longer matches.
	plain := &PasswordConfig{BcryptCost: 10}
	assert.False(t, plain.VerifyPassword("admin-password", hash))

	rotated := &PasswordConfig{BcryptCost: 10, Pepper: "rollout-2"}
	assert.False(t, rotated.VerifyPassword("admin-password", hash))
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	for _, stored := range []string{"", "not-a-bcrypt-hash", "$2a$10$tooshort"} {
		assert.False(t, cfg.VerifyPassword("any-password", stored))
	}
}
