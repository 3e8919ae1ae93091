package config

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig(t *testing.T) {
	for _, cost := range []int{10, 12, 14} {
		cfg, err := NewPasswordConfig(cost, "")
		require.NoError(t, err)
		assert.Equal(t, cost, cfg.BcryptCost)
	}
	for _, cost := range []int{0, 9, 15, 31} {
		_, err := NewPasswordConfig(cost, "")
		assert.ErrorContains(t, err, "bcrypt cost out of range")
	}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	cfg, err := NewPasswordConfig(10, "")
	require.NoError(t, err)

	hash, err := cfg.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$10$"))

	assert.True(t, cfg.VerifyPassword("correct horse", hash))
	assert.False(t, cfg.VerifyPassword("wrong horse", hash))
	assert.False(t, cfg.VerifyPassword("correct horse", "not-a-hash"))

	again, err := cfg.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "salts must differ")
}

func TestPasswordConfig_Pepper(t *testing.T) {
	peppered, err := NewPasswordConfig(10, "pepper-1")
	require.NoError(t, err)
	plain, err := NewPasswordConfig(10, "")
	require.NoError(t, err)
	rotated, err := NewPasswordConfig(10, "pepper-2")
	require.NoError(t, err)

	hash, err := peppered.HashPassword("secret-password")
	require.NoError(t, err)

	assert.True(t, peppered.VerifyPassword("secret-password", hash))
	assert.False(t, plain.VerifyPassword("secret-password", hash))
	assert.False(t, rotated.VerifyPassword("secret-password", hash))
}

func TestPasswordConfig_TooLong(t *testing.T) {
	cfg, err := NewPasswordConfig(10, strings.Repeat("p", 8))
	require.NoError(t, err)

	_, err = cfg.HashPassword(strings.Repeat("a", 64))
	require.NoError(t, err)

	_, err = cfg.HashPassword(strings.Repeat("a", 65))
	assert.True(t, errors.Is(err, ErrPasswordTooLong))
}

func TestPasswordConfig_ConcurrentAccess(t *testing.T) {
	cfg, err := NewPasswordConfig(10, "pepper")
	require.NoError(t, err)
	hash, err := cfg.HashPassword("shared")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, cfg.VerifyPassword("shared", hash))
		}()
	}
	wg.Wait()
}

func TestConfig_Password(t *testing.T) {
	cfg := Defaults()
	cfg.PasswordPepper = "x"
	pw, err := cfg.Password()
	require.NoError(t, err)
	assert.Equal(t, 12, pw.BcryptCost)
	assert.Equal(t, "x", pw.Pepper)
}
