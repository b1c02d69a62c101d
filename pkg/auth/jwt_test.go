package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthnet/scheduling/internal/config"
	"github.com/healthnet/scheduling/internal/domain"
)

func testManager(ttl time.Duration) *JWTManager {
	return NewJWTManager(config.JWTConfig{
		Secret:          "test-secret-for-local-use-only",
		Issuer:          "healthnet-test",
		AccessTokenTTL:  ttl,
		RefreshTokenTTL: ttl * 2,
	})
}

func testClaims() *domain.Claims {
	return &domain.Claims{
		UserID:   uuid.New(),
		Username: "apark",
		Role:     domain.RolePatient,
		PersonID: uuid.New(),
	}
}

func TestTokenPairRoundTrip(t *testing.T) {
	m := testManager(15 * time.Minute)
	in := testClaims()

	pair, err := m.GenerateTokenPair(in)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)

	out, err := m.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, in.UserID, out.UserID)
	assert.Equal(t, in.Username, out.Username)
	assert.Equal(t, in.Role, out.Role)
	assert.Equal(t, in.PersonID, out.PersonID)

	out, err = m.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, in.UserID, out.UserID)
}

func TestTokenTypeMismatch(t *testing.T) {
	m := testManager(15 * time.Minute)

	pair, err := m.GenerateTokenPair(testClaims())
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenTypeMismatch)

	_, err = m.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenTypeMismatch)
}

func TestExpiredToken(t *testing.T) {
	m := testManager(-time.Minute)

	pair, err := m.GenerateTokenPair(testClaims())
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestWrongSecretRejected(t *testing.T) {
	pair, err := testManager(15 * time.Minute).GenerateTokenPair(testClaims())
	require.NoError(t, err)

	other := NewJWTManager(config.JWTConfig{
		Secret:          "a-different-secret-entirely",
		Issuer:          "healthnet-test",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
	})
	_, err = other.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
