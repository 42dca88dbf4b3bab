package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shrimpcfr/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-that-is-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-at-least-32-characters",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "cfr-test",
		MaxRefreshCount:        2,
	})
}

func testSubject() Subject {
	return Subject{
		UserID:      uuid.New(),
		Email:       "admin@company.com",
		Role:        "admin",
		Permissions: []string{"rates:read", "calculator:calculate"},
	}
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService()
	sub := testSubject()

	pair, err := svc.GenerateTokenPair(sub)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, sub.UserID.String(), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "admin@company.com", claims.Email)
	assert.True(t, claims.HasPermission("rates:read"))
	assert.False(t, claims.HasPermission("users:delete"))
	assert.NotEmpty(t, claims.ID)
	assert.Greater(t, claims.RemainingTTL(), 14*time.Minute)

	id, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, sub.UserID, id)

	refresh, err := svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Empty(t, refresh.Permissions)
	assert.Equal(t, 0, refresh.RefreshCount)
}

func TestJWTService_RejectsWrongTokenType(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                 strings.Repeat("k", 32),
		AccessTokenExpiration:  time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "cfr-test",
	})
	pair, err := svc.GenerateTokenPair(testSubject())
	require.NoError(t, err)

	// same secret for both, so only the token_type claim tells them apart
	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestJWTService_InvalidTokens(t *testing.T) {
	svc := newTestJWTService()

	_, err := svc.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewJWTService(config.JWTConfig{
		Secret:                 "another-secret-key-that-is-32-chars-long",
		AccessTokenExpiration:  time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "cfr-test",
	})
	pair, err := other.GenerateTokenPair(testSubject())
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "x", TokenType: TokenTypeAccess})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_Expired(t *testing.T) {
	svc := newTestJWTService()
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }
	pair, err := svc.GenerateTokenPair(testSubject())
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_RefreshTokenPair(t *testing.T) {
	svc := newTestJWTService()
	sub := testSubject()

	pair, err := svc.GenerateTokenPair(sub)
	require.NoError(t, err)

	for want := 1; want <= 2; want++ {
		claims, err := svc.ValidateRefreshToken(pair.RefreshToken)
		require.NoError(t, err)

		sub.Role = "editor"
		pair, err = svc.RefreshTokenPair(claims, sub)
		require.NoError(t, err)

		next, err := svc.ValidateRefreshToken(pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, want, next.RefreshCount)
	}

	access, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "editor", access.Role)

	claims, err := svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	_, err = svc.RefreshTokenPair(claims, sub)
	assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
}

func TestJWTService_RefreshForOtherUser(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(testSubject())
	require.NoError(t, err)
	claims, err := svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)

	_, err = svc.RefreshTokenPair(claims, testSubject())
	assert.ErrorIs(t, err, ErrInvalidClaims)

	_, err = svc.RefreshTokenPair(&Claims{TokenType: TokenTypeAccess}, testSubject())
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}
