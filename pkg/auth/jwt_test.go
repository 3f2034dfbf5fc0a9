package auth

import (
	"testing"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/config"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *JWTManager {
	return NewJWTManager(config.JWTConfig{
		Secret:          "0123456789abcdef0123456789abcdef",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
		Issuer:          "clinicdesk-test",
	})
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := newTestManager()
	claims := &domain.Claims{
		UserID: uuid.New(),
		Email:  "jescaps.antwi@ashesi.edu.gh",
		Name:   "Dr. Jescaps Antwi",
		Role:   domain.RoleDoctor,
	}

	pair, err := m.GenerateTokenPair(claims)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	got, err := m.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, claims, got)

	refreshed, err := m.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, refreshed.UserID)
}

func TestJWTManager_RejectsWrongTokenType(t *testing.T) {
	m := newTestManager()
	pair, err := m.GenerateTokenPair(&domain.Claims{UserID: uuid.New(), Role: domain.RoleNurse})
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenTypeMismatch)
}

func TestJWTManager_Expired(t *testing.T) {
	m := newTestManager()
	issued := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }

	pair, err := m.GenerateTokenPair(&domain.Claims{UserID: uuid.New(), Role: domain.RoleAdmin})
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(16 * time.Minute) }
	_, err = m.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTManager_TamperedAndForeign(t *testing.T) {
	m := newTestManager()
	pair, err := m.GenerateTokenPair(&domain.Claims{UserID: uuid.New(), Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(pair.AccessToken + "x")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	other := NewJWTManager(config.JWTConfig{
		Secret:         "ffffffffffffffffffffffffffffffff",
		AccessTokenTTL: time.Minute,
		Issuer:         "clinicdesk-test",
	})
	_, err = other.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTManager_RejectsUnknownRole(t *testing.T) {
	m := newTestManager()
	pair, err := m.GenerateTokenPair(&domain.Claims{UserID: uuid.New(), Role: "janitor"})
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
