package service

import (
	"testing"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/pkg/auth"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login(t *testing.T) {
	f := newFixture(t)
	anon := Caller{IP: "10.0.0.7", RequestID: "req-login"}

	res, err := f.auth.Login(bg, &LoginCommand{Email: "Jescaps.Antwi@Ashesi.edu.gh", Password: "anything"}, anon)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Jescaps Antwi", res.User.Name)
	assert.Equal(t, domain.RoleDoctor, res.User.Role)
	require.NotEmpty(t, res.Tokens.AccessToken)

	claims, err := f.auth.Authenticate(res.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, domain.RoleDoctor, claims.Role)

	me, err := f.auth.CurrentUser(bg, Caller{UserID: claims.UserID})
	require.NoError(t, err)
	require.NotNil(t, me)
	assert.Equal(t, "jescaps.antwi@ashesi.edu.gh", me.Email)

	assert.Equal(t, float64(1), testutil.ToFloat64(f.m.LoginsTotal.WithLabelValues("success")))

	entries := f.flushAudit(t)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActionLogin, entries[0].Action)
	assert.Equal(t, res.User.ID, entries[0].UserID)
	assert.Equal(t, "10.0.0.7", entries[0].IPAddress)
}

func TestAuthService_LoginRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Login(bg, &LoginCommand{Email: "ghost@example.com", Password: "x"}, Caller{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.Login(bg, &LoginCommand{Email: "admin"}, Caller{})
	requireValidation(t, err, "email must be a valid email address", "password is required")

	_, err = f.auth.LookupUser(bg, "  ", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	assert.Equal(t, float64(1), testutil.ToFloat64(f.m.LoginsTotal.WithLabelValues("rejected")))
	assert.Empty(t, f.flushAudit(t))
}

func TestAuthService_LookupUserAnyPassword(t *testing.T) {
	f := newFixture(t)

	for _, pw := range []string{"", " ", "hunter2"} {
		user, err := f.auth.LookupUser(bg, "jescaps.antwi@ashesi.edu.gh", pw)
		require.NoError(t, err, "password %q", pw)
		require.NotNil(t, user)
		assert.Equal(t, "Dr. Jescaps Antwi", user.Name)
	}

	_, err := f.auth.LookupUser(bg, "ghost@example.com", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_AuthenticateGarbage(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Authenticate("not.a.token")
	assert.Error(t, err)
}

func TestAuthService_Refresh(t *testing.T) {
	f := newFixture(t)

	res, err := f.auth.Login(bg, &LoginCommand{Email: "nanaakua.oduraa@ashesi.edu.gh", Password: "pw"}, Caller{})
	require.NoError(t, err)

	refreshed, err := f.auth.Refresh(bg, &RefreshCommand{RefreshToken: res.Tokens.RefreshToken})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, refreshed.User.ID)

	claims, err := f.auth.Authenticate(refreshed.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleNurse, claims.Role)

	// An access token is not accepted in place of a refresh token.
	_, err = f.auth.Refresh(bg, &RefreshCommand{RefreshToken: res.Tokens.AccessToken})
	assert.ErrorIs(t, err, auth.ErrTokenTypeMismatch)

	_, err = f.auth.Refresh(bg, &RefreshCommand{})
	requireValidation(t, err, "refresh_token is required")
}
