package shop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminLogin_PersistsSession(t *testing.T) {
	sh, _, _ := newTestShop(t)

	require.NoError(t, sh.Admin.Login("admin", "lamiti2024"))

	s, found, err := sh.Admin.Session()
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "admin", s.Username)
	assert.Equal(t, testEpoch, s.LoginTime)

	ok, err := sh.Admin.Valid()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAdminLogin_RejectsBadCredential(t *testing.T) {
	sh, _, _ := newTestShop(t)

	for _, tc := range []struct{ user, pass string }{
		{"admin", "wrong"},
		{"root", "lamiti2024"},
		{"", ""},
	} {
		err := sh.Admin.Login(tc.user, tc.pass)
		require.Error(t, err)
		assert.Equal(t, ErrCodeInvalidCredentials, CodeOf(err))
	}

	_, found, err := sh.Admin.Session()
	require.NoError(t, err)
	assert.False(t, found, "failed logins persist nothing")
}

func TestAdminSession_ExpiresAfterTTL(t *testing.T) {
	sh, clock, _ := newTestShop(t)
	require.NoError(t, sh.Admin.Login("admin", "lamiti2024"))

	clock.Advance(time.Hour - time.Second)
	ok, err := sh.Admin.Valid()
	require.NoError(t, err)
	assert.True(t, ok, "still inside the window")

	clock.Advance(2 * time.Second)
	ok, err = sh.Admin.Valid()
	require.NoError(t, err)
	assert.False(t, ok, "the window elapsed")
}

func TestAdminLogout_RemovesSession(t *testing.T) {
	sh, _, _ := newTestShop(t)
	require.NoError(t, sh.Admin.Login("admin", "lamiti2024"))

	require.NoError(t, sh.Admin.Logout())

	ok, err := sh.Admin.Valid()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAdminLogin_RefreshesWindow(t *testing.T) {
	sh, clock, _ := newTestShop(t)
	require.NoError(t, sh.Admin.Login("admin", "lamiti2024"))

	clock.Advance(50 * time.Minute)
	require.NoError(t, sh.Admin.Login("admin", "lamiti2024"))

	clock.Advance(50 * time.Minute)
	ok, err := sh.Admin.Valid()
	require.NoError(t, err)
	assert.True(t, ok, "re-login restarts the session window")
}

func TestAdminSession_SurvivesReload(t *testing.T) {
	sh, _, st := newTestShop(t)
	require.NoError(t, sh.Admin.Login("admin", "lamiti2024"))

	reloaded, err := New(st, Options{
		Clock:         NewFixedClock(testEpoch.Add(30 * time.Minute)),
		AdminUsername: "admin",
		AdminPassword: "lamiti2024",
	})
	require.NoError(t, err)

	ok, err := reloaded.Admin.Valid()
	require.NoError(t, err)
	assert.True(t, ok)
}
