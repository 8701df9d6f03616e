package service

import (
	"testing"

	"stakevault/config"
	"stakevault/internal/auth"
	"stakevault/internal/domain"
	"stakevault/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterWithReferralCode(t *testing.T) {
	e := newTestEnv(t)
	referrer := e.createUser(t, 0)

	u, access, refresh, err := e.auth.Register("alice", "alice@test.local", "s3cret123", referrer.ReferralCode)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, referrer.ReferralCode, u.ReferredBy)
	assert.NotEmpty(t, u.ReferralCode)
	assert.NotEqual(t, referrer.ReferralCode, u.ReferralCode)

	edge, err := e.referrals.GetEdgeByReferredUserID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, referrer.ID, edge.ReferrerID)
	assert.Equal(t, 1, edge.LevelNumber)
}

func TestRegisterIgnoresUnknownReferralCode(t *testing.T) {
	e := newTestEnv(t)

	u, _, _, err := e.auth.Register("bob", "bob@test.local", "s3cret123", "NOSUCHCODE")
	require.NoError(t, err, "a bad referral code must not block signup")
	assert.Empty(t, u.ReferredBy)

	_, err = e.referrals.GetEdgeByReferredUserID(u.ID)
	assert.Error(t, err)
}

func TestRegisterDuplicates(t *testing.T) {
	e := newTestEnv(t)

	_, _, _, err := e.auth.Register("carol", "carol@test.local", "s3cret123", "")
	require.NoError(t, err)

	_, _, _, err = e.auth.Register("carol2", "carol@test.local", "s3cret123", "")
	assert.ErrorIs(t, err, ErrEmailExists)

	_, _, _, err = e.auth.Register("carol", "carol2@test.local", "s3cret123", "")
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestLogin(t *testing.T) {
	e := newTestEnv(t)
	_, _, _, err := e.auth.Register("dave", "dave@test.local", "s3cret123", "")
	require.NoError(t, err)

	u, access, _, err := e.auth.Login("dave@test.local", "s3cret123")
	require.NoError(t, err)
	assert.Equal(t, "dave", u.Username)

	claims, err := auth.ParseAccessToken(&config.JWTConfig{AccessSecret: "test-access"}, access)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)

	_, _, _, err = e.auth.Login("dave@test.local", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCreds)
	_, _, _, err = e.auth.Login("nobody@test.local", "s3cret123")
	assert.ErrorIs(t, err, ErrInvalidCreds)
}

func TestLoginBannedAccount(t *testing.T) {
	e := newTestEnv(t)
	u, _, _, err := e.auth.Register("eve", "eve@test.local", "s3cret123", "")
	require.NoError(t, err)
	require.NoError(t, e.db.Model(&models.User{}).Where("id = ?", u.ID).Update("is_banned", true).Error)

	_, _, _, err = e.auth.Login("eve@test.local", "s3cret123")
	assert.ErrorIs(t, err, ErrAccountBanned)
}

func TestChangePassword(t *testing.T) {
	e := newTestEnv(t)
	u, _, _, err := e.auth.Register("frank", "frank@test.local", "oldpass123", "")
	require.NoError(t, err)

	require.Error(t, e.auth.ChangePassword(u.ID, "wrongpass", "newpass123"))
	require.NoError(t, e.auth.ChangePassword(u.ID, "oldpass123", "newpass123"))

	_, _, _, err = e.auth.Login("frank@test.local", "oldpass123")
	assert.ErrorIs(t, err, ErrInvalidCreds)
	_, _, _, err = e.auth.Login("frank@test.local", "newpass123")
	assert.NoError(t, err)
}

func TestRefreshToken(t *testing.T) {
	e := newTestEnv(t)
	_, _, refresh, err := e.auth.Register("grace", "grace@test.local", "s3cret123", "")
	require.NoError(t, err)

	access, newRefresh, err := e.auth.RefreshToken(refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, newRefresh)

	_, _, err = e.auth.RefreshToken("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
