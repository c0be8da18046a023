package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textmatch/internal/client/api"
	"textmatch/internal/client/models"
	"textmatch/internal/client/session"
	"textmatch/internal/common"
)

func newAuthFixture(client *fakeClient) (AuthService, *memStore) {
	store := &memStore{}
	push := NewPushService(client, store, testLogger())
	return NewAuthService(client, store, push, testLogger()), store
}

func TestAuthStateStartsUnknown(t *testing.T) {
	auth, _ := newAuthFixture(&fakeClient{})
	assert.Equal(t, StateUnknown, auth.State())
	assert.False(t, auth.IsAuthenticated())
}

func TestAuthRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("stored session restores authenticated", func(t *testing.T) {
		auth, store := newAuthFixture(&fakeClient{})
		err := store.Save(ctx, session.Session{
			AccessToken:  "a1",
			RefreshToken: "r1",
			User:         models.User{UserID: 7, Username: "quietfox"},
		})
		require.NoError(t, err)

		assert.Equal(t, StateAuthenticated, auth.Restore(ctx))
		user, ok := auth.CurrentUser()
		require.True(t, ok)
		assert.Equal(t, "quietfox", user.Username)
	})

	t.Run("no session restores unauthenticated", func(t *testing.T) {
		auth, _ := newAuthFixture(&fakeClient{})
		assert.Equal(t, StateUnauthenticated, auth.Restore(ctx))
		_, ok := auth.CurrentUser()
		assert.False(t, ok)
	})
}

func TestAuthLoginPersistsSessionAndRegistersPush(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{
		LoginFn: func(username, password string) (api.LoginResult, error) {
			return api.LoginResult{
				AccessToken:  "acc",
				RefreshToken: "ref",
				UserID:       42,
				Username:     username,
			}, nil
		},
	}
	auth, store := newAuthFixture(client)

	require.NoError(t, auth.Login(ctx, "quietfox", "P@ssw0rd1"))

	assert.Equal(t, StateAuthenticated, auth.State())
	sess, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "acc", sess.AccessToken)
	assert.Equal(t, "ref", sess.RefreshToken)
	assert.Equal(t, 42, sess.User.UserID)

	assert.Equal(t, 1, client.callCount("RegisterPushToken"))
	token, err := store.PushToken(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestAuthLoginFailure(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{
		LoginFn: func(username, password string) (api.LoginResult, error) {
			return api.LoginResult{}, &api.Error{StatusCode: 401, Message: "bad credentials"}
		},
	}
	auth, store := newAuthFixture(client)

	err := auth.Login(ctx, "quietfox", "wrong")
	require.Error(t, err)
	assert.Equal(t, StateUnauthenticated, auth.State())

	_, ok, loadErr := store.Load(ctx)
	require.NoError(t, loadErr)
	assert.False(t, ok, "failed login must not persist a session")
	assert.Zero(t, client.callCount("RegisterPushToken"))
}

func TestAuthLoginPushFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{
		LoginFn: func(username, password string) (api.LoginResult, error) {
			return api.LoginResult{AccessToken: "acc", RefreshToken: "ref", Username: username}, nil
		},
		RegisterPushFn: func(token, platform, deviceType string) error {
			return &api.Error{StatusCode: 500, Message: "push backend down"}
		},
	}
	auth, _ := newAuthFixture(client)

	require.NoError(t, auth.Login(ctx, "quietfox", "P@ssw0rd1"))
	assert.True(t, auth.IsAuthenticated())
}

func TestAuthRegisterValidatesBeforeNetwork(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"empty name", "  ", "P@ssw0rd1", common.ErrEmptyField},
		{"empty password", "quietfox", "", common.ErrEmptyField},
		{"too short", "quietfox", "Ab1!", common.ErrPasswordTooWeak},
		{"no symbol", "quietfox", "Abcdefg1", common.ErrPasswordTooWeak},
		{"no digit", "quietfox", "Abcdefg!", common.ErrPasswordTooWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{}
			auth, _ := newAuthFixture(client)

			err := auth.Register(ctx, tt.username, tt.password, "")
			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, client.callCount("Register"), "weak input must not reach the network")
		})
	}
}

func TestAuthRegisterDoesNotAuthenticate(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{}
	auth, _ := newAuthFixture(client)

	require.NoError(t, auth.Register(ctx, "quietfox", "P@ssw0rd1", "fox@example.com"))
	assert.Equal(t, 1, client.callCount("Register"))
	assert.False(t, auth.IsAuthenticated())
}

func TestAuthLogoutClearsSession(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{
		LoginFn: func(username, password string) (api.LoginResult, error) {
			return api.LoginResult{AccessToken: "acc", RefreshToken: "ref", Username: username}, nil
		},
	}
	auth, store := newAuthFixture(client)
	require.NoError(t, auth.Login(ctx, "quietfox", "P@ssw0rd1"))

	require.NoError(t, auth.Logout(ctx))

	assert.Equal(t, StateUnauthenticated, auth.State())
	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, client.callCount("RemovePushToken"))

	token, err := store.PushToken(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, token, "device token survives logout")
}

func TestAuthLogoutSurvivesPushRemovalFailure(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{
		LoginFn: func(username, password string) (api.LoginResult, error) {
			return api.LoginResult{AccessToken: "acc", RefreshToken: "ref", Username: username}, nil
		},
		RemovePushFn: func(token string) error {
			return errors.New("connection refused")
		},
	}
	auth, store := newAuthFixture(client)
	require.NoError(t, auth.Login(ctx, "quietfox", "P@ssw0rd1"))

	require.NoError(t, auth.Logout(ctx))
	assert.Equal(t, StateUnauthenticated, auth.State())

	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "session is cleared even when push removal fails")
}

func TestAuthSessionInfo(t *testing.T) {
	ctx := context.Background()

	t.Run("not logged in", func(t *testing.T) {
		auth, _ := newAuthFixture(&fakeClient{})
		_, err := auth.SessionInfo(ctx)
		assert.ErrorIs(t, err, common.ErrNotLoggedIn)
	})

	t.Run("expiry from token claims", func(t *testing.T) {
		exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": exp.Unix(),
		})
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		auth, store := newAuthFixture(&fakeClient{})
		require.NoError(t, store.Save(ctx, session.Session{
			AccessToken:  signed,
			RefreshToken: "ref",
			User:         models.User{UserID: 7, Username: "quietfox"},
		}))

		info, err := auth.SessionInfo(ctx)
		require.NoError(t, err)
		assert.Equal(t, "quietfox", info.User.Username)
		assert.Equal(t, exp.Unix(), info.AccessTokenExpiresAt.Unix())
	})

	t.Run("opaque token has zero expiry", func(t *testing.T) {
		auth, store := newAuthFixture(&fakeClient{})
		require.NoError(t, store.Save(ctx, session.Session{
			AccessToken:  "not-a-jwt",
			RefreshToken: "ref",
			User:         models.User{Username: "quietfox"},
		}))

		info, err := auth.SessionInfo(ctx)
		require.NoError(t, err)
		assert.True(t, info.AccessTokenExpiresAt.IsZero())
	})
}
