// Package session owns the persisted client session: the access/refresh token
// pair and the cached user identity. It is the sole source of truth for
// "is a user logged in".
package session

import (
	"context"

	"textmatch/internal/client/models"
)

// Session is the pair of credentials plus cached identity representing a
// logged-in user. AccessToken and RefreshToken are opaque to the client.
//
// Invariant: both tokens are present or both are absent, never one without
// the other. The store enforces this by writing and clearing whole records
// only.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         models.User
}

// Store persists the session in device-local storage.
//
// Contract:
//   - Save writes all fields atomically; no partial write is observable.
//   - Load returns (session, true) when a session exists and (zero, false)
//     otherwise; absence is not an error.
//   - UpdateAccessToken rewrites only the access token (used after a token
//     refresh). It must not touch the refresh token or identity.
//   - Clear removes the whole session. Clearing an absent session is a no-op.
//
// The store also keeps the device push token, which deliberately survives
// Clear: the token identifies the device, not the session.
type Store interface {
	Save(ctx context.Context, s Session) error
	Load(ctx context.Context) (Session, bool, error)
	UpdateAccessToken(ctx context.Context, accessToken string) error
	Clear(ctx context.Context) error

	SetPushToken(ctx context.Context, token string) error
	PushToken(ctx context.Context) (string, error)
}
