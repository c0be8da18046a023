package session

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"textmatch/internal/client/models"
	"textmatch/internal/dbx"
)

// Storage keys in the local_state table.
const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyUserID       = "user_id"
	keyUsername     = "username"
	keyPushToken    = "push_token"
)

// SQLiteStore keeps the session in the local_state key-value table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func get(ctx context.Context, db dbx.DBTX, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM local_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get local_state[%s]: %w", key, err)
	}
	return value, nil
}

func set(ctx context.Context, db dbx.DBTX, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO local_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set local_state[%s]: %w", key, err)
	}
	return nil
}

// Save writes the whole session record in one transaction, so a reader never
// observes a token without its pair.
func (s *SQLiteStore) Save(ctx context.Context, sess Session) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := set(ctx, tx, keyAccessToken, sess.AccessToken); err != nil {
			return err
		}
		if err := set(ctx, tx, keyRefreshToken, sess.RefreshToken); err != nil {
			return err
		}
		if err := set(ctx, tx, keyUserID, strconv.Itoa(sess.User.UserID)); err != nil {
			return err
		}
		return set(ctx, tx, keyUsername, sess.User.Username)
	})
}

// Load reads the session. A record missing either token is reported as
// absent: the both-or-neither invariant means such a state can only be left
// behind by an interrupted clear, and treating it as logged-in would hand the
// API client half a credential.
func (s *SQLiteStore) Load(ctx context.Context) (Session, bool, error) {
	var sess Session

	access, err := get(ctx, s.db, keyAccessToken)
	if err != nil {
		return sess, false, err
	}
	refresh, err := get(ctx, s.db, keyRefreshToken)
	if err != nil {
		return sess, false, err
	}
	if access == "" || refresh == "" {
		return Session{}, false, nil
	}

	userID, err := get(ctx, s.db, keyUserID)
	if err != nil {
		return sess, false, err
	}
	username, err := get(ctx, s.db, keyUsername)
	if err != nil {
		return sess, false, err
	}

	id, _ := strconv.Atoi(userID)
	sess = Session{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         models.User{UserID: id, Username: username},
	}
	return sess, true, nil
}

// UpdateAccessToken rewrites only the access token, leaving the refresh token
// and identity untouched.
func (s *SQLiteStore) UpdateAccessToken(ctx context.Context, accessToken string) error {
	return set(ctx, s.db, keyAccessToken, accessToken)
}

// Clear removes the whole session in one transaction. The push token stays.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, key := range []string{keyAccessToken, keyRefreshToken, keyUserID, keyUsername} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM local_state WHERE key = ?`, key); err != nil {
				return fmt.Errorf("failed to clear local_state[%s]: %w", key, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) SetPushToken(ctx context.Context, token string) error {
	return set(ctx, s.db, keyPushToken, token)
}

func (s *SQLiteStore) PushToken(ctx context.Context) (string, error) {
	return get(ctx, s.db, keyPushToken)
}
