package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"textmatch/internal/client/api"
	"textmatch/internal/client/models"
	"textmatch/internal/client/session"
	"textmatch/internal/common"
	"textmatch/internal/logging"
)

// State is the authentication state of the client.
type State int

const (
	// StateUnknown holds until the initial session check completes.
	StateUnknown State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// SessionInfo is display-only information about the current session. The
// token expiry comes from an unverified JWT claim decode and is never used to
// gate requests; it is zero when the token carries no readable expiry.
type SessionInfo struct {
	User                 models.User
	AccessTokenExpiresAt time.Time
}

// PushRegistrar is the slice of the push bridge the auth flow needs: both
// calls are best-effort and their failures never fail login or logout.
type PushRegistrar interface {
	Register(ctx context.Context) error
	Remove(ctx context.Context) error
}

// AuthService exposes login/register/logout and the current authentication
// state to the rest of the app.
type AuthService interface {
	Restore(ctx context.Context) State
	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, anonymousName, password, email string) error
	Logout(ctx context.Context) error
	State() State
	IsAuthenticated() bool
	CurrentUser() (models.User, bool)
	SessionInfo(ctx context.Context) (SessionInfo, error)
}

type authService struct {
	client   api.Client
	sessions session.Store
	push     PushRegistrar
	log      logging.Logger

	mu    sync.Mutex
	state State
	user  models.User
}

// NewAuthService constructs an AuthService. The state starts at unknown until
// Restore runs.
func NewAuthService(client api.Client, sessions session.Store, push PushRegistrar, log logging.Logger) AuthService {
	return &authService{
		client:   client,
		sessions: sessions,
		push:     push,
		log:      log,
		state:    StateUnknown,
	}
}

func (a *authService) setState(state State, user models.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = state
	a.user = user
}

func (a *authService) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *authService) IsAuthenticated() bool {
	return a.State() == StateAuthenticated
}

func (a *authService) CurrentUser() (models.User, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user, a.state == StateAuthenticated
}

// Restore performs the startup session check: a stored session means
// authenticated, anything else (including a store error) fails closed to
// unauthenticated.
func (a *authService) Restore(ctx context.Context) State {
	sess, ok, err := a.sessions.Load(ctx)
	if err != nil || !ok {
		if err != nil {
			a.log.Warn(ctx, "session restore failed", "error", err)
		}
		a.setState(StateUnauthenticated, models.User{})
		return StateUnauthenticated
	}

	a.setState(StateAuthenticated, sess.User)
	return StateAuthenticated
}

// Login authenticates against the backend, persists the full session
// atomically, and registers the device push token. Push registration is
// best-effort: its failure is logged and never fails the login.
func (a *authService) Login(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", common.ErrEmptyField)
	}

	result, err := a.client.Login(ctx, username, password)
	if err != nil {
		a.setState(StateUnauthenticated, models.User{})
		return fmt.Errorf("login error: %w", err)
	}

	sess := session.Session{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		User:         models.User{UserID: result.UserID, Username: result.Username},
	}
	if err := a.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}

	a.setState(StateAuthenticated, sess.User)

	if err := a.push.Register(ctx); err != nil {
		a.log.Warn(ctx, "push token registration failed", "error", err)
	}
	return nil
}

// Register creates a new account. The password policy is checked client-side
// first, so a weak password never reaches the network. Registration does not
// authenticate; the caller logs in separately.
func (a *authService) Register(ctx context.Context, anonymousName, password, email string) error {
	if strings.TrimSpace(anonymousName) == "" || password == "" {
		return fmt.Errorf("%w: name and password are required", common.ErrEmptyField)
	}
	if err := common.CheckPasswordStrength(password); err != nil {
		return err
	}

	if err := a.client.Register(ctx, anonymousName, password, email); err != nil {
		return fmt.Errorf("registration error: %w", err)
	}
	return nil
}

// Logout removes the push token (best-effort), then unconditionally clears
// the session and transitions to unauthenticated.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.push.Remove(ctx); err != nil {
		a.log.Warn(ctx, "push token removal failed", "error", err)
	}

	err := a.sessions.Clear(ctx)
	a.setState(StateUnauthenticated, models.User{})
	if err != nil {
		return fmt.Errorf("session clearing error: %w", err)
	}
	return nil
}

func (a *authService) SessionInfo(ctx context.Context) (SessionInfo, error) {
	sess, ok, err := a.sessions.Load(ctx)
	if err != nil {
		return SessionInfo{}, err
	}
	if !ok {
		return SessionInfo{}, common.ErrNotLoggedIn
	}

	info := SessionInfo{User: sess.User}
	if tok, _, err := jwt.NewParser().ParseUnverified(sess.AccessToken, jwt.MapClaims{}); err == nil {
		if exp, err := tok.Claims.GetExpirationTime(); err == nil && exp != nil {
			info.AccessTokenExpiresAt = exp.Time
		}
	}
	return info, nil
}
