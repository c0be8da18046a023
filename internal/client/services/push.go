package services

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"textmatch/internal/client/api"
	"textmatch/internal/client/session"
	"textmatch/internal/logging"
)

const pushDeviceType = "cli"

// PushEvent is an incoming push notification delivered to the registered
// handler.
type PushEvent struct {
	Kind    string
	Title   string
	Body    string
	Payload map[string]any
}

// PushService registers the device token with the backend and dispatches
// incoming push events to a handler. Registration and removal are best-effort
// everywhere they are used: callers log failures and move on.
type PushService struct {
	client   api.Client
	sessions session.Store
	log      logging.Logger

	mu      sync.Mutex
	handler func(PushEvent)
}

func NewPushService(client api.Client, sessions session.Store, log logging.Logger) *PushService {
	return &PushService{client: client, sessions: sessions, log: log.With("component", "push")}
}

// deviceToken returns the persisted device token, generating and persisting
// one on first use. The token identifies the device, not the session, so it
// survives logout.
func (p *PushService) deviceToken(ctx context.Context) (string, error) {
	token, err := p.sessions.PushToken(ctx)
	if err != nil {
		return "", err
	}
	if token != "" {
		return token, nil
	}

	token = "textmatch-" + uuid.NewString()
	if err := p.sessions.SetPushToken(ctx, token); err != nil {
		return "", err
	}
	return token, nil
}

// Register sends the device token to the backend. Transient connectivity
// failures are retried with a short bounded backoff; server rejections are
// final.
func (p *PushService) Register(ctx context.Context) error {
	token, err := p.deviceToken(ctx)
	if err != nil {
		return fmt.Errorf("device token error: %w", err)
	}

	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := p.client.RegisterPushToken(ctx, token, runtime.GOOS, pushDeviceType)
		if errors.Is(err, api.ErrUnavailable) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("push token registration error: %w", err)
	}

	p.log.Info(ctx, "push token registered", "token", token)
	return nil
}

// Remove deletes the device token from the backend. The locally persisted
// token is kept for re-registration on the next login.
func (p *PushService) Remove(ctx context.Context) error {
	token, err := p.sessions.PushToken(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	if err := p.client.RemovePushToken(ctx, token); err != nil {
		return fmt.Errorf("push token removal error: %w", err)
	}
	p.log.Info(ctx, "push token removed", "token", token)
	return nil
}

// SetHandler installs the callback invoked for incoming push events.
func (p *PushService) SetHandler(fn func(PushEvent)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handler = fn
}

// Dispatch delivers an event to the registered handler. Events arriving
// before a handler is installed are logged and dropped.
func (p *PushService) Dispatch(ctx context.Context, event PushEvent) {
	p.mu.Lock()
	handler := p.handler
	p.mu.Unlock()

	if handler == nil {
		p.log.Info(ctx, "push event dropped, no handler", "kind", event.Kind)
		return
	}
	handler(event)
}

// DispatchTest emits a canned local notification, for verifying the handler
// wiring end to end without the backend.
func (p *PushService) DispatchTest(ctx context.Context) {
	p.Dispatch(ctx, PushEvent{
		Kind:  "test",
		Title: "Test notification",
		Body:  "Push notifications are working.",
	})
}
