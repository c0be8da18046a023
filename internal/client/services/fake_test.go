package services

import (
	"context"
	"io"
	"sync"
	"time"

	"textmatch/internal/client/api"
	"textmatch/internal/client/models"
	"textmatch/internal/client/session"
	"textmatch/internal/logging"
)

func testLogger() logging.Logger {
	return logging.Setup(io.Discard, "error")
}

// fakeClient implements api.Client for unit tests. Each method returns zero
// values unless the corresponding hook is set; call counts are always
// recorded.
type fakeClient struct {
	mu    sync.Mutex
	calls map[string]int

	LoginFn         func(username, password string) (api.LoginResult, error)
	RegisterFn      func(anonymousName, password, email string) error
	FeedFn          func() ([]models.TextCard, error)
	LikeCardFn      func(cardID int) (models.LikeResult, error)
	RejectCardFn    func(cardID int) error
	RespondFn       func(cardID int, text string) error
	CreateCardFn    func(content string) (models.MyCard, error)
	MyCardsFn       func() ([]models.MyCard, error)
	CardResponsesFn func(cardID int) ([]models.CardResponse, error)
	AcceptFn        func(responseID int) (models.AcceptResult, error)
	IgnoreFn        func(responseID int) error
	MatchesFn       func() ([]models.Match, error)
	ChatHistoryFn   func(username string) ([]models.ChatMessage, error)
	SendMessageFn   func(receiver, message string) (time.Time, error)
	NotificationsFn func() ([]models.Notification, error)
	MarkReadFn      func(id string) error
	MarkAllReadFn   func() error
	ClearFn         func() error
	RegisterPushFn  func(token, platform, deviceType string) error
	RemovePushFn    func(token string) error
}

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
}

func (f *fakeClient) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeClient) Register(_ context.Context, anonymousName, password, email string) error {
	f.record("Register")
	if f.RegisterFn != nil {
		return f.RegisterFn(anonymousName, password, email)
	}
	return nil
}

func (f *fakeClient) Login(_ context.Context, username, password string) (api.LoginResult, error) {
	f.record("Login")
	if f.LoginFn != nil {
		return f.LoginFn(username, password)
	}
	return api.LoginResult{}, nil
}

func (f *fakeClient) Feed(_ context.Context) ([]models.TextCard, error) {
	f.record("Feed")
	if f.FeedFn != nil {
		return f.FeedFn()
	}
	return nil, nil
}

func (f *fakeClient) CreateCard(_ context.Context, content string) (models.MyCard, error) {
	f.record("CreateCard")
	if f.CreateCardFn != nil {
		return f.CreateCardFn(content)
	}
	return models.MyCard{}, nil
}

func (f *fakeClient) MyCards(_ context.Context) ([]models.MyCard, error) {
	f.record("MyCards")
	if f.MyCardsFn != nil {
		return f.MyCardsFn()
	}
	return nil, nil
}

func (f *fakeClient) CardResponses(_ context.Context, cardID int) ([]models.CardResponse, error) {
	f.record("CardResponses")
	if f.CardResponsesFn != nil {
		return f.CardResponsesFn(cardID)
	}
	return nil, nil
}

func (f *fakeClient) AcceptResponse(_ context.Context, responseID int) (models.AcceptResult, error) {
	f.record("AcceptResponse")
	if f.AcceptFn != nil {
		return f.AcceptFn(responseID)
	}
	return models.AcceptResult{}, nil
}

func (f *fakeClient) IgnoreResponse(_ context.Context, responseID int) error {
	f.record("IgnoreResponse")
	if f.IgnoreFn != nil {
		return f.IgnoreFn(responseID)
	}
	return nil
}

func (f *fakeClient) LikeCard(_ context.Context, cardID int) (models.LikeResult, error) {
	f.record("LikeCard")
	if f.LikeCardFn != nil {
		return f.LikeCardFn(cardID)
	}
	return models.LikeResult{}, nil
}

func (f *fakeClient) RejectCard(_ context.Context, cardID int) error {
	f.record("RejectCard")
	if f.RejectCardFn != nil {
		return f.RejectCardFn(cardID)
	}
	return nil
}

func (f *fakeClient) RespondToCard(_ context.Context, cardID int, text string) error {
	f.record("RespondToCard")
	if f.RespondFn != nil {
		return f.RespondFn(cardID, text)
	}
	return nil
}

func (f *fakeClient) Matches(_ context.Context) ([]models.Match, error) {
	f.record("Matches")
	if f.MatchesFn != nil {
		return f.MatchesFn()
	}
	return nil, nil
}

func (f *fakeClient) ChatHistory(_ context.Context, username string) ([]models.ChatMessage, error) {
	f.record("ChatHistory")
	if f.ChatHistoryFn != nil {
		return f.ChatHistoryFn(username)
	}
	return nil, nil
}

func (f *fakeClient) SendMessage(_ context.Context, receiver, message string) (time.Time, error) {
	f.record("SendMessage")
	if f.SendMessageFn != nil {
		return f.SendMessageFn(receiver, message)
	}
	return time.Time{}, nil
}

func (f *fakeClient) Notifications(_ context.Context) ([]models.Notification, error) {
	f.record("Notifications")
	if f.NotificationsFn != nil {
		return f.NotificationsFn()
	}
	return nil, nil
}

func (f *fakeClient) MarkNotificationRead(_ context.Context, id string) error {
	f.record("MarkNotificationRead")
	if f.MarkReadFn != nil {
		return f.MarkReadFn(id)
	}
	return nil
}

func (f *fakeClient) MarkAllNotificationsRead(_ context.Context) error {
	f.record("MarkAllNotificationsRead")
	if f.MarkAllReadFn != nil {
		return f.MarkAllReadFn()
	}
	return nil
}

func (f *fakeClient) ClearNotifications(_ context.Context) error {
	f.record("ClearNotifications")
	if f.ClearFn != nil {
		return f.ClearFn()
	}
	return nil
}

func (f *fakeClient) RegisterPushToken(_ context.Context, token, platform, deviceType string) error {
	f.record("RegisterPushToken")
	if f.RegisterPushFn != nil {
		return f.RegisterPushFn(token, platform, deviceType)
	}
	return nil
}

func (f *fakeClient) RemovePushToken(_ context.Context, token string) error {
	f.record("RemovePushToken")
	if f.RemovePushFn != nil {
		return f.RemovePushFn(token)
	}
	return nil
}

// memStore is an in-memory session.Store for tests.
type memStore struct {
	mu        sync.Mutex
	sess      session.Session
	has       bool
	pushToken string
}

func (m *memStore) Save(_ context.Context, s session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess, m.has = s, true
	return nil
}

func (m *memStore) Load(_ context.Context) (session.Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess, m.has, nil
}

func (m *memStore) UpdateAccessToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess.AccessToken = token
	return nil
}

func (m *memStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess, m.has = session.Session{}, false
	return nil
}

func (m *memStore) SetPushToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pushToken = token
	return nil
}

func (m *memStore) PushToken(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pushToken, nil
}
