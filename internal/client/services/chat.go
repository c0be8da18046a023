package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"textmatch/internal/client/api"
	"textmatch/internal/client/models"
	"textmatch/internal/common"
	"textmatch/internal/logging"
)

// ChatService owns the history of the currently open conversation. History is
// polled with full replacement while the conversation is open; a just-sent
// message is appended locally once the server acknowledges it and may
// transiently duplicate until the next poll reconciles the list.
type ChatService struct {
	client   api.Client
	log      logging.Logger
	interval time.Duration

	list syncedList[models.ChatMessage]

	mu       sync.Mutex
	self     string
	peer     string
	onUpdate func(messages []models.ChatMessage)
	stopCh   chan struct{}
	stopped  chan struct{}
}

func NewChatService(client api.Client, interval time.Duration, log logging.Logger) *ChatService {
	return &ChatService{client: client, interval: interval, log: log.With("component", "chat")}
}

// Open makes the conversation with peer the active one and loads its
// history. self is the logged-in user's handle, used for locally appended
// messages.
func (s *ChatService) Open(ctx context.Context, self, peer string) error {
	s.mu.Lock()
	s.self = self
	s.peer = peer
	s.mu.Unlock()
	s.list.reset()

	return s.fetch(ctx, peer)
}

// SetOnUpdate installs a callback invoked with a fresh snapshot whenever the
// open conversation's history changes: after each successful poll and after a
// locally appended send. The callback runs on the poller goroutine; Close
// removes it.
func (s *ChatService) SetOnUpdate(fn func(messages []models.ChatMessage)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = fn
}

func (s *ChatService) notifyUpdate() {
	s.mu.Lock()
	fn := s.onUpdate
	s.mu.Unlock()
	if fn != nil {
		fn(s.list.snapshot())
	}
}

func (s *ChatService) fetch(ctx context.Context, peer string) error {
	seq := s.list.begin()
	history, err := s.client.ChatHistory(ctx, peer)
	if err != nil {
		return fmt.Errorf("chat history fetch error: %w", err)
	}
	if !s.list.apply(seq, history) {
		s.log.Debug(ctx, "stale chat snapshot discarded", "peer", peer, "seq", seq)
		return nil
	}
	s.notifyUpdate()
	return nil
}

// Refresh re-fetches the open conversation's history.
func (s *ChatService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	peer := s.peer
	s.mu.Unlock()
	if peer == "" {
		return nil
	}
	return s.fetch(ctx, peer)
}

func (s *ChatService) Messages() []models.ChatMessage {
	return s.list.snapshot()
}

// Send posts a message to the open conversation and appends it locally with
// the server-assigned timestamp. On failure the history is left unchanged.
func (s *ChatService) Send(ctx context.Context, text string) error {
	s.mu.Lock()
	self, peer := s.self, s.peer
	s.mu.Unlock()
	if peer == "" {
		return fmt.Errorf("no open conversation")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: message text is required", common.ErrEmptyField)
	}
	if utf8.RuneCountInString(text) > models.MaxChatMessageLen {
		return fmt.Errorf("%w: a message is limited to %d characters", common.ErrContentTooLong, models.MaxChatMessageLen)
	}

	sentAt, err := s.client.SendMessage(ctx, peer, text)
	if err != nil {
		return fmt.Errorf("send error: %w", err)
	}

	msg := models.ChatMessage{Sender: self, Receiver: peer, Message: text, Timestamp: sentAt}
	s.list.mutate(func(items []models.ChatMessage) []models.ChatMessage {
		return append(items, msg)
	})
	s.notifyUpdate()
	return nil
}

// StartPolling begins polling the open conversation's history. Starting a
// new poller cancels any prior one; only one timer is ever active.
func (s *ChatService) StartPolling(ctx context.Context) {
	s.StopPolling()

	s.mu.Lock()
	stopCh := make(chan struct{})
	stopped := make(chan struct{})
	s.stopCh, s.stopped = stopCh, stopped
	s.mu.Unlock()

	go func() {
		defer close(stopped)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := s.Refresh(ctx); err != nil {
					s.log.Warn(ctx, "chat poll failed", "error", err)
				}
			case <-stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// StopPolling halts the poll timer. In-flight requests are not cancelled,
// only further scheduling stops.
func (s *ChatService) StopPolling() {
	s.mu.Lock()
	stopCh, stopped := s.stopCh, s.stopped
	s.stopCh, s.stopped = nil, nil
	s.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
		<-stopped
	}
}

// Close leaves the conversation: polling stops, the update callback is
// removed, and the history is dropped.
func (s *ChatService) Close() {
	s.StopPolling()
	s.mu.Lock()
	s.self, s.peer = "", ""
	s.onUpdate = nil
	s.mu.Unlock()
	s.list.reset()
}
