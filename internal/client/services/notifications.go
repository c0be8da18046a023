package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"textmatch/internal/client/api"
	"textmatch/internal/client/models"
	"textmatch/internal/logging"
)

// NotificationService maintains the in-memory notification list, refreshed by
// polling and by explicit user action. Server order is preserved; the list is
// never re-sorted client-side.
//
// Consistency trade-off: refreshes are full replacements, so a local
// optimistic read-flag flip that has not reached the server yet is lost when
// a refresh races the mark-as-read call. The next confirmed refresh converges.
type NotificationService struct {
	client api.Client
	log    logging.Logger
	list   syncedList[models.Notification]

	mu      sync.Mutex
	stopCh  chan struct{}
	stopped chan struct{}
}

func NewNotificationService(client api.Client, log logging.Logger) *NotificationService {
	return &NotificationService{client: client, log: log.With("component", "notifications")}
}

// Refresh fetches the current batch and replaces the local sequence.
func (s *NotificationService) Refresh(ctx context.Context) error {
	seq := s.list.begin()
	notifications, err := s.client.Notifications(ctx)
	if err != nil {
		return fmt.Errorf("notifications fetch error: %w", err)
	}
	if !s.list.apply(seq, notifications) {
		s.log.Debug(ctx, "stale notification snapshot discarded", "seq", seq)
	}
	return nil
}

func (s *NotificationService) Notifications() []models.Notification {
	return s.list.snapshot()
}

// UnreadCount is the number of local records with read=false.
func (s *NotificationService) UnreadCount() int {
	count := 0
	for _, n := range s.list.snapshot() {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkAsRead flips the local record immediately, then confirms with the
// server. The server call is fire-and-forget: a failure is logged, never
// rolled back.
func (s *NotificationService) MarkAsRead(ctx context.Context, id string) {
	s.list.mutate(func(items []models.Notification) []models.Notification {
		for i := range items {
			if items[i].ID == id {
				items[i].Read = true
			}
		}
		return items
	})

	if err := s.client.MarkNotificationRead(ctx, id); err != nil {
		s.log.Warn(ctx, "mark as read failed", "id", id, "error", err)
	}
}

// MarkAllAsRead flips every local record and confirms with one bulk call.
func (s *NotificationService) MarkAllAsRead(ctx context.Context) {
	s.list.mutate(func(items []models.Notification) []models.Notification {
		for i := range items {
			items[i].Read = true
		}
		return items
	})

	if err := s.client.MarkAllNotificationsRead(ctx); err != nil {
		s.log.Warn(ctx, "mark all as read failed", "error", err)
	}
}

// ClearAll deletes all notifications on the server and empties the local
// sequence. Asking the user for confirmation is the caller's job.
func (s *NotificationService) ClearAll(ctx context.Context) error {
	if err := s.client.ClearNotifications(ctx); err != nil {
		return fmt.Errorf("clear notifications error: %w", err)
	}
	s.list.reset()
	return nil
}

// StartPolling refreshes on a fixed interval until StopPolling or ctx
// cancellation. Starting a new poller cancels any prior one; only one timer
// is ever active.
func (s *NotificationService) StartPolling(ctx context.Context, interval time.Duration) {
	s.StopPolling()

	s.mu.Lock()
	stopCh := make(chan struct{})
	stopped := make(chan struct{})
	s.stopCh, s.stopped = stopCh, stopped
	s.mu.Unlock()

	go func() {
		defer close(stopped)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := s.Refresh(ctx); err != nil {
					s.log.Warn(ctx, "notification poll failed", "error", err)
				}
			case <-stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// StopPolling halts the poll timer; in-flight requests are not cancelled.
func (s *NotificationService) StopPolling() {
	s.mu.Lock()
	stopCh, stopped := s.stopCh, s.stopped
	s.stopCh, s.stopped = nil, nil
	s.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
		<-stopped
	}
}

// Reset stops nothing but empties the local sequence; used when the session
// ends together with StopPolling.
func (s *NotificationService) Reset() {
	s.list.reset()
}
