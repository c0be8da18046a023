package cli

import (
	"context"
	"fmt"
	"os"
)

// Notifications fetches and prints the notification list. Unread records are
// marked with an asterisk.
func (a *App) Notifications(ctx context.Context) error {
	if err := a.notifications.Refresh(ctx); err != nil {
		return a.fail(ctx, err)
	}

	notifications := a.notifications.Notifications()
	if len(notifications) == 0 {
		printlnFn("No notifications.")
		return nil
	}

	for _, n := range notifications {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		printlnFn(fmt.Sprintf("%s [%s] %s: %s", marker, n.ID, n.Title, n.Message))
	}
	return nil
}

// MarkRead marks a single notification as read. The local flag flips
// immediately; the server confirmation happens behind the scenes.
func (a *App) MarkRead(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Notification id", os.Stdout)
	if err != nil {
		return err
	}

	a.notifications.MarkAsRead(ctx, id)
	printlnFn("Marked as read.")
	return nil
}

// MarkAllRead marks every notification as read.
func (a *App) MarkAllRead(ctx context.Context) error {
	a.notifications.MarkAllAsRead(ctx)
	printlnFn("All notifications marked as read.")
	return nil
}

// ClearNotifications deletes all notifications after an explicit
// confirmation; the deletion cannot be undone.
func (a *App) ClearNotifications(ctx context.Context) error {
	if !Confirm(a.reader, "Delete ALL notifications? This cannot be undone.", os.Stdout) {
		printlnFn("Cancelled.")
		return nil
	}

	if err := a.notifications.ClearAll(ctx); err != nil {
		return a.fail(ctx, err)
	}
	printlnFn("Notifications cleared.")
	return nil
}

// TestPush emits a canned local notification through the push handler.
func (a *App) TestPush(ctx context.Context) error {
	a.push.DispatchTest(ctx)
	return nil
}
