package cli

import (
	"context"
	"fmt"
)

// Matches lists the user's matches with their latest chat activity.
func (a *App) Matches(ctx context.Context) error {
	if err := a.matches.Refresh(ctx); err != nil {
		return a.fail(ctx, err)
	}

	matches := a.matches.Matches()
	if len(matches) == 0 {
		printlnFn("No matches yet. Keep browsing the feed!")
		return nil
	}

	for _, m := range matches {
		line := fmt.Sprintf("%s (room %d)", m.Username, m.ChatRoomID)
		if m.UnreadCount != nil && *m.UnreadCount > 0 {
			line += fmt.Sprintf(", %d unread", *m.UnreadCount)
		}
		printlnFn(line)

		if m.LastMessage != nil {
			when := ""
			if m.LastMessageTime != nil {
				when = m.LastMessageTime.Local().Format("2006-01-02 15:04")
			}
			printlnFn(fmt.Sprintf("    last: %s %s", *m.LastMessage, when))
		}
	}
	return nil
}
