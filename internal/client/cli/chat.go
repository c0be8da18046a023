package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"textmatch/internal/client/models"
	"textmatch/internal/common"
)

// Chat opens a conversation with a match and enters a chat loop. While the
// loop runs, the history is polled in the background and arriving messages
// print as they come in; typed lines are sent as messages, "/h" reprints the
// whole history, and "/q" leaves the conversation.
func (a *App) Chat(ctx context.Context) error {
	peer, err := getSimpleText(a.reader, "Chat with (anonymous name)", os.Stdout)
	if err != nil {
		return err
	}
	if peer == "" {
		return a.fail(ctx, fmt.Errorf("%w: a name is required", common.ErrEmptyField))
	}

	user, ok := a.auth.CurrentUser()
	if !ok {
		return a.fail(ctx, common.ErrNotLoggedIn)
	}

	if err := a.chat.Open(ctx, user.Username, peer); err != nil {
		return a.fail(ctx, err)
	}
	defer a.chat.Close()

	a.printHistory()
	printlnFn("Type a message and press Enter to send. /h shows history, /q leaves.")
	a.chat.SetOnUpdate(a.messagePrinter())
	a.chat.StartPolling(ctx)

	for {
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return nil
		}
		line = strings.TrimSpace(line)

		switch line {
		case "":
			continue
		case "/q", "/quit":
			return nil
		case "/h", "/history":
			a.printHistory()
		default:
			if err := a.chat.Send(ctx, line); err != nil {
				if ferr := a.fail(ctx, err); ferr != nil && !a.isLoggedIn() {
					return ferr
				}
			}
		}
	}
}

// messagePrinter returns an update callback that prints only messages not
// shown yet, so arriving messages render live without reprinting the history.
// The callback runs on the chat poller goroutine.
func (a *App) messagePrinter() func([]models.ChatMessage) {
	var mu sync.Mutex
	printed := len(a.chat.Messages())

	return func(messages []models.ChatMessage) {
		mu.Lock()
		defer mu.Unlock()
		if printed > len(messages) {
			printed = len(messages)
		}
		for _, m := range messages[printed:] {
			printMessage(m)
		}
		printed = len(messages)
	}
}

func printMessage(m models.ChatMessage) {
	printlnFn(fmt.Sprintf("[%s] %s: %s", m.Timestamp.Local().Format("15:04"), m.Sender, m.Message))
}

func (a *App) printHistory() {
	messages := a.chat.Messages()
	if len(messages) == 0 {
		printlnFn("No messages yet, say hi!")
		return
	}
	for _, m := range messages {
		printMessage(m)
	}
}
