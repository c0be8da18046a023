package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output. In tests,
// replace them with stubs. printFn emits no newline; the prompt uses it so
// the cursor stays on the prompt line.
var printlnFn = fmt.Println
var printFn = fmt.Print

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Feed(ctx context.Context) error
	Like(ctx context.Context) error
	Reject(ctx context.Context) error
	Respond(ctx context.Context) error
	AddCard(ctx context.Context) error
	MyCards(ctx context.Context) error
	Responses(ctx context.Context) error
	Accept(ctx context.Context) error
	Ignore(ctx context.Context) error
	Matches(ctx context.Context) error
	Chat(ctx context.Context) error
	Notifications(ctx context.Context) error
	MarkRead(ctx context.Context) error
	MarkAllRead(ctx context.Context) error
	ClearNotifications(ctx context.Context) error
	TestPush(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the TextMatch CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - feed           — browse other users' cards
//	  - like           — like a card from the feed
//	  - reject         — dismiss a card from the feed
//	  - respond        — reply to a card with a message
//	  - addcard        — publish a new card
//	  - mycards        — list your own cards
//	  - responses      — list responses to one of your cards
//	  - accept         — accept a response (creates a match)
//	  - ignore         — dismiss a response
//	  - matches        — list your matches
//	  - chat           — open a conversation with a match
//	  - notif          — list notifications
//	  - read           — mark one notification read
//	  - readall        — mark all notifications read
//	  - clearnotif     — delete all notifications (asks for confirmation)
//	  - testpush       — emit a local test notification
//	  - whoami         — show the current session
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printFn(fmt.Sprintf("tm> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: feed, like, reject, respond, addcard, mycards, responses, accept, ignore, matches, chat, notif, read, readall, clearnotif, testpush, whoami, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "feed":
			_ = a.Feed(ctx)

		case "like":
			_ = a.Like(ctx)

		case "reject":
			_ = a.Reject(ctx)

		case "respond":
			_ = a.Respond(ctx)

		case "addcard":
			_ = a.AddCard(ctx)

		case "mycards":
			_ = a.MyCards(ctx)

		case "responses":
			_ = a.Responses(ctx)

		case "accept":
			_ = a.Accept(ctx)

		case "ignore":
			_ = a.Ignore(ctx)

		case "matches":
			_ = a.Matches(ctx)

		case "chat":
			_ = a.Chat(ctx)

		case "notif", "notifications":
			_ = a.Notifications(ctx)

		case "read":
			_ = a.MarkRead(ctx)

		case "readall":
			_ = a.MarkAllRead(ctx)

		case "clearnotif":
			_ = a.ClearNotifications(ctx)

		case "testpush":
			_ = a.TestPush(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
