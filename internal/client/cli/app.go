package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"textmatch/internal/client/api"
	"textmatch/internal/client/config"
	"textmatch/internal/client/services"
	"textmatch/internal/client/session"
	"textmatch/internal/logging"
)

// App wires the session store, API client, and domain services behind the
// interactive REPL.
type App struct {
	config *config.Config
	log    logging.Logger

	auth          services.AuthService
	feed          *services.FeedService
	cards         *services.CardService
	matches       *services.MatchService
	chat          *services.ChatService
	notifications *services.NotificationService
	push          *services.PushService

	reader *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	log := logging.Setup(os.Stderr, c.LogLevel)

	db, err := session.OpenDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	store := session.NewSQLiteStore(db)
	apiClient := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout, store, log)

	push := services.NewPushService(apiClient, store, log)

	return &App{
		config:        c,
		log:           log,
		auth:          services.NewAuthService(apiClient, store, push, log),
		feed:          services.NewFeedService(apiClient, log),
		cards:         services.NewCardService(apiClient, log),
		matches:       services.NewMatchService(apiClient, log),
		chat:          services.NewChatService(apiClient, c.ChatPollInterval, log),
		notifications: services.NewNotificationService(apiClient, log),
		push:          push,
		reader:        bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated()
}

// statusLine renders the prompt status: the username when logged in, with the
// unread notification count appended while it is non-zero.
func (a *App) statusLine() string {
	user, ok := a.auth.CurrentUser()
	if !ok {
		return "(not logged in)"
	}
	if unread := a.notifications.UnreadCount(); unread > 0 {
		return fmt.Sprintf("(%s, %d unread)", user.Username, unread)
	}
	return fmt.Sprintf("(%s)", user.Username)
}

// enterSession starts the background work tied to a logged-in session.
func (a *App) enterSession(ctx context.Context) {
	a.push.SetHandler(func(e services.PushEvent) {
		printlnFn(fmt.Sprintf("[push] %s: %s", e.Title, e.Body))
	})
	a.notifications.StartPolling(ctx, a.config.NotificationPollInterval)
	if err := a.notifications.Refresh(ctx); err != nil {
		a.log.Warn(ctx, "initial notification fetch failed", "error", err)
	}
}

// leaveSession stops polling and drops every cached list.
func (a *App) leaveSession() {
	a.notifications.StopPolling()
	a.chat.Close()
	a.feed.Reset()
	a.cards.Reset()
	a.matches.Reset()
	a.notifications.Reset()
}

// fail reports a command error to the user. An expired session additionally
// tears the session down and drops the user back to the logged-out prompt.
func (a *App) fail(ctx context.Context, err error) error {
	if errors.Is(err, api.ErrSessionExpired) {
		printlnFn("Session expired, please log in again.")
		a.leaveSession()
		a.auth.Restore(ctx)
		return err
	}
	printlnFn("Error:", err.Error())
	return err
}

// Run restores any stored session and blocks in the REPL until the user
// exits. Background pollers are stopped on the way out.
func (a *App) Run(ctx context.Context) {
	printlnFn("TextMatch CLI (type 'help' for commands)")

	if a.auth.Restore(ctx) == services.StateAuthenticated {
		user, _ := a.auth.CurrentUser()
		printlnFn(fmt.Sprintf("Welcome back, %s!", user.Username))
		a.enterSession(ctx)
	}

	runREPL(ctx, a, a.statusLine, bufio.NewScanner(os.Stdin))
	a.leaveSession()
}
