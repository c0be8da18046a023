// Package api wraps the TextMatch backend's HTTP/JSON interface. Every
// outbound request carries the current access token, and a 401 response is
// transparently survived exactly once via refresh-and-retry.
package api

import (
	"context"
	"time"

	"textmatch/internal/client/models"
)

// LoginResult carries the token pair and identity returned by the login
// endpoint. Persisting it is the caller's responsibility.
type LoginResult struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
	UserID       int    `json:"user_id"`
	Username     string `json:"username"`
}

// Client is the full operation surface of the backend.
//
// Register, Login, and the token refresh performed internally are the only
// unauthenticated calls; everything else attaches a bearer token when one is
// stored. All methods honor context cancellation.
type Client interface {
	Register(ctx context.Context, anonymousName, password, email string) error
	Login(ctx context.Context, username, password string) (LoginResult, error)

	Feed(ctx context.Context) ([]models.TextCard, error)
	CreateCard(ctx context.Context, content string) (models.MyCard, error)
	MyCards(ctx context.Context) ([]models.MyCard, error)
	CardResponses(ctx context.Context, cardID int) ([]models.CardResponse, error)
	AcceptResponse(ctx context.Context, responseID int) (models.AcceptResult, error)
	IgnoreResponse(ctx context.Context, responseID int) error
	LikeCard(ctx context.Context, cardID int) (models.LikeResult, error)
	RejectCard(ctx context.Context, cardID int) error
	RespondToCard(ctx context.Context, cardID int, text string) error

	Matches(ctx context.Context) ([]models.Match, error)
	ChatHistory(ctx context.Context, username string) ([]models.ChatMessage, error)
	SendMessage(ctx context.Context, receiver, message string) (time.Time, error)

	Notifications(ctx context.Context) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
	ClearNotifications(ctx context.Context) error

	RegisterPushToken(ctx context.Context, token, platform, deviceType string) error
	RemovePushToken(ctx context.Context, token string) error
}
