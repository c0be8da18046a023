package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"textmatch/internal/client/models"
	"textmatch/internal/client/session"
	"textmatch/internal/logging"
)

const refreshPath = "/api/token/refresh/"

// HTTPClient implements Client over net/http. It reads the access token from
// the session store before every request and writes back the refreshed token
// after a successful refresh.
type HTTPClient struct {
	baseURL  string
	http     *http.Client
	sessions session.Store
	log      logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, sessions session.Store, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		sessions: sessions,
		log:      log,
	}
}

// send issues a single HTTP request and returns the status code and raw body.
func (c *HTTPClient) send(ctx context.Context, method, path string, payload []byte, token string) (int, []byte, error) {
	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

// do runs an authenticated request. On a 401 it performs at most one token
// refresh and one retry of the original request; the retried flag, not
// recursion, guarantees the refresh can never loop even if the backend keeps
// answering 401 with a fresh token.
func (c *HTTPClient) do(ctx context.Context, method, path string, reqBody, out any) error {
	payload, err := encode(reqBody)
	if err != nil {
		return err
	}

	sess, haveSession, err := c.sessions.Load(ctx)
	if err != nil {
		return err
	}
	var token, refreshToken string
	if haveSession {
		token = sess.AccessToken
		refreshToken = sess.RefreshToken
	}

	retried := false
	for {
		status, body, err := c.send(ctx, method, path, payload, token)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		if status == http.StatusUnauthorized {
			if retried || refreshToken == "" {
				return ErrUnauthorized
			}

			newAccess, rerr := c.refreshAccessToken(ctx, refreshToken)
			if rerr != nil {
				if cerr := c.sessions.Clear(ctx); cerr != nil {
					c.log.Error(ctx, "failed to clear session after refresh failure", "error", cerr)
				}
				c.log.Warn(ctx, "token refresh failed, session cleared", "error", rerr)
				return ErrSessionExpired
			}
			if perr := c.sessions.UpdateAccessToken(ctx, newAccess); perr != nil {
				return perr
			}

			token = newAccess
			retried = true
			continue
		}

		return finish(status, body, out)
	}
}

// doPublic runs an unauthenticated request (register, login, refresh): no
// bearer token is attached and a 401 is surfaced as-is.
func (c *HTTPClient) doPublic(ctx context.Context, method, path string, reqBody, out any) error {
	payload, err := encode(reqBody)
	if err != nil {
		return err
	}

	status, body, err := c.send(ctx, method, path, payload, "")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return finish(status, body, out)
}

func (c *HTTPClient) refreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	var result struct {
		Access string `json:"access"`
	}
	err := c.doPublic(ctx, http.MethodPost, refreshPath, map[string]string{"refresh": refreshToken}, &result)
	if err != nil {
		return "", err
	}
	if result.Access == "" {
		return "", fmt.Errorf("refresh response contained no access token")
	}
	return result.Access, nil
}

func encode(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return payload, nil
}

func finish(status int, body []byte, out any) error {
	if status >= 400 {
		return &Error{StatusCode: status, Message: serverMessage(status, body)}
	}
	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// serverMessage extracts the server-supplied error text from a rejection
// body, falling back to a generic message by status class.
func serverMessage(status int, body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range []string{"error", "message", "detail"} {
			if s, ok := payload[key].(string); ok && s != "" {
				return s
			}
		}
	}
	if status >= 500 {
		return "internal server error"
	}
	return "request rejected"
}

func (c *HTTPClient) Register(ctx context.Context, anonymousName, password, email string) error {
	body := map[string]string{
		"anonymous_name": anonymousName,
		"password":       password,
	}
	if email != "" {
		body["email"] = email
	}
	return c.doPublic(ctx, http.MethodPost, "/api/register/", body, nil)
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (LoginResult, error) {
	var result LoginResult
	body := map[string]string{"username": username, "password": password}
	err := c.doPublic(ctx, http.MethodPost, "/api/login/", body, &result)
	return result, err
}

func (c *HTTPClient) Feed(ctx context.Context) ([]models.TextCard, error) {
	var result struct {
		Results []models.TextCard `json:"results"`
	}
	err := c.do(ctx, http.MethodGet, "/api/textcards/feed/", nil, &result)
	return result.Results, err
}

func (c *HTTPClient) CreateCard(ctx context.Context, content string) (models.MyCard, error) {
	var card models.MyCard
	err := c.do(ctx, http.MethodPost, "/api/textcards/create/", map[string]string{"content": content}, &card)
	return card, err
}

func (c *HTTPClient) MyCards(ctx context.Context) ([]models.MyCard, error) {
	var result struct {
		Results []models.MyCard `json:"results"`
	}
	err := c.do(ctx, http.MethodGet, "/api/textcards/my/", nil, &result)
	return result.Results, err
}

func (c *HTTPClient) CardResponses(ctx context.Context, cardID int) ([]models.CardResponse, error) {
	var result struct {
		Results []models.CardResponse `json:"results"`
	}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/textcards/%d/responses/", cardID), nil, &result)
	return result.Results, err
}

func (c *HTTPClient) AcceptResponse(ctx context.Context, responseID int) (models.AcceptResult, error) {
	var result models.AcceptResult
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/responses/%d/accept/", responseID), nil, &result)
	return result, err
}

func (c *HTTPClient) IgnoreResponse(ctx context.Context, responseID int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/responses/%d/ignore/", responseID), nil, nil)
}

func (c *HTTPClient) LikeCard(ctx context.Context, cardID int) (models.LikeResult, error) {
	var result models.LikeResult
	err := c.do(ctx, http.MethodPost, "/api/cards/react/like/", map[string]int{"card_id": cardID}, &result)
	return result, err
}

func (c *HTTPClient) RejectCard(ctx context.Context, cardID int) error {
	return c.do(ctx, http.MethodPost, "/api/cards/react/reject/", map[string]int{"card_id": cardID}, nil)
}

func (c *HTTPClient) RespondToCard(ctx context.Context, cardID int, text string) error {
	body := map[string]any{"card_id": cardID, "response_text": text}
	return c.do(ctx, http.MethodPost, "/api/cards/react/respond/", body, nil)
}

func (c *HTTPClient) Matches(ctx context.Context) ([]models.Match, error) {
	var matches []models.Match
	err := c.do(ctx, http.MethodGet, "/api/matches/", nil, &matches)
	return matches, err
}

func (c *HTTPClient) ChatHistory(ctx context.Context, username string) ([]models.ChatMessage, error) {
	var result struct {
		Chat []models.ChatMessage `json:"chat"`
	}
	err := c.do(ctx, http.MethodGet, "/api/chat/history/"+url.PathEscape(username)+"/", nil, &result)
	return result.Chat, err
}

func (c *HTTPClient) SendMessage(ctx context.Context, receiver, message string) (time.Time, error) {
	var result struct {
		Timestamp time.Time `json:"timestamp"`
	}
	body := map[string]string{"receiver_username": receiver, "message": message}
	err := c.do(ctx, http.MethodPost, "/api/chat/send/", body, &result)
	return result.Timestamp, err
}

func (c *HTTPClient) Notifications(ctx context.Context) ([]models.Notification, error) {
	var result struct {
		Results []models.Notification `json:"results"`
	}
	err := c.do(ctx, http.MethodGet, "/api/notifications/", nil, &result)
	return result.Results, err
}

func (c *HTTPClient) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/api/notifications/"+url.PathEscape(id)+"/read/", nil, nil)
}

func (c *HTTPClient) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/notifications/mark_all_read/", nil, nil)
}

func (c *HTTPClient) ClearNotifications(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/notifications/clear/", nil, nil)
}

func (c *HTTPClient) RegisterPushToken(ctx context.Context, token, platform, deviceType string) error {
	body := map[string]string{"token": token, "platform": platform, "device_type": deviceType}
	return c.do(ctx, http.MethodPost, "/api/push-tokens/", body, nil)
}

func (c *HTTPClient) RemovePushToken(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodDelete, "/api/push-tokens/"+url.PathEscape(token)+"/", nil, nil)
}
