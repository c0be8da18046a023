// Package models defines the wire and domain types exchanged with the
// TextMatch backend. Field tags follow the backend's snake_case JSON.
package models

import "time"

// MaxCardContentLen is the client-side cap on card content. The server is
// authoritative and may reject shorter content for other reasons.
const MaxCardContentLen = 280

// MaxResponseTextLen caps the text of a response to a card.
const MaxResponseTextLen = 500

// TextCard is an anonymously authored card as it appears in the feed.
// Read-only from the client's perspective.
type TextCard struct {
	CardID    int       `json:"card_id"`
	Content   string    `json:"content"`
	CreatedBy string    `json:"created_by"`
	Timestamp time.Time `json:"timestamp"`
}

// MyCard is one of the user's own cards, with server-side reaction counters.
// The counters are optional in the payload; absent means unknown.
type MyCard struct {
	ID             int       `json:"id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	LikesCount     *int      `json:"likes_count,omitempty"`
	ResponsesCount *int      `json:"responses_count,omitempty"`
}

// CardResponse is a reply to one of the user's cards, visible only to the
// card's author until accepted or ignored.
type CardResponse struct {
	ID                int       `json:"id"`
	ResponseText      string    `json:"response_text"`
	ResponderUsername string    `json:"responder_username"`
	CreatedAt         time.Time `json:"created_at"`
}
