package models

import "time"

// Match is a mutual-interest relationship with another user, carrying the
// chat room both sides share. The last-message preview and unread counter are
// optional in the payload; absence means unknown, not zero.
type Match struct {
	Username        string     `json:"username"`
	ChatRoomID      int        `json:"chat_room_id"`
	MatchedAt       time.Time  `json:"matched_at"`
	LastMessage     *string    `json:"last_message,omitempty"`
	LastMessageTime *time.Time `json:"last_message_time,omitempty"`
	UnreadCount     *int       `json:"unread_count,omitempty"`
}

// LikeResult is the outcome of liking a card. When the like completes a
// mutual pair, Matched is true and ChatRoomID identifies the new room.
type LikeResult struct {
	Matched    bool `json:"matched"`
	ChatRoomID *int `json:"chat_room_id,omitempty"`
}

// AcceptResult is returned when the user accepts a response to one of their
// cards, which always creates a match.
type AcceptResult struct {
	ChatRoomID int    `json:"chat_room_id"`
	Username   string `json:"username,omitempty"`
}
