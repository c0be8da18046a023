package models

import "time"

// MaxChatMessageLen caps a single chat message.
const MaxChatMessageLen = 1000

// ChatMessage is one message in a chat room's history, ordered by Timestamp
// ascending. Append-only from the client's perspective.
type ChatMessage struct {
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
