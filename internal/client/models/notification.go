package models

import "time"

// Notification kinds delivered by the backend.
const (
	NotificationNewResponse = "new_response"
	NotificationNewMatch    = "new_match"
	NotificationNewMessage  = "new_message"
)

// Notification is a server-created event record. The client mutates only the
// Read flag (mirrored back to the server) and destroys records en masse on an
// explicit clear.
type Notification struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Read      bool           `json:"read"`
}
