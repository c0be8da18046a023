package models

// User is the cached identity of the logged-in account.
type User struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}
