package models

// LoginData is kept in the visitor's session cookie.
type LoginData struct {
	UserID          string `json:"user_id"`
	Connected       bool   `json:"connected"`
	LastInteraction string `json:"last_interaction"`
}
