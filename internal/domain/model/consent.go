package model

import "time"

// ConsentRecord captures a user's caching opt-in. One per user; overwritten,
// never deleted. Mirrors an entry in the consent file for simple persistence.
type ConsentRecord struct {
	UserID       string    `json:"-"`
	AllowCaching bool      `json:"allow_caching"`
	UpdatedAt    time.Time `json:"updated_at"`
}
