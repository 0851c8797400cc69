// File: internal/domain/ports/repository/consent.go
package repository

import "telegram-ai-chatbot/internal/domain/model"

// ConsentStore is the port for per-user caching consent. Opt-in model: unknown
// users do not consent.
type ConsentStore interface {
	// Consents reports whether the user has allowed context caching.
	Consents(userID string) bool

	// SetPreference upserts and persists the user's preference immediately.
	SetPreference(userID string, allow bool) error

	// Record returns the stored record, or nil for unknown users.
	Record(userID string) *model.ConsentRecord

	// Count returns the number of stored consent records.
	Count() int
}
