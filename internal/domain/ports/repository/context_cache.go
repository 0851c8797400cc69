// File: internal/domain/ports/repository/context_cache.go
package repository

import "telegram-ai-chatbot/internal/domain/model"

// ContextCache is the port for the encrypted, TTL-bound context cache. All
// failure paths on Get (no entry, expired, decrypt failure, revoked consent)
// are a uniform miss.
type ContextCache interface {
	Get(userID, channelID string) (*model.ContextPayload, bool)

	// Put is a no-op when the user has not consented to caching.
	Put(userID, channelID string, payload *model.ContextPayload)

	// ClearUser removes every entry owned by the user and returns the count.
	ClearUser(userID string) int

	// SweepExpired removes entries past their deadline and returns the count.
	SweepExpired() int

	Len() int
}
