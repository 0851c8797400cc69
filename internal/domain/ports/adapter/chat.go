// File: internal/domain/ports/adapter/chat.go
package adapter

import (
	"context"
	"time"
)

// ChannelMessage is one inbound platform message as delivered by the chat
// collaborator.
type ChannelMessage struct {
	ID                int64
	AuthorID          string
	AuthorDisplayName string
	Content           string
	SentAt            time.Time

	// FromBot marks messages authored by this bot itself.
	FromBot bool
	// System marks join notices, pins and other non-default message types.
	System bool
}

// HistoryProvider serves recent channel messages, newest first. Implementations
// may return fewer than limit messages when history is exhausted.
type HistoryProvider interface {
	RecentMessages(ctx context.Context, channelID string, limit int) ([]ChannelMessage, error)
}
