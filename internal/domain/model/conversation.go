package model

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	// MaxTurnsPerConversation bounds the stored history per (user, channel).
	MaxTurnsPerConversation = 20
	// ConversationRetention drops conversations idle longer than this on load.
	ConversationRetention = 7 * 24 * time.Hour
	// maxTurnContent truncates very long messages before storage.
	maxTurnContent = 2000
)

// Turn is one stored message of a user/assistant exchange.
type Turn struct {
	ID        string    `json:"id"` // ULID, time-ordered
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is the persisted Q&A history for one (user, channel) pair.
type Conversation struct {
	UserID       string    `json:"user_id"`
	ChannelID    string    `json:"channel_id"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	Turns        []Turn    `json:"messages"`
}

func NewConversation(userID, channelID string, now time.Time) *Conversation {
	return &Conversation{
		UserID:       userID,
		ChannelID:    channelID,
		CreatedAt:    now,
		LastActivity: now,
	}
}

// Append records a turn, truncating long content and trimming the history to
// the most recent MaxTurnsPerConversation entries.
func (c *Conversation) Append(role, content string, now time.Time) {
	if len(content) > maxTurnContent {
		content = content[:maxTurnContent]
	}
	c.Turns = append(c.Turns, Turn{
		ID:        ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		Role:      role,
		Content:   content,
		Timestamp: now,
	})
	if len(c.Turns) > MaxTurnsPerConversation {
		c.Turns = c.Turns[len(c.Turns)-MaxTurnsPerConversation:]
	}
	c.LastActivity = now
}

// Recent returns up to n most recent turns in chronological order.
func (c *Conversation) Recent(n int) []Turn {
	if n <= 0 || len(c.Turns) <= n {
		return c.Turns
	}
	return c.Turns[len(c.Turns)-n:]
}

// Stale reports whether the conversation has been idle past the retention
// window.
func (c *Conversation) Stale(now time.Time) bool {
	return now.Sub(c.LastActivity) > ConversationRetention
}
