// File: internal/domain/ports/repository/conversation.go
package repository

import "telegram-ai-chatbot/internal/domain/model"

// ConversationRepository persists per-(user, channel) Q&A history.
type ConversationRepository interface {
	// History returns stored turns in chronological order; empty when none.
	History(userID, channelID string) []model.Turn

	// Append records a turn and persists the full log.
	Append(userID, channelID, role, content string) error

	// ClearUser removes every conversation owned by the user.
	ClearUser(userID string) error
}
