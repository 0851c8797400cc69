package adapter

import (
	"context"

	"telegram-ai-chatbot/internal/domain/model"
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// AIServiceAdapter is the port for LLM chat. Attachment is optional; adapters
// that cannot consume an image fold the extracted document text into the
// prompt instead.
type AIServiceAdapter interface {
	// Name identifies the provider for labels and metrics ("gpt", "gemini").
	Name() string

	// Chat returns the assistant text for the given prompt history.
	Chat(ctx context.Context, model string, messages []Message, attachment *model.Extraction) (string, error)
}

// StyleClassifier is the narrow best-effort interface behind language-style
// detection. Implementations return one of the LanguageStyle labels; callers
// treat any error or unknown label as "english".
type StyleClassifier interface {
	ClassifySample(ctx context.Context, sample string) (string, error)
}
