package ai

import (
	"context"

	"telegram-ai-chatbot/internal/domain/model"
	"telegram-ai-chatbot/internal/domain/ports/adapter"
)

var _ adapter.AIServiceAdapter = (*NoopAI)(nil)

// NoopAI is a canned adapter for dev mode and wiring without API keys.
type NoopAI struct {
	Reply string
}

func NewNoopAI() *NoopAI { return &NoopAI{Reply: "(dev mode: no AI provider configured)"} }

func (n *NoopAI) Name() string { return "noop" }

func (n *NoopAI) Chat(ctx context.Context, modelName string, messages []adapter.Message, attachment *model.Extraction) (string, error) {
	return n.Reply, nil
}
