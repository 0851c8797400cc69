// File: internal/infra/adapters/ai/classifier.go
package ai

import (
	"context"
	"fmt"
	"strings"

	"telegram-ai-chatbot/internal/domain"
	"telegram-ai-chatbot/internal/domain/ports/adapter"
)

var _ adapter.StyleClassifier = (*LanguageClassifier)(nil)

// LanguageClassifier labels a scrubbed text sample as english, hinglish or
// romanized_hindi using a single auxiliary model call. Best-effort: callers
// fall back to english on any error or unknown label.
type LanguageClassifier struct {
	ai        adapter.AIServiceAdapter
	modelName string
}

func NewLanguageClassifier(ai adapter.AIServiceAdapter, modelName string) *LanguageClassifier {
	return &LanguageClassifier{ai: ai, modelName: modelName}
}

func (c *LanguageClassifier) ClassifySample(ctx context.Context, sample string) (string, error) {
	prompt := `Analyze language patterns in this text sample:

TEXT: ` + sample + `

Identify the primary language pattern:
- english: Pure English
- hinglish: English mixed with Hindi words
- romanized_hindi: Hindi written in English letters

Consider common Hindi words like: yaar, bhai, kya, hai, nahi, chalo, dekho, etc.

Respond with only: english, hinglish, or romanized_hindi`

	reply, err := c.ai.Chat(ctx, c.modelName, []adapter.Message{{Role: "user", Content: prompt}}, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrClassification, err)
	}
	return strings.ToLower(strings.TrimSpace(reply)), nil
}
