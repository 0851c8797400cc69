// File: internal/usecase/prompt.go
package usecase

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"telegram-ai-chatbot/internal/domain/model"
	"telegram-ai-chatbot/internal/domain/ports/adapter"
)

// directContextLines is how many formatted context lines ride along with a
// direct question.
const directContextLines = 6

// commentaryContextLines is how many lines feed commentary mode.
const commentaryContextLines = 8

var styleInstructions = map[model.LanguageStyle]string{
	model.StyleHinglish:       "Use Hinglish naturally (English + Hindi words like 'yaar', 'bhai').",
	model.StyleRomanizedHindi: "Use romanized Hindi style.",
	model.StyleEnglish:        "Use English with modern slang and expressions.",
}

// PromptComposer builds the final LLM input from a context payload, stored
// history and the user's message. Pure except for the token encoder.
type PromptComposer struct {
	tokenBudget int
	encoder     *tiktoken.Tiktoken
}

func NewPromptComposer(historyTokenBudget int) *PromptComposer {
	// cl100k_base covers the gpt-4o family; counting is best-effort for
	// Gemini, which is close enough for a trim budget.
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		enc = nil
	}
	return &PromptComposer{tokenBudget: historyTokenBudget, encoder: enc}
}

func (p *PromptComposer) countTokens(s string) int {
	if p.encoder == nil {
		// Crude fallback: ~4 chars per token.
		return len(s) / 4
	}
	return len(p.encoder.Encode(s, nil, nil))
}

// Direct builds the message sequence for a direct question: stored history
// trimmed to the token budget, then the user's literal input prefixed with the
// most recent channel context lines.
func (p *PromptComposer) Direct(userInput string, payload *model.ContextPayload, history []model.Turn) []adapter.Message {
	messages := make([]adapter.Message, 0, len(history)+1)

	// Trim oldest-first until the budget fits.
	kept := history
	for len(kept) > 0 {
		total := 0
		for _, t := range kept {
			total += p.countTokens(t.Content)
		}
		if total <= p.tokenBudget {
			break
		}
		kept = kept[1:]
	}
	for _, t := range kept {
		role := t.Role
		if role != "user" && role != "assistant" && role != "system" {
			role = "user"
		}
		messages = append(messages, adapter.Message{Role: role, Content: t.Content})
	}

	current := userInput
	if payload != nil && len(payload.Messages) > 0 {
		lines := payload.RecentLines(directContextLines)
		current = "Recent channel context:\n" + strings.Join(lines, "\n") + "\n\nCurrent message:\n" + userInput
	}
	return append(messages, adapter.Message{Role: "user", Content: current})
}

// Commentary builds the sarcasm-mode prompt. The requester is never a target:
// they are excluded from the fair-game participant list. An empty userInput is
// a legal, distinct path that asks for commentary on the context alone.
func (p *PromptComposer) Commentary(userInput, requester string, payload *model.ContextPayload) string {
	var contextText string
	var safeParticipants []string
	style := model.StyleEnglish
	if payload != nil {
		contextText = strings.Join(payload.RecentLines(commentaryContextLines), "\n")
		style = payload.Language
		for _, participant := range payload.Participants {
			if participant != requester {
				safeParticipants = append(safeParticipants, participant)
			}
		}
	}
	instruction := styleInstructions[style]
	if instruction == "" {
		instruction = styleInstructions[model.StyleEnglish]
	}

	if strings.TrimSpace(userInput) != "" {
		targets := "the situation"
		if len(safeParticipants) > 0 {
			targets = strings.Join(safeParticipants, ", ")
		}
		return fmt.Sprintf(`Jump into this chat with sarcastic wit about: %q

RECENT CONTEXT:
%s

GUIDELINES:
- Target the topic %q or conversation themes
- Participants available for light roasting: %s
- NEVER target: %s (they requested the sarcasm)
- %s
- Keep it playful, not harsh
- One sharp, contextual line

Deliver your sarcastic take:`, userInput, contextText, userInput, targets, requester, instruction)
	}

	participants := "various people"
	if len(safeParticipants) > 0 {
		participants = strings.Join(safeParticipants, ", ")
	}
	return fmt.Sprintf(`Analyze this group conversation and jump in with perfect sarcastic timing:

RECENT CONVERSATION:
%s

PARTICIPANTS: %s
REQUESTER: %s (don't roast them!)

SARCASM OPTIONS:
1. Mock something said in recent conversation
2. Playfully roast a participant's comment
3. Make fun of the situation/topic
4. Reference conversation patterns

STYLE: %s

Drop one perfectly timed sarcastic line:`, contextText, participants, requester, instruction)
}
