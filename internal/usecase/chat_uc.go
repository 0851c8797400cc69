// File: internal/usecase/chat_uc.go
package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"telegram-ai-chatbot/internal/domain/model"
	"telegram-ai-chatbot/internal/domain/ports/adapter"
	"telegram-ai-chatbot/internal/domain/ports/repository"
	"telegram-ai-chatbot/internal/infra/logging"
)

// Compile-time check
var _ ChatUseCase = (*chatUC)(nil)

// Provider couples an AI adapter with its configured model name.
type Provider struct {
	Adapter adapter.AIServiceAdapter
	Model   string
}

// ChatRequest is one AI command to fulfil.
type ChatRequest struct {
	UserID      string
	ChannelID   string
	DisplayName string
	Provider    string // "gpt" | "gemini"
	Input       string
	Sarcasm     bool
	Attachment  *model.Extraction
}

// ChatUseCase runs the full message flow: resolve context, compose the prompt,
// call the provider and persist the exchange. Replies are always user-safe
// strings; provider failures degrade to an apology carrying the detail.
type ChatUseCase interface {
	HandleChat(ctx context.Context, req ChatRequest) string
}

type chatUC struct {
	contexts      ContextUseCase
	composer      *PromptComposer
	conversations repository.ConversationRepository
	providers     map[string]Provider
	log           *zerolog.Logger
}

func NewChatUseCase(
	contexts ContextUseCase,
	composer *PromptComposer,
	conversations repository.ConversationRepository,
	providers map[string]Provider,
	logger *zerolog.Logger,
) *chatUC {
	l := logger.With().Str("component", "ChatUC").Logger()
	return &chatUC{
		contexts:      contexts,
		composer:      composer,
		conversations: conversations,
		providers:     providers,
		log:           &l,
	}
}

func (c *chatUC) HandleChat(ctx context.Context, req ChatRequest) string {
	defer logging.TraceDuration(c.log, "ChatUC.HandleChat")()

	provider, ok := c.providers[req.Provider]
	if !ok {
		return fmt.Sprintf("Model %q is not configured on this bot.", req.Provider)
	}

	payload := c.contexts.Resolve(ctx, req.UserID, req.ChannelID)

	if req.Sarcasm {
		prompt := c.composer.Commentary(req.Input, req.DisplayName, payload)
		reply, err := provider.Adapter.Chat(ctx, provider.Model,
			[]adapter.Message{{Role: "user", Content: prompt}}, req.Attachment)
		if err != nil {
			c.log.Error().Err(err).Str("provider", req.Provider).Msg("sarcasm call failed")
			return apology(req.Provider, err)
		}
		return reply
	}

	history := c.conversations.History(req.UserID, req.ChannelID)
	messages := c.composer.Direct(req.Input, payload, history)

	reply, err := provider.Adapter.Chat(ctx, provider.Model, messages, req.Attachment)
	if err != nil {
		c.log.Error().Err(err).Str("provider", req.Provider).Msg("chat call failed")
		return apology(req.Provider, err)
	}

	// Best-effort memory: a persistence failure must not eat the reply.
	if strings.TrimSpace(req.Input) != "" {
		if err := c.conversations.Append(req.UserID, req.ChannelID, "user", req.Input); err != nil {
			c.log.Warn().Err(err).Msg("persist user turn")
		}
	}
	if err := c.conversations.Append(req.UserID, req.ChannelID, "assistant", reply); err != nil {
		c.log.Warn().Err(err).Msg("persist assistant turn")
	}
	return reply
}

func apology(provider string, err error) string {
	return fmt.Sprintf("Sorry, I couldn't get a response from %s: %v", strings.ToUpper(provider), err)
}
