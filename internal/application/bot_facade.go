package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"telegram-ai-chatbot/internal/domain"
	"telegram-ai-chatbot/internal/domain/model"
	"telegram-ai-chatbot/internal/infra/files"
	"telegram-ai-chatbot/internal/infra/metrics"
	"telegram-ai-chatbot/internal/usecase"
)

const helpText = `🤖 AI Chat Bot Commands:

Chat Models:
• /gpt <message> - GPT conversation with memory
• /gemini <message> - Gemini conversation with memory
• /gemini S [message] - SARCASM MODE 🔥 (roasts chat, not you!)

File Analysis:
• Upload + /gpt or /gemini - Smart multimodal analysis
• Supports: Images, PDFs, text files (50MB max)

Privacy & Memory:
• /privacy [allow|deny|clear] - Manage encrypted context caching
• /clear - Reset conversation memory
• /help - Show this menu`

// RateLimiter is the minimal limiter surface the facade needs. Nil-safe via
// the allow helper.
type RateLimiter interface {
	Allow(ctx context.Context, userID string) bool
}

// Inbound is one delivered platform message, attachment bytes already
// downloaded by the adapter.
type Inbound struct {
	UserID      string
	ChannelID   string
	DisplayName string
	Text        string

	AttachmentName string
	AttachmentData []byte
}

// Reply is what the adapter should send back. A nil Reply means stay silent.
type Reply struct {
	Label string // model/mode label prefixed to the first chunk; empty for plain replies
	Text  string
	// Notices are short status lines sent before the main reply (file
	// processing confirmations).
	Notices []string
}

// BotFacade routes inbound messages to the privacy and chat usecases. Keeping
// it reply-string based means the platform adapter just forwards text.
type BotFacade struct {
	chatUC    usecase.ChatUseCase
	privacyUC usecase.PrivacyUseCase
	processor *files.Processor
	limiter   RateLimiter
	log       *zerolog.Logger
}

func NewBotFacade(
	chatUC usecase.ChatUseCase,
	privacyUC usecase.PrivacyUseCase,
	processor *files.Processor,
	limiter RateLimiter,
	logger *zerolog.Logger,
) *BotFacade {
	l := logger.With().Str("component", "BotFacade").Logger()
	return &BotFacade{
		chatUC:    chatUC,
		privacyUC: privacyUC,
		processor: processor,
		limiter:   limiter,
		log:       &l,
	}
}

// HandleMessage processes one inbound message end to end. It never returns an
// error: every failure mode becomes user-facing text (or silence for
// non-command chatter).
func (b *BotFacade) HandleMessage(ctx context.Context, in Inbound) *Reply {
	text := strings.TrimSpace(in.Text)

	switch {
	case text == "/start":
		return &Reply{Text: "👋 Hi! I relay your questions to GPT or Gemini with privacy-aware chat context. Send /help to get started."}
	case text == "/help" || text == "/commands":
		return &Reply{Text: helpText}
	case text == "/clear" || text == "/reset":
		return &Reply{Text: b.privacyUC.Reset(in.UserID)}
	case strings.HasPrefix(text, "/privacy"):
		fields := strings.Fields(text)
		return &Reply{Text: b.privacyUC.HandleCommand(in.UserID, fields[1:])}
	}

	provider, input, sarcasm, ok := parseModelCommand(text)
	if !ok {
		// Non-command group chatter: stay silent, the history ring has
		// already seen it.
		return nil
	}
	metrics.IncUpdate("command")

	if !b.allow(ctx, in.UserID) {
		return &Reply{Text: "⏳ Slow down a little, you've hit the per-minute AI request limit."}
	}

	if input == "" && in.AttachmentData == nil && !sarcasm {
		return &Reply{Text: fmt.Sprintf("💡 Please provide a message after /%s or upload a file to analyze.", provider)}
	}

	var notices []string
	var extraction *model.Extraction
	if in.AttachmentData != nil {
		var err error
		extraction, err = b.processor.Extract(in.AttachmentName, in.AttachmentData)
		if err != nil {
			if errors.Is(err, domain.ErrFileTooLarge) || errors.Is(err, domain.ErrUnsupportedFileType) {
				return &Reply{Text: fmt.Sprintf("❌ File processing failed: %v", err)}
			}
			b.log.Warn().Err(err).Str("file", in.AttachmentName).Msg("extraction failed")
			return &Reply{Text: "❌ File processing failed: unknown error"}
		}
		notices = append(notices, "📎 "+extraction.Summary(in.AttachmentName))
	}

	reply := b.chatUC.HandleChat(ctx, usecase.ChatRequest{
		UserID:      in.UserID,
		ChannelID:   in.ChannelID,
		DisplayName: in.DisplayName,
		Provider:    provider,
		Input:       input,
		Sarcasm:     sarcasm,
		Attachment:  extraction,
	})

	label := strings.ToUpper(provider)
	if sarcasm {
		label += " SARCASM 🔥"
	}
	return &Reply{Label: label, Text: reply, Notices: notices}
}

func (b *BotFacade) allow(ctx context.Context, userID string) bool {
	if b.limiter == nil {
		return true
	}
	return b.limiter.Allow(ctx, userID)
}

// parseModelCommand recognizes /gpt, /gemini and the /gemini S sarcasm form.
func parseModelCommand(text string) (provider, input string, sarcasm, ok bool) {
	switch {
	case text == "/gemini S" || strings.HasPrefix(text, "/gemini S "):
		return "gemini", strings.TrimSpace(strings.TrimPrefix(text, "/gemini S")), true, true
	case text == "/gpt" || strings.HasPrefix(text, "/gpt "):
		return "gpt", strings.TrimSpace(strings.TrimPrefix(text, "/gpt")), false, true
	case text == "/gemini" || strings.HasPrefix(text, "/gemini "):
		return "gemini", strings.TrimSpace(strings.TrimPrefix(text, "/gemini")), false, true
	default:
		return "", "", false, false
	}
}
