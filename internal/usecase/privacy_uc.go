// File: internal/usecase/privacy_uc.go
package usecase

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"telegram-ai-chatbot/internal/domain/ports/repository"
)

// Compile-time check
var _ PrivacyUseCase = (*privacyUC)(nil)

// PrivacyUseCase interprets the /privacy command surface against the consent
// store and context cache. Every action returns the user-facing reply text.
type PrivacyUseCase interface {
	HandleCommand(userID string, args []string) string

	// Reset clears the user's cached context and stored conversations without
	// changing consent. Backs the /clear command.
	Reset(userID string) string
}

type privacyUC struct {
	consent       repository.ConsentStore
	cache         repository.ContextCache
	conversations repository.ConversationRepository
	mode          string
	cacheTTL      string
	log           *zerolog.Logger
}

func NewPrivacyUseCase(
	consent repository.ConsentStore,
	cache repository.ContextCache,
	conversations repository.ConversationRepository,
	mode string,
	cacheTTL string,
	logger *zerolog.Logger,
) *privacyUC {
	l := logger.With().Str("component", "PrivacyUC").Logger()
	return &privacyUC{
		consent:       consent,
		cache:         cache,
		conversations: conversations,
		mode:          mode,
		cacheTTL:      cacheTTL,
		log:           &l,
	}
}

func (u *privacyUC) HandleCommand(userID string, args []string) string {
	if len(args) == 0 {
		return u.status(userID)
	}
	switch args[0] {
	case "allow":
		if err := u.consent.SetPreference(userID, true); err != nil {
			u.log.Error().Err(err).Msg("persist consent allow")
		}
		return "✅ Encrypted caching enabled. Responses will be faster!"
	case "deny":
		// Revocation must purge, not just stop future writes.
		if err := u.consent.SetPreference(userID, false); err != nil {
			u.log.Error().Err(err).Msg("persist consent deny")
		}
		n := u.cache.ClearUser(userID)
		u.log.Info().Int("purged", n).Msg("consent revoked")
		return "❌ Caching disabled. All your data cleared. Responses may be slower."
	case "clear", "info":
		if args[0] == "info" {
			return u.status(userID)
		}
		u.cache.ClearUser(userID)
		return "🧹 All your cached data has been cleared!"
	default:
		return "Invalid privacy command. Use /privacy to see options."
	}
}

func (u *privacyUC) Reset(userID string) string {
	u.cache.ClearUser(userID)
	if err := u.conversations.ClearUser(userID); err != nil {
		u.log.Error().Err(err).Msg("clear conversations")
	}
	return "🧹 Your data cleared! Ready for fresh conversations."
}

func (u *privacyUC) status(userID string) string {
	cacheStatus := "❌ Disabled"
	if u.consent.Consents(userID) {
		cacheStatus = "✅ Enabled"
	}
	return fmt.Sprintf(`🔐 Your Privacy Settings:

Conversation Caching: %s
Privacy Mode: %s
Data Encryption: ✅ Enabled
Cache Duration: %s max (in-memory only)

Commands:
• /privacy allow - Enable encrypted caching (faster responses)
• /privacy deny - Disable all caching (slower, more private)
• /privacy clear - Clear all your cached data
• /privacy info - Show this information

How it works:
- The bot reads recent chat messages for context
- With caching: temporarily encrypts & stores context (%s max)
- Without caching: fetches fresh context each time (slower)
- Personal identifiers are anonymized in strict mode`,
		cacheStatus, strings.ToUpper(u.mode), u.cacheTTL, u.cacheTTL)
}
