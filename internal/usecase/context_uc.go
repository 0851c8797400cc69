// File: internal/usecase/context_uc.go
package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"telegram-ai-chatbot/internal/domain/model"
	"telegram-ai-chatbot/internal/domain/ports/repository"
	"telegram-ai-chatbot/internal/infra/logging"
)

// Compile-time check
var _ ContextUseCase = (*contextUC)(nil)

// ContextUseCase is the public entry point of the context pipeline: resolve a
// payload for (user, channel), preferring the encrypted cache over a live
// platform fetch.
type ContextUseCase interface {
	Resolve(ctx context.Context, userID, channelID string) *model.ContextPayload
}

type contextUC struct {
	cache   repository.ContextCache
	fetcher Fetcher
	depth   int
	log     *zerolog.Logger
}

func NewContextUseCase(cache repository.ContextCache, fetcher Fetcher, depth int, logger *zerolog.Logger) *contextUC {
	l := logger.With().Str("component", "ContextUC").Logger()
	return &contextUC{cache: cache, fetcher: fetcher, depth: depth, log: &l}
}

// Resolve returns the cached payload when present, else fetches fresh context
// and populates the cache (itself a no-op without consent). Consenting users
// get at most one fetch per cache window; non-consenting users fetch every
// time.
func (u *contextUC) Resolve(ctx context.Context, userID, channelID string) *model.ContextPayload {
	defer logging.TraceDuration(u.log, "ContextUC.Resolve")()

	if payload, ok := u.cache.Get(userID, channelID); ok {
		u.log.Debug().Msg("using encrypted cached context")
		return payload
	}

	payload := u.fetcher.Fetch(ctx, userID, channelID, u.depth)
	u.cache.Put(userID, channelID, payload)
	return payload
}
