package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"telegram-ai-chatbot/internal/domain/ports/repository"
)

// CacheSweeper periodically purges expired context-cache entries to bound
// memory growth. It shares the cache's own lock via SweepExpired and never
// blocks request handling beyond a map scan.
type CacheSweeper struct {
	interval time.Duration
	cache    repository.ContextCache
	log      *zerolog.Logger
}

func NewCacheSweeper(interval time.Duration, cache repository.ContextCache, logger *zerolog.Logger) *CacheSweeper {
	l := logger.With().Str("component", "CacheSweeper").Logger()
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CacheSweeper{interval: interval, cache: cache, log: &l}
}

func (w *CacheSweeper) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Msg("starting cache sweeper")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("stopping cache sweeper")
			return ctx.Err()
		case <-ticker.C:
			if n := w.cache.SweepExpired(); n > 0 {
				w.log.Info().Int("count", n).Msg("expired cache entries removed")
			}
		}
	}
}
