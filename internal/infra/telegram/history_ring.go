// File: internal/infra/telegram/history_ring.go
package telegram

import (
	"context"
	"sync"

	"telegram-ai-chatbot/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.HistoryProvider = (*HistoryRing)(nil)

// HistoryRing keeps a bounded per-chat window of recently seen messages. Bot
// API accounts cannot page arbitrary chat history, so the ring is the history
// collaborator the context fetcher reads from.
type HistoryRing struct {
	mu       sync.Mutex
	perChat  map[string][]adapter.ChannelMessage
	capacity int
}

func NewHistoryRing(capacity int) *HistoryRing {
	if capacity <= 0 {
		capacity = 200
	}
	return &HistoryRing{
		perChat:  make(map[string][]adapter.ChannelMessage),
		capacity: capacity,
	}
}

// Record appends a message, trimming to capacity.
func (h *HistoryRing) Record(channelID string, msg adapter.ChannelMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ring := append(h.perChat[channelID], msg)
	if len(ring) > h.capacity {
		ring = ring[len(ring)-h.capacity:]
	}
	h.perChat[channelID] = ring
}

// RecentMessages returns up to limit messages, newest first.
func (h *HistoryRing) RecentMessages(_ context.Context, channelID string, limit int) ([]adapter.ChannelMessage, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ring := h.perChat[channelID]
	if limit <= 0 || limit > len(ring) {
		limit = len(ring)
	}
	out := make([]adapter.ChannelMessage, 0, limit)
	for i := len(ring) - 1; i >= len(ring)-limit; i-- {
		out = append(out, ring[i])
	}
	return out, nil
}
