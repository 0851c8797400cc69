package ai

import (
	"context"
	"time"

	"telegram-ai-chatbot/internal/domain/model"
	"telegram-ai-chatbot/internal/domain/ports/adapter"
	"telegram-ai-chatbot/internal/infra/metrics"
)

var _ adapter.AIServiceAdapter = (*instrumentedAI)(nil)

type instrumentedAI struct {
	inner adapter.AIServiceAdapter
}

// NewInstrumentedAI records call latency and outcome per provider/model.
func NewInstrumentedAI(inner adapter.AIServiceAdapter) adapter.AIServiceAdapter {
	return &instrumentedAI{inner: inner}
}

func (a *instrumentedAI) Name() string { return a.inner.Name() }

func (a *instrumentedAI) Chat(ctx context.Context, modelName string, messages []adapter.Message, attachment *model.Extraction) (string, error) {
	start := time.Now()
	reply, err := a.inner.Chat(ctx, modelName, messages, attachment)
	metrics.ObserveAICall(a.inner.Name(), modelName, int(time.Since(start).Milliseconds()), err == nil)
	return reply, err
}
