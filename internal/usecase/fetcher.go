// File: internal/usecase/fetcher.go
package usecase

import (
	"context"
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"telegram-ai-chatbot/internal/domain/model"
	"telegram-ai-chatbot/internal/domain/ports/adapter"
	"telegram-ai-chatbot/internal/infra/metrics"
)

// Fetcher derives a context payload from live platform history.
type Fetcher interface {
	Fetch(ctx context.Context, userID, channelID string, maxMessages int) *model.ContextPayload
}

// Compile-time check
var _ Fetcher = (*ContextFetcher)(nil)

const (
	commandSigil = "/"
	// styleSampleMessages is how many trailing messages feed the classifier.
	styleSampleMessages = 6
	// styleSampleLimit bounds the classifier sample length.
	styleSampleLimit = 500
)

var (
	mentionRe = regexp.MustCompile(`@\w+`)
	linkRe    = regexp.MustCompile(`https?://\S+`)
)

// ContextFetcher pulls recent channel messages, filters and anonymizes them,
// derives a language-style signal and formats the canonical context payload.
// Fetch never fails: every error path degrades to an empty payload.
type ContextFetcher struct {
	history    adapter.HistoryProvider
	classifier adapter.StyleClassifier
	strict     bool
	now        func() time.Time
	log        *zerolog.Logger
}

func NewContextFetcher(history adapter.HistoryProvider, classifier adapter.StyleClassifier, strictMode bool, logger *zerolog.Logger) *ContextFetcher {
	l := logger.With().Str("component", "ContextFetcher").Logger()
	return &ContextFetcher{
		history:    history,
		classifier: classifier,
		strict:     strictMode,
		now:        time.Now,
		log:        &l,
	}
}

type rawMessage struct {
	sentAt  time.Time
	author  string
	content string
}

func (f *ContextFetcher) Fetch(ctx context.Context, userID, channelID string, maxMessages int) *model.ContextPayload {
	// Oversample: filtering below discards an unknown share of history.
	recent, err := f.history.RecentMessages(ctx, channelID, maxMessages*2)
	if err != nil {
		f.log.Warn().Err(err).Str("channel", channelID).Msg("history fetch failed; returning empty context")
		metrics.IncContextFetch("error")
		return model.EmptyContext(f.now())
	}

	// Walk newest-first, keep qualifying messages up to maxMessages.
	raw := make([]rawMessage, 0, maxMessages)
	for _, m := range recent {
		if m.FromBot || m.System {
			continue
		}
		content := strings.TrimSpace(m.Content)
		if content == "" || strings.HasPrefix(content, commandSigil) {
			continue
		}

		author := m.AuthorDisplayName
		if f.strict {
			author = pseudonym(m.AuthorID)
		}
		raw = append(raw, rawMessage{sentAt: m.SentAt, author: author, content: content})
		if len(raw) >= maxMessages {
			break
		}
	}

	if len(raw) == 0 {
		metrics.IncContextFetch("empty")
		return model.EmptyContext(f.now())
	}

	// Oldest-first from here on.
	for i, j := 0, len(raw)-1; i < j; i, j = i+1, j-1 {
		raw[i], raw[j] = raw[j], raw[i]
	}

	style := f.detectStyle(ctx, raw)

	seen := make(map[string]struct{}, len(raw))
	participants := make([]string, 0, len(raw))
	formatted := make([]model.FormattedMessage, 0, len(raw))
	for _, m := range raw {
		if _, ok := seen[m.author]; !ok {
			seen[m.author] = struct{}{}
			participants = append(participants, m.author)
		}
		formatted = append(formatted, model.FormattedMessage{
			DisplayTime: m.sentAt.Format("15:04"),
			AuthorLabel: m.author,
			Content:     m.content,
		})
	}

	metrics.IncContextFetch("ok")
	return &model.ContextPayload{
		Messages:     formatted,
		Language:     style,
		Participants: participants,
		CachedAt:     f.now(),
	}
}

// detectStyle classifies the last few messages with mentions and links
// scrubbed. Best-effort: any failure or unknown label falls back to english.
func (f *ContextFetcher) detectStyle(ctx context.Context, raw []rawMessage) model.LanguageStyle {
	if f.classifier == nil {
		return model.StyleEnglish
	}
	start := len(raw) - styleSampleMessages
	if start < 0 {
		start = 0
	}
	var b strings.Builder
	for _, m := range raw[start:] {
		content := mentionRe.ReplaceAllString(m.content, "[mention]")
		content = linkRe.ReplaceAllString(content, "[link]")
		b.WriteString(content)
		b.WriteString(" ")
	}
	sample := b.String()
	if len(sample) > styleSampleLimit {
		sample = sample[:styleSampleLimit]
	}

	label, err := f.classifier.ClassifySample(ctx, sample)
	if err != nil {
		f.log.Debug().Err(err).Msg("language classification failed; using english")
		metrics.IncClassifierFallback()
		return model.StyleEnglish
	}
	style := model.ParseLanguageStyle(label)
	if string(style) != label {
		metrics.IncClassifierFallback()
	}
	return style
}

// pseudonym derives a stable, opaque UserNN label from an author id.
// Collisions across ids in the same channel are tolerated.
func pseudonym(authorID string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(authorID))
	return fmt.Sprintf("User%02d", h.Sum32()%100)
}
