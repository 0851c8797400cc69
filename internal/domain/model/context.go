package model

import (
	"fmt"
	"time"
)

// LanguageStyle is the conversational register detected in a channel's recent
// messages. Unknown labels normalize to StyleEnglish.
type LanguageStyle string

const (
	StyleEnglish        LanguageStyle = "english"
	StyleHinglish       LanguageStyle = "hinglish"
	StyleRomanizedHindi LanguageStyle = "romanized_hindi"
)

// ParseLanguageStyle maps a classifier label to a LanguageStyle, falling back
// to StyleEnglish for anything unrecognized.
func ParseLanguageStyle(s string) LanguageStyle {
	switch LanguageStyle(s) {
	case StyleHinglish:
		return StyleHinglish
	case StyleRomanizedHindi:
		return StyleRomanizedHindi
	default:
		return StyleEnglish
	}
}

// FormattedMessage is one anonymization-applied line of channel context.
// AuthorLabel is either the platform display name or a UserNN pseudonym; the
// raw author id is not retained.
type FormattedMessage struct {
	DisplayTime string `json:"display_time"` // HH:MM
	AuthorLabel string `json:"author_label"`
	Content     string `json:"content"`
}

func (m FormattedMessage) Line() string {
	return fmt.Sprintf("[%s] %s: %s", m.DisplayTime, m.AuthorLabel, m.Content)
}

// ContextPayload is the structured bundle of recent conversation lines,
// detected language style and participant labels used to build a prompt.
// Immutable once constructed; consumed read-only by the prompt composer.
type ContextPayload struct {
	Messages     []FormattedMessage `json:"messages"`
	Language     LanguageStyle      `json:"language"`
	Participants []string           `json:"participants"`
	CachedAt     time.Time          `json:"cached_at"`
}

// EmptyContext is the fetch result for a channel with no qualifying history.
func EmptyContext(now time.Time) *ContextPayload {
	return &ContextPayload{
		Messages:     []FormattedMessage{},
		Language:     StyleEnglish,
		Participants: []string{},
		CachedAt:     now,
	}
}

// RecentLines returns the last n formatted lines in chronological order.
func (p *ContextPayload) RecentLines(n int) []string {
	msgs := p.Messages
	if n > 0 && len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		lines = append(lines, m.Line())
	}
	return lines
}
