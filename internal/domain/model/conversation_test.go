package model

import (
	"strings"
	"testing"
	"time"
)

func TestAppendCapsTurns(t *testing.T) {
	now := time.Now()
	c := NewConversation("u1", "ch1", now)
	for i := 0; i < MaxTurnsPerConversation+7; i++ {
		c.Append("user", "msg", now.Add(time.Duration(i)*time.Second))
	}
	if len(c.Turns) != MaxTurnsPerConversation {
		t.Fatalf("Turns = %d, want %d", len(c.Turns), MaxTurnsPerConversation)
	}
	if c.LastActivity.Before(now.Add(26 * time.Second)) {
		t.Fatalf("LastActivity = %v not advanced", c.LastActivity)
	}
}

func TestAppendTruncatesContent(t *testing.T) {
	c := NewConversation("u1", "ch1", time.Now())
	c.Append("assistant", strings.Repeat("a", 3000), time.Now())
	if got := len(c.Turns[0].Content); got != 2000 {
		t.Fatalf("content length = %d, want 2000", got)
	}
}

func TestRecent(t *testing.T) {
	now := time.Now()
	c := NewConversation("u1", "ch1", now)
	for i := 0; i < 5; i++ {
		c.Append("user", strings.Repeat("x", i+1), now)
	}
	recent := c.Recent(2)
	if len(recent) != 2 || len(recent[0].Content) != 4 || len(recent[1].Content) != 5 {
		t.Fatalf("Recent(2) = %+v", recent)
	}
	if got := c.Recent(0); len(got) != 5 {
		t.Fatalf("Recent(0) = %d turns, want all", len(got))
	}
}

func TestStale(t *testing.T) {
	now := time.Now()
	c := NewConversation("u1", "ch1", now)
	c.Append("user", "hi", now)
	if c.Stale(now.Add(ConversationRetention - time.Minute)) {
		t.Fatal("conversation inside retention marked stale")
	}
	if !c.Stale(now.Add(ConversationRetention + time.Minute)) {
		t.Fatal("conversation past retention not marked stale")
	}
}

func TestParseLanguageStyle(t *testing.T) {
	cases := map[string]LanguageStyle{
		"hinglish":        StyleHinglish,
		"romanized_hindi": StyleRomanizedHindi,
		"english":         StyleEnglish,
		"":                StyleEnglish,
		"klingon":         StyleEnglish,
	}
	for in, want := range cases {
		if got := ParseLanguageStyle(in); got != want {
			t.Errorf("ParseLanguageStyle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEmptyContextAndRecentLines(t *testing.T) {
	now := time.Now()
	p := EmptyContext(now)
	if len(p.Messages) != 0 || p.Language != StyleEnglish || !p.CachedAt.Equal(now) {
		t.Fatalf("EmptyContext = %+v", p)
	}

	p.Messages = []FormattedMessage{
		{DisplayTime: "09:00", AuthorLabel: "User01", Content: "one"},
		{DisplayTime: "09:01", AuthorLabel: "User02", Content: "two"},
		{DisplayTime: "09:02", AuthorLabel: "User03", Content: "three"},
	}
	lines := p.RecentLines(2)
	if len(lines) != 2 || lines[0] != "[09:01] User02: two" {
		t.Fatalf("RecentLines(2) = %v", lines)
	}
}
