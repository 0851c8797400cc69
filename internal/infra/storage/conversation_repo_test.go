package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"telegram-ai-chatbot/internal/domain/model"
)

func newTestRepo(t *testing.T) (*FileConversationRepo, string) {
	t.Helper()
	logger := zerolog.Nop()
	path := filepath.Join(t.TempDir(), "conversations.json")
	return NewFileConversationRepo(path, &logger), path
}

func TestAppendAndHistory(t *testing.T) {
	r, _ := newTestRepo(t)

	if err := r.Append("u1", "ch1", "user", "what is go"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := r.Append("u1", "ch1", "assistant", "a language"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	turns := r.History("u1", "ch1")
	if len(turns) != 2 {
		t.Fatalf("History len = %d, want 2", len(turns))
	}
	if turns[0].Role != "user" || turns[1].Role != "assistant" {
		t.Fatalf("roles out of order: %s, %s", turns[0].Role, turns[1].Role)
	}
	if turns[0].ID == "" || turns[0].ID == turns[1].ID {
		t.Fatal("turn ids missing or not unique")
	}
	if r.History("u1", "ch2") != nil {
		t.Fatal("unrelated channel has history")
	}
}

func TestHistoryCappedAtMaxTurns(t *testing.T) {
	r, _ := newTestRepo(t)

	for i := 0; i < model.MaxTurnsPerConversation+5; i++ {
		if err := r.Append("u1", "ch1", "user", "msg"); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if got := len(r.History("u1", "ch1")); got != model.MaxTurnsPerConversation {
		t.Fatalf("History len = %d, want %d", got, model.MaxTurnsPerConversation)
	}
}

func TestLongContentTruncated(t *testing.T) {
	r, _ := newTestRepo(t)

	long := strings.Repeat("x", 5000)
	if err := r.Append("u1", "ch1", "assistant", long); err != nil {
		t.Fatalf("Append: %v", err)
	}
	turns := r.History("u1", "ch1")
	if got := len(turns[0].Content); got != 2000 {
		t.Fatalf("stored content length = %d, want 2000", got)
	}
}

func TestClearUserRemovesAllChannels(t *testing.T) {
	r, _ := newTestRepo(t)

	r.Append("u1", "ch1", "user", "a")
	r.Append("u1", "ch2", "user", "b")
	r.Append("u2", "ch1", "user", "c")

	if err := r.ClearUser("u1"); err != nil {
		t.Fatalf("ClearUser: %v", err)
	}
	if r.History("u1", "ch1") != nil || r.History("u1", "ch2") != nil {
		t.Fatal("u1's history survived ClearUser")
	}
	if len(r.History("u2", "ch1")) != 1 {
		t.Fatal("u2's history lost by u1's ClearUser")
	}
}

func TestHistorySurvivesReload(t *testing.T) {
	logger := zerolog.Nop()
	path := filepath.Join(t.TempDir(), "conversations.json")

	r := NewFileConversationRepo(path, &logger)
	r.Append("u1", "ch1", "user", "hello")

	reloaded := NewFileConversationRepo(path, &logger)
	turns := reloaded.History("u1", "ch1")
	if len(turns) != 1 || turns[0].Content != "hello" {
		t.Fatalf("reloaded history = %+v", turns)
	}
}

func TestStaleConversationsDroppedOnLoad(t *testing.T) {
	logger := zerolog.Nop()
	path := filepath.Join(t.TempDir(), "conversations.json")

	r := NewFileConversationRepo(path, &logger)
	old := time.Now().Add(-model.ConversationRetention - time.Hour)
	r.now = func() time.Time { return old }
	r.Append("u1", "ch1", "user", "ancient")
	r.now = time.Now
	r.Append("u2", "ch1", "user", "fresh")

	reloaded := NewFileConversationRepo(path, &logger)
	if reloaded.History("u1", "ch1") != nil {
		t.Fatal("stale conversation survived reload")
	}
	if len(reloaded.History("u2", "ch1")) != 1 {
		t.Fatal("fresh conversation dropped on reload")
	}
}

func TestCorruptConversationFileStartsEmpty(t *testing.T) {
	logger := zerolog.Nop()
	path := filepath.Join(t.TempDir(), "conversations.json")
	if err := os.WriteFile(path, []byte("[broken"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	r := NewFileConversationRepo(path, &logger)
	if r.History("u1", "ch1") != nil {
		t.Fatal("corrupt file produced history")
	}
	if err := r.Append("u1", "ch1", "user", "hello"); err != nil {
		t.Fatalf("Append after corrupt load: %v", err)
	}
}
