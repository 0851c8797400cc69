package usecase

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"telegram-ai-chatbot/internal/domain/model"
)

func newTestPrivacyUC(consent *mockConsentStore, cache *mockCache, repo *mockConversationRepo) *privacyUC {
	logger := zerolog.Nop()
	return NewPrivacyUseCase(consent, cache, repo, "strict", "2h", &logger)
}

func TestPrivacyAllow(t *testing.T) {
	consent := newMockConsentStore()
	uc := newTestPrivacyUC(consent, newMockCache(), newMockConversationRepo())

	reply := uc.HandleCommand("u1", []string{"allow"})
	if !consent.allowed["u1"] {
		t.Fatal("allow did not set the preference")
	}
	if !strings.Contains(reply, "enabled") {
		t.Fatalf("reply = %q", reply)
	}
}

func TestPrivacyDenyPurgesCache(t *testing.T) {
	consent := newMockConsentStore()
	consent.allowed["u1"] = true
	cache := newMockCache()
	cache.Put("u1", "ch1", &model.ContextPayload{CachedAt: time.Now()})
	cache.Put("u1", "ch2", &model.ContextPayload{CachedAt: time.Now()})
	uc := newTestPrivacyUC(consent, cache, newMockConversationRepo())

	reply := uc.HandleCommand("u1", []string{"deny"})
	if consent.allowed["u1"] {
		t.Fatal("deny did not revoke consent")
	}
	if cache.Len() != 0 {
		t.Fatalf("deny left %d cache entries", cache.Len())
	}
	if !strings.Contains(reply, "disabled") {
		t.Fatalf("reply = %q", reply)
	}
}

func TestPrivacyClear(t *testing.T) {
	cache := newMockCache()
	cache.Put("u1", "ch1", &model.ContextPayload{CachedAt: time.Now()})
	uc := newTestPrivacyUC(newMockConsentStore(), cache, newMockConversationRepo())

	uc.HandleCommand("u1", []string{"clear"})
	if cache.Len() != 0 {
		t.Fatal("clear left cache entries")
	}
}

func TestPrivacyStatus(t *testing.T) {
	consent := newMockConsentStore()
	uc := newTestPrivacyUC(consent, newMockCache(), newMockConversationRepo())

	off := uc.HandleCommand("u1", nil)
	if !strings.Contains(off, "❌ Disabled") {
		t.Fatalf("status without consent = %q", off)
	}
	if !strings.Contains(off, "STRICT") {
		t.Fatalf("status missing privacy mode: %q", off)
	}
	if !strings.Contains(off, "2h") {
		t.Fatalf("status missing cache duration: %q", off)
	}

	consent.allowed["u1"] = true
	on := uc.HandleCommand("u1", []string{"info"})
	if !strings.Contains(on, "✅ Enabled") {
		t.Fatalf("status with consent = %q", on)
	}
}

func TestPrivacyUnknownSubcommand(t *testing.T) {
	uc := newTestPrivacyUC(newMockConsentStore(), newMockCache(), newMockConversationRepo())

	reply := uc.HandleCommand("u1", []string{"explode"})
	if !strings.Contains(reply, "Invalid privacy command") {
		t.Fatalf("reply = %q", reply)
	}
}

func TestResetClearsCacheAndConversations(t *testing.T) {
	cache := newMockCache()
	cache.Put("u1", "ch1", &model.ContextPayload{CachedAt: time.Now()})
	repo := newMockConversationRepo()
	repo.Append("u1", "ch1", "user", "hello")
	repo.Append("u2", "ch1", "user", "other")
	uc := newTestPrivacyUC(newMockConsentStore(), cache, repo)

	uc.Reset("u1")
	if cache.Len() != 0 {
		t.Fatal("reset left cache entries")
	}
	if repo.History("u1", "ch1") != nil {
		t.Fatal("reset left conversations")
	}
	if len(repo.History("u2", "ch1")) != 1 {
		t.Fatal("reset touched another user's conversations")
	}
}
