package usecase

import (
	"context"
	"time"

	"telegram-ai-chatbot/internal/domain/model"
	"telegram-ai-chatbot/internal/domain/ports/adapter"
)

// --- history provider ---

type mockHistoryProvider struct {
	messages []adapter.ChannelMessage
	err      error
	calls    int
}

func (m *mockHistoryProvider) RecentMessages(ctx context.Context, channelID string, limit int) ([]adapter.ChannelMessage, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if limit < len(m.messages) {
		return m.messages[:limit], nil
	}
	return m.messages, nil
}

// --- style classifier ---

type mockClassifier struct {
	label      string
	err        error
	lastSample string
	calls      int
}

func (m *mockClassifier) ClassifySample(ctx context.Context, sample string) (string, error) {
	m.calls++
	m.lastSample = sample
	if m.err != nil {
		return "", m.err
	}
	return m.label, nil
}

// --- context cache ---

type mockCache struct {
	entries map[string]*model.ContextPayload
	puts    int
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]*model.ContextPayload)}
}

func (m *mockCache) key(userID, channelID string) string { return userID + "|" + channelID }

func (m *mockCache) Get(userID, channelID string) (*model.ContextPayload, bool) {
	p, ok := m.entries[m.key(userID, channelID)]
	return p, ok
}

func (m *mockCache) Put(userID, channelID string, payload *model.ContextPayload) {
	m.puts++
	m.entries[m.key(userID, channelID)] = payload
}

func (m *mockCache) ClearUser(userID string) int {
	removed := 0
	for k := range m.entries {
		if len(k) > len(userID) && k[:len(userID)+1] == userID+"|" {
			delete(m.entries, k)
			removed++
		}
	}
	return removed
}

func (m *mockCache) SweepExpired() int { return 0 }
func (m *mockCache) Len() int          { return len(m.entries) }

// --- consent store ---

type mockConsentStore struct {
	allowed map[string]bool
	setErr  error
}

func newMockConsentStore() *mockConsentStore {
	return &mockConsentStore{allowed: make(map[string]bool)}
}

func (m *mockConsentStore) Consents(userID string) bool { return m.allowed[userID] }

func (m *mockConsentStore) SetPreference(userID string, allow bool) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.allowed[userID] = allow
	return nil
}

func (m *mockConsentStore) Record(userID string) *model.ConsentRecord { return nil }
func (m *mockConsentStore) Count() int                                { return len(m.allowed) }

// --- conversation repository ---

type mockConversationRepo struct {
	turns     map[string][]model.Turn
	appendErr error
}

func newMockConversationRepo() *mockConversationRepo {
	return &mockConversationRepo{turns: make(map[string][]model.Turn)}
}

func (m *mockConversationRepo) History(userID, channelID string) []model.Turn {
	return m.turns[userID+"|"+channelID]
}

func (m *mockConversationRepo) Append(userID, channelID, role, content string) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	key := userID + "|" + channelID
	m.turns[key] = append(m.turns[key], model.Turn{
		Role: role, Content: content, Timestamp: time.Now(),
	})
	return nil
}

func (m *mockConversationRepo) ClearUser(userID string) error {
	for k := range m.turns {
		if len(k) > len(userID) && k[:len(userID)+1] == userID+"|" {
			delete(m.turns, k)
		}
	}
	return nil
}

// --- AI adapter ---

type mockAI struct {
	name         string
	reply        string
	err          error
	calls        int
	lastModel    string
	lastMessages []adapter.Message
}

func (m *mockAI) Name() string { return m.name }

func (m *mockAI) Chat(ctx context.Context, modelName string, messages []adapter.Message, attachment *model.Extraction) (string, error) {
	m.calls++
	m.lastModel = modelName
	m.lastMessages = messages
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

// --- fetcher ---

type mockFetcher struct {
	payload *model.ContextPayload
	calls   int
}

func (m *mockFetcher) Fetch(ctx context.Context, userID, channelID string, maxMessages int) *model.ContextPayload {
	m.calls++
	if m.payload != nil {
		return m.payload
	}
	return model.EmptyContext(time.Now())
}
