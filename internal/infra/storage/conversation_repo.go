// File: internal/infra/storage/conversation_repo.go
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"telegram-ai-chatbot/internal/domain/model"
	"telegram-ai-chatbot/internal/domain/ports/repository"
)

// Compile-time check
var _ repository.ConversationRepository = (*FileConversationRepo)(nil)

// FileConversationRepo persists Q&A history to a single JSON document keyed by
// "user:channel". Whole-file rewrite on every append; stale conversations are
// dropped at load time.
type FileConversationRepo struct {
	mu            sync.Mutex
	conversations map[string]*model.Conversation

	path string
	now  func() time.Time
	log  *zerolog.Logger
}

func NewFileConversationRepo(path string, logger *zerolog.Logger) *FileConversationRepo {
	l := logger.With().Str("component", "ConversationRepo").Logger()
	r := &FileConversationRepo{
		conversations: make(map[string]*model.Conversation),
		path:          path,
		now:           time.Now,
		log:           &l,
	}
	r.load()
	return r
}

func conversationKey(userID, channelID string) string {
	return userID + ":" + channelID
}

func (r *FileConversationRepo) load() {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.log.Error().Err(err).Str("path", r.path).Msg("read conversation file; starting empty")
		}
		return
	}
	var raw map[string]*model.Conversation
	if err := json.Unmarshal(b, &raw); err != nil {
		r.log.Error().Err(err).Str("path", r.path).Msg("parse conversation file; starting empty")
		return
	}

	now := r.now()
	dropped := 0
	for key, conv := range raw {
		if conv == nil || conv.Stale(now) {
			dropped++
			continue
		}
		r.conversations[key] = conv
	}
	if dropped > 0 {
		r.log.Info().Int("dropped", dropped).Msg("stale conversations removed on load")
	}
}

func (r *FileConversationRepo) persist() error {
	b, err := json.MarshalIndent(r.conversations, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal conversations: %w", err)
	}
	if err := os.WriteFile(r.path, b, 0o600); err != nil {
		return fmt.Errorf("write conversation file: %w", err)
	}
	return nil
}

func (r *FileConversationRepo) History(userID, channelID string) []model.Turn {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.conversations[conversationKey(userID, channelID)]
	if !ok {
		return nil
	}
	out := make([]model.Turn, len(conv.Turns))
	copy(out, conv.Turns)
	return out
}

func (r *FileConversationRepo) Append(userID, channelID, role, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := conversationKey(userID, channelID)
	conv, ok := r.conversations[key]
	if !ok {
		conv = model.NewConversation(userID, channelID, r.now())
		r.conversations[key] = conv
	}
	conv.Append(role, content, r.now())

	if err := r.persist(); err != nil {
		r.log.Error().Err(err).Msg("persist conversations; continuing in-memory")
		return err
	}
	return nil
}

func (r *FileConversationRepo) ClearUser(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key := range r.conversations {
		if strings.HasPrefix(key, userID+":") {
			delete(r.conversations, key)
			removed++
		}
	}
	if removed == 0 {
		return nil
	}
	if err := r.persist(); err != nil {
		r.log.Error().Err(err).Msg("persist conversations after clear")
		return err
	}
	return nil
}
