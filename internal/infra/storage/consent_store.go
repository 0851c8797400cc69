// File: internal/infra/storage/consent_store.go
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"telegram-ai-chatbot/internal/domain/model"
	"telegram-ai-chatbot/internal/domain/ports/repository"
)

// Compile-time check
var _ repository.ConsentStore = (*FileConsentStore)(nil)

// FileConsentStore keeps the consent table in memory and mirrors it to a JSON
// file: read fully at startup, rewritten fully on every change. A corrupt or
// unreadable file degrades to an empty table for the run, never a fatal error.
type FileConsentStore struct {
	mu    sync.Mutex
	table map[string]*model.ConsentRecord

	path string
	now  func() time.Time
	log  *zerolog.Logger
}

func NewFileConsentStore(path string, logger *zerolog.Logger) *FileConsentStore {
	l := logger.With().Str("component", "ConsentStore").Logger()
	s := &FileConsentStore{
		table: make(map[string]*model.ConsentRecord),
		path:  path,
		now:   time.Now,
		log:   &l,
	}
	s.load()
	return s
}

func (s *FileConsentStore) load() {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Error().Err(err).Str("path", s.path).Msg("read consent file; starting with empty table")
		}
		return
	}
	var raw map[string]*model.ConsentRecord
	if err := json.Unmarshal(b, &raw); err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("parse consent file; starting with empty table")
		return
	}
	for id, rec := range raw {
		if rec == nil {
			continue
		}
		rec.UserID = id
		s.table[id] = rec
	}
	s.log.Info().Int("records", len(s.table)).Msg("consent table loaded")
}

// persist rewrites the whole file. Caller holds the lock. Failure is logged
// but not fatal: the table stays in-memory-only for the run.
func (s *FileConsentStore) persist() error {
	b, err := json.MarshalIndent(s.table, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal consent table: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("write consent file: %w", err)
	}
	return nil
}

// Consents defaults to false for unknown users: caching is off until a user
// explicitly allows it.
func (s *FileConsentStore) Consents(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.table[userID]
	return ok && rec.AllowCaching
}

func (s *FileConsentStore) SetPreference(userID string, allow bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.table[userID]
	if !ok {
		rec = &model.ConsentRecord{UserID: userID}
		s.table[userID] = rec
	}
	rec.AllowCaching = allow
	rec.UpdatedAt = s.now()

	if err := s.persist(); err != nil {
		s.log.Error().Err(err).Msg("persist consent table; continuing in-memory")
		return err
	}
	return nil
}

func (s *FileConsentStore) Record(userID string) *model.ConsentRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.table[userID]
	if !ok {
		return nil
	}
	cp := *rec
	return &cp
}

func (s *FileConsentStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.table)
}
