// File: internal/infra/cache/context_cache.go
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"telegram-ai-chatbot/internal/domain/model"
	"telegram-ai-chatbot/internal/domain/ports/repository"
	"telegram-ai-chatbot/internal/infra/metrics"
	"telegram-ai-chatbot/internal/infra/security"
)

// Compile-time check
var _ repository.ContextCache = (*ContextCache)(nil)

// entry is one encrypted cache slot. The payload is AES-GCM ciphertext; the
// owner fingerprint locates a user's entries without storing the raw id.
type entry struct {
	payload   string
	expiresAt time.Time
	ownerHash string
}

// ContextCache is the in-memory, consent-gated, encrypted context store keyed
// by hash(user, channel). Entries are never persisted: a process restart
// clears all cached context, which is a privacy property, not a bug.
type ContextCache struct {
	mu      sync.Mutex
	entries map[string]entry

	enc     *security.EncryptionService
	consent repository.ConsentStore
	ttl     time.Duration
	now     func() time.Time
	log     *zerolog.Logger
}

func NewContextCache(enc *security.EncryptionService, consent repository.ConsentStore, ttl time.Duration, logger *zerolog.Logger) *ContextCache {
	l := logger.With().Str("component", "ContextCache").Logger()
	return &ContextCache{
		entries: make(map[string]entry),
		enc:     enc,
		consent: consent,
		ttl:     ttl,
		now:     time.Now,
		log:     &l,
	}
}

// cacheKey hashes (user, channel) so keys carry no personal info.
func cacheKey(userID, channelID string) string {
	sum := sha256.Sum256([]byte(userID + ":" + channelID))
	return hex.EncodeToString(sum[:])[:16]
}

// ownerFingerprint is a truncated hash of the user id, shared by all of the
// user's entries.
func ownerFingerprint(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:])[:8]
}

// Get returns the decrypted payload for (user, channel). Every failure path
// (revoked consent, absent entry, expiry, decrypt failure) is a uniform miss.
func (c *ContextCache) Get(userID, channelID string) (*model.ContextPayload, bool) {
	if !c.consent.Consents(userID) {
		metrics.IncCacheRequest("miss_no_consent")
		return nil, false
	}
	key := cacheKey(userID, channelID)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		metrics.IncCacheRequest("miss_absent")
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		metrics.IncCacheRequest("miss_expired")
		metrics.AddCacheEvictions("expired_read", 1)
		return nil, false
	}

	plaintext, err := c.enc.Decrypt(e.payload)
	if err != nil {
		delete(c.entries, key)
		metrics.IncCacheRequest("miss_decrypt")
		metrics.AddCacheEvictions("decrypt_error", 1)
		c.log.Warn().Err(err).Msg("cache entry failed decryption; purged")
		return nil, false
	}
	var payload model.ContextPayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		delete(c.entries, key)
		metrics.IncCacheRequest("miss_decrypt")
		metrics.AddCacheEvictions("decrypt_error", 1)
		c.log.Warn().Err(err).Msg("cache entry failed decoding; purged")
		return nil, false
	}
	metrics.IncCacheRequest("hit")
	return &payload, true
}

// Put stores the payload encrypted with expiry now + TTL, replacing any prior
// entry for the same key. Without consent it is a true no-op.
func (c *ContextCache) Put(userID, channelID string, payload *model.ContextPayload) {
	if payload == nil || !c.consent.Consents(userID) {
		return
	}
	plaintext, err := json.Marshal(payload)
	if err != nil {
		c.log.Error().Err(err).Msg("marshal context payload")
		return
	}
	ciphertext, err := c.enc.Encrypt(plaintext)
	if err != nil {
		c.log.Error().Err(err).Msg("encrypt context payload")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(userID, channelID)] = entry{
		payload:   ciphertext,
		expiresAt: c.now().Add(c.ttl),
		ownerHash: ownerFingerprint(userID),
	}
}

// ClearUser removes every entry whose owner fingerprint matches. Used on
// explicit user request and on consent revocation.
func (c *ContextCache) ClearUser(userID string) int {
	fp := ownerFingerprint(userID)

	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for key, e := range c.entries {
		if e.ownerHash == fp {
			delete(c.entries, key)
			removed++
		}
	}
	metrics.AddCacheEvictions("clear_user", removed)
	return removed
}

// SweepExpired removes all entries past their deadline.
func (c *ContextCache) SweepExpired() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	metrics.AddCacheEvictions("sweep", removed)
	return removed
}

func (c *ContextCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
