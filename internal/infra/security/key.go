// File: internal/infra/security/key.go
package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// GetOrCreateKey returns the configured encryption key or, when none is set,
// generates a fresh 32-byte key and surfaces it to the operator. Cached context
// from a previous run cannot be recovered without the original key; since the
// cache is memory-only that only matters for operators who expect key
// stability across restarts.
func GetOrCreateKey(configured string, log *zerolog.Logger) (string, error) {
	if configured != "" {
		return configured, nil
	}
	raw := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", fmt.Errorf("generate encryption key: %w", err)
	}
	key := hex.EncodeToString(raw) // 32 ASCII bytes -> AES-256
	log.Warn().
		Str("security.encryption_key", key).
		Msg("no encryption key configured; generated one for this run, add it to config to keep it stable")
	return key, nil
}
