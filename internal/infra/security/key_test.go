package security

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestGetOrCreateKeyKeepsConfigured(t *testing.T) {
	logger := zerolog.Nop()
	key, err := GetOrCreateKey("configured-key-value", &logger)
	if err != nil {
		t.Fatalf("GetOrCreateKey: %v", err)
	}
	if key != "configured-key-value" {
		t.Fatalf("key = %q", key)
	}
}

func TestGetOrCreateKeyGenerates(t *testing.T) {
	logger := zerolog.Nop()
	key, err := GetOrCreateKey("", &logger)
	if err != nil {
		t.Fatalf("GetOrCreateKey: %v", err)
	}
	if len(key) != 32 {
		t.Fatalf("generated key length = %d, want 32", len(key))
	}
	// The generated key must be a valid AES key for the cipher service.
	if _, err := NewEncryptionService(key); err != nil {
		t.Fatalf("generated key rejected: %v", err)
	}

	other, _ := GetOrCreateKey("", &logger)
	if key == other {
		t.Fatal("two generated keys are identical")
	}
}
