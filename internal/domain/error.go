package domain

import "errors"

var (
	// ErrConfigMissing marks a missing API key or encryption key. Callers degrade
	// to a user-facing message, never a crash.
	ErrConfigMissing = errors.New("required configuration missing")

	// ErrDecrypt marks a cache entry that failed authentication or decoding.
	// Treated as a cache miss; the broken entry is purged.
	ErrDecrypt = errors.New("payload decryption failed")

	// ErrClassification marks a failed language-style call. Callers fall back to
	// StyleEnglish.
	ErrClassification = errors.New("language classification failed")

	// ErrExternalAPI marks a failed LLM call. Surfaced to the user as an apology
	// string carrying the detail.
	ErrExternalAPI = errors.New("external AI call failed")

	// File processing errors, reported to the user; the request continues
	// text-only where sensible.
	ErrFileTooLarge        = errors.New("file exceeds maximum size")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)
