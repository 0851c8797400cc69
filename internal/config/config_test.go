package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "bot:\n  token: \"123:abc\"\n")

	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Bot.Workers != 8 {
		t.Fatalf("Workers = %d, want 8", cfg.Bot.Workers)
	}
	if cfg.Privacy.Mode != "strict" {
		t.Fatalf("Mode = %q, want strict", cfg.Privacy.Mode)
	}
	if cfg.Privacy.CacheTTL != 2*time.Hour {
		t.Fatalf("CacheTTL = %v, want 2h", cfg.Privacy.CacheTTL)
	}
	if cfg.Privacy.SweepInterval != 5*time.Minute {
		t.Fatalf("SweepInterval = %v, want 5m", cfg.Privacy.SweepInterval)
	}
	if cfg.Privacy.ContextDepth != 20 {
		t.Fatalf("ContextDepth = %d, want 20", cfg.Privacy.ContextDepth)
	}
	if cfg.AI.HistoryTokenBudget != 1500 {
		t.Fatalf("HistoryTokenBudget = %d, want 1500", cfg.AI.HistoryTokenBudget)
	}
	if cfg.AI.ClassifierModel != cfg.AI.GeminiModel {
		t.Fatalf("ClassifierModel = %q, want the gemini default", cfg.AI.ClassifierModel)
	}
	if !cfg.Runtime.Dev {
		t.Fatal("Runtime.Dev not propagated")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
bot:
  token: "123:abc"
privacy:
  mode: balanced
  cache_ttl: 30m
  context_depth: 5
ai:
  openai_model: gpt-4o-mini
`)
	cfg, err := LoadConfig(path, false)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Privacy.Mode != "balanced" || cfg.Privacy.CacheTTL != 30*time.Minute {
		t.Fatalf("privacy = %+v", cfg.Privacy)
	}
	if cfg.Privacy.ContextDepth != 5 {
		t.Fatalf("ContextDepth = %d", cfg.Privacy.ContextDepth)
	}
	if cfg.AI.OpenAIModel != "gpt-4o-mini" {
		t.Fatalf("OpenAIModel = %q", cfg.AI.OpenAIModel)
	}
}

func TestLoadConfigMissingToken(t *testing.T) {
	path := writeConfig(t, "log:\n  level: debug\n")
	if _, err := LoadConfig(path, false); err == nil {
		t.Fatal("expected error for missing bot token")
	}
}

func TestLoadConfigBadPrivacyMode(t *testing.T) {
	path := writeConfig(t, "bot:\n  token: \"123:abc\"\nprivacy:\n  mode: paranoid\n")
	if _, err := LoadConfig(path, false); err == nil {
		t.Fatal("expected error for unknown privacy mode")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"), false); err == nil {
		t.Fatal("expected error for missing file")
	}
}
