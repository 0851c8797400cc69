// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token    string `yaml:"token"`
	Username string `yaml:"username"`
	Workers  int    `yaml:"workers"` // polling workers
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type AdminConfig struct {
	Port   int    `yaml:"port"`
	APIKey string `yaml:"api_key"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// RateLimit is the max AI commands per user per minute. 0 disables limiting.
	RateLimit int `yaml:"rate_limit"`
}

type AIConfig struct {
	OpenAIKey          string `yaml:"openai_key"`
	GeminiKey          string `yaml:"gemini_key"`
	GeminiURL          string `yaml:"gemini_url"`
	OpenAIModel        string `yaml:"openai_model"`
	GeminiModel        string `yaml:"gemini_model"`
	ClassifierModel    string `yaml:"classifier_model"`
	ConcurrentLimit    int    `yaml:"concurrent_limit"` // max concurrent AI calls
	HistoryTokenBudget int    `yaml:"history_token_budget"`
}

type PrivacyConfig struct {
	// Mode is strict | balanced. Strict anonymizes author names in fetched context.
	Mode          string        `yaml:"mode"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
	ConsentFile   string        `yaml:"consent_file"`
	ContextDepth  int           `yaml:"context_depth"` // max channel messages per fetch
}

type StorageConfig struct {
	ConversationFile string `yaml:"conversation_file"`
}

type SecurityConfig struct {
	EncryptionKey string `yaml:"encryption_key"`
}

type Config struct {
	Bot      BotConfig      `yaml:"bot"`
	Log      LogConfig      `yaml:"log"`
	Admin    AdminConfig    `yaml:"admin"`
	Redis    RedisConfig    `yaml:"redis"`
	AI       AIConfig       `yaml:"ai"`
	Privacy  PrivacyConfig  `yaml:"privacy"`
	Storage  StorageConfig  `yaml:"storage"`
	Security SecurityConfig `yaml:"security"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 8
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.AI.ConcurrentLimit <= 0 {
		cfg.AI.ConcurrentLimit = 16
	}
	if cfg.AI.OpenAIModel == "" {
		cfg.AI.OpenAIModel = "gpt-4o"
	}
	if cfg.AI.GeminiModel == "" {
		cfg.AI.GeminiModel = "gemini-2.0-flash"
	}
	if cfg.AI.ClassifierModel == "" {
		cfg.AI.ClassifierModel = cfg.AI.GeminiModel
	}
	if cfg.AI.HistoryTokenBudget <= 0 {
		cfg.AI.HistoryTokenBudget = 1500
	}
	if cfg.Privacy.Mode == "" {
		cfg.Privacy.Mode = "strict"
	}
	if cfg.Privacy.CacheTTL <= 0 {
		cfg.Privacy.CacheTTL = 2 * time.Hour
	}
	if cfg.Privacy.SweepInterval <= 0 {
		cfg.Privacy.SweepInterval = 5 * time.Minute
	}
	if cfg.Privacy.ConsentFile == "" {
		cfg.Privacy.ConsentFile = "user_privacy.json"
	}
	if cfg.Privacy.ContextDepth <= 0 {
		cfg.Privacy.ContextDepth = 20
	}
	if cfg.Storage.ConversationFile == "" {
		cfg.Storage.ConversationFile = "conversations.json"
	}

	// Minimal validation
	if cfg.Bot.Token == "" {
		return nil, errors.New("bot.token is required")
	}
	if cfg.Privacy.Mode != "strict" && cfg.Privacy.Mode != "balanced" {
		return nil, fmt.Errorf("privacy.mode must be strict or balanced, got %q", cfg.Privacy.Mode)
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
