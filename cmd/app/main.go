// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telegram-ai-chatbot/internal/application"
	"telegram-ai-chatbot/internal/config"
	"telegram-ai-chatbot/internal/domain/ports/adapter"
	aiAdapters "telegram-ai-chatbot/internal/infra/adapters/ai"
	"telegram-ai-chatbot/internal/infra/cache"
	"telegram-ai-chatbot/internal/infra/files"
	"telegram-ai-chatbot/internal/infra/logging"
	"telegram-ai-chatbot/internal/infra/metrics"
	red "telegram-ai-chatbot/internal/infra/redis"
	"telegram-ai-chatbot/internal/infra/sched"
	"telegram-ai-chatbot/internal/infra/security"
	"telegram-ai-chatbot/internal/infra/storage"
	"telegram-ai-chatbot/internal/infra/telegram"
	"telegram-ai-chatbot/internal/infra/web"
	"telegram-ai-chatbot/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		log.Info().Msg("developer mode enabled")
	}
	metrics.MustRegister()

	// ---- Encryption ----
	encKey, err := security.GetOrCreateKey(cfg.Security.EncryptionKey, log)
	if err != nil {
		log.Fatal().Err(err).Msg("encryption key")
	}
	encSvc, err := security.NewEncryptionService(encKey)
	if err != nil {
		log.Fatal().Err(err).Msg("encryption service")
	}

	// ---- Stores ----
	consentStore := storage.NewFileConsentStore(cfg.Privacy.ConsentFile, log)
	conversationRepo := storage.NewFileConversationRepo(cfg.Storage.ConversationFile, log)
	contextCache := cache.NewContextCache(encSvc, consentStore, cfg.Privacy.CacheTTL, log)

	// ---- Redis (optional, rate limiting only) ----
	var limiter application.RateLimiter
	if cfg.Redis.URL != "" && cfg.Redis.RateLimit > 0 {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		limiter = red.NewRateLimiter(redisClient, cfg.Redis.RateLimit)
		log.Info().Int("per_minute", cfg.Redis.RateLimit).Msg("AI rate limiting enabled")
	}

	// ---- AI adapters ----
	providers := make(map[string]usecase.Provider)
	var classifierAI adapter.AIServiceAdapter

	if cfg.AI.OpenAIKey != "" {
		openAI, err := aiAdapters.NewOpenAIAdapter(cfg.AI.OpenAIKey, cfg.AI.OpenAIModel)
		if err != nil {
			log.Fatal().Err(err).Msg("openai adapter")
		}
		wrapped := aiAdapters.NewInstrumentedAI(aiAdapters.NewLimitedAI(openAI, cfg.AI.ConcurrentLimit))
		providers["gpt"] = usecase.Provider{Adapter: wrapped, Model: cfg.AI.OpenAIModel}
		classifierAI = wrapped
	}
	if cfg.AI.GeminiKey != "" {
		gemini, err := aiAdapters.NewGeminiAdapter(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiURL, cfg.AI.GeminiModel)
		if err != nil {
			log.Fatal().Err(err).Msg("gemini adapter")
		}
		wrapped := aiAdapters.NewInstrumentedAI(aiAdapters.NewLimitedAI(gemini, cfg.AI.ConcurrentLimit))
		providers["gemini"] = usecase.Provider{Adapter: wrapped, Model: cfg.AI.GeminiModel}
		// The original bot classifies with Gemini; prefer it when present.
		classifierAI = wrapped
	}
	if len(providers) == 0 {
		if !cfg.Runtime.Dev {
			log.Fatal().Msg("no AI provider configured; set ai.openai_key or ai.gemini_key")
		}
		noop := aiAdapters.NewNoopAI()
		providers["gpt"] = usecase.Provider{Adapter: noop}
		providers["gemini"] = usecase.Provider{Adapter: noop}
		classifierAI = noop
	}
	classifier := aiAdapters.NewLanguageClassifier(classifierAI, cfg.AI.ClassifierModel)

	// ---- Context pipeline ----
	historyRing := telegram.NewHistoryRing(cfg.Privacy.ContextDepth * 10)
	fetcher := usecase.NewContextFetcher(historyRing, classifier, cfg.Privacy.Mode == "strict", log)
	contextUC := usecase.NewContextUseCase(contextCache, fetcher, cfg.Privacy.ContextDepth, log)

	composer := usecase.NewPromptComposer(cfg.AI.HistoryTokenBudget)
	chatUC := usecase.NewChatUseCase(contextUC, composer, conversationRepo, providers, log)
	privacyUC := usecase.NewPrivacyUseCase(
		consentStore, contextCache, conversationRepo,
		cfg.Privacy.Mode, cfg.Privacy.CacheTTL.String(), log,
	)

	facade := application.NewBotFacade(chatUC, privacyUC, files.NewProcessor(), limiter, log)

	bot, err := telegram.NewRealBotAdapter(&cfg.Bot, facade, historyRing, log)
	if err != nil {
		log.Fatal().Err(err).Msg("telegram bot")
	}

	// ---- Background sweeper ----
	sweeper := sched.NewCacheSweeper(cfg.Privacy.SweepInterval, contextCache, log)
	go func() {
		if err := sweeper.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("cache sweeper stopped")
		}
	}()

	// ---- Admin server ----
	if cfg.Admin.Port > 0 {
		adminSrv := web.NewServer(contextCache, consentStore, cfg.Privacy.Mode, cfg.Admin.APIKey, log)
		httpSrv := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Admin.Port),
			Handler: adminSrv.Router(),
		}
		go func() {
			log.Info().Int("port", cfg.Admin.Port).Msg("admin server listening")
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("admin server")
			}
		}()
		defer func() {
			shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutCancel()
			_ = httpSrv.Shutdown(shutCtx)
		}()
	}

	// ---- Run until signalled ----
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Info().Msg("shutdown signal received")
		bot.StopPolling()
		cancel()
	}()

	log.Info().Str("privacy_mode", cfg.Privacy.Mode).Msg("privacy-enhanced bot starting")
	if err := bot.StartPolling(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("polling stopped")
	}
}
