// File: internal/infra/telegram/real_bot.go
package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"telegram-ai-chatbot/internal/application"
	"telegram-ai-chatbot/internal/config"
	"telegram-ai-chatbot/internal/domain/ports/adapter"
	"telegram-ai-chatbot/internal/infra/files"
	"telegram-ai-chatbot/internal/infra/logging"
	"telegram-ai-chatbot/internal/infra/metrics"
)

// RealBotAdapter drives the bot over long polling with a bounded worker
// fan-out, records group chatter into the history ring and forwards commands
// to the facade.
type RealBotAdapter struct {
	bot     *tgbotapi.BotAPI
	cfg     *config.BotConfig
	facade  *application.BotFacade
	history *HistoryRing
	log     *zerolog.Logger

	updateWorkers int
	httpClient    *http.Client
	cancelPolling context.CancelFunc
}

func NewRealBotAdapter(cfg *config.BotConfig, facade *application.BotFacade, history *HistoryRing, logger *zerolog.Logger) (*RealBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	if facade == nil {
		return nil, errors.New("bot facade is nil")
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 5
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	l := logger.With().Str("component", "TelegramBot").Logger()

	return &RealBotAdapter{
		bot:           bot,
		cfg:           cfg,
		facade:        facade,
		history:       history,
		log:           &l,
		updateWorkers: workers,
		httpClient:    &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// StartPolling begins polling Telegram for updates concurrently.
// It runs until ctx is canceled.
func (r *RealBotAdapter) StartPolling(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := r.bot.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	r.cancelPolling = cancel

	var wg sync.WaitGroup
	updateChan := make(chan tgbotapi.Update, 100)

	for i := 0; i < r.updateWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for {
				select {
				case update, ok := <-updateChan:
					if !ok {
						return
					}
					if err := r.handleUpdate(ctx, update); err != nil {
						metrics.IncUpdate("error")
						r.log.Error().Err(err).Int("worker", workerID).Msg("error handling update")
					}
				case <-ctx.Done():
					return
				}
			}
		}(i + 1)
	}

	// Dispatcher goroutine: feed updates into updateChan
	go func() {
		defer close(updateChan)
		for {
			select {
			case update := <-updates:
				select {
				case updateChan <- update:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	<-ctx.Done()
	r.bot.StopReceivingUpdates()
	wg.Wait()
	return nil
}

// StopPolling stops the polling loop gracefully.
func (r *RealBotAdapter) StopPolling() {
	if r.cancelPolling != nil {
		r.cancelPolling()
	}
}

// handleUpdate processes a single Telegram update. A panic in the handling
// path is contained here so it cannot take down the worker.
func (r *RealBotAdapter) handleUpdate(ctx context.Context, update tgbotapi.Update) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic handling update: %v", rec)
		}
	}()

	msg := update.Message
	if msg == nil || msg.From == nil {
		return nil
	}

	channelID := strconv.FormatInt(msg.Chat.ID, 10)
	r.recordHistory(channelID, msg)

	// Self-talk guard.
	if msg.From.ID == r.bot.Self.ID {
		return nil
	}

	userID := strconv.FormatInt(msg.From.ID, 10)
	ctx = logging.WithTraceID(ctx, uuid.NewString())
	ctx = logging.WithUserID(ctx, userID)
	ctx = logging.WithChatID(ctx, msg.Chat.ID)

	in := application.Inbound{
		UserID:      userID,
		ChannelID:   channelID,
		DisplayName: displayName(msg.From),
		Text:        messageText(msg),
	}

	if name, data, err := r.downloadAttachment(msg); err != nil {
		return r.send(msg.Chat.ID, "", fmt.Sprintf("❌ Download failed: %v", err))
	} else if data != nil {
		in.AttachmentName = name
		in.AttachmentData = data
	}

	reply := r.facade.HandleMessage(ctx, in)
	if reply == nil {
		metrics.IncUpdate("chatter")
		return nil
	}
	for _, notice := range reply.Notices {
		if err := r.send(msg.Chat.ID, "", notice); err != nil {
			return err
		}
	}
	return r.send(msg.Chat.ID, reply.Label, reply.Text)
}

// send delivers text chunked on paragraph boundaries; only the first chunk
// carries the label.
func (r *RealBotAdapter) send(chatID int64, label, text string) error {
	for _, chunk := range SplitResponse(label, text) {
		if _, err := r.bot.Send(tgbotapi.NewMessage(chatID, chunk)); err != nil {
			return fmt.Errorf("send chunk: %w", err)
		}
	}
	return nil
}

func (r *RealBotAdapter) recordHistory(channelID string, msg *tgbotapi.Message) {
	if r.history == nil {
		return
	}
	r.history.Record(channelID, adapter.ChannelMessage{
		ID:                int64(msg.MessageID),
		AuthorID:          strconv.FormatInt(msg.From.ID, 10),
		AuthorDisplayName: displayName(msg.From),
		Content:           messageText(msg),
		SentAt:            msg.Time(),
		FromBot:           msg.From.IsBot,
		System:            isSystemMessage(msg),
	})
}

// downloadAttachment fetches the document or largest photo on the message, if
// any. A message without attachments returns all-zero values.
func (r *RealBotAdapter) downloadAttachment(msg *tgbotapi.Message) (string, []byte, error) {
	var fileID, name string
	switch {
	case msg.Document != nil:
		if msg.Document.FileSize > files.MaxFileSize {
			return "", nil, fmt.Errorf("file exceeds %dMB limit", files.MaxFileSize/(1024*1024))
		}
		fileID = msg.Document.FileID
		name = msg.Document.FileName
	case len(msg.Photo) > 0:
		// Telegram orders photo sizes ascending; take the largest.
		fileID = msg.Photo[len(msg.Photo)-1].FileID
		name = "photo.jpg"
	default:
		return "", nil, nil
	}

	url, err := r.bot.GetFileDirectURL(fileID)
	if err != nil {
		return "", nil, fmt.Errorf("resolve file url: %w", err)
	}
	resp, err := r.httpClient.Get(url)
	if err != nil {
		return "", nil, fmt.Errorf("fetch file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, files.MaxFileSize+1))
	if err != nil {
		return "", nil, fmt.Errorf("read file: %w", err)
	}
	return name, data, nil
}

func displayName(u *tgbotapi.User) string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.UserName
}

// messageText prefers text but falls back to a media caption so
// "upload + /gpt <question>" works.
func messageText(msg *tgbotapi.Message) string {
	if msg.Text != "" {
		return msg.Text
	}
	return msg.Caption
}

func isSystemMessage(msg *tgbotapi.Message) bool {
	return msg.NewChatMembers != nil ||
		msg.LeftChatMember != nil ||
		msg.PinnedMessage != nil ||
		msg.NewChatTitle != "" ||
		msg.GroupChatCreated ||
		msg.SuperGroupChatCreated
}
