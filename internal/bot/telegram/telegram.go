// Package telegram implements the Telegram front end over the Bot API with
// long polling.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/AchileWeiglet/FinanceConsultant/internal/domain"
)

const (
	apiBase        = "https://api.telegram.org"
	pollTimeout    = 60 * time.Second
	pollRetryDelay = 5 * time.Second

	confirmCallback = "trade:confirm"
	cancelCallback  = "trade:cancel"
)

type processor interface {
	Process(ctx context.Context, userMessage string) *domain.ResponseEnvelope
}

type tradeExecutor interface {
	ExecuteAnalysis(ctx context.Context, analysis *domain.TradingAnalysis) (*domain.TradeResult, error)
}

// Bot long-polls getUpdates, routes authorized messages through the
// selector and drives trade confirmation via an inline keyboard.
type Bot struct {
	token      string
	authChatID int64
	processor  processor
	trader     tradeExecutor
	logger     *zap.Logger
	httpClient *http.Client

	mu      sync.Mutex
	pending *domain.TradingAnalysis
}

func New(token, chatID string, processor processor, trader tradeExecutor, logger *zap.Logger) (*Bot, error) {
	if token == "" {
		return nil, errors.New("telegram bot token is empty")
	}
	authChatID, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid telegram chat id %q", chatID)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Bot{
		token:      token,
		authChatID: authChatID,
		processor:  processor,
		trader:     trader,
		logger:     logger,
		httpClient: &http.Client{Timeout: pollTimeout + 10*time.Second},
	}, nil
}

type update struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
	CallbackQuery *struct {
		ID      string `json:"id"`
		Data    string `json:"data"`
		Message struct {
			Chat struct {
				ID int64 `json:"id"`
			} `json:"chat"`
		} `json:"message"`
	} `json:"callback_query"`
}

type updatesResponse struct {
	Ok          bool     `json:"ok"`
	Result      []update `json:"result"`
	Description string   `json:"description"`
	ErrorCode   int      `json:"error_code"`
}

// Run blocks, polling for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("telegram bot started", zap.Int64("chat_id", b.authChatID))

	b.send(ctx, "🤖 *Bitcoin Trading Assistant* is online.\nAsk about prices, balances or trading decisions.")

	var offset int64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		updates, err := b.getUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			b.logger.Warn("getUpdates failed", zap.Error(err))
			time.Sleep(pollRetryDelay)
			continue
		}

		for _, u := range updates {
			offset = u.UpdateID + 1
			b.handleUpdate(ctx, u)
		}
	}
}

func (b *Bot) getUpdates(ctx context.Context, offset int64) ([]update, error) {
	url := fmt.Sprintf("%s/bot%s/getUpdates?offset=%d&timeout=%d",
		apiBase, b.token, offset, int(pollTimeout.Seconds()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build getUpdates request")
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "getUpdates request failed")
	}
	defer resp.Body.Close()

	var parsed updatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errors.Wrap(err, "failed to decode getUpdates response")
	}
	if !parsed.Ok {
		return nil, errors.Errorf("telegram api error %d: %s", parsed.ErrorCode, parsed.Description)
	}

	return parsed.Result, nil
}

func (b *Bot) handleUpdate(ctx context.Context, u update) {
	switch {
	case u.CallbackQuery != nil:
		if u.CallbackQuery.Message.Chat.ID != b.authChatID {
			b.logger.Warn("callback from unauthorized chat",
				zap.Int64("chat_id", u.CallbackQuery.Message.Chat.ID))
			return
		}
		b.answerCallback(ctx, u.CallbackQuery.ID)
		b.handleCallback(ctx, u.CallbackQuery.Data)

	case u.Message != nil:
		if u.Message.Chat.ID != b.authChatID {
			b.logger.Warn("message from unauthorized chat",
				zap.Int64("chat_id", u.Message.Chat.ID))
			return
		}
		text := strings.TrimSpace(u.Message.Text)
		if text == "" {
			return
		}
		b.handleMessage(ctx, text)
	}
}

func (b *Bot) handleMessage(ctx context.Context, text string) {
	if text == "/start" || text == "/help" {
		text = "help"
	}

	envelope := b.processor.Process(ctx, text)

	if envelope.RequiresTradeConfirmation && envelope.Analysis != nil {
		b.mu.Lock()
		b.pending = envelope.Analysis
		b.mu.Unlock()

		b.sendWithConfirmKeyboard(ctx, fmt.Sprintf("%s\n\n⚠️ Execute simulated *%s* of *%s BTC*?",
			envelope.Message,
			strings.ToUpper(string(envelope.Analysis.Intention)),
			envelope.Analysis.Amount.String()))
		return
	}

	b.send(ctx, envelope.Message)
}

func (b *Bot) handleCallback(ctx context.Context, data string) {
	b.mu.Lock()
	pending := b.pending
	b.pending = nil
	b.mu.Unlock()

	if pending == nil {
		b.send(ctx, "⚠️ No trade is awaiting confirmation.")
		return
	}

	switch data {
	case confirmCallback:
		result, err := b.trader.ExecuteAnalysis(ctx, pending)
		if err != nil {
			b.logger.Error("simulated trade failed", zap.Error(err))
			b.send(ctx, fmt.Sprintf("❌ Trade failed: %v", err))
			return
		}
		b.send(ctx, fmt.Sprintf("✅ Trade executed (%s)\n📋 Order ID: `%s`\n📊 %s %s %s",
			result.Status, result.OrderID, result.Side, result.Quantity.String(), result.Symbol))

	case cancelCallback:
		b.send(ctx, "🚫 Trade cancelled.")

	default:
		b.logger.Warn("unknown callback data", zap.String("data", data))
	}
}

func (b *Bot) send(ctx context.Context, text string) {
	b.sendMessage(ctx, map[string]interface{}{
		"chat_id":    b.authChatID,
		"text":       text,
		"parse_mode": "Markdown",
	})
}

func (b *Bot) sendWithConfirmKeyboard(ctx context.Context, text string) {
	b.sendMessage(ctx, map[string]interface{}{
		"chat_id":    b.authChatID,
		"text":       text,
		"parse_mode": "Markdown",
		"reply_markup": map[string]interface{}{
			"inline_keyboard": [][]map[string]string{{
				{"text": "✅ Execute", "callback_data": confirmCallback},
				{"text": "🚫 Cancel", "callback_data": cancelCallback},
			}},
		},
	})
}

func (b *Bot) sendMessage(ctx context.Context, payload map[string]interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("failed to marshal sendMessage payload", zap.Error(err))
		return
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", apiBase, b.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		b.logger.Error("failed to build sendMessage request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		b.logger.Error("sendMessage failed", zap.Error(err))
		return
	}
	resp.Body.Close()
}

func (b *Bot) answerCallback(ctx context.Context, callbackID string) {
	body, _ := json.Marshal(map[string]string{"callback_query_id": callbackID})

	url := fmt.Sprintf("%s/bot%s/answerCallbackQuery", apiBase, b.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		b.logger.Warn("answerCallbackQuery failed", zap.Error(err))
		return
	}
	resp.Body.Close()
}
