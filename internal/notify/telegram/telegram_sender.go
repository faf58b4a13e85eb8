package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"flyerwatch/internal/config"
	"flyerwatch/internal/domain"
	"flyerwatch/internal/notify"
	"flyerwatch/internal/port"
)

type telegramSender struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewTelegramSender creates a Bot API backed NotificationSender. The user id
// inside a batch is the Telegram chat id.
func NewTelegramSender(cfg *config.TelegramConfig) (port.NotificationSender, error) {
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("telegram: bot_token is required")
	}
	timeout := cfg.SendTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &telegramSender{
		client:  &http.Client{Timeout: timeout},
		baseURL: cfg.APIBaseURL,
		token:   cfg.BotToken,
	}, nil
}

type sendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (s *telegramSender) Send(ctx context.Context, batch domain.NotificationBatch) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID: batch.UserID,
		Text:   notify.RenderText(batch),
	})
	if err != nil {
		return fmt.Errorf("telegram: marshal: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.baseURL, s.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: send: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fmt.Errorf("telegram: read response: %w", err)
	}
	var parsed sendMessageResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("telegram: decode response (status %d): %w", resp.StatusCode, err)
	}
	if !parsed.OK {
		return fmt.Errorf("telegram: sendMessage to %d failed: %s", batch.UserID, parsed.Description)
	}
	return nil
}
