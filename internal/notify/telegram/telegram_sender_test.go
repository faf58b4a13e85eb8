package telegram_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flyerwatch/internal/config"
	"flyerwatch/internal/domain"
	"flyerwatch/internal/notify/telegram"
)

func testBatch() domain.NotificationBatch {
	return domain.NotificationBatch{
		UserID: 42,
		ShopUpdates: []domain.FlyerUpdate{{
			FileID:   "billa-24",
			ShopName: "Billa",
			State:    domain.ValidityValid,
		}},
	}
}

func TestTelegramSender_Send(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	sender, err := telegram.NewTelegramSender(&config.TelegramConfig{
		BotToken:   "123:abc",
		APIBaseURL: srv.URL,
	})
	require.NoError(t, err)

	err = sender.Send(context.Background(), testBatch())
	require.NoError(t, err)

	assert.Equal(t, "/bot123:abc/sendMessage", gotPath)
	assert.Equal(t, float64(42), gotBody["chat_id"])
	assert.Contains(t, gotBody["text"], "Billa")
}

func TestTelegramSender_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer srv.Close()

	sender, err := telegram.NewTelegramSender(&config.TelegramConfig{
		BotToken:   "123:abc",
		APIBaseURL: srv.URL,
	})
	require.NoError(t, err)

	err = sender.Send(context.Background(), testBatch())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestTelegramSender_RequiresToken(t *testing.T) {
	_, err := telegram.NewTelegramSender(&config.TelegramConfig{})
	assert.Error(t, err)
}
