package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Notifier posts messages to a Telegram chat through the bot API.
// Delivery is best-effort: callers treat a returned error as a logging
// concern, never as an operation failure.
type Notifier struct {
	token   string
	chatID  string
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

func New(token, chatID string, log *zap.Logger) *Notifier {
	return &Notifier{
		token:   token,
		chatID:  chatID,
		baseURL: "https://api.telegram.org",
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

func (n *Notifier) SendMessage(ctx context.Context, text string) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.token)
	body := map[string]string{
		"chat_id": n.chatID,
		"text":    text,
	}
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.log.Warn("telegram send failed", zap.Error(err))
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		n.log.Warn("telegram send rejected", zap.String("status", resp.Status))
		return fmt.Errorf("telegram send failed: %s", resp.Status)
	}
	return nil
}
