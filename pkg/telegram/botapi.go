package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"Opora/config"
)

// BotAPIClient 通过 Bot API HTTP 接口投递消息
type BotAPIClient struct {
	httpClient *client.Client
	apiBase    string
	token      string
}

type sendMessageRequest struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

func NewBotAPIClient() (*BotAPIClient, error) {
	cfg := config.Cfg

	if cfg.TelegramBotToken == "" {
		return nil, fmt.Errorf("telegram bot token is empty")
	}

	c, err := client.NewClient(
		client.WithDialTimeout(5*time.Second),
		client.WithClientReadTimeout(10*time.Second),
		client.WithWriteTimeout(10*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http client: %w", err)
	}

	return &BotAPIClient{
		httpClient: c,
		apiBase:    cfg.TelegramAPIBase,
		token:      cfg.TelegramBotToken,
	}, nil
}

func (c *BotAPIClient) SendMessage(ctx context.Context, chatID int64, text string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal sendMessage request: %w", err)
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer protocol.ReleaseRequest(req)
	defer protocol.ReleaseResponse(resp)

	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(fmt.Sprintf("%s/bot%s/sendMessage", c.apiBase, c.token))
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.SetBody(body)

	if err := c.httpClient.Do(ctx, req, resp); err != nil {
		return fmt.Errorf("failed to call bot api: %w", err)
	}

	var apiResp sendMessageResponse
	if err := json.Unmarshal(resp.Body(), &apiResp); err != nil {
		return fmt.Errorf("failed to decode bot api response (status %d): %w", resp.StatusCode(), err)
	}

	if !apiResp.OK {
		return fmt.Errorf("bot api rejected message: code=%d description=%s", apiResp.ErrorCode, apiResp.Description)
	}

	return nil
}
