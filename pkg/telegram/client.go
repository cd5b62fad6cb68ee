package telegram

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"Opora/config"
	"Opora/pkg/logger"
)

// Client Telegram 投递客户端接口
type Client interface {
	// SendMessage 向指定 chat 发送一条文本消息
	// chatID: Telegram chat id（私聊场景等于用户 id）
	// text: 消息正文，HTML parse mode
	SendMessage(ctx context.Context, chatID int64, text string) error
}

var (
	tgClient Client
	tgOnce   sync.Once
	tgErr    error
)

// Init 初始化 Telegram 客户端
func Init() error {
	tgOnce.Do(func() {
		cfg := config.Cfg

		switch cfg.TelegramProvider {
		case "botapi":
			tgClient, tgErr = NewBotAPIClient()
		case "mock":
			tgClient = NewMockClient()
		default:
			tgErr = fmt.Errorf("unsupported telegram provider: %s", cfg.TelegramProvider)
		}

		if tgErr != nil {
			logger.Logger.Error("Failed to initialize Telegram client", zap.Error(tgErr))
			return
		}

		logger.Logger.Info("Telegram client initialized successfully",
			zap.String("provider", cfg.TelegramProvider),
		)
	})

	return tgErr
}

func GetClient() Client {
	if tgClient == nil {
		panic("Telegram client not initialized, call telegram.Init() first")
	}
	return tgClient
}

func SendMessage(ctx context.Context, chatID int64, text string) error {
	return GetClient().SendMessage(ctx, chatID, text)
}
