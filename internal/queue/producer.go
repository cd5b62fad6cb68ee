package queue

import (
	"Opora/internal/model"
	"Opora/internal/service"
	"Opora/storage/mq"
)

// PublishDailyPractice 发布每日练习批次消息
func PublishDailyPractice(msg model.DailyPracticeMessage) error {
	return mq.PublishMessage(service.DailyExchange, service.DailyRoutingKey, msg)
}
