package model

// DailyPracticeMessage 每日练习批次消息，scheduler 发布，worker 消费
type DailyPracticeMessage struct {
	MessageID  string  `json:"message_id"` // snowflake，幂等去重键
	BatchID    string  `json:"batch_id"`   // uuid，贯穿日志追踪
	Date       string  `json:"date"`       // YYYY-MM-DD，调度日
	PracticeID int64   `json:"practice_id"`
	UserIDs    []int64 `json:"user_ids"`
}
