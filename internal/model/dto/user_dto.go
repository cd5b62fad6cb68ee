package dto

// ========== User 相关 DTO ==========

// StartRequest /users/start 请求，来自网关透传的 Telegram 用户信息
type StartRequest struct {
	UserID    int64  `json:"user_id" binding:"required"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
}

// StartResponse 问候载荷
type StartResponse struct {
	Greeting  string `json:"greeting"`
	IsNewUser bool   `json:"is_new_user"`
}

// DailySettingsRequest 每日推送设置
type DailySettingsRequest struct {
	Enabled  *bool   `json:"enabled" binding:"required"`
	Timezone *string `json:"timezone,omitempty"` // IANA 时区覆盖，可空
}

// StatsResponse 用户统计
type StatsResponse struct {
	Points       int      `json:"points"`
	Completions  int64    `json:"completions"`
	JournalCount int64    `json:"journal_count"`
	StreakDays   int      `json:"streak_days"`
	Achievements []string `json:"achievements"` // 已获成就标题
}
