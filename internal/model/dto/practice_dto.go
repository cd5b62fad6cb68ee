package dto

// ========== Practice / State 相关 DTO ==========

// StateSelectRequest 状态选择请求
type StateSelectRequest struct {
	UserID int64  `json:"user_id" binding:"required"`
	State  string `json:"state" binding:"required"`
}

// RenderablePractice 可直接渲染的练习载荷
type RenderablePractice struct {
	ID           int64    `json:"id"`
	CategoryCode string   `json:"category_code"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Steps        []string `json:"steps"`
	TimerSeconds *int     `json:"timer_seconds,omitempty"`
	Text         string   `json:"text"` // HTML 渲染结果
}

// StateSelectResponse 状态选择响应，kind 区分载荷类型
// kind ∈ {practice, flow, rest, empty}
type StateSelectResponse struct {
	Kind     string              `json:"kind"`
	Practice *RenderablePractice `json:"practice,omitempty"`
	Flow     *FlowStepResponse   `json:"flow,omitempty"`
	Message  string              `json:"message,omitempty"`
}

// CompleteRequest 练习完成请求
type CompleteRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}

// CompleteResponse 练习完成响应
type CompleteResponse struct {
	PointsAwarded int      `json:"points_awarded"`
	TotalPoints   int      `json:"total_points"`
	StreakDays    int      `json:"streak_days"`
	NewBadges     []string `json:"new_badges"` // 本次新获成就标题
	Message       string   `json:"message"`
}

// CategoryResponse 分类
type CategoryResponse struct {
	Code  string `json:"code"`
	Title string `json:"title"`
}
