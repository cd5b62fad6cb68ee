package dto

// ========== Journal / Checklist / Minigame 相关 DTO ==========

// JournalRequest 日记写入请求
type JournalRequest struct {
	UserID int64   `json:"user_id" binding:"required"`
	State  string  `json:"state" binding:"required"`
	Note   *string `json:"note,omitempty"`
}

// JournalResponse 日记写入响应
type JournalResponse struct {
	Message       string              `json:"message"`
	PointsAwarded int                 `json:"points_awarded"`
	NewBadges     []string            `json:"new_badges"`
	Suggestion    *RenderablePractice `json:"suggestion,omitempty"`
}

// ChecklistResponse 清单及勾选状态
type ChecklistResponse struct {
	Code  string              `json:"code"`
	Title string              `json:"title"`
	Items []ChecklistItemView `json:"items"`
	Text  string              `json:"text"` // HTML 渲染结果
}

// ChecklistItemView 单个条目视图
type ChecklistItemView struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// ToggleRequest 勾选切换请求
type ToggleRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}

// MinigameRequest 情景小游戏作答请求
type MinigameRequest struct {
	UserID int64  `json:"user_id" binding:"required"`
	Choice string `json:"choice" binding:"required"`
}

// MinigameResponse 作答结果
type MinigameResponse struct {
	Correct       bool   `json:"correct"`
	PointsAwarded int    `json:"points_awarded"`
	Message       string `json:"message"`
}
