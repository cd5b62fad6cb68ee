package dto

// ========== Guided Flow 相关 DTO ==========

// FlowRequest flow 操作请求
type FlowRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}

// FlowStepResponse flow 步骤载荷
// Stage ∈ {intro, step1, step2, step3, finished, ended}
type FlowStepResponse struct {
	Stage    string              `json:"stage"`
	Text     string              `json:"text"`
	Finished bool                `json:"finished"`
	Practice *RenderablePractice `json:"practice,omitempty"` // another 分支返回
}
