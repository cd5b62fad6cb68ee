package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 用户与鉴权相关错误。
var (
	Unauthorized  = Definition{Code: "UNAUTHORIZED", Message: "Unauthorized"}
	InvalidUserID = Definition{Code: "INVALID_USER_ID", Message: "Invalid user ID format"}
	UserNotFound  = Definition{Code: "USER_NOT_FOUND", Message: "User not found"}
)

// 练习匹配与内容库错误。
var (
	NoContentAvailable = Definition{Code: "NO_CONTENT_AVAILABLE", Message: "No active practices available"}
	PracticeNotFound   = Definition{Code: "PRACTICE_NOT_FOUND", Message: "Practice not found"}
	CategoryNotFound   = Definition{Code: "CATEGORY_NOT_FOUND", Message: "Category not found"}
	InvalidState       = Definition{Code: "INVALID_STATE", Message: "Unknown emotional state"}
	InvalidTimezone    = Definition{Code: "INVALID_TIMEZONE", Message: "Unknown IANA timezone"}
)

// 引导练习会话错误。
var (
	SessionNotFound = Definition{Code: "SESSION_NOT_FOUND", Message: "No active guided flow session"}
)

// 清单模块错误。
var (
	ChecklistItemNotFound = Definition{Code: "CHECKLIST_ITEM_NOT_FOUND", Message: "Checklist item not found"}
)

// 每日推送错误。
var (
	DeliveryFailed = Definition{Code: "DELIVERY_FAILED", Message: "Failed to deliver message"}
)

// 限流错误。
var (
	TooManyRequests = Definition{Code: "TOO_MANY_REQUESTS", Message: "Too many requests, please retry later"}
)

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	Unauthorized.Code:          Unauthorized,
	InvalidUserID.Code:         InvalidUserID,
	UserNotFound.Code:          UserNotFound,
	NoContentAvailable.Code:    NoContentAvailable,
	PracticeNotFound.Code:      PracticeNotFound,
	CategoryNotFound.Code:      CategoryNotFound,
	InvalidState.Code:          InvalidState,
	InvalidTimezone.Code:       InvalidTimezone,
	SessionNotFound.Code:       SessionNotFound,
	ChecklistItemNotFound.Code: ChecklistItemNotFound,
	DeliveryFailed.Code:        DeliveryFailed,
	TooManyRequests.Code:       TooManyRequests,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}

// SkipMessageError 表示消费者应当 Ack 并跳过该消息，而不是重新入队。
type SkipMessageError struct {
	Reason string
}

func (e *SkipMessageError) Error() string {
	return e.Reason
}
