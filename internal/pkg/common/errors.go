package common

import (
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string        `json:"code"`              // 錯誤代碼
	Message string        `json:"message"`           // 錯誤信息
	Stage   string        `json:"stage,omitempty"`   // 失敗的處理階段
	Details string        `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
	Meals   []MealFailure `json:"meals,omitempty"`   // 搜尋失敗的餐點
}

// MealFailure 單一餐點的搜尋失敗
type MealFailure struct {
	Index  int    `json:"index"`
	Status int    `json:"status,omitempty"` // 上游 HTTP 狀態碼
	Error  string `json:"error,omitempty"`  // 僅在開發模式顯示
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap 支援 errors.Is / errors.As
func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is 以錯誤代碼比對，讓預定義錯誤可搭配 errors.Is 使用
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// WithCause 以預定義錯誤為模板附加原始錯誤
func (e *CustomError) WithCause(err error) *CustomError {
	return NewError(e.Code, e.Message, e.Status, err)
}

// Response 轉為 API 錯誤響應
func (e *CustomError) Response(stage string, details string) ErrorResponse {
	return ErrorResponse{
		Code:    e.Code,
		Message: e.Message,
		Stage:   stage,
		Details: details,
	}
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest   = "INVALID_REQUEST"    // 400
	ErrCodeNotFound         = "NOT_FOUND"          // 404
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED" // 405
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"  // 429

	// 服務器錯誤 (5xx)
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
	ErrCodeGatewayTimeout     = "GATEWAY_TIMEOUT"     // 504

	// 管線錯誤
	ErrCodeExtractionFailed = "EXTRACTION_FAILED"
	ErrCodeSynthesisFailed  = "SYNTHESIS_FAILED"
	ErrCodeSearchAPIError   = "SEARCH_API_ERROR"
	ErrCodeSearchDecode     = "SEARCH_DECODE_ERROR"
	ErrCodeFormatFailed     = "FORMAT_FAILED"
)

// 預定義錯誤
var (
	// 客戶端錯誤
	ErrInvalidRequest   = NewError(ErrCodeInvalidRequest, "無效的請求", http.StatusBadRequest, nil)
	ErrNotFound         = NewError(ErrCodeNotFound, "資源不存在", http.StatusNotFound, nil)
	ErrMethodNotAllowed = NewError(ErrCodeMethodNotAllowed, "不支持的請求方法", http.StatusMethodNotAllowed, nil)
	ErrTooManyRequests  = NewError(ErrCodeTooManyRequests, "請求過於頻繁", http.StatusTooManyRequests, nil)

	// 服務器錯誤
	ErrInternalError      = NewError(ErrCodeInternalError, "服務器內部錯誤", http.StatusInternalServerError, nil)
	ErrServiceUnavailable = NewError(ErrCodeServiceUnavailable, "服務暫時不可用", http.StatusServiceUnavailable, nil)
	ErrGatewayTimeout     = NewError(ErrCodeGatewayTimeout, "網關超時", http.StatusGatewayTimeout, nil)

	// 業務錯誤
	ErrExtractionFailed = NewError(ErrCodeExtractionFailed, "餐點條件擷取失敗", http.StatusBadGateway, nil)
	ErrSynthesisFailed  = NewError(ErrCodeSynthesisFailed, "搜尋請求產生失敗", http.StatusInternalServerError, nil)
	ErrSearchAPI        = NewError(ErrCodeSearchAPIError, "食譜搜尋 API 錯誤", http.StatusBadGateway, nil)
	ErrSearchDecode     = NewError(ErrCodeSearchDecode, "食譜搜尋回應格式不符", http.StatusBadGateway, nil)
	ErrFormatFailed     = NewError(ErrCodeFormatFailed, "Markdown 轉換失敗", http.StatusBadGateway, nil)
)
