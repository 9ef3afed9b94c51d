package spoonacular

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// 錯誤內容保留的最大長度
const maxErrorBody = 512

// APIError 搜尋 API 回傳非 2xx
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("recipe search failed with status %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("recipe search failed with status %d", e.StatusCode)
}

// Message 取出 API 錯誤訊息，例如 {"status":"failure","code":402,"message":"..."}
func (e *APIError) Message() string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(e.Body), &body); err == nil && body.Message != "" {
		return body.Message
	}
	return strings.TrimSpace(e.Body)
}

func newAPIError(status int, body []byte) *APIError {
	s := string(body)
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody]
	}
	return &APIError{StatusCode: status, Body: s}
}

// IsAPIError 判斷是否為 API 錯誤並取出狀態碼
func IsAPIError(err error) (int, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, true
	}
	return 0, false
}

// DecodeError 回應不符合預期格式
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode recipe search response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// redact 移除錯誤訊息中 URL 帶的查詢參數（含 apiKey）
func redact(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	u, perr := url.Parse(urlErr.URL)
	if perr != nil {
		return &url.Error{Op: urlErr.Op, URL: "<redacted>", Err: urlErr.Err}
	}
	u.RawQuery = ""
	return &url.Error{Op: urlErr.Op, URL: u.String(), Err: urlErr.Err}
}
