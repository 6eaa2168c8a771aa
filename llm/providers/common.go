package providers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/BaSui01/callkit/types"
)

// MapHTTPError 将 HTTP 状态码映射为带有合适重试标记的 types.Error
// 这是所有服务商共用的错误映射函数；Retryable 仅作提示，本库不做重试
func MapHTTPError(status int, msg string, provider string) *types.Error {
	if msg == "" {
		msg = http.StatusText(status)
	}
	e := &types.Error{
		Message:    msg,
		HTTPStatus: status,
		Provider:   provider,
	}
	switch status {
	case http.StatusUnauthorized:
		e.Code = types.ErrUnauthorized
	case http.StatusForbidden:
		e.Code = types.ErrForbidden
	case http.StatusNotFound:
		e.Code = types.ErrNotFound
	case http.StatusPaymentRequired:
		e.Code = types.ErrQuotaExceeded
	case http.StatusRequestTimeout:
		e.Code = types.ErrUpstreamTimeout
		e.Retryable = true
	case http.StatusTooManyRequests:
		e.Code = types.ErrRateLimited
		e.Retryable = true
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		// 检查配额/信用关键字
		if mentionsQuota(msg) {
			e.Code = types.ErrQuotaExceeded
		} else {
			e.Code = types.ErrInvalidRequest
		}
	case http.StatusGatewayTimeout:
		e.Code = types.ErrUpstreamTimeout
		e.Retryable = true
	case http.StatusServiceUnavailable, http.StatusBadGateway:
		e.Code = types.ErrUpstreamError
		e.Retryable = true
	case 529: // Model overloaded (used by some providers)
		e.Code = types.ErrModelOverloaded
		e.Retryable = true
	default:
		e.Code = types.ErrUpstreamError
		e.Retryable = status >= 500
	}
	return e
}

func mentionsQuota(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "quota") ||
		strings.Contains(lower, "credit") ||
		strings.Contains(lower, "limit")
}

// ReadErrorMessage 读取响应体中的错误消息
// 依次尝试 {"error":{"message"}}、{"err_msg"}、{"detail":{"message"}}、{"detail":"..."}，
// 均失败则回退到原始文本
func ReadErrorMessage(body io.Reader) string {
	data, err := io.ReadAll(body)
	if err != nil {
		return "failed to read error response"
	}

	var errResp struct {
		Error json.RawMessage `json:"error"`
		// Deepgram
		ErrMsg  string `json:"err_msg"`
		ErrCode string `json:"err_code"`
		// ElevenLabs
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &errResp); err == nil {
		if msg := openAIError(errResp.Error); msg != "" {
			return msg
		}
		if errResp.ErrMsg != "" {
			if errResp.ErrCode != "" {
				return fmt.Sprintf("%s (code: %s)", errResp.ErrMsg, errResp.ErrCode)
			}
			return errResp.ErrMsg
		}
		if msg := detailError(errResp.Detail); msg != "" {
			return msg
		}
	}

	// 回退到原始文本
	return strings.TrimSpace(string(data))
}

func openAIError(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var obj struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		if obj.Type != "" {
			return fmt.Sprintf("%s (type: %s)", obj.Message, obj.Type)
		}
		return obj.Message
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}

func detailError(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var obj struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		if obj.Status != "" {
			return fmt.Sprintf("%s (status: %s)", obj.Message, obj.Status)
		}
		return obj.Message
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}

// DecodeJSON 解码服务商响应，失败时返回 DECODE_ERROR
func DecodeJSON(provider string, data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return types.Errorf(types.ErrDecode, "invalid response body").
			WithCause(err).
			WithProvider(provider)
	}
	return nil
}

// BearerHeader 返回 Bearer token 认证与 JSON 内容类型的请求头
func BearerHeader(apiKey string) http.Header {
	h := make(http.Header)
	h.Set("Authorization", "Bearer "+apiKey)
	h.Set("Content-Type", "application/json")
	return h
}

// TokenHeader 返回 Deepgram 风格的 Token 认证请求头
func TokenHeader(apiKey, contentType string) http.Header {
	h := make(http.Header)
	h.Set("Authorization", "Token "+apiKey)
	h.Set("Content-Type", contentType)
	return h
}

// JoinURL 拼接基础 URL 与路径
func JoinURL(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// SafeCloseBody 安全关闭 HTTP 响应体并忽略错误
func SafeCloseBody(body io.ReadCloser) {
	if body != nil {
		_ = body.Close()
	}
}
