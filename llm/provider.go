package llm

import (
	"context"
	"strings"
	"time"

	"github.com/BaSui01/callkit/types"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest 单轮聊天请求。
// Model 为模型选择器：枚举成员或大小写不敏感的成员名称，nil 使用服务商默认值。
type ChatRequest struct {
	Text         string   `json:"text"`
	Model        any      `json:"model,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
	SystemPrompt string   `json:"system_prompt,omitempty"`
	MaxTokens    int      `json:"max_tokens,omitempty"`
}

// Validate 在任何网络访问之前检查请求。
func (r *ChatRequest) Validate() error {
	if r == nil || strings.TrimSpace(r.Text) == "" {
		return types.NewError(types.ErrInvalidArgument, "text must not be empty")
	}
	if r.Temperature != nil && (*r.Temperature < 0 || *r.Temperature > 2) {
		return types.Errorf(types.ErrInvalidArgument, "temperature must be between 0 and 2, got %v", *r.Temperature)
	}
	if r.MaxTokens < 0 {
		return types.Errorf(types.ErrInvalidArgument, "max_tokens must not be negative, got %d", r.MaxTokens)
	}
	return nil
}

type ChatUsage struct {
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`
}

type ChatResponse struct {
	ID           string    `json:"id,omitempty"`
	Provider     string    `json:"provider,omitempty"`
	Model        string    `json:"model"`
	Content      string    `json:"content"`
	FinishReason string    `json:"finish_reason,omitempty"`
	Usage        ChatUsage `json:"usage,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// Provider 定义统一的聊天补全接口。每次 Chat 恰好发起一次 HTTP 请求。
type Provider interface {
	// Name 返回 Provider 的唯一标识
	Name() string

	// Models 返回支持的模型取值
	Models() []string

	// Chat 发起同步聊天请求
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// ChatAsync 在独立 goroutine 中执行 Chat，结果通道恰好投递一次后关闭
	ChatAsync(ctx context.Context, req *ChatRequest) <-chan types.Result[*ChatResponse]
}

// ChatText 以默认参数发送 text 并只返回回复内容。
func ChatText(ctx context.Context, p Provider, text string) (string, error) {
	resp, err := p.Chat(ctx, &ChatRequest{Text: text})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// Float 返回 v 的指针，便于设置 Temperature 等可选参数。
func Float(v float64) *float64 {
	return &v
}
