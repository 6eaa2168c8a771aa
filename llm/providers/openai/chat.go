package openai

import (
	"github.com/BaSui01/callkit/llm"
	"github.com/BaSui01/callkit/llm/providers"
)

const chatCompletionsPath = "/v1/chat/completions"

// ChatParams 是构建一次聊天请求所需的全部已归一化参数。
type ChatParams struct {
	APIKey       string
	BaseURL      string
	Organization string
	Model        Model
	Temperature  float64
	SystemPrompt string
	Text         string
	MaxTokens    int
}

type chatRequest struct {
	Model       Model         `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []llm.Message `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Created int64  `json:"created"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      llm.Message `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage *llm.ChatUsage `json:"usage,omitempty"`
}

// BuildPayload 构建聊天补全请求载荷。
func BuildPayload(p ChatParams) (*providers.Payload, error) {
	header := providers.BearerHeader(p.APIKey)
	if p.Organization != "" {
		header.Set("OpenAI-Organization", p.Organization)
	}
	body := chatRequest{
		Model:       p.Model,
		Temperature: p.Temperature,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: p.SystemPrompt},
			{Role: llm.RoleUser, Content: p.Text},
		},
		MaxTokens: p.MaxTokens,
	}
	return providers.JSONPayload(providers.JoinURL(p.BaseURL, chatCompletionsPath), header, body)
}
