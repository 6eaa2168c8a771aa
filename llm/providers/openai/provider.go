package openai

import (
	"context"
	"strings"
	"time"

	"github.com/BaSui01/callkit/llm"
	"github.com/BaSui01/callkit/llm/providers"
	"github.com/BaSui01/callkit/types"
	"go.uber.org/zap"
)

const providerName = "openai"

// Config OpenAI 聊天配置。Model 为模型选择器（成员名称或取值），为空使用 DefaultModel。
type Config struct {
	providers.BaseProviderConfig `yaml:",inline"`

	Organization string   `json:"organization,omitempty" yaml:"organization,omitempty"`
	Model        string   `json:"model,omitempty" yaml:"model,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	SystemPrompt string   `json:"system_prompt,omitempty" yaml:"system_prompt,omitempty"`
}

// Provider 实现 llm.Provider。
type Provider struct {
	cfg         Config
	model       Model
	temperature float64
	invoker     *providers.Invoker
	logger      *zap.Logger
}

var _ llm.Provider = (*Provider)(nil)

// New 创建 OpenAI Provider。配置中的模型名称非法时返回 INVALID_ARGUMENT。
func New(cfg Config, logger *zap.Logger, opts ...providers.Option) (*Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	model, err := Models.NormalizeOr(cfg.Model, DefaultModel)
	if err != nil {
		return nil, err
	}
	temperature := DefaultTemperature
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}
	if temperature < 0 || temperature > 2 {
		return nil, types.Errorf(types.ErrInvalidArgument, "temperature must be between 0 and 2, got %v", temperature)
	}
	if strings.TrimSpace(cfg.SystemPrompt) == "" {
		cfg.SystemPrompt = DefaultSystemPrompt
	}
	cfg.BaseURL = cfg.BaseURLOr(DefaultBaseURL)

	logger = logger.With(zap.String("provider", providerName))
	return &Provider{
		cfg:         cfg,
		model:       model,
		temperature: temperature,
		invoker:     providers.BuildInvoker(cfg.BaseProviderConfig, 60*time.Second, logger, opts...),
		logger:      logger,
	}, nil
}

func (p *Provider) Name() string { return providerName }

func (p *Provider) Models() []string {
	values := Models.Values()
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// Params 将请求与默认值合并为 ChatParams，不做网络访问。
func (p *Provider) Params(req *llm.ChatRequest) (ChatParams, error) {
	if err := req.Validate(); err != nil {
		return ChatParams{}, err
	}
	model, err := Models.NormalizeOr(req.Model, p.model)
	if err != nil {
		return ChatParams{}, err
	}
	temperature := p.temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	system := p.cfg.SystemPrompt
	if req.SystemPrompt != "" {
		system = req.SystemPrompt
	}
	return ChatParams{
		APIKey:       p.cfg.APIKey,
		BaseURL:      p.cfg.BaseURL,
		Organization: p.cfg.Organization,
		Model:        model,
		Temperature:  temperature,
		SystemPrompt: system,
		Text:         req.Text,
		MaxTokens:    req.MaxTokens,
	}, nil
}

// Chat 发送单轮对话并返回第一条候选回复。
func (p *Provider) Chat(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	params, err := p.Params(req)
	if err != nil {
		return nil, err
	}
	payload, err := BuildPayload(params)
	if err != nil {
		return nil, types.NewError(types.ErrInvalidArgument, "failed to build request").
			WithCause(err).
			WithProvider(providerName)
	}

	body, err := p.invoker.Post(ctx, providers.Call{
		Provider:  providerName,
		Operation: "chat",
		Model:     string(params.Model),
	}, payload)
	if err != nil {
		return nil, err
	}

	var out chatResponse
	if err := providers.DecodeJSON(providerName, body, &out); err != nil {
		return nil, err
	}
	if len(out.Choices) == 0 {
		return nil, types.NewError(types.ErrDecode, "response contains no choices").WithProvider(providerName)
	}

	resp := &llm.ChatResponse{
		ID:           out.ID,
		Provider:     providerName,
		Model:        out.Model,
		Content:      out.Choices[0].Message.Content,
		FinishReason: out.Choices[0].FinishReason,
		CreatedAt:    time.Now(),
	}
	if resp.Model == "" {
		resp.Model = string(params.Model)
	}
	if out.Created > 0 {
		resp.CreatedAt = time.Unix(out.Created, 0)
	}
	if out.Usage != nil {
		resp.Usage = *out.Usage
		p.invoker.Recorder().RecordTokens(providerName, string(params.Model), out.Usage.PromptTokens, out.Usage.CompletionTokens)
	}
	return resp, nil
}

// ChatAsync 在独立 goroutine 中执行 Chat。
func (p *Provider) ChatAsync(ctx context.Context, req *llm.ChatRequest) <-chan types.Result[*llm.ChatResponse] {
	return types.Go(ctx, func(ctx context.Context) (*llm.ChatResponse, error) {
		return p.Chat(ctx, req)
	})
}
