package speech

import (
	"context"

	"github.com/BaSui01/callkit/llm/providers"
	"github.com/BaSui01/callkit/types"
	"go.uber.org/zap"
)

const openAIName = "openai"

// OpenAISpeechParams OpenAI /v1/audio/speech 请求参数。
type OpenAISpeechParams struct {
	APIKey  string
	BaseURL string
	Model   OpenAITTSModel
	Voice   OpenAIVoice
	Text    string
}

// BuildOpenAISpeechPayload 构建 POST <base>/v1/audio/speech 的载荷。
func BuildOpenAISpeechPayload(p OpenAISpeechParams) (*providers.Payload, error) {
	body := struct {
		Model OpenAITTSModel `json:"model"`
		Voice OpenAIVoice    `json:"voice"`
		Input string         `json:"input"`
	}{Model: p.Model, Voice: p.Voice, Input: p.Text}
	return providers.JSONPayload(providers.JoinURL(p.BaseURL, "/v1/audio/speech"), providers.BearerHeader(p.APIKey), body)
}

// OpenAITTSProvider 使用 OpenAI TTS 合成语音。
type OpenAITTSProvider struct {
	cfg     OpenAITTSConfig
	voice   OpenAIVoice
	model   OpenAITTSModel
	invoker *providers.Invoker
}

var _ TTSProvider = (*OpenAITTSProvider)(nil)

// NewOpenAITTS 创建 OpenAI TTS 服务商。
func NewOpenAITTS(cfg OpenAITTSConfig, logger *zap.Logger, opts ...providers.Option) (*OpenAITTSProvider, error) {
	voice, err := OpenAITTSVoices.NormalizeOr(cfg.Voice, DefaultOpenAIVoice)
	if err != nil {
		return nil, err
	}
	model, err := OpenAITTSModels.NormalizeOr(cfg.Model, DefaultOpenAITTSModel)
	if err != nil {
		return nil, err
	}
	cfg.BaseURL = cfg.BaseURLOr(OpenAIBaseURL)
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenAITTSProvider{
		cfg:     cfg,
		voice:   voice,
		model:   model,
		invoker: providers.BuildInvoker(cfg.BaseProviderConfig, defaultTimeout, logger.With(zap.String("provider", openAIName)), opts...),
	}, nil
}

func (p *OpenAITTSProvider) Name() string { return openAIName }

func (p *OpenAITTSProvider) Models() []string { return enumValues(OpenAITTSModels) }

func (p *OpenAITTSProvider) ListVoices(context.Context) ([]Voice, error) {
	return listVoices(openAIName, OpenAITTSVoices), nil
}

func (p *OpenAITTSProvider) Params(req *TTSRequest) (OpenAISpeechParams, error) {
	if err := validateText(req); err != nil {
		return OpenAISpeechParams{}, err
	}
	voice, err := OpenAITTSVoices.NormalizeOr(req.Voice, p.voice)
	if err != nil {
		return OpenAISpeechParams{}, err
	}
	model, err := OpenAITTSModels.NormalizeOr(req.Model, p.model)
	if err != nil {
		return OpenAISpeechParams{}, err
	}
	return OpenAISpeechParams{
		APIKey:  p.cfg.APIKey,
		BaseURL: p.cfg.BaseURL,
		Model:   model,
		Voice:   voice,
		Text:    req.Text,
	}, nil
}

func (p *OpenAITTSProvider) Synthesize(ctx context.Context, req *TTSRequest) (*TTSResponse, error) {
	params, err := p.Params(req)
	if err != nil {
		return nil, err
	}
	payload, err := BuildOpenAISpeechPayload(params)
	if err != nil {
		return nil, types.NewError(types.ErrInvalidArgument, "failed to build request").WithCause(err).WithProvider(openAIName)
	}
	return runSynthesis(ctx, p.invoker, synthesis{
		provider: openAIName,
		model:    string(params.Model),
		voice:    string(params.Voice),
		text:     params.Text,
		payload:  payload,
	})
}

func (p *OpenAITTSProvider) SynthesizeAsync(ctx context.Context, req *TTSRequest) <-chan types.Result[*TTSResponse] {
	return types.Go(ctx, func(ctx context.Context) (*TTSResponse, error) {
		return p.Synthesize(ctx, req)
	})
}

func (p *OpenAITTSProvider) SynthesizeToFile(ctx context.Context, req *TTSRequest, path string) error {
	return synthesizeToFile(ctx, p, req, path)
}
