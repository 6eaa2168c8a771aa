package speech

import (
	"context"
	"fmt"
	"net/url"

	"github.com/BaSui01/callkit/llm/providers"
	"github.com/BaSui01/callkit/types"
	"go.uber.org/zap"
)

const deepgramName = "deepgram"

// DeepgramSpeakParams Deepgram /v1/speak 请求参数。
type DeepgramSpeakParams struct {
	APIKey  string
	BaseURL string
	Model   DeepgramTTSModel
	Voice   DeepgramVoice
	Text    string
}

// BuildDeepgramSpeakPayload 构建 POST <base>/v1/speak?model=<model>-<voice>-en 的载荷。
func BuildDeepgramSpeakPayload(p DeepgramSpeakParams) (*providers.Payload, error) {
	endpoint := fmt.Sprintf("%s?model=%s", providers.JoinURL(p.BaseURL, "/v1/speak"),
		url.QueryEscape(fmt.Sprintf("%s-%s-en", p.Model, p.Voice)))
	body := struct {
		Text string `json:"text"`
	}{Text: p.Text}
	return providers.JSONPayload(endpoint, providers.TokenHeader(p.APIKey, "application/json"), body)
}

// DeepgramTTSProvider 使用 Deepgram Aura 合成语音。
type DeepgramTTSProvider struct {
	cfg     DeepgramTTSConfig
	voice   DeepgramVoice
	model   DeepgramTTSModel
	invoker *providers.Invoker
}

var _ TTSProvider = (*DeepgramTTSProvider)(nil)

// NewDeepgramTTS 创建 Deepgram TTS 服务商。配置中的选择器非法时返回 INVALID_ARGUMENT。
func NewDeepgramTTS(cfg DeepgramTTSConfig, logger *zap.Logger, opts ...providers.Option) (*DeepgramTTSProvider, error) {
	voice, err := DeepgramTTSVoices.NormalizeOr(cfg.Voice, DefaultDeepgramVoice)
	if err != nil {
		return nil, err
	}
	model, err := DeepgramTTSModels.NormalizeOr(cfg.Model, DefaultDeepgramTTSModel)
	if err != nil {
		return nil, err
	}
	cfg.BaseURL = cfg.BaseURLOr(DeepgramBaseURL)
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeepgramTTSProvider{
		cfg:     cfg,
		voice:   voice,
		model:   model,
		invoker: providers.BuildInvoker(cfg.BaseProviderConfig, defaultTimeout, logger.With(zap.String("provider", deepgramName)), opts...),
	}, nil
}

func (p *DeepgramTTSProvider) Name() string { return deepgramName }

func (p *DeepgramTTSProvider) Models() []string { return enumValues(DeepgramTTSModels) }

func (p *DeepgramTTSProvider) ListVoices(context.Context) ([]Voice, error) {
	return listVoices(deepgramName, DeepgramTTSVoices), nil
}

// Params 校验请求并合并默认值。
func (p *DeepgramTTSProvider) Params(req *TTSRequest) (DeepgramSpeakParams, error) {
	if err := validateText(req); err != nil {
		return DeepgramSpeakParams{}, err
	}
	voice, err := DeepgramTTSVoices.NormalizeOr(req.Voice, p.voice)
	if err != nil {
		return DeepgramSpeakParams{}, err
	}
	model, err := DeepgramTTSModels.NormalizeOr(req.Model, p.model)
	if err != nil {
		return DeepgramSpeakParams{}, err
	}
	return DeepgramSpeakParams{
		APIKey:  p.cfg.APIKey,
		BaseURL: p.cfg.BaseURL,
		Model:   model,
		Voice:   voice,
		Text:    req.Text,
	}, nil
}

// Synthesize 返回 mp3 音频。
func (p *DeepgramTTSProvider) Synthesize(ctx context.Context, req *TTSRequest) (*TTSResponse, error) {
	params, err := p.Params(req)
	if err != nil {
		return nil, err
	}
	payload, err := BuildDeepgramSpeakPayload(params)
	if err != nil {
		return nil, types.NewError(types.ErrInvalidArgument, "failed to build request").WithCause(err).WithProvider(deepgramName)
	}
	return runSynthesis(ctx, p.invoker, synthesis{
		provider: deepgramName,
		model:    string(params.Model),
		voice:    string(params.Voice),
		text:     params.Text,
		payload:  payload,
	})
}

func (p *DeepgramTTSProvider) SynthesizeAsync(ctx context.Context, req *TTSRequest) <-chan types.Result[*TTSResponse] {
	return types.Go(ctx, func(ctx context.Context) (*TTSResponse, error) {
		return p.Synthesize(ctx, req)
	})
}

func (p *DeepgramTTSProvider) SynthesizeToFile(ctx context.Context, req *TTSRequest, path string) error {
	return synthesizeToFile(ctx, p, req, path)
}
