package speech

import (
	"context"
	"net/http"

	"github.com/BaSui01/callkit/llm/providers"
	"github.com/BaSui01/callkit/types"
	"go.uber.org/zap"
)

const elevenLabsName = "elevenlabs"

// ElevenLabsParams ElevenLabs 流式合成请求参数。
type ElevenLabsParams struct {
	APIKey     string
	BaseURL    string
	Model      ElevenLabsModel
	Voice      ElevenLabsVoice
	Text       string
	Stability  float64
	Similarity float64
}

type elevenLabsVoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

type elevenLabsRequest struct {
	Text          string                  `json:"text"`
	ModelID       ElevenLabsModel         `json:"model_id"`
	VoiceSettings elevenLabsVoiceSettings `json:"voice_settings"`
}

// BuildElevenLabsPayload 构建 POST <base>/v1/text-to-speech/<voice_id>/stream 的载荷。
func BuildElevenLabsPayload(p ElevenLabsParams) (*providers.Payload, error) {
	header := make(http.Header)
	header.Set("xi-api-key", p.APIKey)
	header.Set("Content-Type", "application/json")
	body := elevenLabsRequest{
		Text:    p.Text,
		ModelID: p.Model,
		VoiceSettings: elevenLabsVoiceSettings{
			Stability:       p.Stability,
			SimilarityBoost: p.Similarity,
			Style:           0,
			UseSpeakerBoost: true,
		},
	}
	endpoint := providers.JoinURL(p.BaseURL, "/v1/text-to-speech/"+string(p.Voice)+"/stream")
	return providers.JSONPayload(endpoint, header, body)
}

// ElevenLabsProvider 使用 ElevenLabs 流式接口合成语音，响应按块读取后拼接。
type ElevenLabsProvider struct {
	cfg        ElevenLabsConfig
	voice      ElevenLabsVoice
	model      ElevenLabsModel
	stability  float64
	similarity float64
	invoker    *providers.Invoker
}

var _ TTSProvider = (*ElevenLabsProvider)(nil)

// NewElevenLabs 创建 ElevenLabs TTS 服务商。
func NewElevenLabs(cfg ElevenLabsConfig, logger *zap.Logger, opts ...providers.Option) (*ElevenLabsProvider, error) {
	voice, err := ElevenLabsVoices.NormalizeOr(cfg.Voice, DefaultElevenLabsVoice)
	if err != nil {
		return nil, err
	}
	model, err := ElevenLabsModels.NormalizeOr(cfg.Model, DefaultElevenLabsModel)
	if err != nil {
		return nil, err
	}
	stability, err := resolveUnit("stability", nil, cfg.Stability, DefaultStability)
	if err != nil {
		return nil, err
	}
	similarity, err := resolveUnit("similarity", nil, cfg.SimilarityBoost, DefaultSimilarityBoost)
	if err != nil {
		return nil, err
	}
	cfg.BaseURL = cfg.BaseURLOr(ElevenLabsBaseURL)
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ElevenLabsProvider{
		cfg:        cfg,
		voice:      voice,
		model:      model,
		stability:  stability,
		similarity: similarity,
		invoker:    providers.BuildInvoker(cfg.BaseProviderConfig, defaultTimeout, logger.With(zap.String("provider", elevenLabsName)), opts...),
	}, nil
}

func (p *ElevenLabsProvider) Name() string { return elevenLabsName }

func (p *ElevenLabsProvider) Models() []string { return enumValues(ElevenLabsModels) }

func (p *ElevenLabsProvider) ListVoices(context.Context) ([]Voice, error) {
	return listVoices(elevenLabsName, ElevenLabsVoices), nil
}

// Params 校验请求并合并默认值，stability 与 similarity 须在 [0,1]。
func (p *ElevenLabsProvider) Params(req *TTSRequest) (ElevenLabsParams, error) {
	if err := validateText(req); err != nil {
		return ElevenLabsParams{}, err
	}
	voice, err := ElevenLabsVoices.NormalizeOr(req.Voice, p.voice)
	if err != nil {
		return ElevenLabsParams{}, err
	}
	model, err := ElevenLabsModels.NormalizeOr(req.Model, p.model)
	if err != nil {
		return ElevenLabsParams{}, err
	}
	stability, err := resolveUnit("stability", req.Stability, nil, p.stability)
	if err != nil {
		return ElevenLabsParams{}, err
	}
	similarity, err := resolveUnit("similarity", req.Similarity, nil, p.similarity)
	if err != nil {
		return ElevenLabsParams{}, err
	}
	return ElevenLabsParams{
		APIKey:     p.cfg.APIKey,
		BaseURL:    p.cfg.BaseURL,
		Model:      model,
		Voice:      voice,
		Text:       req.Text,
		Stability:  stability,
		Similarity: similarity,
	}, nil
}

func (p *ElevenLabsProvider) Synthesize(ctx context.Context, req *TTSRequest) (*TTSResponse, error) {
	params, err := p.Params(req)
	if err != nil {
		return nil, err
	}
	payload, err := BuildElevenLabsPayload(params)
	if err != nil {
		return nil, types.NewError(types.ErrInvalidArgument, "failed to build request").WithCause(err).WithProvider(elevenLabsName)
	}
	return runSynthesis(ctx, p.invoker, synthesis{
		provider: elevenLabsName,
		model:    string(params.Model),
		voice:    string(params.Voice),
		text:     params.Text,
		payload:  payload,
	})
}

func (p *ElevenLabsProvider) SynthesizeAsync(ctx context.Context, req *TTSRequest) <-chan types.Result[*TTSResponse] {
	return types.Go(ctx, func(ctx context.Context) (*TTSResponse, error) {
		return p.Synthesize(ctx, req)
	})
}

func (p *ElevenLabsProvider) SynthesizeToFile(ctx context.Context, req *TTSRequest, path string) error {
	return synthesizeToFile(ctx, p, req, path)
}
