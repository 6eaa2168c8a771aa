package speech

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/BaSui01/callkit/llm/providers"
	"github.com/BaSui01/callkit/types"
	"go.uber.org/zap"
)

// DeepgramListenParams Deepgram /v1/listen 请求参数。Audio 原样作为请求体上传。
type DeepgramListenParams struct {
	APIKey   string
	BaseURL  string
	Model    DeepgramSTTModel
	Language string
	Audio    io.Reader
}

// BuildDeepgramListenPayload 构建 POST <base>/v1/listen?model=<m>&smart_format=true[&language=..] 的载荷。
func BuildDeepgramListenPayload(p DeepgramListenParams) *providers.Payload {
	endpoint := providers.JoinURL(p.BaseURL, "/v1/listen") +
		"?model=" + url.QueryEscape(string(p.Model)) + "&smart_format=true"
	if p.Language != "" {
		endpoint += "&language=" + url.QueryEscape(p.Language)
	}
	return providers.NewPayload(endpoint, providers.TokenHeader(p.APIKey, "audio/*"), p.Audio)
}

type deepgramListenResponse struct {
	Metadata struct {
		RequestID string  `json:"request_id"`
		Duration  float64 `json:"duration"`
	} `json:"metadata"`
	Results *struct {
		Channels []struct {
			Alternatives []struct {
				Transcript *string `json:"transcript"`
				Confidence float64 `json:"confidence"`
				Words      []struct {
					Word       string  `json:"word"`
					Start      float64 `json:"start"`
					End        float64 `json:"end"`
					Confidence float64 `json:"confidence"`
				} `json:"words"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

// DeepgramSTTProvider 使用 Deepgram 预录音频接口转写。
type DeepgramSTTProvider struct {
	cfg     DeepgramSTTConfig
	model   DeepgramSTTModel
	invoker *providers.Invoker
}

var _ STTProvider = (*DeepgramSTTProvider)(nil)

// NewDeepgramSTT 创建 Deepgram STT 服务商。
func NewDeepgramSTT(cfg DeepgramSTTConfig, logger *zap.Logger, opts ...providers.Option) (*DeepgramSTTProvider, error) {
	model, err := DeepgramSTTModels.NormalizeOr(cfg.Model, DefaultDeepgramSTTModel)
	if err != nil {
		return nil, err
	}
	cfg.BaseURL = cfg.BaseURLOr(DeepgramBaseURL)
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeepgramSTTProvider{
		cfg:     cfg,
		model:   model,
		invoker: providers.BuildInvoker(cfg.BaseProviderConfig, defaultTimeout, logger.With(zap.String("provider", deepgramName)), opts...),
	}, nil
}

func (p *DeepgramSTTProvider) Name() string { return deepgramName }

func (p *DeepgramSTTProvider) Models() []string { return enumValues(DeepgramSTTModels) }

// Params 校验请求并合并默认值。
func (p *DeepgramSTTProvider) Params(req *STTRequest) (DeepgramListenParams, error) {
	if err := validateAudio(req); err != nil {
		return DeepgramListenParams{}, err
	}
	model, err := DeepgramSTTModels.NormalizeOr(req.Model, p.model)
	if err != nil {
		return DeepgramListenParams{}, err
	}
	language := req.Language
	if language == "" {
		language = p.cfg.Language
	}
	return DeepgramListenParams{
		APIKey:   p.cfg.APIKey,
		BaseURL:  p.cfg.BaseURL,
		Model:    model,
		Language: language,
		Audio:    req.Audio,
	}, nil
}

// Transcribe 返回第一声道第一候选的转写文本。
func (p *DeepgramSTTProvider) Transcribe(ctx context.Context, req *STTRequest) (*STTResponse, error) {
	params, err := p.Params(req)
	if err != nil {
		return nil, err
	}
	body, err := p.invoker.Post(ctx, providers.Call{
		Provider:  deepgramName,
		Operation: "transcribe",
		Model:     string(params.Model),
	}, BuildDeepgramListenPayload(params))
	if err != nil {
		return nil, err
	}

	var out deepgramListenResponse
	if err := providers.DecodeJSON(deepgramName, body, &out); err != nil {
		return nil, err
	}
	if out.Results == nil || len(out.Results.Channels) == 0 ||
		len(out.Results.Channels[0].Alternatives) == 0 ||
		out.Results.Channels[0].Alternatives[0].Transcript == nil {
		return nil, types.NewError(types.ErrDecode, "response has no results.channels[0].alternatives[0].transcript").
			WithProvider(deepgramName)
	}

	alt := out.Results.Channels[0].Alternatives[0]
	resp := &STTResponse{
		Provider:   deepgramName,
		Model:      string(params.Model),
		Text:       *alt.Transcript,
		Confidence: alt.Confidence,
		Duration:   seconds(out.Metadata.Duration),
		CreatedAt:  time.Now(),
	}
	for _, w := range alt.Words {
		resp.Words = append(resp.Words, Word{
			Word:       w.Word,
			Start:      seconds(w.Start),
			End:        seconds(w.End),
			Confidence: w.Confidence,
		})
	}
	return resp, nil
}

func (p *DeepgramSTTProvider) TranscribeAsync(ctx context.Context, req *STTRequest) <-chan types.Result[*STTResponse] {
	return types.Go(ctx, func(ctx context.Context) (*STTResponse, error) {
		return p.Transcribe(ctx, req)
	})
}

// TranscribeFile 转写本地音频文件，文件不存在返回 FILE_NOT_FOUND。
func (p *DeepgramSTTProvider) TranscribeFile(ctx context.Context, path string, req *STTRequest) (*STTResponse, error) {
	return transcribeFile(ctx, p, path, req)
}

func (p *DeepgramSTTProvider) TranscribeFileAsync(ctx context.Context, path string, req *STTRequest) <-chan types.Result[*STTResponse] {
	return types.Go(ctx, func(ctx context.Context) (*STTResponse, error) {
		return p.TranscribeFile(ctx, path, req)
	})
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
