package callkit

import (
	"net/http"
	"sort"
	"strings"

	"github.com/BaSui01/callkit/config"
	"github.com/BaSui01/callkit/internal/metrics"
	"github.com/BaSui01/callkit/llm"
	"github.com/BaSui01/callkit/llm/factory"
	"github.com/BaSui01/callkit/llm/providers"
	"github.com/BaSui01/callkit/llm/speech"
	"github.com/BaSui01/callkit/types"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Option configures the client created by [New].
type Option func(*options)

type options struct {
	registry   *prometheus.Registry
	httpClient *http.Client
	tracer     trace.Tracer
	recorders  []providers.Recorder
}

// WithRegistry registers metrics on reg instead of a fresh private registry.
// Clients sharing reg with the same namespace share their metric series.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithHTTPClient makes every provider share c (tests, proxies, custom transports).
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithTracer sets the tracer used for per-call spans.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithRecorder adds r alongside the prometheus collector, e.g. an OTel meter recorder.
func WithRecorder(r providers.Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorders = append(o.recorders, r)
		}
	}
}

// ProviderSet lists the configured provider names per capability.
type ProviderSet struct {
	Chat []string `json:"chat"`
	TTS  []string `json:"tts"`
	STT  []string `json:"stt"`
}

// Client holds one instance of every provider whose API key is configured.
type Client struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry

	chat map[string]llm.Provider
	tts  map[string]speech.TTSProvider
	stt  map[string]speech.STTProvider
}

// New validates cfg and builds the providers. A nil cfg uses
// [config.DefaultConfig]; a nil logger disables logging.
func New(cfg *config.Config, logger *zap.Logger, opts ...Option) (*Client, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = prometheus.NewRegistry()
	}

	recorders := o.recorders
	if cfg.Metrics.Enabled {
		collector, err := metrics.NewCollector(cfg.Metrics.Namespace, o.registry, logger)
		if err != nil {
			return nil, err
		}
		recorders = append(recorders, collector)
	}
	invOpts := []providers.InvokerOption{providers.WithRecorder(providers.Recorders(recorders...))}
	if o.tracer != nil {
		invOpts = append(invOpts, providers.WithTracer(o.tracer))
	}
	provOpts := []providers.Option{
		providers.WithUserAgent(cfg.HTTP.UserAgent),
		providers.WithInvokerOptions(invOpts...),
	}
	if o.httpClient != nil {
		provOpts = append(provOpts, providers.WithHTTPClient(o.httpClient))
	}

	c := &Client{
		cfg:      cfg,
		logger:   logger,
		registry: o.registry,
		chat:     make(map[string]llm.Provider),
		tts:      make(map[string]speech.TTSProvider),
		stt:      make(map[string]speech.STTProvider),
	}
	if err := c.build(provOpts); err != nil {
		return nil, err
	}

	logger.Info("callkit client ready",
		zap.Strings("chat", sortedKeys(c.chat)),
		zap.Strings("tts", sortedKeys(c.tts)),
		zap.Strings("stt", sortedKeys(c.stt)),
	)
	return c, nil
}

func (c *Client) build(opts []providers.Option) error {
	p := c.cfg.Providers

	if p.OpenAI.APIKey != "" {
		base := factory.ProviderConfig{APIKey: p.OpenAI.APIKey, BaseURL: p.OpenAI.BaseURL, Timeout: p.OpenAI.Timeout}

		chatCfg := base
		chatCfg.Model = p.OpenAI.Model
		chatCfg.Extra = map[string]any{
			"organization":  p.OpenAI.Organization,
			"temperature":   p.OpenAI.Temperature,
			"system_prompt": p.OpenAI.SystemPrompt,
		}
		chat, err := factory.NewChatProvider("openai", chatCfg, c.logger, opts...)
		if err != nil {
			return err
		}
		c.chat[chat.Name()] = chat

		ttsCfg := base
		ttsCfg.Voice = p.OpenAI.TTSVoice
		ttsCfg.Model = p.OpenAI.TTSModel
		if err := c.addTTS("openai", ttsCfg, opts); err != nil {
			return err
		}
	}

	if p.Deepgram.APIKey != "" {
		base := factory.ProviderConfig{APIKey: p.Deepgram.APIKey, BaseURL: p.Deepgram.BaseURL, Timeout: p.Deepgram.Timeout}

		ttsCfg := base
		ttsCfg.Voice = p.Deepgram.TTSVoice
		ttsCfg.Model = p.Deepgram.TTSModel
		if err := c.addTTS("deepgram", ttsCfg, opts); err != nil {
			return err
		}

		sttCfg := base
		sttCfg.Model = p.Deepgram.STTModel
		sttCfg.Language = p.Deepgram.Language
		stt, err := factory.NewSTTProvider("deepgram", sttCfg, c.logger, opts...)
		if err != nil {
			return err
		}
		c.stt[stt.Name()] = stt
	}

	if p.ElevenLabs.APIKey != "" {
		cfg := factory.ProviderConfig{
			APIKey:  p.ElevenLabs.APIKey,
			BaseURL: p.ElevenLabs.BaseURL,
			Timeout: p.ElevenLabs.Timeout,
			Voice:   p.ElevenLabs.Voice,
			Model:   p.ElevenLabs.Model,
			Extra: map[string]any{
				"stability":        p.ElevenLabs.Stability,
				"similarity_boost": p.ElevenLabs.SimilarityBoost,
			},
		}
		if err := c.addTTS("elevenlabs", cfg, opts); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) addTTS(name string, cfg factory.ProviderConfig, opts []providers.Option) error {
	p, err := factory.NewTTSProvider(name, cfg, c.logger, opts...)
	if err != nil {
		return err
	}
	c.tts[p.Name()] = p
	return nil
}

// LLM returns the chat provider called name; an empty name selects defaults.chat.
func (c *Client) LLM(name string) (llm.Provider, error) {
	return lookup(c.chat, "chat", name, c.cfg.Defaults.Chat, factory.SupportedChatProviders())
}

// TTS returns the text-to-speech provider called name; an empty name selects defaults.tts.
func (c *Client) TTS(name string) (speech.TTSProvider, error) {
	return lookup(c.tts, "tts", name, c.cfg.Defaults.TTS, factory.SupportedTTSProviders())
}

// STT returns the speech-to-text provider called name; an empty name selects defaults.stt.
func (c *Client) STT(name string) (speech.STTProvider, error) {
	return lookup(c.stt, "stt", name, c.cfg.Defaults.STT, factory.SupportedSTTProviders())
}

// Providers returns the configured provider names, sorted.
func (c *Client) Providers() ProviderSet {
	return ProviderSet{
		Chat: sortedKeys(c.chat),
		TTS:  sortedKeys(c.tts),
		STT:  sortedKeys(c.stt),
	}
}

// Registry returns the prometheus registry holding the client's metrics.
func (c *Client) Registry() *prometheus.Registry {
	return c.registry
}

// MetricsHandler serves the client's metrics in the prometheus text format.
func (c *Client) MetricsHandler() http.Handler {
	return metrics.Handler(c.registry)
}

func lookup[P any](m map[string]P, kind, name, def string, supported []string) (P, error) {
	var zero P
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = def
	}
	if p, ok := m[key]; ok {
		return p, nil
	}
	for _, s := range supported {
		if s == key {
			return zero, types.Errorf(types.ErrProviderNotFound, "%s provider %q is not configured: missing API key", kind, key)
		}
	}
	return zero, types.Errorf(types.ErrProviderNotFound, "unknown %s provider %q, supported: %s",
		kind, key, strings.Join(supported, ", "))
}

func sortedKeys[P any](m map[string]P) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
