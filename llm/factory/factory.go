// Package factory provides a centralized factory for creating chat, TTS and
// STT providers by name. It imports the provider sub-packages and maps string
// names to their constructors, breaking the import cycle that would occur if
// this logic lived in the llm package directly.
package factory

import (
	"strings"
	"time"

	"github.com/BaSui01/callkit/llm"
	"github.com/BaSui01/callkit/llm/providers"
	"github.com/BaSui01/callkit/llm/providers/openai"
	"github.com/BaSui01/callkit/llm/speech"
	"github.com/BaSui01/callkit/types"
	"go.uber.org/zap"
)

// ProviderConfig is the generic configuration accepted by the factory functions.
// It uses a flat structure with an Extra map for provider-specific fields.
//
// Recognized Extra keys: organization, system_prompt (string) and
// temperature (float64) for openai chat; stability, similarity_boost
// (float64) for elevenlabs.
type ProviderConfig struct {
	APIKey   string         `json:"api_key" yaml:"api_key"`
	BaseURL  string         `json:"base_url" yaml:"base_url"`
	Model    string         `json:"model,omitempty" yaml:"model,omitempty"`
	Voice    string         `json:"voice,omitempty" yaml:"voice,omitempty"`
	Language string         `json:"language,omitempty" yaml:"language,omitempty"`
	Timeout  time.Duration  `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Extra    map[string]any `json:"extra,omitempty" yaml:"extra,omitempty"`
}

func (c ProviderConfig) base() providers.BaseProviderConfig {
	return providers.BaseProviderConfig{
		APIKey:  c.APIKey,
		BaseURL: c.BaseURL,
		Timeout: c.Timeout,
	}
}

func (c ProviderConfig) extraString(key string) string {
	if v, ok := c.Extra[key].(string); ok {
		return v
	}
	return ""
}

func (c ProviderConfig) extraFloat(key string) *float64 {
	switch v := c.Extra[key].(type) {
	case float64:
		return &v
	case *float64:
		return v
	case int:
		f := float64(v)
		return &f
	}
	return nil
}

// NewChatProvider creates a chat provider by name.
//
// Supported names: openai.
func NewChatProvider(name string, cfg ProviderConfig, logger *zap.Logger, opts ...providers.Option) (llm.Provider, error) {
	switch normalize(name) {
	case "openai":
		p, err := openai.New(openai.Config{
			BaseProviderConfig: cfg.base(),
			Organization:       cfg.extraString("organization"),
			Model:              cfg.Model,
			Temperature:        cfg.extraFloat("temperature"),
			SystemPrompt:       cfg.extraString("system_prompt"),
		}, logger, opts...)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, notFound("chat", name, SupportedChatProviders())
	}
}

// NewTTSProvider creates a text-to-speech provider by name.
//
// Supported names: deepgram, elevenlabs, openai.
func NewTTSProvider(name string, cfg ProviderConfig, logger *zap.Logger, opts ...providers.Option) (speech.TTSProvider, error) {
	switch normalize(name) {
	case "deepgram":
		p, err := speech.NewDeepgramTTS(speech.DeepgramTTSConfig{
			BaseProviderConfig: cfg.base(),
			Voice:              cfg.Voice,
			Model:              cfg.Model,
		}, logger, opts...)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "elevenlabs":
		p, err := speech.NewElevenLabs(speech.ElevenLabsConfig{
			BaseProviderConfig: cfg.base(),
			Voice:              cfg.Voice,
			Model:              cfg.Model,
			Stability:          cfg.extraFloat("stability"),
			SimilarityBoost:    cfg.extraFloat("similarity_boost"),
		}, logger, opts...)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "openai":
		p, err := speech.NewOpenAITTS(speech.OpenAITTSConfig{
			BaseProviderConfig: cfg.base(),
			Voice:              cfg.Voice,
			Model:              cfg.Model,
		}, logger, opts...)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, notFound("tts", name, SupportedTTSProviders())
	}
}

// NewSTTProvider creates a speech-to-text provider by name.
//
// Supported names: deepgram.
func NewSTTProvider(name string, cfg ProviderConfig, logger *zap.Logger, opts ...providers.Option) (speech.STTProvider, error) {
	switch normalize(name) {
	case "deepgram":
		p, err := speech.NewDeepgramSTT(speech.DeepgramSTTConfig{
			BaseProviderConfig: cfg.base(),
			Model:              cfg.Model,
			Language:           cfg.Language,
		}, logger, opts...)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, notFound("stt", name, SupportedSTTProviders())
	}
}

// SupportedChatProviders returns the list of built-in chat provider names.
func SupportedChatProviders() []string { return []string{"openai"} }

// SupportedTTSProviders returns the list of built-in TTS provider names.
func SupportedTTSProviders() []string { return []string{"deepgram", "elevenlabs", "openai"} }

// SupportedSTTProviders returns the list of built-in STT provider names.
func SupportedSTTProviders() []string { return []string{"deepgram"} }

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func notFound(kind, name string, supported []string) *types.Error {
	return types.Errorf(types.ErrProviderNotFound, "unknown %s provider %q, supported: %s",
		kind, name, strings.Join(supported, ", "))
}
