package speech

import (
	"time"

	"github.com/BaSui01/callkit/llm/providers"
)

const (
	DeepgramBaseURL   = "https://api.deepgram.com"
	ElevenLabsBaseURL = "https://api.elevenlabs.io"
	OpenAIBaseURL     = "https://api.openai.com"

	defaultTimeout = 60 * time.Second
)

// 默认选择器
const (
	DefaultDeepgramVoice    DeepgramVoice    = "arcas"
	DefaultDeepgramTTSModel DeepgramTTSModel = "aura"
	DefaultDeepgramSTTModel DeepgramSTTModel = "nova-2"
	DefaultElevenLabsVoice  ElevenLabsVoice  = "onwK4e9ZLuTAKqWW03F9" // DANIEL
	DefaultElevenLabsModel  ElevenLabsModel  = "eleven_turbo_v2_5"
	DefaultOpenAIVoice      OpenAIVoice      = "alloy"
	DefaultOpenAITTSModel   OpenAITTSModel   = "tts-1-hd"
)

const (
	DefaultStability       = 0.5
	DefaultSimilarityBoost = 0.8
)

// DeepgramTTSConfig 配置 Deepgram Aura TTS。Voice、Model 为选择器名称，为空使用默认值。
type DeepgramTTSConfig struct {
	providers.BaseProviderConfig `yaml:",inline"`

	Voice string `json:"voice,omitempty" yaml:"voice,omitempty"`
	Model string `json:"model,omitempty" yaml:"model,omitempty"`
}

// DeepgramSTTConfig 配置 Deepgram 转写。
type DeepgramSTTConfig struct {
	providers.BaseProviderConfig `yaml:",inline"`

	Model    string `json:"model,omitempty" yaml:"model,omitempty"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
}

// ElevenLabsConfig 配置 ElevenLabs TTS。Stability 与 SimilarityBoost 为 nil 时使用默认值。
type ElevenLabsConfig struct {
	providers.BaseProviderConfig `yaml:",inline"`

	Voice           string   `json:"voice,omitempty" yaml:"voice,omitempty"`
	Model           string   `json:"model,omitempty" yaml:"model,omitempty"`
	Stability       *float64 `json:"stability,omitempty" yaml:"stability,omitempty"`
	SimilarityBoost *float64 `json:"similarity_boost,omitempty" yaml:"similarity_boost,omitempty"`
}

// OpenAITTSConfig 配置 OpenAI TTS。
type OpenAITTSConfig struct {
	providers.BaseProviderConfig `yaml:",inline"`

	Voice string `json:"voice,omitempty" yaml:"voice,omitempty"`
	Model string `json:"model,omitempty" yaml:"model,omitempty"`
}
