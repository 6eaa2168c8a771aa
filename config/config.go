// =============================================================================
// 📦 callkit 配置结构
// =============================================================================
// 服务商凭据、默认选择器、HTTP、日志、指标与遥测配置。
// 每个字段同时带有 yaml / env / validate 标签，env 标签用于前缀环境变量覆盖，
// 例如 CALLKIT_PROVIDERS_OPENAI_API_KEY。
// =============================================================================
package config

import "time"

// Config 是 callkit 的完整配置结构
type Config struct {
	// Providers 各服务商配置
	Providers ProvidersConfig `yaml:"providers" env:"PROVIDERS"`

	// Defaults 未指定服务商时使用的默认服务商
	Defaults DefaultsConfig `yaml:"defaults" env:"DEFAULTS"`

	// HTTP 出站 HTTP 客户端配置
	HTTP HTTPConfig `yaml:"http" env:"HTTP"`

	// Log 日志配置
	Log LogConfig `yaml:"log" env:"LOG"`

	// Metrics Prometheus 指标配置
	Metrics MetricsConfig `yaml:"metrics" env:"METRICS"`

	// Telemetry 遥测配置
	Telemetry TelemetryConfig `yaml:"telemetry" env:"TELEMETRY"`
}

// ProvidersConfig 服务商配置集合
type ProvidersConfig struct {
	OpenAI     OpenAIConfig     `yaml:"openai" env:"OPENAI"`
	Deepgram   DeepgramConfig   `yaml:"deepgram" env:"DEEPGRAM"`
	ElevenLabs ElevenLabsConfig `yaml:"elevenlabs" env:"ELEVENLABS"`
}

// OpenAIConfig OpenAI 聊天与语音合成配置
type OpenAIConfig struct {
	// API Key，为空时不构建该服务商
	APIKey string `yaml:"api_key" env:"API_KEY"`
	// 基础 URL
	BaseURL string `yaml:"base_url" env:"BASE_URL" validate:"omitempty,url"`
	// 组织 ID（可选）
	Organization string `yaml:"organization" env:"ORGANIZATION"`
	// 请求超时
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT" validate:"gt=0"`
	// 默认聊天模型（成员名称）
	Model string `yaml:"model" env:"MODEL"`
	// 默认温度
	Temperature float64 `yaml:"temperature" env:"TEMPERATURE" validate:"gte=0,lte=2"`
	// 系统提示词
	SystemPrompt string `yaml:"system_prompt" env:"SYSTEM_PROMPT"`
	// 默认 TTS 声音
	TTSVoice string `yaml:"tts_voice" env:"TTS_VOICE"`
	// 默认 TTS 模型
	TTSModel string `yaml:"tts_model" env:"TTS_MODEL"`
}

// DeepgramConfig Deepgram 语音识别与合成配置
type DeepgramConfig struct {
	APIKey  string        `yaml:"api_key" env:"API_KEY"`
	BaseURL string        `yaml:"base_url" env:"BASE_URL" validate:"omitempty,url"`
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT" validate:"gt=0"`
	// 默认转写模型
	STTModel string `yaml:"stt_model" env:"STT_MODEL"`
	// 转写语言（可选，如 en、zh）
	Language string `yaml:"language" env:"LANGUAGE"`
	// 默认 TTS 声音
	TTSVoice string `yaml:"tts_voice" env:"TTS_VOICE"`
	// 默认 TTS 模型
	TTSModel string `yaml:"tts_model" env:"TTS_MODEL"`
}

// ElevenLabsConfig ElevenLabs 语音合成配置
type ElevenLabsConfig struct {
	APIKey  string        `yaml:"api_key" env:"API_KEY"`
	BaseURL string        `yaml:"base_url" env:"BASE_URL" validate:"omitempty,url"`
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT" validate:"gt=0"`
	Voice   string        `yaml:"voice" env:"VOICE"`
	Model   string        `yaml:"model" env:"MODEL"`
	// 稳定性 [0,1]
	Stability float64 `yaml:"stability" env:"STABILITY" validate:"gte=0,lte=1"`
	// 相似度增强 [0,1]
	SimilarityBoost float64 `yaml:"similarity_boost" env:"SIMILARITY_BOOST" validate:"gte=0,lte=1"`
}

// DefaultsConfig 默认服务商名称
type DefaultsConfig struct {
	Chat string `yaml:"chat" env:"CHAT" validate:"oneof=openai"`
	TTS  string `yaml:"tts" env:"TTS" validate:"oneof=deepgram elevenlabs openai"`
	STT  string `yaml:"stt" env:"STT" validate:"oneof=deepgram"`
}

// HTTPConfig 出站 HTTP 配置
type HTTPConfig struct {
	// User-Agent 请求头
	UserAgent string `yaml:"user_agent" env:"USER_AGENT" validate:"required"`
}

// LogConfig 日志配置
type LogConfig struct {
	// 日志级别: debug, info, warn, error
	Level string `yaml:"level" env:"LEVEL" validate:"oneof=debug info warn error"`
	// 输出格式: json, console
	Format string `yaml:"format" env:"FORMAT" validate:"oneof=json console"`
	// 输出路径
	OutputPaths []string `yaml:"output_paths" env:"OUTPUT_PATHS" validate:"min=1"`
	// 是否启用调用者信息
	EnableCaller bool `yaml:"enable_caller" env:"ENABLE_CALLER"`
	// 是否启用堆栈跟踪
	EnableStacktrace bool `yaml:"enable_stacktrace" env:"ENABLE_STACKTRACE"`
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	// 是否启用
	Enabled bool `yaml:"enabled" env:"ENABLED"`
	// 指标命名空间
	Namespace string `yaml:"namespace" env:"NAMESPACE" validate:"required"`
}

// TelemetryConfig 遥测配置
type TelemetryConfig struct {
	// 是否启用
	Enabled bool `yaml:"enabled" env:"ENABLED"`
	// OTLP 端点
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTLP_ENDPOINT" validate:"required_if=Enabled true"`
	// 服务名称
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME" validate:"required"`
	// 采样率
	SampleRate float64 `yaml:"sample_rate" env:"SAMPLE_RATE" validate:"gte=0,lte=1"`
}
