// =============================================================================
// 📦 callkit 默认配置
// =============================================================================
// 提供所有配置项的合理默认值
// =============================================================================
package config

import "time"

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Providers: ProvidersConfig{
			OpenAI:     DefaultOpenAIConfig(),
			Deepgram:   DefaultDeepgramConfig(),
			ElevenLabs: DefaultElevenLabsConfig(),
		},
		Defaults:  DefaultDefaultsConfig(),
		HTTP:      DefaultHTTPConfig(),
		Log:       DefaultLogConfig(),
		Metrics:   DefaultMetricsConfig(),
		Telemetry: DefaultTelemetryConfig(),
	}
}

// DefaultOpenAIConfig 返回默认 OpenAI 配置
func DefaultOpenAIConfig() OpenAIConfig {
	return OpenAIConfig{
		BaseURL:      "https://api.openai.com",
		Timeout:      60 * time.Second,
		Model:        "GPT_4O_MINI",
		Temperature:  0.8,
		SystemPrompt: "You are a helpful assistant.",
		TTSVoice:     "ALLOY",
		TTSModel:     "TTS_1_HD",
	}
}

// DefaultDeepgramConfig 返回默认 Deepgram 配置
func DefaultDeepgramConfig() DeepgramConfig {
	return DeepgramConfig{
		BaseURL:  "https://api.deepgram.com",
		Timeout:  60 * time.Second,
		STTModel: "NOVA_2",
		TTSVoice: "ARCAS",
		TTSModel: "AURA",
	}
}

// DefaultElevenLabsConfig 返回默认 ElevenLabs 配置
func DefaultElevenLabsConfig() ElevenLabsConfig {
	return ElevenLabsConfig{
		BaseURL:         "https://api.elevenlabs.io",
		Timeout:         60 * time.Second,
		Voice:           "DANIEL",
		Model:           "ELEVEN_TURBO_V2_5",
		Stability:       0.5,
		SimilarityBoost: 0.8,
	}
}

// DefaultDefaultsConfig 返回默认服务商选择
func DefaultDefaultsConfig() DefaultsConfig {
	return DefaultsConfig{
		Chat: "openai",
		TTS:  "openai",
		STT:  "deepgram",
	}
}

// DefaultHTTPConfig 返回默认 HTTP 配置
func DefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		UserAgent: "callkit/1.0",
	}
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:            "info",
		Format:           "json",
		OutputPaths:      []string{"stdout"},
		EnableCaller:     true,
		EnableStacktrace: false,
	}
}

// DefaultMetricsConfig 返回默认指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   true,
		Namespace: "callkit",
	}
}

// DefaultTelemetryConfig 返回默认遥测配置
func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		Enabled:      false,
		OTLPEndpoint: "localhost:4317",
		ServiceName:  "callkit",
		SampleRate:   0.1,
	}
}
