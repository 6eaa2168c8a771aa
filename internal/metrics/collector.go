package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// =============================================================================
// 📊 指标收集器
// =============================================================================

// Collector 指标收集器
type Collector struct {
	// 服务商调用指标
	callsTotal    *prometheus.CounterVec
	callDuration  *prometheus.HistogramVec
	responseBytes *prometheus.HistogramVec

	// 语音合成指标
	ttsCharacters *prometheus.CounterVec
	ttsAudioBytes *prometheus.CounterVec

	// LLM 指标
	llmTokensUsed *prometheus.CounterVec

	logger *zap.Logger
}

// NewCollector 创建指标收集器并注册到 reg；reg 为 nil 时使用全局默认注册表。
// reg 上已有同名同标签的指标时复用已注册的向量，多个 Collector 共享同一组时间序列。
func NewCollector(namespace string, reg prometheus.Registerer, logger *zap.Logger) (*Collector, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	var err error
	if c.callsTotal, err = register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_calls_total",
			Help:      "Total number of provider HTTP calls",
		},
		[]string{"provider", "operation", "status"},
	)); err != nil {
		return nil, err
	}

	if c.callDuration, err = register(reg, prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_call_duration_seconds",
			Help:      "Provider HTTP call duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"provider", "operation"},
	)); err != nil {
		return nil, err
	}

	if c.responseBytes, err = register(reg, prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_response_size_bytes",
			Help:      "Provider response body size in bytes",
			Buckets:   prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"provider", "operation"},
	)); err != nil {
		return nil, err
	}

	if c.ttsCharacters, err = register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tts_characters_total",
			Help:      "Total number of characters sent for speech synthesis",
		},
		[]string{"provider", "model"},
	)); err != nil {
		return nil, err
	}

	if c.ttsAudioBytes, err = register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tts_audio_bytes_total",
			Help:      "Total number of synthesized audio bytes",
		},
		[]string{"provider", "model"},
	)); err != nil {
		return nil, err
	}

	if c.llmTokensUsed, err = register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_tokens_used_total",
			Help:      "Total number of tokens used",
		},
		[]string{"provider", "model", "type"}, // type: prompt, completion
	)); err != nil {
		return nil, err
	}

	c.logger.Debug("metrics collector initialized", zap.String("namespace", namespace))

	return c, nil
}

// register 注册 v；已注册同一描述的指标时返回已有向量，其余冲突返回错误
func register[V prometheus.Collector](reg prometheus.Registerer, v V) (V, error) {
	err := reg.Register(v)
	if err == nil {
		return v, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(V); ok {
			return existing, nil
		}
	}
	var zero V
	return zero, fmt.Errorf("register metrics: %w", err)
}

// =============================================================================
// 🎯 调用指标记录
// =============================================================================

// RecordCall 记录一次服务商 HTTP 调用；status 为 0 表示传输层失败
func (c *Collector) RecordCall(provider, operation string, status int, duration time.Duration, responseBytes int) {
	c.callsTotal.WithLabelValues(provider, operation, statusCode(status)).Inc()
	c.callDuration.WithLabelValues(provider, operation).Observe(duration.Seconds())
	if status != 0 {
		c.responseBytes.WithLabelValues(provider, operation).Observe(float64(responseBytes))
	}
}

// RecordSynthesis 记录一次语音合成的输入字符数与输出音频字节数
func (c *Collector) RecordSynthesis(provider, model string, characters, audioBytes int) {
	c.ttsCharacters.WithLabelValues(provider, model).Add(float64(characters))
	c.ttsAudioBytes.WithLabelValues(provider, model).Add(float64(audioBytes))
}

// RecordTokens 记录 LLM Token 用量
func (c *Collector) RecordTokens(provider, model string, promptTokens, completionTokens int) {
	c.llmTokensUsed.WithLabelValues(provider, model, "prompt").Add(float64(promptTokens))
	c.llmTokensUsed.WithLabelValues(provider, model, "completion").Add(float64(completionTokens))
}

// Handler 返回暴露 gatherer 中指标的 HTTP 处理器
func Handler(gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// =============================================================================
// 🔧 辅助函数
// =============================================================================

// statusCode 将 HTTP 状态码转换为字符串
func statusCode(code int) string {
	switch {
	case code == 0:
		return "error"
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
