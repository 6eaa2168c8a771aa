package telemetry

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Recorder 把服务商调用指标写入 OTel meter，实现 providers.Recorder。
type Recorder struct {
	calls        metric.Int64Counter
	callDuration metric.Float64Histogram
	characters   metric.Int64Counter
	audioBytes   metric.Int64Counter
	tokens       metric.Int64Counter
}

// NewRecorder 在 meter 上创建调用指标
func NewRecorder(meter metric.Meter) (*Recorder, error) {
	r := &Recorder{}
	var err error

	r.calls, err = meter.Int64Counter("callkit.provider.calls",
		metric.WithDescription("Total number of provider HTTP calls"),
		metric.WithUnit("{call}"))
	if err != nil {
		return nil, err
	}

	r.callDuration, err = meter.Float64Histogram("callkit.provider.call.duration",
		metric.WithDescription("Provider call duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60))
	if err != nil {
		return nil, err
	}

	r.characters, err = meter.Int64Counter("callkit.tts.characters",
		metric.WithDescription("Characters submitted for synthesis"),
		metric.WithUnit("{character}"))
	if err != nil {
		return nil, err
	}

	r.audioBytes, err = meter.Int64Counter("callkit.tts.audio",
		metric.WithDescription("Synthesized audio size"),
		metric.WithUnit("By"))
	if err != nil {
		return nil, err
	}

	r.tokens, err = meter.Int64Counter("callkit.chat.tokens",
		metric.WithDescription("Tokens consumed by chat completions"),
		metric.WithUnit("{token}"))
	if err != nil {
		return nil, err
	}

	return r, nil
}

// RecordCall 记录一次 HTTP 调用；status 为 0 表示传输失败
func (r *Recorder) RecordCall(provider, operation string, status int, duration time.Duration, _ int) {
	attrs := metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("operation", operation),
		attribute.String("status", statusClass(status)),
	)
	ctx := context.Background()
	r.calls.Add(ctx, 1, attrs)
	r.callDuration.Record(ctx, duration.Seconds(), attrs)
}

func (r *Recorder) RecordSynthesis(provider, model string, characters, audioBytes int) {
	attrs := metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("model", model),
	)
	ctx := context.Background()
	r.characters.Add(ctx, int64(characters), attrs)
	r.audioBytes.Add(ctx, int64(audioBytes), attrs)
}

func (r *Recorder) RecordTokens(provider, model string, promptTokens, completionTokens int) {
	ctx := context.Background()
	r.tokens.Add(ctx, int64(promptTokens), metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("model", model),
		attribute.String("kind", "prompt"),
	))
	r.tokens.Add(ctx, int64(completionTokens), metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("model", model),
		attribute.String("kind", "completion"),
	))
}

// statusClass 把状态码折叠为 2xx/4xx/5xx，传输失败记为 error
func statusClass(status int) string {
	if status <= 0 {
		return "error"
	}
	return strconv.Itoa(status/100) + "xx"
}
