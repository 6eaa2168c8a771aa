package providers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/BaSui01/callkit/types"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// TracerName 调用 span 使用的 tracer 名称
const TracerName = "github.com/BaSui01/callkit/llm/providers"

// readChunkSize 响应体按块读取并拼接
const readChunkSize = 32 * 1024

// Call 描述一次服务商调用，用于日志、span 与指标标签。
type Call struct {
	Provider  string
	Operation string
	Model     string
}

// Recorder 接收调用级指标，由 internal/metrics.Collector 与 internal/telemetry.Recorder 实现。
type Recorder interface {
	RecordCall(provider, operation string, status int, duration time.Duration, responseBytes int)
	RecordSynthesis(provider, model string, characters, audioBytes int)
	RecordTokens(provider, model string, promptTokens, completionTokens int)
}

type nopRecorder struct{}

func (nopRecorder) RecordCall(string, string, int, time.Duration, int) {}
func (nopRecorder) RecordSynthesis(string, string, int, int) {}
func (nopRecorder) RecordTokens(string, string, int, int) {}

type multiRecorder []Recorder

func (m multiRecorder) RecordCall(provider, operation string, status int, d time.Duration, n int) {
	for _, r := range m {
		r.RecordCall(provider, operation, status, d, n)
	}
}

func (m multiRecorder) RecordSynthesis(provider, model string, characters, audioBytes int) {
	for _, r := range m {
		r.RecordSynthesis(provider, model, characters, audioBytes)
	}
}

func (m multiRecorder) RecordTokens(provider, model string, prompt, completion int) {
	for _, r := range m {
		r.RecordTokens(provider, model, prompt, completion)
	}
}

// Recorders 把多个记录器合并为一个，nil 项被忽略；全部为 nil 时返回 nil。
func Recorders(rs ...Recorder) Recorder {
	var m multiRecorder
	for _, r := range rs {
		if r != nil {
			m = append(m, r)
		}
	}
	switch len(m) {
	case 0:
		return nil
	case 1:
		return m[0]
	}
	return m
}

// Invoker 对每个 Payload 恰好执行一次 HTTP 请求，不做重试。
type Invoker struct {
	client   *http.Client
	logger   *zap.Logger
	recorder Recorder
	tracer   trace.Tracer
}

// InvokerOption 配置 Invoker。
type InvokerOption func(*Invoker)

// WithRecorder 设置指标记录器。
func WithRecorder(r Recorder) InvokerOption {
	return func(i *Invoker) {
		if r != nil {
			i.recorder = r
		}
	}
}

// WithTracer 设置 tracer，默认取全局 TracerProvider。
func WithTracer(t trace.Tracer) InvokerOption {
	return func(i *Invoker) {
		if t != nil {
			i.tracer = t
		}
	}
}

// NewInvoker 创建 Invoker。client 为 nil 时使用 http.DefaultClient，logger 为 nil 时不输出日志。
func NewInvoker(client *http.Client, logger *zap.Logger, opts ...InvokerOption) *Invoker {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	i := &Invoker{
		client:   client,
		logger:   logger,
		recorder: nopRecorder{},
		tracer:   otel.Tracer(TracerName),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Recorder 返回指标记录器，未配置时为空实现。
func (i *Invoker) Recorder() Recorder {
	return i.recorder
}

// Post 执行 payload 描述的请求并返回完整响应体。
// 非 2xx 状态经 MapHTTPError 转为 *types.Error；传输失败返回 UPSTREAM_ERROR，
// 超时返回 UPSTREAM_TIMEOUT。
func (i *Invoker) Post(ctx context.Context, call Call, p *Payload) ([]byte, error) {
	if p == nil || p.URL == "" {
		return nil, types.NewError(types.ErrInvalidArgument, "empty request payload").WithProvider(call.Provider)
	}
	method := p.Method
	if method == "" {
		method = http.MethodPost
	}

	callID := uuid.NewString()
	logger := i.logger.With(
		zap.String("call_id", callID),
		zap.String("provider", call.Provider),
		zap.String("operation", call.Operation),
	)
	if call.Model != "" {
		logger = logger.With(zap.String("model", call.Model))
	}
	attrs := []attribute.KeyValue{
		attribute.String("callkit.call_id", callID),
		attribute.String("callkit.provider", call.Provider),
		attribute.String("callkit.operation", call.Operation),
		attribute.String("callkit.model", call.Model),
	}
	if sid, ok := types.SessionID(ctx); ok {
		logger = logger.With(zap.String("session_id", sid))
		attrs = append(attrs, attribute.String("callkit.session_id", sid))
	}
	if caller, ok := types.CallerID(ctx); ok {
		logger = logger.With(zap.String("caller_id", caller))
		attrs = append(attrs, attribute.String("callkit.caller_id", caller))
	}

	ctx, span := i.tracer.Start(ctx, "callkit."+call.Provider+"."+call.Operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, p.URL, p.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build request")
		return nil, types.NewError(types.ErrInvalidArgument, "failed to create request").
			WithCause(err).
			WithProvider(call.Provider)
	}
	if p.ContentLength > 0 {
		req.ContentLength = p.ContentLength
	}
	for k, vs := range p.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	logger.Debug("provider call started", zap.String("url", p.URL))

	resp, err := i.client.Do(req)
	if err != nil {
		elapsed := time.Since(start)
		i.recorder.RecordCall(call.Provider, call.Operation, 0, elapsed, 0)
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport error")
		logger.Warn("provider call failed", zap.Error(err), zap.Duration("duration", elapsed))
		return nil, transportError(call.Provider, err)
	}
	defer SafeCloseBody(resp.Body)

	body, readErr := readBody(resp.Body)
	elapsed := time.Since(start)
	i.recorder.RecordCall(call.Provider, call.Operation, resp.StatusCode, elapsed, len(body))
	span.SetAttributes(
		attribute.Int("http.response.status_code", resp.StatusCode),
		attribute.Int("callkit.response_bytes", len(body)),
	)

	if readErr != nil {
		span.RecordError(readErr)
		span.SetStatus(codes.Error, "read body")
		logger.Warn("provider response read failed", zap.Error(readErr))
		return nil, transportError(call.Provider, readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := MapHTTPError(resp.StatusCode, ReadErrorMessage(bytes.NewReader(body)), call.Provider)
		span.RecordError(apiErr)
		span.SetStatus(codes.Error, string(apiErr.Code))
		logger.Warn("provider call rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("code", string(apiErr.Code)),
			zap.Duration("duration", elapsed),
		)
		return nil, apiErr
	}

	span.SetStatus(codes.Ok, "")
	logger.Debug("provider call completed",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("duration", elapsed),
	)
	return body, nil
}

// readBody 按块读取响应体并拼接
func readBody(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	chunk := make([]byte, readChunkSize)
	for {
		n, err := r.Read(chunk)
		buf.Write(chunk[:n])
		if err == io.EOF {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func transportError(provider string, err error) *types.Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return types.NewError(types.ErrUpstreamTimeout, "request timed out").
			WithCause(err).
			WithRetryable(true).
			WithProvider(provider)
	}
	return types.NewError(types.ErrUpstreamError, "request failed").
		WithCause(err).
		WithRetryable(!errors.Is(err, context.Canceled)).
		WithProvider(provider)
}
