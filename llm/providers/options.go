package providers

import (
	"net/http"
	"time"

	"github.com/BaSui01/callkit/internal/httpclient"
	"go.uber.org/zap"
)

// ClientOptions 服务商构造时的可选项。
type ClientOptions struct {
	HTTPClient *http.Client
	UserAgent  string
	Invoker    []InvokerOption
}

// Option 配置服务商构造。
type Option func(*ClientOptions)

// WithHTTPClient 使用调用方提供的 http.Client（测试或自定义传输层）。
func WithHTTPClient(c *http.Client) Option {
	return func(o *ClientOptions) { o.HTTPClient = c }
}

// WithUserAgent 设置出站 User-Agent。
func WithUserAgent(ua string) Option {
	return func(o *ClientOptions) { o.UserAgent = ua }
}

// WithInvokerOptions 透传 Invoker 选项（指标记录器、tracer）。
func WithInvokerOptions(opts ...InvokerOption) Option {
	return func(o *ClientOptions) { o.Invoker = append(o.Invoker, opts...) }
}

// BuildInvoker 按基础配置与选项构造 Invoker。
// 未提供 http.Client 时创建 TLS 加固的客户端，超时取 cfg.Timeout 或 defaultTimeout。
func BuildInvoker(cfg BaseProviderConfig, defaultTimeout time.Duration, logger *zap.Logger, opts ...Option) *Invoker {
	var o ClientOptions
	for _, opt := range opts {
		opt(&o)
	}
	client := o.HTTPClient
	if client == nil {
		client = httpclient.New(httpclient.Options{
			Timeout:   cfg.TimeoutOr(defaultTimeout),
			UserAgent: o.UserAgent,
		})
	}
	return NewInvoker(client, logger, o.Invoker...)
}
