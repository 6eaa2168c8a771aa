package providers

import "time"

// BaseProviderConfig 所有服务商共享的基础配置字段。
// 各服务商的 Config 通过嵌入获得 APIKey、BaseURL、Timeout，避免重复定义。
type BaseProviderConfig struct {
	APIKey  string        `json:"api_key" yaml:"api_key"`
	BaseURL string        `json:"base_url" yaml:"base_url"`
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// BaseURLOr 返回 BaseURL，未设置时返回 def。
func (c BaseProviderConfig) BaseURLOr(def string) string {
	if c.BaseURL == "" {
		return def
	}
	return c.BaseURL
}

// TimeoutOr 返回 Timeout，未设置时返回 def。
func (c BaseProviderConfig) TimeoutOr(def time.Duration) time.Duration {
	if c.Timeout <= 0 {
		return def
	}
	return c.Timeout
}
