// =============================================================================
// 📦 callkit 配置加载器
// =============================================================================
// 叠加顺序: 默认值 → 配置文件 → .env → 前缀环境变量 → 服务商密钥回退
//
// 使用方法:
//
//	cfg, err := config.NewLoader().
//	    WithConfigPath("callkit.yaml").
//	    WithDotEnv(".env").
//	    WithEnvPrefix("CALLKIT").
//	    Load()
// =============================================================================
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultEnvPrefix 默认环境变量前缀
const DefaultEnvPrefix = "CALLKIT"

// vendorKeyEnv 服务商惯用的密钥变量，按顺序查找
var vendorKeyEnv = map[string][]string{
	"openai":     {"OPENAI_API_KEY", "OPENAI_API"},
	"deepgram":   {"DEEPGRAM_API_KEY", "DEEPGRAM_API"},
	"elevenlabs": {"ELEVENLABS_API_KEY", "ELEVENLABS_API"},
}

// decoders 按扩展名选择文件解码器；无扩展名按 YAML 处理
var decoders = map[string]func([]byte, *Config) error{
	"":      decodeYAML,
	".yaml": decodeYAML,
	".yml":  decodeYAML,
	".toml": decodeTOML,
}

// Loader 配置加载器（Builder 模式）
type Loader struct {
	path       string
	dotEnv     []string
	prefix     string
	validators []func(*Config) error
}

// NewLoader 创建配置加载器，默认前缀 CALLKIT
func NewLoader() *Loader {
	return &Loader{prefix: DefaultEnvPrefix}
}

// WithConfigPath 指定 YAML 或 TOML 配置文件。文件不存在时沿用默认值。
func (l *Loader) WithConfigPath(path string) *Loader {
	l.path = path
	return l
}

// WithDotEnv 追加 .env 文件。已存在的进程环境变量优先，缺失的文件被忽略。
func (l *Loader) WithDotEnv(paths ...string) *Loader {
	l.dotEnv = append(l.dotEnv, paths...)
	return l
}

// WithEnvPrefix 设置环境变量前缀
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.prefix = prefix
	return l
}

// WithValidator 追加自定义验证器，在结构体标签校验之后执行
func (l *Loader) WithValidator(v func(*Config) error) *Loader {
	l.validators = append(l.validators, v)
	return l
}

// Load 按叠加顺序构建配置并校验
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := l.readFile(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from file: %w", err)
	}
	if err := l.readDotEnv(); err != nil {
		return nil, err
	}
	if err := bindEnv(cfg, l.prefix); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	fallbackVendorKeys(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, v := range l.validators {
		if err := v(cfg); err != nil {
			return nil, fmt.Errorf("config validation failed: %w", err)
		}
	}
	return cfg, nil
}

func (l *Loader) readFile(cfg *Config) error {
	if l.path == "" {
		return nil
	}
	decode, ok := decoders[strings.ToLower(filepath.Ext(l.path))]
	if !ok {
		return fmt.Errorf("unsupported config file extension %q", filepath.Ext(l.path))
	}
	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := decode(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", l.path, err)
	}
	return nil
}

func (l *Loader) readDotEnv() error {
	for _, p := range l.dotEnv {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load dotenv %s: %w", p, err)
		}
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	return yaml.Unmarshal(data, cfg)
}

// decodeTOML 经通用树转为 YAML 再解码，两种格式共用 yaml 标签与 "30s" 时长写法
func decodeTOML(data []byte, cfg *Config) error {
	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		return err
	}
	bridged, err := yaml.Marshal(tree)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(bridged, cfg)
}

// fallbackVendorKeys 文件与前缀变量都没有给出密钥时，读取服务商惯用变量
func fallbackVendorKeys(cfg *Config) {
	slots := map[string]*string{
		"openai":     &cfg.Providers.OpenAI.APIKey,
		"deepgram":   &cfg.Providers.Deepgram.APIKey,
		"elevenlabs": &cfg.Providers.ElevenLabs.APIKey,
	}
	for vendor, slot := range slots {
		if *slot != "" {
			continue
		}
		for _, name := range vendorKeyEnv[vendor] {
			if v := strings.TrimSpace(os.Getenv(name)); v != "" {
				*slot = v
				break
			}
		}
	}
}

// MustLoad 加载配置，失败时 panic
func MustLoad(path string) *Config {
	cfg, err := NewLoader().WithConfigPath(path).Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// LoadFromEnv 仅从默认值与环境变量加载配置
func LoadFromEnv() (*Config, error) {
	return NewLoader().Load()
}
