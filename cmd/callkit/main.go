// =============================================================================
// callkit 命令行入口
// =============================================================================
// 使用方法:
//
//	callkit chat "What is the black box problem?"
//	callkit speak -provider deepgram,elevenlabs -out hello.mp3 "Hi, how are you?"
//	callkit transcribe -model ENHANCED output.mp3
//	callkit voices -provider elevenlabs
//	callkit models
//	callkit version
// =============================================================================

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/BaSui01/callkit"
	"github.com/BaSui01/callkit/config"
	"github.com/BaSui01/callkit/internal/telemetry"
	"github.com/BaSui01/callkit/types"
)

// =============================================================================
// 📦 版本信息（构建时注入）
// =============================================================================

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// =============================================================================
// 🎯 主函数
// =============================================================================

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run 执行子命令并返回退出码
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 1
	}

	// 一次命令执行内的所有服务商调用共享同一会话 ID
	ctx = types.WithSessionID(ctx, uuid.NewString())
	ctx = types.WithCallerID(ctx, "callkit-cli")

	var err error
	switch args[0] {
	case "chat":
		err = runChat(ctx, args[1:], stdout)
	case "speak":
		err = runSpeak(ctx, args[1:], stdout)
	case "transcribe":
		err = runTranscribe(ctx, args[1:], stdout)
	case "voices":
		err = runVoices(ctx, args[1:], stdout)
	case "models":
		err = runModels(ctx, args[1:], stdout)
	case "version":
		printVersion(stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", args[0])
		printUsage(stderr)
		return 1
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		color.New(color.FgRed).Fprintf(stderr, "Error: %v\n", err)
		if types.IsRetryable(err) {
			color.New(color.FgYellow).Fprintln(stderr, "The upstream error is retryable; try again later.")
		}
		return 1
	}
	return 0
}

// =============================================================================
// ⚙️ 公共参数
// =============================================================================

// commonFlags 各子命令共享的参数
type commonFlags struct {
	configPath string
	envFile    string
	provider   string
	model      string
	voice      string
	out        string
	async      bool
}

func newFlagSet(name string, cf *commonFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cf.configPath, "config", "", "Path to config file (YAML or TOML)")
	fs.StringVar(&cf.envFile, "env", ".env", "Path to .env file with API keys")
	fs.StringVar(&cf.provider, "provider", "", "Provider name (comma separated for speak)")
	fs.StringVar(&cf.model, "model", "", "Model selector, e.g. GPT_4O or NOVA_2")
	fs.StringVar(&cf.voice, "voice", "", "Voice selector, e.g. ROGER or ARCAS")
	fs.StringVar(&cf.out, "out", "output.mp3", "Output audio file")
	fs.BoolVar(&cf.async, "async", false, "Use the asynchronous API")
	return fs
}

// session 是一次命令执行所需的客户端与日志
type session struct {
	client *callkit.Client
	logger *zap.Logger
	otel   *telemetry.Providers
}

func (s *session) close() {
	if err := s.otel.ShutdownTimeout(5 * time.Second); err != nil {
		s.logger.Warn("telemetry shutdown failed", zap.Error(err))
	}
	_ = s.logger.Sync()
}

// openSession 按 配置文件 → .env → 环境变量 加载配置并创建客户端
func openSession(ctx context.Context, cf *commonFlags) (*session, error) {
	loader := config.NewLoader()
	if cf.configPath != "" {
		loader = loader.WithConfigPath(cf.configPath)
	}
	if cf.envFile != "" {
		loader = loader.WithDotEnv(cf.envFile)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := initLogger(cfg.Log)

	otelProviders, err := telemetry.Init(ctx, cfg.Telemetry, logger)
	if err != nil {
		logger.Warn("failed to initialize telemetry", zap.Error(err))
	}
	opts := []callkit.Option{callkit.WithTracer(otelProviders.Tracer())}
	if rec, err := otelProviders.Recorder(); err != nil {
		logger.Warn("otel metrics unavailable", zap.Error(err))
	} else {
		opts = append(opts, callkit.WithRecorder(rec))
	}

	client, err := callkit.New(cfg, logger, opts...)
	if err != nil {
		_ = otelProviders.ShutdownTimeout(time.Second)
		_ = logger.Sync()
		return nil, err
	}
	return &session{client: client, logger: logger, otel: otelProviders}, nil
}

// =============================================================================
// 📋 版本和帮助
// =============================================================================

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "callkit %s\n", Version)
	fmt.Fprintf(w, "  Build Time: %s\n", BuildTime)
	fmt.Fprintf(w, "  Git Commit: %s\n", GitCommit)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `callkit - chat, text-to-speech and speech-to-text from one CLI

Usage:
  callkit <command> [options] [arguments]

Commands:
  chat        Send a single prompt to the chat provider
  speak       Synthesize text with one or more TTS providers
  transcribe  Transcribe an audio file
  voices      List the voices of a TTS provider
  models      List models of every configured provider
  version     Show version information
  help        Show this help message

Options:
  -config <path>    Path to configuration file (YAML or TOML)
  -env <path>       Path to .env file (default ".env")
  -provider <name>  Provider name; speak accepts a comma separated list
  -model <name>     Model selector (member name, case-insensitive)
  -voice <name>     Voice selector (member name, case-insensitive)
  -out <path>       Output audio file for speak (default "output.mp3")
  -async            Use the asynchronous API

Options must come before the arguments.

Examples:
  callkit chat "What is the black box problem?"
  callkit speak -provider elevenlabs -voice ROGER "Hi, how are you?"
  callkit speak -provider deepgram,elevenlabs,openai -out hello.mp3 "Hello"
  callkit transcribe -model ENHANCED output.mp3
  callkit voices -provider deepgram`)
}

// =============================================================================
// 🔧 日志初始化
// =============================================================================

func initLogger(cfg config.LogConfig) *zap.Logger {
	// 解析日志级别
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	// 配置编码器
	var encoderConfig zapcore.EncoderConfig
	encoding := "json"
	if cfg.Format == "console" {
		encoding = "console"
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	// stdout 留给命令输出，日志改写到 stderr
	outputs := make([]string, 0, len(cfg.OutputPaths))
	for _, p := range cfg.OutputPaths {
		if p == "stdout" {
			p = "stderr"
		}
		outputs = append(outputs, p)
	}
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}

	zapConfig := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       encoding == "console",
		Encoding:          encoding,
		EncoderConfig:     encoderConfig,
		OutputPaths:       outputs,
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     !cfg.EnableCaller,
		DisableStacktrace: !cfg.EnableStacktrace,
	}

	logger, err := zapConfig.Build()
	if err != nil {
		// 回退到基本 logger
		logger, _ = zap.NewProduction()
	}
	return logger
}

// splitList 拆分逗号分隔的名称列表，去除空白与重复项
func splitList(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		out = append(out, part)
	}
	return out
}

// writeFile 以 0644 权限写出音频
func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
