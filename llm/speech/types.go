package speech

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"github.com/BaSui01/callkit/types"
)

// ============================================================
// 文字转语音（TTS）
// ============================================================

// TTSRequest 文本转语音请求。
// Voice 与 Model 为选择器：对应服务商的枚举成员或大小写不敏感的成员名称，nil 使用服务商默认值。
// Stability 与 Similarity 仅 ElevenLabs 使用，取值 [0,1]。
type TTSRequest struct {
	Text       string   `json:"text"`
	Voice      any      `json:"voice,omitempty"`
	Model      any      `json:"model,omitempty"`
	Stability  *float64 `json:"stability,omitempty"`
	Similarity *float64 `json:"similarity,omitempty"`
}

// TTSResponse 合成结果，AudioData 为完整音频字节。
type TTSResponse struct {
	Provider  string    `json:"provider"`
	Model     string    `json:"model"`
	Voice     string    `json:"voice"`
	Format    string    `json:"format"`
	AudioData []byte    `json:"-"`
	CharCount int       `json:"char_count,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Reader 返回从头读取音频的 Reader，每次调用相互独立。
func (r *TTSResponse) Reader() io.Reader {
	return bytes.NewReader(r.AudioData)
}

// TTSProvider 定义文本转语音接口。每次合成恰好发起一次 HTTP 请求。
type TTSProvider interface {
	// Name 返回服务商名称
	Name() string

	// Synthesize 将文本转换为语音
	Synthesize(ctx context.Context, req *TTSRequest) (*TTSResponse, error)

	// SynthesizeAsync 在独立 goroutine 中执行 Synthesize
	SynthesizeAsync(ctx context.Context, req *TTSRequest) <-chan types.Result[*TTSResponse]

	// SynthesizeToFile 合成并写入文件
	SynthesizeToFile(ctx context.Context, req *TTSRequest, path string) error

	// ListVoices 返回可用声音，不访问网络
	ListVoices(ctx context.Context) ([]Voice, error)

	// Models 返回支持的模型取值
	Models() []string
}

// Voice 描述一个可用声音。ID 为线上取值，Name 为枚举成员名称。
type Voice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

// ============================================================
// 语音转文字（STT）
// ============================================================

// STTRequest 语音转文字请求。Model 为选择器，Language 为可选的语言代码。
type STTRequest struct {
	Audio    io.Reader `json:"-"`
	Model    any       `json:"model,omitempty"`
	Language string    `json:"language,omitempty"`
}

// STTResponse 转写结果。
type STTResponse struct {
	Provider   string        `json:"provider"`
	Model      string        `json:"model"`
	Text       string        `json:"text"`
	Confidence float64       `json:"confidence,omitempty"`
	Duration   time.Duration `json:"duration,omitempty"`
	Words      []Word        `json:"words,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

// Word 带时间戳的转写词。
type Word struct {
	Word       string        `json:"word"`
	Start      time.Duration `json:"start"`
	End        time.Duration `json:"end"`
	Confidence float64       `json:"confidence,omitempty"`
}

// STTProvider 定义语音转文字接口。
type STTProvider interface {
	// Name 返回服务商名称
	Name() string

	// Transcribe 转写 req.Audio
	Transcribe(ctx context.Context, req *STTRequest) (*STTResponse, error)

	// TranscribeAsync 在独立 goroutine 中执行 Transcribe
	TranscribeAsync(ctx context.Context, req *STTRequest) <-chan types.Result[*STTResponse]

	// TranscribeFile 打开 path 并转写，文件不存在返回 FILE_NOT_FOUND
	TranscribeFile(ctx context.Context, path string, req *STTRequest) (*STTResponse, error)

	// TranscribeFileAsync 在独立 goroutine 中执行 TranscribeFile
	TranscribeFileAsync(ctx context.Context, path string, req *STTRequest) <-chan types.Result[*STTResponse]

	// Models 返回支持的模型取值
	Models() []string
}

func validateText(req *TTSRequest) error {
	if req == nil || strings.TrimSpace(req.Text) == "" {
		return types.NewError(types.ErrInvalidArgument, "text must not be empty")
	}
	return nil
}

func validateAudio(req *STTRequest) error {
	if req == nil || req.Audio == nil {
		return types.NewError(types.ErrInvalidArgument, "audio must not be nil")
	}
	return nil
}

func validateUnit(name string, v float64) error {
	if v < 0 || v > 1 {
		return types.Errorf(types.ErrInvalidArgument, "%s must be between 0 and 1, got %v", name, v)
	}
	return nil
}
