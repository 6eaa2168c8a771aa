package speech

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
	"unicode/utf8"

	"github.com/BaSui01/callkit/llm/providers"
	"github.com/BaSui01/callkit/types"
)

const audioFormatMP3 = "mp3"

// synthesis 描述一次已归一化的合成调用
type synthesis struct {
	provider string
	model    string
	voice    string
	text     string
	payload  *providers.Payload
}

func runSynthesis(ctx context.Context, inv *providers.Invoker, s synthesis) (*TTSResponse, error) {
	audio, err := inv.Post(ctx, providers.Call{
		Provider:  s.provider,
		Operation: "synthesize",
		Model:     s.model,
	}, s.payload)
	if err != nil {
		return nil, err
	}
	chars := utf8.RuneCountInString(s.text)
	inv.Recorder().RecordSynthesis(s.provider, s.model, chars, len(audio))
	return &TTSResponse{
		Provider:  s.provider,
		Model:     s.model,
		Voice:     s.voice,
		Format:    audioFormatMP3,
		AudioData: audio,
		CharCount: chars,
		CreatedAt: time.Now(),
	}, nil
}

// synthesizeToFile 合成后以 0644 权限写入 path
func synthesizeToFile(ctx context.Context, p TTSProvider, req *TTSRequest, path string) error {
	resp, err := p.Synthesize(ctx, req)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, resp.AudioData, 0o644); err != nil {
		return fmt.Errorf("write audio file %s: %w", path, err)
	}
	return nil
}

// openAudio 打开待转写的音频文件
func openAudio(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, types.Errorf(types.ErrFileNotFound, "file not found at %s", path).WithCause(err)
		}
		return nil, types.Errorf(types.ErrInvalidArgument, "cannot open audio file %s", path).WithCause(err)
	}
	return f, nil
}

// transcribeFile 打开 path，替换 req.Audio 后转写；req 不会被修改
func transcribeFile(ctx context.Context, p STTProvider, path string, req *STTRequest) (*STTResponse, error) {
	f, err := openAudio(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r STTRequest
	if req != nil {
		r = *req
	}
	r.Audio = f
	return p.Transcribe(ctx, &r)
}

func resolveUnit(name string, override, configured *float64, def float64) (float64, error) {
	v := def
	switch {
	case override != nil:
		v = *override
	case configured != nil:
		v = *configured
	}
	if err := validateUnit(name, v); err != nil {
		return 0, err
	}
	return v, nil
}
