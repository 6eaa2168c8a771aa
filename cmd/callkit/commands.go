package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BaSui01/callkit/llm"
	"github.com/BaSui01/callkit/llm/speech"
	"github.com/BaSui01/callkit/types"
)

// =============================================================================
// 💬 chat 命令
// =============================================================================

func runChat(ctx context.Context, args []string, stdout io.Writer) error {
	var cf commonFlags
	fs := newFlagSet("chat", &cf)
	temperature := fs.Float64("temperature", -1, "Sampling temperature in [0,2]; negative uses the configured value")
	system := fs.String("system", "", "System prompt override")
	if err := fs.Parse(args); err != nil {
		return err
	}
	text := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("chat: missing prompt text")
	}

	s, err := openSession(ctx, &cf)
	if err != nil {
		return err
	}
	defer s.close()

	provider, err := s.client.LLM(cf.provider)
	if err != nil {
		return err
	}

	req := &llm.ChatRequest{Text: text, SystemPrompt: *system}
	if cf.model != "" {
		req.Model = cf.model
	}
	if *temperature >= 0 {
		req.Temperature = llm.Float(*temperature)
	}

	var resp *llm.ChatResponse
	if cf.async {
		resp, err = types.Await(ctx, provider.ChatAsync(ctx, req))
	} else {
		resp, err = provider.Chat(ctx, req)
	}
	if err != nil {
		return err
	}

	s.logger.Debug("chat completed",
		zap.String("model", resp.Model),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)
	fmt.Fprintln(stdout, resp.Content)
	return nil
}

// =============================================================================
// 🔊 speak 命令
// =============================================================================

func runSpeak(ctx context.Context, args []string, stdout io.Writer) error {
	var cf commonFlags
	fs := newFlagSet("speak", &cf)
	if err := fs.Parse(args); err != nil {
		return err
	}
	text := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("speak: missing text")
	}

	s, err := openSession(ctx, &cf)
	if err != nil {
		return err
	}
	defer s.close()

	names := splitList(cf.provider)
	if len(names) == 0 {
		names = []string{""}
	}
	targets := make([]speech.TTSProvider, len(names))
	for i, name := range names {
		p, err := s.client.TTS(name)
		if err != nil {
			return err
		}
		targets[i] = p
	}

	req := &speech.TTSRequest{Text: text}
	if cf.voice != "" {
		req.Voice = cf.voice
	}
	if cf.model != "" {
		req.Model = cf.model
	}

	// 多个服务商并发合成，任一失败即取消其余请求
	results := make([]*speech.TTSResponse, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range targets {
		g.Go(func() error {
			var (
				resp *speech.TTSResponse
				err  error
			)
			if cf.async {
				resp, err = types.Await(gctx, p.SynthesizeAsync(gctx, req))
			} else {
				resp, err = p.Synthesize(gctx, req)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", p.Name(), err)
			}
			results[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	for i, resp := range results {
		path := outputPath(cf.out, targets[i].Name(), len(targets) > 1)
		if err := writeFile(path, resp.AudioData); err != nil {
			return err
		}
		green.Fprintf(stdout, "✓ %s", resp.Provider)
		fmt.Fprintf(stdout, " %s/%s → %s (%d bytes)\n", resp.Model, resp.Voice, path, len(resp.AudioData))
	}
	return nil
}

// outputPath 多服务商时在扩展名前插入服务商名称
func outputPath(out, provider string, multi bool) string {
	if !multi {
		return out
	}
	ext := filepath.Ext(out)
	return strings.TrimSuffix(out, ext) + "-" + provider + ext
}

// =============================================================================
// 📝 transcribe 命令
// =============================================================================

func runTranscribe(ctx context.Context, args []string, stdout io.Writer) error {
	var cf commonFlags
	fs := newFlagSet("transcribe", &cf)
	language := fs.String("language", "", "Language code, e.g. en or pt-BR")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("transcribe: expected exactly one audio file")
	}

	s, err := openSession(ctx, &cf)
	if err != nil {
		return err
	}
	defer s.close()

	provider, err := s.client.STT(cf.provider)
	if err != nil {
		return err
	}

	req := &speech.STTRequest{Language: *language}
	if cf.model != "" {
		req.Model = cf.model
	}

	var resp *speech.STTResponse
	if cf.async {
		resp, err = types.Await(ctx, provider.TranscribeFileAsync(ctx, fs.Arg(0), req))
	} else {
		resp, err = provider.TranscribeFile(ctx, fs.Arg(0), req)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, resp.Text)
	return nil
}

// =============================================================================
// 🎙️ voices / models 命令
// =============================================================================

func runVoices(ctx context.Context, args []string, stdout io.Writer) error {
	var cf commonFlags
	fs := newFlagSet("voices", &cf)
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openSession(ctx, &cf)
	if err != nil {
		return err
	}
	defer s.close()

	provider, err := s.client.TTS(cf.provider)
	if err != nil {
		return err
	}
	voices, err := provider.ListVoices(ctx)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	bold.Fprintf(stdout, "%s voices\n", provider.Name())
	for _, v := range voices {
		fmt.Fprintf(stdout, "  %-12s %s\n", v.Name, v.ID)
	}
	return nil
}

func runModels(ctx context.Context, args []string, stdout io.Writer) error {
	var cf commonFlags
	fs := newFlagSet("models", &cf)
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openSession(ctx, &cf)
	if err != nil {
		return err
	}
	defer s.close()

	bold := color.New(color.Bold)
	set := s.client.Providers()
	for _, name := range set.Chat {
		p, err := s.client.LLM(name)
		if err != nil {
			return err
		}
		bold.Fprintf(stdout, "chat/%s\n", name)
		fmt.Fprintf(stdout, "  %s\n", strings.Join(p.Models(), ", "))
	}
	for _, name := range set.TTS {
		p, err := s.client.TTS(name)
		if err != nil {
			return err
		}
		bold.Fprintf(stdout, "tts/%s\n", name)
		fmt.Fprintf(stdout, "  %s\n", strings.Join(p.Models(), ", "))
	}
	for _, name := range set.STT {
		p, err := s.client.STT(name)
		if err != nil {
			return err
		}
		bold.Fprintf(stdout, "stt/%s\n", name)
		fmt.Fprintf(stdout, "  %s\n", strings.Join(p.Models(), ", "))
	}
	if len(set.Chat)+len(set.TTS)+len(set.STT) == 0 {
		color.New(color.FgYellow).Fprintln(stdout, "no providers configured: set OPENAI_API_KEY, DEEPGRAM_API_KEY or ELEVENLABS_API_KEY")
	}
	return nil
}
