package speech

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/BaSui01/callkit/llm/providers"
	"github.com/BaSui01/callkit/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type captured struct {
	mu     sync.Mutex
	hits   int
	path   string
	query  string
	header http.Header
	body   []byte
	length int64
	chunks []string
}

// audioServer 记录请求并返回固定音频字节
func audioServer(t *testing.T, audio []byte) (*httptest.Server, *captured) {
	t.Helper()
	c := &captured{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.mu.Lock()
		c.hits++
		c.path = r.URL.Path
		c.query = r.URL.RawQuery
		c.header = r.Header.Clone()
		c.body, _ = io.ReadAll(r.Body)
		c.mu.Unlock()
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write(audio)
	}))
	t.Cleanup(server.Close)
	return server, c
}

type synthRecorder struct {
	mu                sync.Mutex
	provider, model   string
	chars, audioBytes int
}

func (r *synthRecorder) RecordCall(string, string, int, time.Duration, int) {}
func (r *synthRecorder) RecordTokens(string, string, int, int) {}
func (r *synthRecorder) RecordSynthesis(provider, model string, chars, audioBytes int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.provider, r.model, r.chars, r.audioBytes = provider, model, chars, audioBytes
}

func ptr(v float64) *float64 { return &v }

func base(key, url string) providers.BaseProviderConfig {
	return providers.BaseProviderConfig{APIKey: key, BaseURL: url}
}

// --- payload builders ---

func TestBuildDeepgramSpeakPayload(t *testing.T) {
	p, err := BuildDeepgramSpeakPayload(DeepgramSpeakParams{
		APIKey:  "dg-key",
		BaseURL: DeepgramBaseURL,
		Model:   "aura",
		Voice:   "zeus",
		Text:    "hello",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, p.Method)
	assert.Equal(t, "https://api.deepgram.com/v1/speak?model=aura-zeus-en", p.URL)
	assert.Equal(t, "Token dg-key", p.Header.Get("Authorization"))
	assert.Equal(t, "application/json", p.Header.Get("Content-Type"))
	body, err := p.Bytes()
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"hello"}`, string(body))
}

func TestBuildElevenLabsPayload(t *testing.T) {
	p, err := BuildElevenLabsPayload(ElevenLabsParams{
		APIKey:     "xi-key",
		BaseURL:    ElevenLabsBaseURL,
		Model:      "eleven_turbo_v2_5",
		Voice:      "CwhRBWXzGAHq8TQ4Fs17",
		Text:       "party tonight",
		Stability:  0.5,
		Similarity: 0.8,
	})
	require.NoError(t, err)

	assert.Equal(t, "https://api.elevenlabs.io/v1/text-to-speech/CwhRBWXzGAHq8TQ4Fs17/stream", p.URL)
	assert.Equal(t, "xi-key", p.Header.Get("xi-api-key"))
	assert.Empty(t, p.Header.Get("Authorization"))
	body, err := p.Bytes()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"text": "party tonight",
		"model_id": "eleven_turbo_v2_5",
		"voice_settings": {"stability": 0.5, "similarity_boost": 0.8, "style": 0, "use_speaker_boost": true}
	}`, string(body))
}

func TestBuildOpenAISpeechPayload(t *testing.T) {
	p, err := BuildOpenAISpeechPayload(OpenAISpeechParams{
		APIKey:  "sk-test",
		BaseURL: OpenAIBaseURL,
		Model:   "tts-1-hd",
		Voice:   "alloy",
		Text:    "hi",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://api.openai.com/v1/audio/speech", p.URL)
	assert.Equal(t, "Bearer sk-test", p.Header.Get("Authorization"))
	body, err := p.Bytes()
	require.NoError(t, err)
	assert.JSONEq(t, `{"model":"tts-1-hd","voice":"alloy","input":"hi"}`, string(body))
}

// --- providers ---

func TestDeepgramTTS_Defaults(t *testing.T) {
	p, err := NewDeepgramTTS(DeepgramTTSConfig{}, nil)
	require.NoError(t, err)

	params, err := p.Params(&TTSRequest{Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, DeepgramBaseURL, params.BaseURL)
	assert.Equal(t, DeepgramVoice("arcas"), params.Voice)
	assert.Equal(t, DeepgramTTSModel("aura"), params.Model)
	assert.Equal(t, "deepgram", p.Name())
	assert.Equal(t, []string{"aura"}, p.Models())
}

func TestDeepgramTTS_Synthesize(t *testing.T) {
	audio := []byte(strings.Repeat("\xff\xfb", 1024))
	server, c := audioServer(t, audio)

	rec := &synthRecorder{}
	p, err := NewDeepgramTTS(DeepgramTTSConfig{BaseProviderConfig: base("dg-key", server.URL)}, zaptest.NewLogger(t),
		providers.WithInvokerOptions(providers.WithRecorder(rec)))
	require.NoError(t, err)

	resp, err := p.Synthesize(context.Background(), &TTSRequest{Text: "héllo", Voice: "luna"})
	require.NoError(t, err)

	assert.Equal(t, 1, c.hits)
	assert.Equal(t, "/v1/speak", c.path)
	assert.Equal(t, "model=aura-luna-en", c.query)
	assert.Equal(t, "Token dg-key", c.header.Get("Authorization"))
	assert.JSONEq(t, `{"text":"héllo"}`, string(c.body))

	assert.Equal(t, audio, resp.AudioData)
	assert.Equal(t, "deepgram", resp.Provider)
	assert.Equal(t, "luna", resp.Voice)
	assert.Equal(t, "aura", resp.Model)
	assert.Equal(t, "mp3", resp.Format)
	assert.Equal(t, 5, resp.CharCount)

	read, err := io.ReadAll(resp.Reader())
	require.NoError(t, err)
	assert.Equal(t, audio, read)
	read, err = io.ReadAll(resp.Reader())
	require.NoError(t, err)
	assert.Equal(t, audio, read, "Reader starts from the beginning each time")

	assert.Equal(t, "deepgram", rec.provider)
	assert.Equal(t, 5, rec.chars)
	assert.Equal(t, len(audio), rec.audioBytes)
}

func TestElevenLabs_Synthesize(t *testing.T) {
	server, c := audioServer(t, []byte("ID3audio"))

	p, err := NewElevenLabs(ElevenLabsConfig{BaseProviderConfig: base("xi-key", server.URL)}, zaptest.NewLogger(t))
	require.NoError(t, err)

	resp, err := p.Synthesize(context.Background(), &TTSRequest{
		Text:       "Hi, how are you?",
		Voice:      "ROGER",
		Model:      ElevenLabsModel("eleven_multilingual_v2"),
		Stability:  ptr(0.0),
		Similarity: ptr(1.0),
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1/text-to-speech/CwhRBWXzGAHq8TQ4Fs17/stream", c.path)
	assert.Equal(t, "xi-key", c.header.Get("xi-api-key"))
	assert.JSONEq(t, `{
		"text": "Hi, how are you?",
		"model_id": "eleven_multilingual_v2",
		"voice_settings": {"stability": 0, "similarity_boost": 1, "style": 0, "use_speaker_boost": true}
	}`, string(c.body))
	assert.Equal(t, []byte("ID3audio"), resp.AudioData)
	assert.Equal(t, "CwhRBWXzGAHq8TQ4Fs17", resp.Voice)
}

func TestElevenLabs_Defaults(t *testing.T) {
	p, err := NewElevenLabs(ElevenLabsConfig{}, nil)
	require.NoError(t, err)

	params, err := p.Params(&TTSRequest{Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, DefaultElevenLabsVoice, params.Voice)
	assert.Equal(t, DefaultElevenLabsModel, params.Model)
	assert.InDelta(t, 0.5, params.Stability, 1e-9)
	assert.InDelta(t, 0.8, params.Similarity, 1e-9)

	voices, err := p.ListVoices(context.Background())
	require.NoError(t, err)
	require.Len(t, voices, 20)
	assert.Equal(t, Voice{ID: "9BWtsMINqrJLrRacOk9x", Name: "ARIA", Provider: "elevenlabs"}, voices[0])
	assert.Equal(t, "BILL", voices[19].Name)
}

func TestElevenLabs_UnitRange(t *testing.T) {
	_, err := NewElevenLabs(ElevenLabsConfig{Stability: ptr(1.5)}, nil)
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrInvalidArgument))

	p, err := NewElevenLabs(ElevenLabsConfig{}, nil)
	require.NoError(t, err)
	_, err = p.Params(&TTSRequest{Text: "hi", Similarity: ptr(-0.1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "similarity")
}

func TestOpenAITTS_Synthesize(t *testing.T) {
	server, c := audioServer(t, []byte("mp3"))

	p, err := NewOpenAITTS(OpenAITTSConfig{BaseProviderConfig: base("sk-test", server.URL), Voice: "SHIMMER"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	resp, err := p.Synthesize(context.Background(), &TTSRequest{Text: "hi", Model: "tts_1"})
	require.NoError(t, err)

	assert.Equal(t, "/v1/audio/speech", c.path)
	assert.Equal(t, "Bearer sk-test", c.header.Get("Authorization"))
	assert.JSONEq(t, `{"model":"tts-1","voice":"shimmer","input":"hi"}`, string(c.body))
	assert.Equal(t, "shimmer", resp.Voice)
	assert.Equal(t, []string{"tts-1", "tts-1-hd"}, p.Models())
}

func TestTTS_ValidationBeforeNetwork(t *testing.T) {
	server, c := audioServer(t, nil)
	cfg := base("key", server.URL)

	dg, err := NewDeepgramTTS(DeepgramTTSConfig{BaseProviderConfig: cfg}, nil)
	require.NoError(t, err)
	el, err := NewElevenLabs(ElevenLabsConfig{BaseProviderConfig: cfg}, nil)
	require.NoError(t, err)
	oa, err := NewOpenAITTS(OpenAITTSConfig{BaseProviderConfig: cfg}, nil)
	require.NoError(t, err)

	for _, p := range []TTSProvider{dg, el, oa} {
		t.Run(p.Name(), func(t *testing.T) {
			for _, req := range []*TTSRequest{
				nil,
				{Text: ""},
				{Text: " \n"},
				{Text: "hi", Voice: "nobody"},
				{Text: "hi", Model: "nope"},
				{Text: "hi", Voice: 3},
			} {
				_, err := p.Synthesize(context.Background(), req)
				require.Error(t, err)
				assert.True(t, types.IsErrorCode(err, types.ErrInvalidArgument), err.Error())
			}
		})
	}
	assert.Zero(t, c.hits)
}

func TestTTS_InvalidSelectorMessage(t *testing.T) {
	p, err := NewOpenAITTS(OpenAITTSConfig{}, nil)
	require.NoError(t, err)

	_, err = p.Params(&TTSRequest{Text: "hi", Voice: "robot"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid voice name: 'robot'")
	assert.Contains(t, err.Error(), "ALLOY, ECHO, FABLE, ONYX, NOVA, SHIMMER")
}

func TestTTS_InvalidConfigSelector(t *testing.T) {
	_, err := NewDeepgramTTS(DeepgramTTSConfig{Voice: "bob"}, nil)
	assert.True(t, types.IsErrorCode(err, types.ErrInvalidArgument))
	_, err = NewOpenAITTS(OpenAITTSConfig{Model: "tts-2"}, nil)
	assert.True(t, types.IsErrorCode(err, types.ErrInvalidArgument))
}

func TestTTS_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":{"status":"invalid_api_key","message":"Invalid API key"}}`))
	}))
	defer server.Close()

	p, err := NewElevenLabs(ElevenLabsConfig{BaseProviderConfig: base("bad", server.URL)}, nil)
	require.NoError(t, err)

	_, err = p.Synthesize(context.Background(), &TTSRequest{Text: "hi"})
	require.Error(t, err)
	apiErr, ok := types.AsError(err)
	require.True(t, ok)
	assert.Equal(t, types.ErrUnauthorized, apiErr.Code)
	assert.Equal(t, "elevenlabs", apiErr.Provider)
	assert.Equal(t, "Invalid API key (status: invalid_api_key)", apiErr.Message)
}

func TestTTS_SynthesizeToFile(t *testing.T) {
	server, _ := audioServer(t, []byte("audio-bytes"))
	p, err := NewDeepgramTTS(DeepgramTTSConfig{BaseProviderConfig: base("k", server.URL)}, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.mp3")
	require.NoError(t, p.SynthesizeToFile(context.Background(), &TTSRequest{Text: "hi"}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("audio-bytes"), data)

	err = p.SynthesizeToFile(context.Background(), &TTSRequest{Text: "hi"}, filepath.Join(t.TempDir(), "missing", "out.mp3"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write audio file")
}

func TestTTS_SynthesizeAsync(t *testing.T) {
	server, _ := audioServer(t, []byte("async"))
	p, err := NewOpenAITTS(OpenAITTSConfig{BaseProviderConfig: base("k", server.URL)}, nil)
	require.NoError(t, err)

	ctx := context.Background()
	chans := []<-chan types.Result[*TTSResponse]{
		p.SynthesizeAsync(ctx, &TTSRequest{Text: "one"}),
		p.SynthesizeAsync(ctx, &TTSRequest{Text: "two"}),
	}
	for _, ch := range chans {
		resp, err := types.Await(ctx, ch)
		require.NoError(t, err)
		assert.Equal(t, []byte("async"), resp.AudioData)
	}

	_, err = types.Await(ctx, p.SynthesizeAsync(ctx, &TTSRequest{}))
	assert.True(t, types.IsErrorCode(err, types.ErrInvalidArgument))
}
