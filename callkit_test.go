package callkit

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/BaSui01/callkit/config"
	"github.com/BaSui01/callkit/llm"
	"github.com/BaSui01/callkit/llm/speech"
	"github.com/BaSui01/callkit/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// vendorServer 模拟三家服务商的接口
func vendorServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"model":"gpt-4o-mini","choices":[{"message":{"role":"assistant","content":"pong"}}],"usage":{"prompt_tokens":3,"completion_tokens":1}}`)
	})
	mux.HandleFunc("/v1/speak", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "deepgram-audio")
	})
	mux.HandleFunc("/v1/audio/speech", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "openai-audio")
	})
	mux.HandleFunc("/v1/text-to-speech/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "callkit-test/1.0", r.Header.Get("User-Agent"))
		_, _ = io.WriteString(w, "elevenlabs-audio")
	})
	mux.HandleFunc("/v1/listen", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"results":{"channels":[{"alternatives":[{"transcript":"pong"}]}]}}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testConfig(baseURL string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.HTTP.UserAgent = "callkit-test/1.0"
	cfg.Providers.OpenAI.APIKey = "sk-test"
	cfg.Providers.OpenAI.BaseURL = baseURL
	cfg.Providers.Deepgram.APIKey = "dg-test"
	cfg.Providers.Deepgram.BaseURL = baseURL
	cfg.Providers.ElevenLabs.APIKey = "xi-test"
	cfg.Providers.ElevenLabs.BaseURL = baseURL
	return cfg
}

func TestNew_BuildsConfiguredProviders(t *testing.T) {
	server := vendorServer(t)
	c, err := New(testConfig(server.URL), zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, ProviderSet{
		Chat: []string{"openai"},
		TTS:  []string{"deepgram", "elevenlabs", "openai"},
		STT:  []string{"deepgram"},
	}, c.Providers())
}

func TestNew_SkipsProvidersWithoutKey(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Providers.Deepgram.APIKey = "dg-test"

	c, err := New(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"deepgram"}, c.Providers().TTS)
	assert.Empty(t, c.Providers().Chat)

	_, err = c.LLM("")
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrProviderNotFound))
	assert.Contains(t, err.Error(), "not configured")

	_, err = c.TTS("polly")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tts provider")
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Providers.OpenAI.Temperature = 5
	_, err := New(cfg, nil)
	require.Error(t, err)

	cfg = config.DefaultConfig()
	cfg.Providers.OpenAI.APIKey = "sk"
	cfg.Providers.OpenAI.Model = "gpt-5"
	_, err = New(cfg, nil)
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrInvalidArgument))
}

func TestNew_NilConfig(t *testing.T) {
	c, err := New(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, ProviderSet{Chat: []string{}, TTS: []string{}, STT: []string{}}, c.Providers())
}

func TestClient_DefaultsAndCalls(t *testing.T) {
	server := vendorServer(t)
	cfg := testConfig(server.URL)
	cfg.Defaults.TTS = "elevenlabs"

	c, err := New(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	ctx := context.Background()

	chat, err := c.LLM("")
	require.NoError(t, err)
	text, err := llm.ChatText(ctx, chat, "ping")
	require.NoError(t, err)
	assert.Equal(t, "pong", text)

	tts, err := c.TTS("")
	require.NoError(t, err)
	assert.Equal(t, "elevenlabs", tts.Name())
	resp, err := tts.Synthesize(ctx, &speech.TTSRequest{Text: text})
	require.NoError(t, err)
	assert.Equal(t, "elevenlabs-audio", string(resp.AudioData))

	tts, err = c.TTS(" DeepGram ")
	require.NoError(t, err)
	assert.Equal(t, "deepgram", tts.Name())

	stt, err := c.STT("")
	require.NoError(t, err)
	tr, err := stt.Transcribe(ctx, &speech.STTRequest{Audio: strings.NewReader(string(resp.AudioData))})
	require.NoError(t, err)
	assert.Equal(t, "pong", tr.Text)
}

func TestClient_MetricsHandler(t *testing.T) {
	server := vendorServer(t)
	reg := prometheus.NewRegistry()
	c, err := New(testConfig(server.URL), nil, WithRegistry(reg))
	require.NoError(t, err)
	assert.Same(t, reg, c.Registry())

	ctx := context.Background()
	tts, err := c.TTS("openai")
	require.NoError(t, err)
	_, err = tts.Synthesize(ctx, &speech.TTSRequest{Text: "hello"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	c.MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `callkit_provider_calls_total{operation="synthesize",provider="openai",status="2xx"} 1`)
	assert.Contains(t, body, `callkit_tts_characters_total{model="tts-1-hd",provider="openai"} 5`)
}

func TestNew_SharedRegistry(t *testing.T) {
	server := vendorServer(t)
	reg := prometheus.NewRegistry()

	first, err := New(testConfig(server.URL), nil, WithRegistry(reg))
	require.NoError(t, err)
	var second *Client
	require.NotPanics(t, func() {
		second, err = New(testConfig(server.URL), nil, WithRegistry(reg))
	})
	require.NoError(t, err)

	ctx := context.Background()
	for _, c := range []*Client{first, second} {
		tts, err := c.TTS("deepgram")
		require.NoError(t, err)
		_, err = tts.Synthesize(ctx, &speech.TTSRequest{Text: "hi"})
		require.NoError(t, err)
	}

	rec := httptest.NewRecorder()
	first.MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `callkit_provider_calls_total{operation="synthesize",provider="deepgram",status="2xx"} 2`)
}

func TestNew_ConflictingRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "callkit",
		Name:      "tts_characters_total",
		Help:      "unrelated",
	}))

	c, err := New(nil, nil, WithRegistry(reg))
	require.Error(t, err)
	assert.Nil(t, c)
}

func TestClient_MetricsDisabled(t *testing.T) {
	server := vendorServer(t)
	cfg := testConfig(server.URL)
	cfg.Metrics.Enabled = false

	c, err := New(cfg, nil)
	require.NoError(t, err)
	families, err := c.Registry().Gather()
	require.NoError(t, err)
	assert.Empty(t, families)
}

func TestClient_SharedHTTPClient(t *testing.T) {
	server := vendorServer(t)
	calls := 0
	client := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		return http.DefaultTransport.RoundTrip(r)
	})}

	c, err := New(testConfig(server.URL), nil, WithHTTPClient(client))
	require.NoError(t, err)
	tts, err := c.TTS("deepgram")
	require.NoError(t, err)
	_, err = tts.Synthesize(context.Background(), &speech.TTSRequest{Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

type countingRecorder struct {
	calls, characters int
}

func (r *countingRecorder) RecordCall(string, string, int, time.Duration, int) { r.calls++ }
func (r *countingRecorder) RecordSynthesis(_, _ string, characters, _ int) {
	r.characters += characters
}
func (r *countingRecorder) RecordTokens(string, string, int, int) {}

func TestClient_ExtraRecorder(t *testing.T) {
	server := vendorServer(t)
	rec := &countingRecorder{}

	c, err := New(testConfig(server.URL), nil, WithRecorder(rec), WithRecorder(nil))
	require.NoError(t, err)
	tts, err := c.TTS("deepgram")
	require.NoError(t, err)
	_, err = tts.Synthesize(context.Background(), &speech.TTSRequest{Text: "hello"})
	require.NoError(t, err)

	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, 5, rec.characters)

	// prometheus 收集器同时生效
	families, err := c.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
