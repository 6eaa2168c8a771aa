package providers

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type synthBody struct {
	Text          string            `json:"text"`
	ModelID       string            `json:"model_id"`
	VoiceSettings voiceSettings     `json:"voice_settings"`
	Extra         map[string]string `json:"extra,omitempty"`
}

// 属性: 相同输入构建出字节级一致的请求体与请求头。
func TestProperty_JSONPayloadDeterministic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("same input yields identical payload", prop.ForAll(
		func(text, model string, stability, similarity float64, extra map[string]string) bool {
			body := synthBody{
				Text:          text,
				ModelID:       model,
				VoiceSettings: voiceSettings{Stability: stability, SimilarityBoost: similarity},
				Extra:         extra,
			}
			build := func() (*Payload, []byte) {
				h := make(http.Header)
				h.Set("xi-api-key", "key")
				p, err := JSONPayload("https://api.elevenlabs.io/v1/text-to-speech/v/stream", h, body)
				if err != nil {
					t.Logf("build failed: %v", err)
					return nil, nil
				}
				data, err := p.Bytes()
				if err != nil {
					return nil, nil
				}
				return p, data
			}

			p1, b1 := build()
			p2, b2 := build()
			if p1 == nil || p2 == nil {
				return false
			}
			if !bytes.Equal(b1, b2) {
				t.Logf("body mismatch: %s vs %s", b1, b2)
				return false
			}
			return p1.URL == p2.URL &&
				p1.Header.Get("xi-api-key") == p2.Header.Get("xi-api-key") &&
				p1.Header.Get("Content-Type") == "application/json"
		},
		gen.AnyString(),
		gen.AlphaString(),
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
		gen.MapOf(gen.AlphaString(), gen.AlphaString()),
	))

	properties.TestingRun(t)
}
