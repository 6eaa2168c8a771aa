package speech

import "github.com/BaSui01/callkit/types"

type (
	DeepgramVoice    string
	DeepgramTTSModel string
	DeepgramSTTModel string
	ElevenLabsVoice  string
	ElevenLabsModel  string
	OpenAIVoice      string
	OpenAITTSModel   string
)

// DeepgramTTSVoices Deepgram Aura 声音。
var DeepgramTTSVoices = types.NewEnum("DeepgramTTSVoices", "voice",
	types.M("ASTERIA", DeepgramVoice("asteria")),
	types.M("LUNA", DeepgramVoice("luna")),
	types.M("STELLA", DeepgramVoice("stella")),
	types.M("ATHENA", DeepgramVoice("athena")),
	types.M("HERA", DeepgramVoice("hera")),
	types.M("ORION", DeepgramVoice("orion")),
	types.M("ARCAS", DeepgramVoice("arcas")),
	types.M("PERSEUS", DeepgramVoice("perseus")),
	types.M("ANGUS", DeepgramVoice("angus")),
	types.M("ORPHEUS", DeepgramVoice("orpheus")),
	types.M("HELIOS", DeepgramVoice("helios")),
	types.M("ZEUS", DeepgramVoice("zeus")),
)

var DeepgramTTSModels = types.NewEnum("DeepgramTTSModels", "model",
	types.M("AURA", DeepgramTTSModel("aura")),
)

var DeepgramSTTModels = types.NewEnum("DeepgramSTTModels", "model",
	types.M("NOVA", DeepgramSTTModel("nova")),
	types.M("NOVA_2", DeepgramSTTModel("nova-2")),
	types.M("BASE", DeepgramSTTModel("base")),
	types.M("ENHANCED", DeepgramSTTModel("enhanced")),
)

// ElevenLabsVoices 预置声音，取值为 voice id。
var ElevenLabsVoices = types.NewEnum("ElevenLabsTTSVoices", "voice",
	types.M("ARIA", ElevenLabsVoice("9BWtsMINqrJLrRacOk9x")),
	types.M("ROGER", ElevenLabsVoice("CwhRBWXzGAHq8TQ4Fs17")),
	types.M("SARAH", ElevenLabsVoice("EXAVITQu4vr4xnSDxMaL")),
	types.M("LAURA", ElevenLabsVoice("FGY2WhTYpPnrIDTdsKH5")),
	types.M("CHARLIE", ElevenLabsVoice("IKne3meq5aSn9XLyUdCD")),
	types.M("GEORGE", ElevenLabsVoice("JBFqnCBsd6RMkjVDRZzb")),
	types.M("CALLUM", ElevenLabsVoice("N2lVS1w4EtoT3dr4eOWO")),
	types.M("RIVER", ElevenLabsVoice("SAz9YHcvj6GT2YYXdXww")),
	types.M("LIAM", ElevenLabsVoice("TX3LPaxmHKxFdv7VOQHJ")),
	types.M("CHARLOTTE", ElevenLabsVoice("XB0fDUnXU5powFXDhCwa")),
	types.M("ALICE", ElevenLabsVoice("Xb7hH8MSUJpSbSDYk0k2")),
	types.M("MATILDA", ElevenLabsVoice("XrExE9yKIg1WjnnlVkGX")),
	types.M("WILL", ElevenLabsVoice("bIHbv24MWmeRgasZH58o")),
	types.M("JESSICA", ElevenLabsVoice("cgSgspJ2msm6clMCkdW9")),
	types.M("ERIC", ElevenLabsVoice("cjVigY5qzO86Huf0OWal")),
	types.M("CHRIS", ElevenLabsVoice("iP95p4xoKVk53GoZ742B")),
	types.M("BRIAN", ElevenLabsVoice("nPczCjzI2devNBz1zQrb")),
	types.M("DANIEL", ElevenLabsVoice("onwK4e9ZLuTAKqWW03F9")),
	types.M("LILY", ElevenLabsVoice("pFZP5JQG7iQjIQuC4Bku")),
	types.M("BILL", ElevenLabsVoice("pqHfZKP75CvOlQylNhV4")),
)

var ElevenLabsModels = types.NewEnum("ElevenLabsTTSModels", "model",
	types.M("ELEVEN_MULTILINGUAL_V2", ElevenLabsModel("eleven_multilingual_v2")),
	types.M("ELEVEN_TURBO_V2_5", ElevenLabsModel("eleven_turbo_v2_5")),
	types.M("ELEVEN_TURBO_V2", ElevenLabsModel("eleven_turbo_v2")),
	types.M("ELEVEN_MULTILINGUAL_V1", ElevenLabsModel("eleven_multilingual_v1")),
	types.M("ELEVEN_MONOLINGUAL_V1", ElevenLabsModel("eleven_monolingual_v1")),
)

var OpenAITTSVoices = types.NewEnum("OpenAITTSVoices", "voice",
	types.M("ALLOY", OpenAIVoice("alloy")),
	types.M("ECHO", OpenAIVoice("echo")),
	types.M("FABLE", OpenAIVoice("fable")),
	types.M("ONYX", OpenAIVoice("onyx")),
	types.M("NOVA", OpenAIVoice("nova")),
	types.M("SHIMMER", OpenAIVoice("shimmer")),
)

var OpenAITTSModels = types.NewEnum("OpenAITTSModels", "model",
	types.M("TTS_1", OpenAITTSModel("tts-1")),
	types.M("TTS_1_HD", OpenAITTSModel("tts-1-hd")),
)

// listVoices 将声音枚举转换为 Voice 列表
func listVoices[T ~string](provider string, e *types.Enum[T]) []Voice {
	members := e.Members()
	out := make([]Voice, len(members))
	for i, m := range members {
		out[i] = Voice{ID: string(m.Value), Name: m.Name, Provider: provider}
	}
	return out
}

func enumValues[T ~string](e *types.Enum[T]) []string {
	values := e.Values()
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
