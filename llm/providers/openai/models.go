package openai

import "github.com/BaSui01/callkit/types"

// Model 是 OpenAI 聊天模型的线上取值。
type Model string

const (
	ModelGPT4Turbo Model = "gpt-4-turbo"
	ModelGPT35     Model = "gpt-3.5-turbo"
	ModelGPT4o     Model = "gpt-4o"
	ModelGPT4      Model = "gpt-4"
	ModelGPT4oMini Model = "gpt-4o-mini"
)

// Models 支持的聊天模型。
var Models = types.NewEnum("OpenAIModels", "model",
	types.M("GPT_4_TURBO", ModelGPT4Turbo),
	types.M("GPT_35_TURBO", ModelGPT35),
	types.M("GPT_4O", ModelGPT4o),
	types.M("GPT_4", ModelGPT4),
	types.M("GPT_4O_MINI", ModelGPT4oMini),
)

const (
	DefaultBaseURL      = "https://api.openai.com"
	DefaultModel        = ModelGPT4oMini
	DefaultTemperature  = 0.8
	DefaultSystemPrompt = "You are a helpful assistant."
)
