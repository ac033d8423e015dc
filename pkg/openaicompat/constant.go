package openaicompat

import "time"

// Presets for the OpenAI-compatible chat endpoints the service knows about.
const (
	PresetOpenAI   = "openai"
	PresetQwen     = "qwen"
	PresetDeepSeek = "deepseek"

	OpenAIBaseURL   = "https://api.openai.com/v1"
	QwenBaseURL     = "https://dashscope-intl.aliyuncs.com/compatible-mode/v1"
	DeepSeekBaseURL = "https://api.deepseek.com/v1"

	OpenAIDefaultModel   = "gpt-3.5-turbo"
	QwenDefaultModel     = "qwen-plus"
	DeepSeekDefaultModel = "deepseek-chat"

	// DefaultTimeout bounds non-streaming calls. Streams rely on ctx only.
	DefaultTimeout = 30 * time.Second
)

var presets = map[string]struct{ baseURL, model string }{
	PresetOpenAI:   {OpenAIBaseURL, OpenAIDefaultModel},
	PresetQwen:     {QwenBaseURL, QwenDefaultModel},
	"alibaba":      {QwenBaseURL, QwenDefaultModel},
	PresetDeepSeek: {DeepSeekBaseURL, DeepSeekDefaultModel},
}
