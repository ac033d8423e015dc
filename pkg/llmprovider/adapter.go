package llmprovider

import (
	"context"

	"recall-assistant/pkg/gemini"
	"recall-assistant/pkg/openaicompat"
)

// OpenAICompatAdapter adapts pkg/openaicompat (openai, qwen, deepseek) to StreamProvider.
type OpenAICompatAdapter struct {
	name   string
	client openaicompat.IClient
}

// NewOpenAICompatAdapter creates a new OpenAI-compatible adapter
func NewOpenAICompatAdapter(name string, client openaicompat.IClient) *OpenAICompatAdapter {
	return &OpenAICompatAdapter{name: name, client: client}
}

// GenerateContent implements Provider interface
func (a *OpenAICompatAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	resp, err := a.client.GenerateContent(ctx, toOpenAICompat(req))
	if err != nil {
		return nil, err
	}

	return &Response{
		Content:      resp.Content,
		ProviderName: a.name,
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// StreamContent implements StreamProvider interface
func (a *OpenAICompatAdapter) StreamContent(ctx context.Context, req *Request) (*Stream, error) {
	body, err := a.client.StreamContent(ctx, toOpenAICompat(req))
	if err != nil {
		return nil, err
	}
	return &Stream{
		Body:         body,
		Decode:       openaicompat.DecodeDelta,
		ProviderName: a.name,
		ModelName:    a.client.Model(),
	}, nil
}

// Name returns provider name
func (a *OpenAICompatAdapter) Name() string {
	return a.name
}

// Model returns model name
func (a *OpenAICompatAdapter) Model() string {
	return a.client.Model()
}

func toOpenAICompat(req *Request) *openaicompat.Request {
	msgs := make([]openaicompat.Message, len(req.Messages))
	for i, m := range req.Messages {
		msgs[i] = openaicompat.Message{Role: m.Role, Content: m.Content}
	}
	return &openaicompat.Request{
		Messages:    msgs,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
}

// GeminiAdapter adapts pkg/gemini to StreamProvider.
type GeminiAdapter struct {
	client gemini.IGemini
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	resp, err := a.client.GenerateContent(ctx, toGemini(req))
	if err != nil {
		return nil, err
	}

	return &Response{
		Content:      resp.Content,
		ProviderName: "gemini",
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// StreamContent implements StreamProvider interface
func (a *GeminiAdapter) StreamContent(ctx context.Context, req *Request) (*Stream, error) {
	body, err := a.client.StreamContent(ctx, toGemini(req))
	if err != nil {
		return nil, err
	}
	return &Stream{
		Body:         body,
		Decode:       gemini.DecodeDelta,
		ProviderName: "gemini",
		ModelName:    a.client.Model(),
	}, nil
}

// Name returns provider name
func (a *GeminiAdapter) Name() string {
	return "gemini"
}

// Model returns model name
func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}

func toGemini(req *Request) *gemini.Request {
	msgs := make([]gemini.Message, len(req.Messages))
	for i, m := range req.Messages {
		msgs[i] = gemini.Message{Role: m.Role, Content: m.Content}
	}
	return &gemini.Request{
		Messages:    msgs,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
}
