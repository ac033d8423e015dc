package llmprovider

import (
	"context"
	"io"
)

// Roles used in Message.Role.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// GenerateContent sends a generation request and returns a response
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Name returns the provider name (e.g., "qwen", "gemini")
	Name() string

	// Model returns the model being used
	Model() string
}

// StreamProvider is a Provider that can also stream partial output.
type StreamProvider interface {
	Provider

	// StreamContent opens a streaming request. The returned Stream's Body
	// is a raw server-sent event stream owned by the caller.
	StreamContent(ctx context.Context, req *Request) (*Stream, error)
}

// DeltaDecoder turns the data payload of one stream frame into a text delta.
type DeltaDecoder func(data []byte) (string, error)

// Stream is an established streaming response.
type Stream struct {
	Body         io.ReadCloser
	Decode       DeltaDecoder
	ProviderName string
	ModelName    string
}

// Request represents a normalized LLM generation request
type Request struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Message represents a conversation message
type Message struct {
	Role    string
	Content string
}

// Response represents a normalized LLM generation response
type Response struct {
	Content      string
	ProviderName string
	ModelName    string
	Usage        *Usage
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
