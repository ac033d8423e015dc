package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// GenerateContent sends a generation request to Gemini API
func (g *geminiImpl) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	resp, err := g.post(ctx, "generateContent", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("gemini: failed to decode response: %w", err)
	}

	return &Response{
		Content: out.text(),
		Usage: Usage{
			InputTokens:  out.UsageMetadata.PromptTokenCount,
			OutputTokens: out.UsageMetadata.CandidatesTokenCount,
			TotalTokens:  out.UsageMetadata.TotalTokenCount,
		},
	}, nil
}

// StreamContent opens a server-sent event stream of partial responses.
func (g *geminiImpl) StreamContent(ctx context.Context, req *Request) (io.ReadCloser, error) {
	resp, err := g.post(ctx, "streamGenerateContent?alt=sse", req)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Model returns the model being used
func (g *geminiImpl) Model() string {
	return g.model
}

func (g *geminiImpl) post(ctx context.Context, method string, req *Request) (*http.Response, error) {
	body, err := json.Marshal(transformRequest(req))
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:%s", strings.TrimRight(g.apiURL, "/"), g.model, method)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini: API call failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("gemini: API error %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return resp, nil
}

// transformRequest maps system turns to system_instruction and assistant to "model".
func transformRequest(req *Request) *generateRequest {
	out := &generateRequest{Contents: make([]content, 0, len(req.Messages))}

	var system []part
	for _, m := range req.Messages {
		switch m.Role {
		case "system":
			system = append(system, part{Text: m.Content})
		case "assistant", roleModel:
			out.Contents = append(out.Contents, content{Role: roleModel, Parts: []part{{Text: m.Content}}})
		default:
			out.Contents = append(out.Contents, content{Role: roleUser, Parts: []part{{Text: m.Content}}})
		}
	}
	if len(system) > 0 {
		out.SystemInstruction = &content{Parts: system}
	}

	temperature := req.Temperature
	out.GenerationConfig = &generationConfig{
		Temperature:     &temperature,
		MaxOutputTokens: req.MaxTokens,
	}
	return out
}

func (r *generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// DecodeDelta extracts the text of one streamed partial response.
func DecodeDelta(data []byte) (string, error) {
	var chunk generateResponse
	if err := json.Unmarshal(data, &chunk); err != nil {
		return "", fmt.Errorf("gemini: malformed chunk: %w", err)
	}
	return chunk.text(), nil
}
