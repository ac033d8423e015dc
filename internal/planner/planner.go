package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"recall-assistant/internal/model"
	"recall-assistant/pkg/llmprovider"
)

// Plan returns Search(phrase) when the model asks for retrieval, AnswerDirectly(query) otherwise.
func (p *QueryPlanner) Plan(ctx context.Context, query string) model.SearchPlan {
	if strings.TrimSpace(query) == "" {
		return p.fallback(ctx, query, ReasonBlankQuery, nil)
	}

	resp, err := p.llm.GenerateContent(ctx, &llmprovider.Request{
		Messages: []llmprovider.Message{
			{Role: llmprovider.RoleUser, Content: fmt.Sprintf(PromptPlanner, query)},
		},
		Temperature: p.cfg.Temperature,
		MaxTokens:   p.cfg.MaxTokens,
	})
	if err != nil {
		return p.fallback(ctx, query, ReasonLLMCallFailed, err)
	}

	plan, reason := decodePlan(resp.Content, query)
	if reason != "" {
		return p.fallback(ctx, query, reason, nil)
	}

	p.metrics.ObservePlan(plan.Kind().String(), false)
	if phrase, ok := plan.Phrase(); ok {
		p.l.Infof(ctx, "%s: search %q", LogPrefixPlan, phrase)
	} else {
		p.l.Infof(ctx, "%s: answer directly", LogPrefixPlan)
	}
	return plan
}

func (p *QueryPlanner) fallback(ctx context.Context, query, reason string, err error) model.SearchPlan {
	if err != nil {
		p.l.Warnf(ctx, "%s: %s, answering directly: %v", LogPrefixPlan, reason, err)
	} else if reason != ReasonBlankQuery {
		p.l.Warnf(ctx, "%s: %s, answering directly", LogPrefixPlan, reason)
	}
	p.metrics.ObservePlan(model.PlanAnswerDirectly.String(), true)
	return model.AnswerDirectly(query)
}

// decodePlan maps the raw model reply to a plan. A non-empty reason means the reply was unusable.
func decodePlan(raw, query string) (model.SearchPlan, string) {
	text := stripCodeFence(strings.TrimSpace(raw))
	if text == "" {
		return model.SearchPlan{}, ReasonEmptyResponse
	}

	start := strings.Index(text, "{")
	if start < 0 {
		return model.SearchPlan{}, ReasonNoJSONObject
	}

	// Decode stops after the first complete value, so trailing chatter is ignored.
	var payload planPayload
	if err := json.NewDecoder(strings.NewReader(text[start:])).Decode(&payload); err != nil {
		return model.SearchPlan{}, ReasonJSONParse
	}

	switch {
	case payload.Search != nil && payload.Text == nil:
		phrase := strings.TrimSpace(*payload.Search)
		if phrase == "" {
			return model.SearchPlan{}, ReasonEmptySearch
		}
		return model.Search(phrase), ""
	case payload.Text != nil && payload.Search == nil:
		return model.AnswerDirectly(query), ""
	default:
		return model.SearchPlan{}, ReasonAmbiguousPlan
	}
}

// stripCodeFence removes a surrounding ``` or ```json block.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
