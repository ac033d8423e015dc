package engine

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"recall-assistant/internal/source"
)

const maxResultPageBytes = 4 << 20

// htmlEngine scrapes a result page whose anchors wrap the destination in a redirect link.
type htmlEngine struct {
	name      string
	endpoint  string
	client    *http.Client
	userAgent string
	extract   func(href string) (string, bool)
}

func (e *htmlEngine) Name() string { return e.name }

func (e *htmlEngine) Search(ctx context.Context, phrase string) ([]string, error) {
	u := e.endpoint + "?q=" + url.QueryEscape(phrase)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", e.name, err)
	}
	req.Header.Set("Accept", "text/html")
	if e.userAgent != "" {
		req.Header.Set("User-Agent", e.userAgent)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", e.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s: status %d: %w", e.name, resp.StatusCode, source.ErrEngineStatus)
	}

	anchors, err := hrefs(io.LimitReader(resp.Body, maxResultPageBytes))
	if err != nil && len(anchors) == 0 {
		return nil, fmt.Errorf("%s: read result page: %w", e.name, err)
	}

	seen := make(map[string]struct{}, len(anchors))
	var links []string
	for _, href := range anchors {
		if dest, ok := e.extract(href); ok {
			links = appendUnique(links, seen, dest)
		}
	}
	return links, nil
}

// NewGoogle scrapes the Google result page, unwrapping "/url?q=" links.
func NewGoogle(baseURL, userAgent string, client *http.Client) source.Engine {
	if baseURL == "" {
		baseURL = DefaultGoogleURL
	}
	return &htmlEngine{
		name:      NameGoogle,
		endpoint:  strings.TrimRight(baseURL, "/") + "/search",
		client:    client,
		userAgent: userAgent,
		extract: func(href string) (string, bool) {
			if !strings.HasPrefix(href, "/url?") {
				return "", false
			}
			return unwrap(href, "/url", "q")
		},
	}
}

// NewDuckDuckGo scrapes the DuckDuckGo HTML endpoint, unwrapping "uddg=" links.
func NewDuckDuckGo(baseURL, userAgent string, client *http.Client) source.Engine {
	if baseURL == "" {
		baseURL = DefaultDuckDuckGoURL
	}
	return &htmlEngine{
		name:      NameDuckDuckGo,
		endpoint:  strings.TrimRight(baseURL, "/") + "/html/",
		client:    client,
		userAgent: userAgent,
		extract: func(href string) (string, bool) {
			if !strings.Contains(href, "uddg=") {
				return "", false
			}
			return unwrap(href, "", "uddg")
		},
	}
}
