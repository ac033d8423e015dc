package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"recall-assistant/internal/source"
	"recall-assistant/pkg/readability"
)

// fetch downloads link under its own timeout and returns the readable text.
// An error means the fetch itself failed and the slot may be substituted;
// ("", nil) means the page had nothing worth citing.
func (uc *implUseCase) fetch(ctx context.Context, link string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	if uc.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", uc.cfg.UserAgent)
	}

	resp, err := uc.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("status %d: %w", resp.StatusCode, source.ErrFetchStatus)
	}
	if !isHTML(resp.Header.Get("Content-Type")) {
		return "", nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	article, err := readability.Parse(bytes.NewReader(body))
	if err != nil {
		if !errors.Is(err, readability.ErrNoContent) {
			uc.l.Debugf(ctx, "%s: %s: %v", LogPrefixFetch, link, err)
		}
		return "", nil
	}
	return article.Text, nil
}

// isHTML accepts an absent content type; servers often omit it.
func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}
