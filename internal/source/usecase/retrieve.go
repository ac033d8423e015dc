package usecase

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"recall-assistant/internal/model"
)

// Retrieve implements source.UseCase.
func (uc *implUseCase) Retrieve(ctx context.Context, plan model.SearchPlan, maxSources int) []model.Source {
	phrase, ok := plan.Phrase()
	phrase = strings.TrimSpace(phrase)
	if !ok || phrase == "" {
		return nil
	}
	if len(strings.Fields(phrase)) < uc.cfg.MinQueryWords {
		uc.l.Debugf(ctx, "%s: phrase %q is shorter than %d words, skipping", LogPrefixRetrieve, phrase, uc.cfg.MinQueryWords)
		return nil
	}

	links, err := uc.engine.Search(ctx, phrase)
	if err != nil {
		uc.l.Warnf(ctx, "%s: %s search failed: %v", LogPrefixRetrieve, uc.engine.Name(), err)
		return nil
	}

	candidates := filterCandidates(links, uc.cfg.ExcludedHosts)
	if len(candidates) == 0 {
		uc.l.Infof(ctx, "%s: no usable candidates among %d links", LogPrefixRetrieve, len(links))
		return nil
	}

	if maxSources <= 0 {
		maxSources = uc.cfg.MaxSources
	}
	sources := uc.gather(ctx, candidates, maxSources)
	uc.l.Infof(ctx, "%s: %d sources from %d candidates", LogPrefixRetrieve, len(sources), len(candidates))
	return sources
}

// worklist hands out unused candidates beyond the initial window.
type worklist struct {
	mu    sync.Mutex
	items []string
}

func (w *worklist) pop() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.items) == 0 {
		return "", false
	}
	next := w.items[0]
	w.items = w.items[1:]
	return next, true
}

// gather fetches the first n candidates concurrently. A failed fetch pulls the
// next unused candidate while the shared failure budget lasts.
// Results arrive in completion order.
func (uc *implUseCase) gather(ctx context.Context, candidates []string, n int) []model.Source {
	if n > len(candidates) {
		n = len(candidates)
	}

	queue := &worklist{items: candidates[n:]}
	var budget atomic.Int64
	budget.Store(int64(uc.cfg.FailureBudget))

	results := make(chan model.Source, n)
	var wg sync.WaitGroup
	for _, link := range candidates[:n] {
		wg.Add(1)
		go func(link string) {
			defer wg.Done()
			if src, ok := uc.fillSlot(ctx, link, queue, &budget); ok {
				results <- src
			}
		}(link)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	sources := make([]model.Source, 0, n)
	for src := range results {
		sources = append(sources, src)
	}
	return sources
}

// fillSlot produces at most one source for a slot of the working set.
func (uc *implUseCase) fillSlot(ctx context.Context, link string, queue *worklist, budget *atomic.Int64) (model.Source, bool) {
	for {
		text, err := uc.fetch(ctx, link)
		if err == nil {
			text = truncate(cleanText(text), uc.cfg.MaxChars)
			if text == "" {
				uc.metrics.ObserveFetch(outcomeEmpty)
				return model.Source{}, false
			}
			uc.metrics.ObserveFetch(outcomeOK)
			return model.Source{URL: link, Text: text}, true
		}

		uc.metrics.ObserveFetch(outcomeFailed)
		uc.l.Debugf(ctx, "%s: %s: %v", LogPrefixFetch, link, err)
		if ctx.Err() != nil {
			return model.Source{}, false
		}

		if budget.Add(-1) < 0 {
			uc.metrics.ObserveFetch(outcomeExhausted)
			return model.Source{}, false
		}
		next, ok := queue.pop()
		if !ok {
			budget.Add(1)
			return model.Source{}, false
		}
		uc.metrics.ObserveFetch(outcomeSubstituted)
		link = next
	}
}
