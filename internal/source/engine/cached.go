package engine

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"recall-assistant/internal/source"
)

// cachedEngine reuses recent result links and paces outgoing engine queries.
type cachedEngine struct {
	next    source.Engine
	cache   *expirable.LRU[string, []string]
	limiter *rate.Limiter
}

// Wrap adds a link cache (size > 0) and a query rate limit (perMinute > 0) around next.
func Wrap(next source.Engine, size int, ttl time.Duration, perMinute int) source.Engine {
	if size <= 0 && perMinute <= 0 {
		return next
	}
	e := &cachedEngine{next: next}
	if size > 0 {
		e.cache = expirable.NewLRU[string, []string](size, nil, ttl)
	}
	if perMinute > 0 {
		burst := perMinute / 10
		if burst < 1 {
			burst = 1
		}
		e.limiter = rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst)
	}
	return e
}

func (e *cachedEngine) Name() string { return e.next.Name() }

func (e *cachedEngine) Search(ctx context.Context, phrase string) ([]string, error) {
	key := strings.ToLower(strings.Join(strings.Fields(phrase), " "))
	if e.cache != nil {
		if links, ok := e.cache.Get(key); ok {
			return append([]string(nil), links...), nil
		}
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	links, err := e.next.Search(ctx, phrase)
	if err != nil {
		return nil, err
	}
	if e.cache != nil && len(links) > 0 {
		e.cache.Add(key, append([]string(nil), links...))
	}
	return links, nil
}
