package qdrant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"recall-assistant/internal/memory"
	"recall-assistant/internal/model"
	pkgQdrant "recall-assistant/pkg/qdrant"
)

const initTimeout = 10 * time.Second

// ensureInit runs collection setup once per process; concurrent callers wait for it.
// A failed setup is logged and the operation is still attempted.
func (r *implRepository) ensureInit(ctx context.Context) {
	r.initOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), initTimeout)
		defer cancel()
		if err := r.init(ctx); err != nil {
			r.l.Warnf(ctx, "%s: %v", LogPrefixInit, err)
		}
	})
}

func (r *implRepository) init(ctx context.Context) error {
	_, err := r.client.GetCollection(ctx, r.cfg.CollectionName)
	switch {
	case errors.Is(err, pkgQdrant.ErrCollectionNotFound):
		if r.cfg.VectorSize <= 0 {
			return fmt.Errorf("collection %s missing and vector size unknown", r.cfg.CollectionName)
		}
		if err := r.client.CreateCollection(ctx, pkgQdrant.CreateCollectionRequest{
			Name:    r.cfg.CollectionName,
			Vectors: pkgQdrant.VectorConfig{Size: r.cfg.VectorSize, Distance: "Cosine"},
		}); err != nil {
			return fmt.Errorf("create collection: %w", err)
		}
		r.l.Infof(ctx, "%s: created collection %s (size=%d)", LogPrefixInit, r.cfg.CollectionName, r.cfg.VectorSize)
	case err != nil:
		return fmt.Errorf("get collection: %w", err)
	}

	for _, field := range []string{memory.FieldUser, memory.FieldNamespace} {
		if err := r.client.CreatePayloadIndex(ctx, r.cfg.CollectionName, pkgQdrant.PayloadIndexRequest{
			FieldName:   field,
			FieldSchema: "keyword",
		}); err != nil {
			return fmt.Errorf("index %s: %w", field, err)
		}
	}
	return nil
}

// Write implements repository.Repository.
func (r *implRepository) Write(ctx context.Context, vector []float32, content, user string) (string, error) {
	r.ensureInit(ctx)

	id := uuid.NewString()
	err := r.client.UpsertPoints(ctx, r.cfg.CollectionName, pkgQdrant.UpsertPointsRequest{
		Points: []pkgQdrant.Point{{
			ID:     id,
			Vector: vector,
			Payload: map[string]interface{}{
				memory.FieldUser:      user,
				memory.FieldContent:   content,
				memory.FieldNamespace: r.cfg.Namespace,
			},
		}},
	})
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", LogPrefixWrite, err)
		return "", fmt.Errorf("upsert point: %w", err)
	}

	r.l.Debugf(ctx, "%s: stored %s for user %s", LogPrefixWrite, id, user)
	return id, nil
}

// Query implements repository.Repository.
func (r *implRepository) Query(ctx context.Context, vector []float32, user string, topK int) ([]model.Match, error) {
	r.ensureInit(ctx)

	resp, err := r.client.SearchPoints(ctx, r.cfg.CollectionName, pkgQdrant.SearchRequest{
		Vector:      vector,
		Limit:       topK,
		WithPayload: true,
		WithVector:  true,
		Filter: &pkgQdrant.Filter{Must: []pkgQdrant.Condition{
			pkgQdrant.MatchKeyword(memory.FieldNamespace, r.cfg.Namespace),
			pkgQdrant.MatchKeyword(memory.FieldUser, user),
		}},
	})
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", LogPrefixQuery, err)
		return nil, fmt.Errorf("search points: %w", err)
	}

	matches := make([]model.Match, 0, len(resp.Result))
	for _, p := range resp.Result {
		matches = append(matches, model.Match{
			ID:       fmt.Sprint(p.ID),
			Score:    float32(p.Score),
			Vector:   p.Vector,
			Metadata: p.Payload,
		})
	}
	return matches, nil
}
