package api

import (
	"context"
	"time"

	"github.com/NordCoder/Uptimer/internal/domain/history"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const cacheKey = "history"

type HistoryReader interface {
	ReadHistory(ctx context.Context) (history.History, error)
}

// Reader serves the encoded history, optionally from a short-lived cache.
type Reader struct {
	store HistoryReader
	cache *cache.Cache
}

// NewReader caches encoded reads for ttl; ttl <= 0 reads the store every
// time.
func NewReader(store HistoryReader, ttl time.Duration) *Reader {
	r := &Reader{store: store}
	if ttl > 0 {
		r.cache = cache.New(ttl, 2*ttl)
	}
	return r
}

func (r *Reader) History(ctx context.Context) ([]byte, error) {
	ctx, span := otel.Tracer("api.reader").Start(ctx, "api.History")
	defer span.End()

	if r.cache != nil {
		if b, ok := r.cache.Get(cacheKey); ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return b.([]byte), nil
		}
	}

	h, err := r.store.ReadHistory(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	b, err := history.Encode(h)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("history.length", len(h)))
	if r.cache != nil {
		r.cache.SetDefault(cacheKey, b)
	}
	return b, nil
}
