// Package cache puts a Redis cache-aside layer in front of a catalog repository.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/Apurer/web-larek/internal/domains/catalog/domain"
	"github.com/Apurer/web-larek/internal/domains/catalog/ports"
)

const (
	DefaultPrefix = "larek:catalog:"
	DefaultTTL    = 5 * time.Minute
)

var _ ports.Repository = (*Repository)(nil)

// Stats counts cache outcomes.
type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Errors uint64 `json:"errors"`
}

type Option func(*Repository)

func WithPrefix(prefix string) Option {
	return func(r *Repository) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(r *Repository) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Repository serves reads from Redis and falls back to inner on a miss.
// Concurrent misses for the same key share one inner call. Redis failures
// degrade to reading inner directly.
type Repository struct {
	inner  ports.Repository
	client goredis.UniversalClient
	prefix string
	ttl    time.Duration
	logger *slog.Logger
	group  singleflight.Group

	hits   atomic.Uint64
	misses atomic.Uint64
	errs   atomic.Uint64
}

// New wraps inner. A nil client disables caching.
func New(inner ports.Repository, client goredis.UniversalClient, opts ...Option) *Repository {
	r := &Repository{
		inner:  inner,
		client: client,
		prefix: DefaultPrefix,
		ttl:    DefaultTTL,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

type cachedProduct struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Price       *int64 `json:"price"`
}

func (r *Repository) List(ctx context.Context, category string) ([]*domain.Product, error) {
	key := r.listKey(category)
	var cached []cachedProduct
	if r.get(ctx, key, &cached) {
		return fromCached(cached), nil
	}
	v, err, _ := r.group.Do(key, func() (any, error) {
		products, err := r.inner.List(ctx, category)
		if err != nil {
			return nil, err
		}
		r.set(ctx, key, toCached(products))
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return cloneAll(v.([]*domain.Product)), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	key := r.productKey(id)
	var cached cachedProduct
	if r.get(ctx, key, &cached) {
		return cached.toDomain(), nil
	}
	v, err, _ := r.group.Do(key, func() (any, error) {
		product, err := r.inner.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		r.set(ctx, key, fromDomain(product))
		return product, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product).Clone(), nil
}

// SaveAll writes through to inner and then drops every affected entry.
func (r *Repository) SaveAll(ctx context.Context, products []*domain.Product) error {
	if err := r.inner.SaveAll(ctx, products); err != nil {
		return err
	}
	if r.client == nil {
		return nil
	}
	keys := make([]string, 0, len(products))
	for _, p := range products {
		if p != nil {
			keys = append(keys, r.productKey(p.ID))
		}
	}
	if len(keys) > 0 {
		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			r.fail(ctx, "cache delete failed", err)
		}
	}
	if err := r.deletePattern(ctx, r.prefix+"list:*"); err != nil {
		r.fail(ctx, "cache list invalidation failed", err)
	}
	return nil
}

// Stats returns the counters accumulated so far.
func (r *Repository) Stats() Stats {
	return Stats{Hits: r.hits.Load(), Misses: r.misses.Load(), Errors: r.errs.Load()}
}

func (r *Repository) get(ctx context.Context, key string, dest any) bool {
	if r.client == nil {
		return false
	}
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			r.misses.Add(1)
			return false
		}
		r.fail(ctx, "cache get failed", err, slog.String("key", key))
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		r.fail(ctx, "cache entry unreadable", err, slog.String("key", key))
		return false
	}
	r.hits.Add(1)
	return true
}

func (r *Repository) set(ctx context.Context, key string, value any) {
	if r.client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		r.fail(ctx, "cache marshal failed", err, slog.String("key", key))
		return
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.fail(ctx, "cache set failed", err, slog.String("key", key))
	}
}

func (r *Repository) deletePattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("cache scan: %w", err)
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache delete: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (r *Repository) fail(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	r.errs.Add(1)
	attrs = append(attrs, slog.String("error", err.Error()))
	r.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

func (r *Repository) listKey(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		category = "*all"
	}
	return r.prefix + "list:" + category
}

func (r *Repository) productKey(id string) string {
	return r.prefix + "product:" + id
}

func fromDomain(p *domain.Product) cachedProduct {
	return cachedProduct{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Image:       p.Image,
		Category:    p.Category,
		Price:       p.Clone().Price,
	}
}

func (c cachedProduct) toDomain() *domain.Product {
	return &domain.Product{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Image:       c.Image,
		Category:    c.Category,
		Price:       c.Price,
	}
}

func toCached(products []*domain.Product) []cachedProduct {
	out := make([]cachedProduct, 0, len(products))
	for _, p := range products {
		out = append(out, fromDomain(p))
	}
	return out
}

func fromCached(cached []cachedProduct) []*domain.Product {
	out := make([]*domain.Product, 0, len(cached))
	for _, c := range cached {
		out = append(out, c.toDomain())
	}
	return out
}

func cloneAll(products []*domain.Product) []*domain.Product {
	out := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		out = append(out, p.Clone())
	}
	return out
}
