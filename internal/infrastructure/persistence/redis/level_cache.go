package redis

import (
	"context"
	"errors"
	"time"

	"github.com/baiana/danceclub/internal/domain/level"
	"github.com/baiana/danceclub/internal/domain/shared"
	"github.com/baiana/danceclub/pkg/circuitbreaker"
	"github.com/baiana/danceclub/pkg/logger"
)

// Store is the subset of Cache used by the cached repositories.
type Store interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

var _ Store = (*Cache)(nil)

// CachedLevelRepository decorates a level.Repository with a read-through cache.
// Cache failures are logged and the call falls through to the database. After
// repeated failures the breaker opens and the cache is skipped for a while.
type CachedLevelRepository struct {
	next    level.Repository
	store   Store
	ttl     time.Duration
	log     *logger.Logger
	breaker *circuitbreaker.CircuitBreaker
}

var _ level.Repository = (*CachedLevelRepository)(nil)

// NewCachedLevelRepository wraps next with store.
func NewCachedLevelRepository(next level.Repository, store Store, ttl time.Duration, log *logger.Logger) *CachedLevelRepository {
	if ttl <= 0 {
		ttl = TTLReferenceData
	}
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(logger.Component("level_cache"))
	return &CachedLevelRepository{
		next:  next,
		store: store,
		ttl:   ttl,
		log:   log,
		breaker: circuitbreaker.CacheBreaker(
			func(err error) bool { return !errors.Is(err, ErrCacheMiss) },
			func(name string, from, to circuitbreaker.State) {
				log.Warn("cache breaker state changed",
					logger.String("breaker", name),
					logger.String("from", from.String()),
					logger.String("to", to.String()),
				)
			},
		),
	}
}

// Save writes through and drops the affected keys.
func (r *CachedLevelRepository) Save(ctx context.Context, l *level.Level) error {
	if err := r.next.Save(ctx, l); err != nil {
		return err
	}
	r.invalidate(ctx, l.ID)
	return nil
}

// GetByID serves a level from cache when present.
func (r *CachedLevelRepository) GetByID(ctx context.Context, id shared.ID) (*level.Level, error) {
	var cached level.Level
	err := r.get(ctx, LevelKey(id), &cached)
	if err == nil {
		return &cached, nil
	}
	r.logMiss(err, LevelKey(id))

	l, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.put(ctx, LevelKey(id), l)
	return l, nil
}

// GetByName is not cached; names change on update.
func (r *CachedLevelRepository) GetByName(ctx context.Context, name string) (*level.Level, error) {
	return r.next.GetByName(ctx, name)
}

// List serves the ordered level list from cache when present.
func (r *CachedLevelRepository) List(ctx context.Context) ([]*level.Level, error) {
	var cached []*level.Level
	err := r.get(ctx, LevelListKey(), &cached)
	if err == nil {
		return cached, nil
	}
	r.logMiss(err, LevelListKey())

	levels, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}
	if levels != nil {
		r.put(ctx, LevelListKey(), levels)
	}
	return levels, nil
}

// Delete removes the level and drops the affected keys.
func (r *CachedLevelRepository) Delete(ctx context.Context, id shared.ID) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

// Exists always asks the database.
func (r *CachedLevelRepository) Exists(ctx context.Context, id shared.ID) (bool, error) {
	return r.next.Exists(ctx, id)
}

func (r *CachedLevelRepository) get(ctx context.Context, key string, dest any) error {
	return r.breaker.Execute(ctx, func(ctx context.Context) error {
		return r.store.Get(ctx, key, dest)
	})
}

func (r *CachedLevelRepository) put(ctx context.Context, key string, value any) {
	err := r.breaker.Execute(ctx, func(ctx context.Context) error {
		return r.store.Set(ctx, key, value, r.ttl)
	})
	if err != nil && !errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		r.log.Warn("cache write failed", logger.String("key", key), logger.Err(err))
	}
}

// invalidate bypasses the breaker: a stale entry must not outlive a write.
func (r *CachedLevelRepository) invalidate(ctx context.Context, id shared.ID) {
	if err := r.store.Delete(ctx, LevelKey(id), LevelListKey()); err != nil {
		r.log.Warn("cache invalidation failed", logger.EntityID(id), logger.Err(err))
	}
}

func (r *CachedLevelRepository) logMiss(err error, key string) {
	switch {
	case errors.Is(err, ErrCacheMiss):
		r.log.Debug("cache miss", logger.String("key", key))
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		r.log.Debug("cache skipped", logger.String("key", key))
	default:
		r.log.Warn("cache read failed", logger.String("key", key), logger.Err(err))
	}
}
