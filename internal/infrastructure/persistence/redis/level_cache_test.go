package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baiana/danceclub/internal/domain/level"
	"github.com/baiana/danceclub/internal/domain/shared"
)

// memoryStore is an in-process Store keeping JSON like Redis does.
type memoryStore struct {
	data    map[string][]byte
	failGet bool
	down    bool
	calls   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string][]byte)}
}

func (m *memoryStore) Get(_ context.Context, key string, dest any) error {
	m.calls++
	if m.failGet || m.down {
		return errors.New("connection refused")
	}
	raw, ok := m.data[key]
	if !ok {
		return ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.calls++
	if m.down {
		return errors.New("connection refused")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memoryStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

// countingRepo is an in-memory level.Repository that counts reads.
type countingRepo struct {
	levels map[shared.ID]*level.Level
	nextID shared.ID
	reads  int
}

func newCountingRepo() *countingRepo {
	return &countingRepo{levels: make(map[shared.ID]*level.Level)}
}

func (r *countingRepo) Save(_ context.Context, l *level.Level) error {
	if l.IsNew() {
		r.nextID++
		l.ID = r.nextID
	}
	cp := *l
	r.levels[l.ID] = &cp
	return nil
}

func (r *countingRepo) GetByID(_ context.Context, id shared.ID) (*level.Level, error) {
	r.reads++
	l, ok := r.levels[id]
	if !ok {
		return nil, shared.ErrLevelNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *countingRepo) GetByName(_ context.Context, name string) (*level.Level, error) {
	r.reads++
	for _, l := range r.levels {
		if l.Name == name {
			cp := *l
			return &cp, nil
		}
	}
	return nil, shared.ErrLevelNotFound
}

func (r *countingRepo) List(_ context.Context) ([]*level.Level, error) {
	r.reads++
	var out []*level.Level
	for id := shared.ID(1); id <= r.nextID; id++ {
		if l, ok := r.levels[id]; ok {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *countingRepo) Delete(_ context.Context, id shared.ID) error {
	if _, ok := r.levels[id]; !ok {
		return shared.ErrLevelNotFound
	}
	delete(r.levels, id)
	return nil
}

func (r *countingRepo) Exists(_ context.Context, id shared.ID) (bool, error) {
	_, ok := r.levels[id]
	return ok, nil
}

func TestCachedLevelRepository_ReadThrough(t *testing.T) {
	ctx := context.Background()
	repo := newCountingRepo()
	store := newMemoryStore()
	cached := NewCachedLevelRepository(repo, store, time.Minute, nil)

	l := &level.Level{Name: "Iniciante"}
	require.NoError(t, cached.Save(ctx, l))

	for i := 0; i < 3; i++ {
		got, err := cached.GetByID(ctx, l.ID)
		require.NoError(t, err)
		assert.Equal(t, "Iniciante", got.Name)
	}
	assert.Equal(t, 1, repo.reads)

	for i := 0; i < 2; i++ {
		list, err := cached.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
	}
	assert.Equal(t, 2, repo.reads)
}

func TestCachedLevelRepository_InvalidatesOnWrite(t *testing.T) {
	ctx := context.Background()
	repo := newCountingRepo()
	store := newMemoryStore()
	cached := NewCachedLevelRepository(repo, store, time.Minute, nil)

	l := &level.Level{Name: "Iniciante"}
	require.NoError(t, cached.Save(ctx, l))
	_, err := cached.List(ctx)
	require.NoError(t, err)
	_, err = cached.GetByID(ctx, l.ID)
	require.NoError(t, err)

	l.Name = "Basico"
	require.NoError(t, cached.Save(ctx, l))
	assert.NotContains(t, store.data, LevelKey(l.ID))
	assert.NotContains(t, store.data, LevelListKey())

	got, err := cached.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Basico", got.Name)

	require.NoError(t, cached.Delete(ctx, l.ID))
	_, err = cached.GetByID(ctx, l.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	list, err := cached.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCachedLevelRepository_FallsBackOnCacheFailure(t *testing.T) {
	ctx := context.Background()
	repo := newCountingRepo()
	store := newMemoryStore()
	cached := NewCachedLevelRepository(repo, store, time.Minute, nil)

	l := &level.Level{Name: "Avancado"}
	require.NoError(t, cached.Save(ctx, l))

	store.failGet = true
	got, err := cached.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Avancado", got.Name)
	assert.Equal(t, 1, repo.reads)
}

func TestCachedLevelRepository_BreakerSkipsDeadCache(t *testing.T) {
	ctx := context.Background()
	repo := newCountingRepo()
	store := newMemoryStore()
	cached := NewCachedLevelRepository(repo, store, time.Minute, nil)

	l := &level.Level{Name: "Basico"}
	require.NoError(t, cached.Save(ctx, l))
	store.down = true

	// Get, Set, Get: the third failure opens the breaker before the second Set.
	_, err := cached.GetByID(ctx, l.ID)
	require.NoError(t, err)
	_, err = cached.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, store.calls)

	for range 3 {
		got, err := cached.GetByID(ctx, l.ID)
		require.NoError(t, err)
		assert.Equal(t, "Basico", got.Name)
	}
	assert.Equal(t, 3, store.calls)
	assert.Equal(t, 5, repo.reads)
}

func TestCachedLevelRepository_MissDoesNotOpenBreaker(t *testing.T) {
	ctx := context.Background()
	repo := newCountingRepo()
	store := newMemoryStore()
	cached := NewCachedLevelRepository(repo, store, time.Minute, nil)

	for i := range 5 {
		l := &level.Level{Name: fmt.Sprintf("Nivel %d", i)}
		require.NoError(t, cached.Save(ctx, l))
		_, err := cached.GetByID(ctx, l.ID)
		require.NoError(t, err)
	}

	// Every read was a miss; the breaker stays closed and the cache now hits.
	_, err := cached.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, repo.reads)
}

func TestCachedLevelRepository_NotFoundIsNotCached(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	cached := NewCachedLevelRepository(newCountingRepo(), store, 0, nil)

	_, err := cached.GetByID(ctx, 7)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Empty(t, store.data)
}

func TestConfig_Options(t *testing.T) {
	cfg := DefaultConfig()
	cfg.URL = "redis://:secret@cache.local:6380/2"

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, "cache.local:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 2*time.Second, opts.DialTimeout)

	cfg.URL = "http://nope"
	_, err = cfg.Options()
	assert.ErrorIs(t, err, ErrCacheConnection)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "level:id:12", LevelKey(12))
	assert.Equal(t, "level:all", LevelListKey())
}
