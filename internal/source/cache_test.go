package source

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/org-chart-api/internal/domain"
)

type memoryStore struct {
	data   map[string][]byte
	ttl    time.Duration
	getErr error
	setErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}}
}

func (m *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return v, nil
}

func (m *memoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttl = ttl
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCachedSource_HitAfterMiss(t *testing.T) {
	next := &countingSource{snap: &domain.Snapshot{
		Departments: []domain.DepartmentRecord{{ID: 1, Name: "Root"}, {ID: 2, Name: "IT", Parent: domain.NewRef(1, "Root")}},
		Employees:   []domain.Employee{{ID: 5, Name: domain.NewRef(5, "An")}},
	}}
	store := newMemoryStore()
	src := NewCachedSource(next, store, time.Minute, discardLogger())

	first, err := src.Fetch(context.Background(), "token-a")
	require.NoError(t, err)
	second, err := src.Fetch(context.Background(), "token-a")
	require.NoError(t, err)

	require.Equal(t, 1, next.calls)
	require.Equal(t, time.Minute, store.ttl)
	require.Equal(t, first.Departments, second.Departments)
	require.Equal(t, "An", second.Employees[0].DisplayName())

	_, err = src.Fetch(context.Background(), "token-b")
	require.NoError(t, err)
	require.Equal(t, 2, next.calls)
}

func TestCachedSource_DoesNotCacheErrors(t *testing.T) {
	next := &countingSource{err: domain.ErrTokenExpired}
	store := newMemoryStore()
	src := NewCachedSource(next, store, time.Minute, discardLogger())

	_, err := src.Fetch(context.Background(), "t")
	require.ErrorIs(t, err, domain.ErrTokenExpired)
	require.Empty(t, store.data)
}

func TestCachedSource_BypassesBrokenStore(t *testing.T) {
	next := &countingSource{snap: &domain.Snapshot{}}
	store := newMemoryStore()
	store.getErr = errors.New("connection refused")
	store.setErr = errors.New("connection refused")
	src := NewCachedSource(next, store, time.Minute, discardLogger())

	_, err := src.Fetch(context.Background(), "t")
	require.NoError(t, err)
	_, err = src.Fetch(context.Background(), "t")
	require.NoError(t, err)
	require.Equal(t, 2, next.calls)
}

func TestCachedSource_IgnoresCorruptedEntry(t *testing.T) {
	next := &countingSource{snap: &domain.Snapshot{}}
	store := newMemoryStore()
	store.data[cacheKey("t")] = []byte("{not json")
	src := NewCachedSource(next, store, time.Minute, discardLogger())

	_, err := src.Fetch(context.Background(), "t")
	require.NoError(t, err)
	require.Equal(t, 1, next.calls)
}

func TestCacheKey_HidesToken(t *testing.T) {
	key := cacheKey("secret-token")
	require.NotContains(t, key, "secret-token")
	require.Equal(t, key, cacheKey("secret-token"))
	require.NotEqual(t, key, cacheKey("other"))
}
