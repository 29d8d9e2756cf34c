package data

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Akashdeep-Patra/tabula/internal/grid"
)

type countingService struct {
	calls int
	fail  error
	rows  grid.Rows
}

func (s *countingService) Columns() []string { return []string{"model"} }
func (s *countingService) Path() string      { return "mem" }
func (s *countingService) Close() error      { return nil }

func (s *countingService) All(ctx context.Context) (grid.Rows, error) {
	return s.Search(ctx, "", nil)
}

func (s *countingService) Search(context.Context, string, []string) (grid.Rows, error) {
	s.calls++
	if s.fail != nil {
		return nil, s.fail
	}
	return s.rows, nil
}

func (s *countingService) Update(_ context.Context, id grid.RowID, key, value string) error {
	if r := s.rows.Find(id); r != nil {
		r.Set(key, value)
		return nil
	}
	return ErrNotFound
}

func newCounting() *countingService {
	return &countingService{rows: grid.Rows{{ID: 1, Fields: map[string]string{"model": "a"}}}}
}

func TestCachedServiceHits(t *testing.T) {
	inner := newCounting()
	c := NewCachedService(inner, time.Minute)
	ctx := context.Background()

	c.Search(ctx, "x", []string{"model:a"})
	c.Search(ctx, "x", []string{"model:a"})
	if inner.calls != 1 {
		t.Fatalf("inner called %d times, want 1", inner.calls)
	}
	c.Search(ctx, "x", nil)
	c.All(ctx)
	if inner.calls != 3 {
		t.Errorf("distinct queries shared an entry: %d calls", inner.calls)
	}
}

func TestCachedServiceReturnsCopies(t *testing.T) {
	c := NewCachedService(newCounting(), time.Minute)
	ctx := context.Background()

	first, _ := c.All(ctx)
	first[0].Set("model", "edited locally")
	second, _ := c.All(ctx)
	if second[0].Get("model") != "a" {
		t.Errorf("cached rows aliased: %q", second[0].Get("model"))
	}
}

func TestCachedServiceUpdateInvalidates(t *testing.T) {
	inner := newCounting()
	c := NewCachedService(inner, time.Minute)
	ctx := context.Background()

	c.All(ctx)
	if err := c.Update(ctx, 1, "model", "b"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("cache has %d entries after update", c.Len())
	}
	rows, _ := c.All(ctx)
	if rows[0].Get("model") != "b" || inner.calls != 2 {
		t.Errorf("stale read: %q after %d calls", rows[0].Get("model"), inner.calls)
	}

	c.All(ctx)
	if err := c.Update(ctx, 42, "model", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
	if c.Len() != 1 {
		t.Error("failed update invalidated the cache")
	}
}

func TestCachedServiceSkipsErrors(t *testing.T) {
	inner := newCounting()
	inner.fail = context.DeadlineExceeded
	c := NewCachedService(inner, time.Minute)

	if _, err := c.All(context.Background()); err == nil {
		t.Fatal("error swallowed")
	}
	if c.Len() != 0 {
		t.Error("error result cached")
	}
}

func TestCachedServiceExpiry(t *testing.T) {
	inner := newCounting()
	c := NewCachedService(inner, time.Nanosecond)
	ctx := context.Background()
	c.All(ctx)
	time.Sleep(time.Millisecond)
	c.All(ctx)
	if inner.calls != 2 {
		t.Errorf("expired entry served: %d calls", inner.calls)
	}

	off := NewCachedService(newCounting(), 0)
	off.All(ctx)
	if off.Len() != 0 {
		t.Error("zero TTL cached")
	}
}

func TestCachedServiceBounded(t *testing.T) {
	c := NewCachedService(newCounting(), time.Minute)
	ctx := context.Background()
	for i := range maxCacheEntries + 5 {
		c.Search(ctx, string(rune('a'+i%26))+string(rune('a'+i/26)), nil)
	}
	if c.Len() > maxCacheEntries {
		t.Errorf("cache grew to %d", c.Len())
	}
}
