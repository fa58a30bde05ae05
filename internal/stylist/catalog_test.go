package stylist

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopfront/internal/model"
)

func TestCachedCatalogServesWithinTTL(t *testing.T) {
	calls := 0
	source := &fakeCatalog{
		SnapshotFunc: func(ctx context.Context) ([]model.Product, error) {
			calls++
			return []model.Product{{ID: 1, Name: "x"}}, nil
		},
	}
	cache := NewCachedCatalog(source, time.Hour)

	for i := 0; i < 5; i++ {
		products, err := cache.Snapshot(context.Background())
		if err != nil {
			t.Fatalf("Snapshot() error = %v", err)
		}
		if len(products) != 1 {
			t.Fatalf("len(products) = %d, want 1", len(products))
		}
	}

	if calls != 1 {
		t.Errorf("source calls = %d, want 1", calls)
	}
}

func TestCachedCatalogRefreshesAfterTTL(t *testing.T) {
	calls := 0
	source := &fakeCatalog{
		SnapshotFunc: func(ctx context.Context) ([]model.Product, error) {
			calls++
			return []model.Product{{ID: int64(calls)}}, nil
		},
	}
	cache := NewCachedCatalog(source, time.Nanosecond)

	cache.Snapshot(context.Background())
	time.Sleep(time.Millisecond)
	products, err := cache.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if calls != 2 {
		t.Errorf("source calls = %d, want 2", calls)
	}
	if products[0].ID != 2 {
		t.Errorf("got stale snapshot after TTL expiry")
	}
}

func TestCachedCatalogServesStaleOnRefreshFailure(t *testing.T) {
	calls := 0
	source := &fakeCatalog{
		SnapshotFunc: func(ctx context.Context) ([]model.Product, error) {
			calls++
			if calls > 1 {
				return nil, errors.New("backend down")
			}
			return []model.Product{{ID: 1, Name: "kept"}}, nil
		},
	}
	cache := NewCachedCatalog(source, time.Nanosecond)

	cache.Snapshot(context.Background())
	time.Sleep(time.Millisecond)

	products, err := cache.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error = %v, want stale snapshot", err)
	}
	if len(products) != 1 || products[0].Name != "kept" {
		t.Errorf("expected the previous snapshot to be served")
	}
}

func TestCachedCatalogPropagatesFirstFailure(t *testing.T) {
	source := &fakeCatalog{
		SnapshotFunc: func(ctx context.Context) ([]model.Product, error) {
			return nil, errors.New("backend down")
		},
	}
	cache := NewCachedCatalog(source, time.Hour)

	if _, err := cache.Snapshot(context.Background()); err == nil {
		t.Errorf("Snapshot() error = nil, want error when no snapshot exists yet")
	}
}
