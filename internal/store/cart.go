package store

import (
	"context"
	"fmt"
	"sync"

	"shopfront/internal/apiclient"
	"shopfront/internal/model"
)

// CartStore caches the server-side cart. Count and TotalAmount are always
// re-derived from the item list after a mutation; there is no second source
// of truth for totals.
type CartStore struct {
	client *apiclient.Client

	mu    sync.RWMutex
	items []model.CartLine
	count int
	total int64
}

// NewCartStore creates a cart store bound to the given client.
func NewCartStore(client *apiclient.Client) *CartStore {
	return &CartStore{client: client}
}

// Items returns a copy of the cached cart lines.
func (s *CartStore) Items() []model.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.CartLine(nil), s.items...)
}

// Count returns the total item quantity across all lines.
func (s *CartStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// TotalAmount returns sum(unitPrice x quantity) over all lines, in VND.
func (s *CartStore) TotalAmount() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

// Fetch replaces the cache with the server's cart.
func (s *CartStore) Fetch(ctx context.Context) error {
	lines, err := s.client.ListCart(ctx)
	if err != nil {
		return fmt.Errorf("fetching cart: %w", err)
	}

	s.mu.Lock()
	s.items = lines
	s.recompute()
	s.mu.Unlock()
	return nil
}

// AddItem adds to the server cart and folds the returned line into the
// cache. The backend merges duplicate product/variant pairs, so a returned
// line with a known ID replaces the cached one.
func (s *CartStore) AddItem(ctx context.Context, req apiclient.AddToCartRequest) error {
	line, err := s.client.AddToCart(ctx, req)
	if err != nil {
		return fmt.Errorf("adding cart item: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i := range s.items {
		if s.items[i].ID == line.ID {
			s.items[i] = *line
			replaced = true
			break
		}
	}
	if !replaced {
		s.items = append(s.items, *line)
	}
	s.recompute()
	return nil
}

// UpdateQuantity sets a line's quantity on the server and in the cache.
// A quantity of zero removes the line.
func (s *CartStore) UpdateQuantity(ctx context.Context, lineID int64, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, lineID)
	}

	line, err := s.client.UpdateCartItem(ctx, lineID, quantity)
	if err != nil {
		return fmt.Errorf("updating cart quantity: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == line.ID {
			s.items[i] = *line
			break
		}
	}
	s.recompute()
	return nil
}

// RemoveItem deletes a line on the server and drops it from the cache.
func (s *CartStore) RemoveItem(ctx context.Context, lineID int64) error {
	if err := s.client.DeleteCartItem(ctx, lineID); err != nil {
		return fmt.Errorf("removing cart item: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == lineID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.recompute()
	return nil
}

// Clear empties the local cache. Called after checkout (the backend empties
// the server cart as part of order placement) and on logout.
func (s *CartStore) Clear() {
	s.mu.Lock()
	s.items = nil
	s.recompute()
	s.mu.Unlock()
}

// recompute re-derives count and total from items. Callers hold s.mu.
func (s *CartStore) recompute() {
	count := 0
	var total int64
	for i := range s.items {
		count += s.items[i].Quantity
		total += model.LineTotal(s.items[i].UnitPrice, s.items[i].Quantity)
	}
	s.count = count
	s.total = total
}
