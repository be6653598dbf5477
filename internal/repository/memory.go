package repository

import (
	"context"
	"sync"
	"time"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
)

type memoryCartRepository struct {
	mu    sync.RWMutex
	carts map[string][]domain.CartItem
	now   func() time.Time
}

// NewMemoryCart keeps carts in process memory, for local runs without a database.
func NewMemoryCart() port.CartRepository {
	return &memoryCartRepository{
		carts: make(map[string][]domain.CartItem),
		now:   time.Now,
	}
}

func (r *memoryCartRepository) GetCart(_ context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, domain.ErrOwnerIDRequired
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.carts[ownerID]
	items := make([]domain.CartItem, 0, len(stored))
	for _, item := range stored {
		items = append(items, domain.CartItem{Line: item.Line.Clone(), CreatedAt: item.CreatedAt})
	}

	return domain.Cart{OwnerID: ownerID, Items: items}, nil
}

func (r *memoryCartRepository) ReplaceCart(_ context.Context, ownerID string, lines []domain.CartLine) error {
	if ownerID == "" {
		return domain.ErrOwnerIDRequired
	}

	now := r.now()
	items := make([]domain.CartItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.CartItem{Line: line.Clone(), CreatedAt: now})
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[ownerID] = items
	return nil
}

var _ port.CartRepository = (*memoryCartRepository)(nil)
