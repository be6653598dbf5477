package port

import (
	"context"
	"github.com/nikolayk812/storefront-cart/internal/domain"
)

// CartRepository is the server-side store behind the remote cart endpoint.
type CartRepository interface {
	GetCart(ctx context.Context, ownerID string) (domain.Cart, error)
	ReplaceCart(ctx context.Context, ownerID string, lines []domain.CartLine) error
}

// SlotStore is a durable key/value slot. Get returns domain.ErrSlotNotFound for unknown keys.
type SlotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// RemoteCart is the client side of the remote cart endpoint.
type RemoteCart interface {
	UpdateCart(ctx context.Context, token string, lines []domain.CartLine) error
	GetCart(ctx context.Context, token string) ([]domain.CartLine, error)
}
