package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCart_ReplaceAndGet(t *testing.T) {
	ctx := t.Context()
	repo := repository.NewMemoryCart()
	ownerID := gofakeit.UUID()

	lines := []domain.CartLine{randomCartLine(), randomCartLine()}
	require.NoError(t, repo.ReplaceCart(ctx, ownerID, lines))

	cart, err := repo.GetCart(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	for i, expected := range lines {
		assertCartItem(t, expected, cart.Items[i])
	}

	require.NoError(t, repo.ReplaceCart(ctx, ownerID, nil))
	cart, err = repo.GetCart(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestMemoryCart_OwnersArePartitioned(t *testing.T) {
	ctx := t.Context()
	repo := repository.NewMemoryCart()

	require.NoError(t, repo.ReplaceCart(ctx, "alice", []domain.CartLine{randomCartLine()}))

	cart, err := repo.GetCart(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestMemoryCart_EmptyOwner(t *testing.T) {
	repo := repository.NewMemoryCart()

	_, err := repo.GetCart(t.Context(), "")
	require.ErrorIs(t, err, domain.ErrOwnerIDRequired)

	err = repo.ReplaceCart(t.Context(), "", nil)
	require.ErrorIs(t, err, domain.ErrOwnerIDRequired)
}
