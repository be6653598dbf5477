package localcart_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/localcart"
	"github.com/nikolayk812/storefront-cart/internal/slot"
)

func randomLine() domain.CartLine {
	original := domain.NewMoney(decimal.NewFromFloat(gofakeit.Price(50, 100)).Round(2), currency.GBP)
	return domain.CartLine{
		ProductID:     gofakeit.UUID(),
		VariantID:     gofakeit.RandomString([]string{"S", "M", "L"}),
		Title:         gofakeit.ProductName(),
		ImageRef:      gofakeit.URL(),
		Weight:        domain.Weight{Value: decimal.RequireFromString("1.25"), Unit: "kg"},
		CurrentPrice:  domain.NewMoney(decimal.NewFromFloat(gofakeit.Price(1, 49)).Round(2), currency.GBP),
		OriginalPrice: &original,
		Quantity:      gofakeit.IntRange(1, 5),
	}
}

func TestSlotKey(t *testing.T) {
	assert.Equal(t, "cart:guest", localcart.SlotKey(""))
	assert.Equal(t, "cart:guest", localcart.SlotKey(domain.GuestUserID))
	assert.Equal(t, "cart:u-42", localcart.SlotKey("u-42"))
}

func TestAdapter_RoundTrip(t *testing.T) {
	ctx := context.Background()
	adapter := localcart.New(slot.NewMemory(), zerolog.Nop())
	want := []domain.CartLine{randomLine(), randomLine()}

	adapter.Save(ctx, "u1", want)

	got, ok := adapter.Load(ctx, "u1")
	require.True(t, ok)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Key(), got[i].Key())
		assert.Equal(t, want[i].Title, got[i].Title)
		assert.Equal(t, want[i].ImageRef, got[i].ImageRef)
		assert.Equal(t, want[i].Quantity, got[i].Quantity)
		assert.True(t, want[i].Weight.Value.Equal(got[i].Weight.Value))
		assert.True(t, want[i].CurrentPrice.Equal(got[i].CurrentPrice))
		require.NotNil(t, got[i].OriginalPrice)
		assert.True(t, want[i].OriginalPrice.Equal(*got[i].OriginalPrice))
	}
}

func TestAdapter_EmptyCartIsStillSaved(t *testing.T) {
	ctx := context.Background()
	adapter := localcart.New(slot.NewMemory(), zerolog.Nop())

	adapter.Save(ctx, "u1", nil)

	got, ok := adapter.Load(ctx, "u1")
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestAdapter_Partitioned(t *testing.T) {
	ctx := context.Background()
	adapter := localcart.New(slot.NewMemory(), zerolog.Nop())

	adapter.Save(ctx, "a", []domain.CartLine{randomLine()})

	_, ok := adapter.Load(ctx, "b")
	assert.False(t, ok)

	_, ok = adapter.Load(ctx, domain.GuestUserID)
	assert.False(t, ok)
}

func TestAdapter_UnreadableSlots(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: "{broken"},
		{name: "wrong shape", data: `{"items":[]}`},
		{name: "invalid line", data: `[{"productId":"p1","currency":"XXXX","currentPrice":"1","quantity":1}]`},
		{name: "zero quantity", data: `[{"productId":"p1","currency":"USD","currentPrice":"1","quantity":0}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			slots := slot.NewMemory()
			require.NoError(t, slots.Put(ctx, localcart.SlotKey("u1"), []byte(tt.data)))

			var buf bytes.Buffer
			adapter := localcart.New(slots, zerolog.New(&buf))

			got, ok := adapter.Load(ctx, "u1")
			assert.False(t, ok)
			assert.Empty(t, got)
			assert.Contains(t, buf.String(), `"level":"warn"`)
		})
	}
}

type failingSlots struct{}

func (failingSlots) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

func (failingSlots) Put(context.Context, string, []byte) error {
	return errors.New("disk on fire")
}

func (failingSlots) Delete(context.Context, string) error {
	return nil
}

func TestAdapter_SlotFailuresAreLogged(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	adapter := localcart.New(failingSlots{}, zerolog.New(&buf))

	adapter.Save(ctx, "u1", []domain.CartLine{randomLine()})
	_, ok := adapter.Load(ctx, "u1")

	assert.False(t, ok)
	assert.Contains(t, buf.String(), "write cart slot")
	assert.Contains(t, buf.String(), "read cart slot")
	assert.Contains(t, buf.String(), "disk on fire")
}
