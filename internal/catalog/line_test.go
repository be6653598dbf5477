package catalog_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"

	"github.com/nikolayk812/storefront-cart/internal/catalog"
	"github.com/nikolayk812/storefront-cart/internal/domain"
)

func TestUnitPrice(t *testing.T) {
	tests := []struct {
		name    string
		price   string
		percent string
		want    string
		wantErr error
	}{
		{name: "no discount", price: "100", percent: "0", want: "100"},
		{name: "ten percent", price: "100", percent: "10", want: "90"},
		{name: "rounded to cents", price: "19.99", percent: "15", want: "16.99"},
		{name: "negative percent clamped", price: "40", percent: "-5", want: "40"},
		{name: "percent above hundred clamped", price: "40", percent: "150", want: "0"},
		{name: "negative price", price: "-1", percent: "0", wantErr: domain.ErrPriceNegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := catalog.UnitPrice(domain.Variant{
				Price:           decimal.RequireFromString(tt.price),
				DiscountPercent: decimal.RequireFromString(tt.percent),
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func randomProduct() domain.Product {
	return domain.Product{
		ProductID: gofakeit.UUID(),
		Title:     gofakeit.ProductName(),
		Images:    []string{gofakeit.URL(), gofakeit.URL()},
		Variants: []domain.Variant{
			{
				Size:            "S",
				Price:           decimal.NewFromInt(200),
				DiscountPercent: decimal.NewFromInt(25),
				Weight:          domain.Weight{Value: decimal.RequireFromString("0.35"), Unit: "kg"},
			},
			{
				Size:  "M",
				Price: decimal.NewFromInt(220),
			},
		},
	}
}

func TestLineFor(t *testing.T) {
	p := randomProduct()

	line, err := catalog.LineFor(p, "S", 2, currency.USD)
	require.NoError(t, err)

	assert.Equal(t, p.ProductID, line.ProductID)
	assert.Equal(t, "S", line.VariantID)
	assert.Equal(t, p.Title, line.Title)
	assert.Equal(t, p.Images[0], line.ImageRef)
	assert.Equal(t, "kg", line.Weight.Unit)
	assert.Equal(t, 2, line.Quantity)
	assert.True(t, line.CurrentPrice.Equal(domain.NewMoney(decimal.NewFromInt(150), currency.USD)))
	require.NotNil(t, line.OriginalPrice)
	assert.True(t, line.OriginalPrice.Equal(domain.NewMoney(decimal.NewFromInt(200), currency.USD)))
}

func TestLineFor_DefaultsQuantity(t *testing.T) {
	line, err := catalog.LineFor(randomProduct(), "M", 0, currency.USD)
	require.NoError(t, err)
	assert.Equal(t, 1, line.Quantity)
}

func TestLineFor_NoImages(t *testing.T) {
	p := randomProduct()
	p.Images = nil

	line, err := catalog.LineFor(p, "M", 1, currency.USD)
	require.NoError(t, err)
	assert.Empty(t, line.ImageRef)
}

func TestLineFor_Errors(t *testing.T) {
	p := randomProduct()

	_, err := catalog.LineFor(p, "XL", 1, currency.USD)
	assert.ErrorIs(t, err, domain.ErrVariantNotFound)

	p.ProductID = ""
	_, err = catalog.LineFor(p, "S", 1, currency.USD)
	assert.ErrorIs(t, err, domain.ErrProductIDRequired)
}
