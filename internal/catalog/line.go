package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/nikolayk812/storefront-cart/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// UnitPrice applies the variant discount to its list price, rounded to cents.
func UnitPrice(v domain.Variant) (decimal.Decimal, error) {
	if v.Price.IsNegative() {
		return decimal.Zero, domain.ErrPriceNegative
	}

	percent := v.DiscountPercent
	if percent.IsNegative() {
		percent = decimal.Zero
	}
	if percent.GreaterThan(hundred) {
		percent = hundred
	}

	return v.Price.Mul(hundred.Sub(percent)).Div(hundred).Round(2), nil
}

// LineFor snapshots a product variant into a cart line. The variant size is the line's
// VariantID; a product without variants can only be added with an empty size.
func LineFor(p domain.Product, size string, quantity int, cur currency.Unit) (domain.CartLine, error) {
	if p.ProductID == "" {
		return domain.CartLine{}, domain.ErrProductIDRequired
	}

	variant, ok := p.Variant(size)
	if !ok {
		return domain.CartLine{}, fmt.Errorf("product[%s] size[%s]: %w", p.ProductID, size, domain.ErrVariantNotFound)
	}

	price, err := UnitPrice(variant)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("UnitPrice: %w", err)
	}

	if quantity < 1 {
		quantity = 1
	}

	var imageRef string
	if len(p.Images) > 0 {
		imageRef = p.Images[0]
	}

	original := domain.NewMoney(variant.Price, cur)
	return domain.CartLine{
		ProductID:     p.ProductID,
		VariantID:     variant.Size,
		Title:         p.Title,
		ImageRef:      imageRef,
		Weight:        variant.Weight,
		CurrentPrice:  domain.NewMoney(price, cur),
		OriginalPrice: &original,
		Quantity:      quantity,
	}, nil
}
