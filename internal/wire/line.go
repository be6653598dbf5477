// Package wire holds the JSON shape of cart lines shared by the local slot format,
// the remote cart endpoint and its client.
package wire

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/nikolayk812/storefront-cart/internal/domain"
)

type Weight struct {
	Value decimal.Decimal `json:"value"`
	Unit  string          `json:"unit"`
}

type Line struct {
	ProductID     string           `json:"productId" validate:"required"`
	VariantID     string           `json:"variantId,omitempty"`
	Title         string           `json:"title,omitempty"`
	ImageRef      string           `json:"imageRef,omitempty"`
	Weight        *Weight          `json:"weight,omitempty"`
	CurrentPrice  decimal.Decimal  `json:"currentPrice"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Currency      string           `json:"currency" validate:"required,len=3"`
	Quantity      int              `json:"quantity" validate:"min=1"`
}

// UpdateCartRequest is the body of POST /cart/update.
type UpdateCartRequest struct {
	Items []Line `json:"items" validate:"dive"`
}

func LineFromDomain(l domain.CartLine) Line {
	out := Line{
		ProductID:    l.ProductID,
		VariantID:    l.VariantID,
		Title:        l.Title,
		ImageRef:     l.ImageRef,
		CurrentPrice: l.CurrentPrice.Amount,
		Currency:     l.CurrentPrice.Currency.String(),
		Quantity:     l.Quantity,
	}
	if l.Weight.Unit != "" || !l.Weight.Value.IsZero() {
		out.Weight = &Weight{Value: l.Weight.Value, Unit: l.Weight.Unit}
	}
	if l.OriginalPrice != nil {
		amount := l.OriginalPrice.Amount
		out.OriginalPrice = &amount
	}
	return out
}

func LinesFromDomain(lines []domain.CartLine) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, LineFromDomain(l))
	}
	return out
}

func LineToDomain(l Line) (domain.CartLine, error) {
	if l.ProductID == "" {
		return domain.CartLine{}, domain.ErrProductIDRequired
	}

	parsedCurrency, err := currency.ParseISO(l.Currency)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("currency[%s] is not valid: %w", l.Currency, err)
	}

	if l.CurrentPrice.IsNegative() {
		return domain.CartLine{}, domain.ErrPriceNegative
	}

	if l.Quantity < 1 {
		return domain.CartLine{}, domain.ErrQuantityRange
	}

	out := domain.CartLine{
		ProductID:    l.ProductID,
		VariantID:    l.VariantID,
		Title:        l.Title,
		ImageRef:     l.ImageRef,
		CurrentPrice: domain.Money{Amount: l.CurrentPrice, Currency: parsedCurrency},
		Quantity:     l.Quantity,
	}
	if l.Weight != nil {
		out.Weight = domain.Weight{Value: l.Weight.Value, Unit: l.Weight.Unit}
	}
	if l.OriginalPrice != nil {
		out.OriginalPrice = &domain.Money{Amount: *l.OriginalPrice, Currency: parsedCurrency}
	}
	return out, nil
}

func LinesToDomain(lines []Line) ([]domain.CartLine, error) {
	out := make([]domain.CartLine, 0, len(lines))
	for i, l := range lines {
		line, err := LineToDomain(l)
		if err != nil {
			return nil, fmt.Errorf("LineToDomain[%d]: %w", i, err)
		}
		out = append(out, line)
	}
	return out, nil
}
