// Package projection derives display values from cart lines. Every function is pure
// and recomputed on each call.
package projection

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/nikolayk812/storefront-cart/internal/domain"
)

// Line is a cart line with its computed total, as rendered by the cart and checkout views.
type Line struct {
	domain.CartLine
	Total domain.Money
}

type Summary struct {
	Lines     []Line
	Subtotal  domain.Money
	Discount  domain.Money
	Total     domain.Money
	ItemCount int
}

func LineTotal(line domain.CartLine) decimal.Decimal {
	return line.CurrentPrice.Amount.Mul(decimal.NewFromInt(int64(line.Quantity)))
}

func Subtotal(items []domain.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range items {
		sum = sum.Add(LineTotal(line))
	}
	return sum
}

// Discount sums the per-unit saving against the baseline price over all units.
// Lines without a baseline, or priced above it, contribute nothing.
func Discount(items []domain.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range items {
		if line.OriginalPrice == nil {
			continue
		}
		saving := line.OriginalPrice.Amount.Sub(line.CurrentPrice.Amount)
		if !saving.IsPositive() {
			continue
		}
		sum = sum.Add(saving.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return sum
}

// ItemCount counts distinct lines, which is what the header badge shows.
func ItemCount(items []domain.CartLine) int {
	return len(items)
}

// Summarize builds the cart view model. Total equals Subtotal: prices are already
// discounted, Discount only reports the saving.
func Summarize(items []domain.CartLine, cur currency.Unit) Summary {
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, Line{
			CartLine: item.Clone(),
			Total:    domain.NewMoney(LineTotal(item), item.CurrentPrice.Currency),
		})
	}

	subtotal := domain.NewMoney(Subtotal(items), cur)
	return Summary{
		Lines:     lines,
		Subtotal:  subtotal,
		Discount:  domain.NewMoney(Discount(items), cur),
		Total:     subtotal,
		ItemCount: ItemCount(items),
	}
}
