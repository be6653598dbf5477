package repository

import (
	"context"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-cart/internal/db"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type cartRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *cartRepository) GetCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, domain.ErrOwnerIDRequired
	}

	dbCartItems, err := r.q.GetCart(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("q.GetCart: %w", err)
	}

	items, err := mapGetCartRowsToDomain(dbCartItems)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("mapGetCartRowsToDomain: %w", err)
	}

	return domain.Cart{
		OwnerID: ownerID,
		Items:   items,
	}, nil
}

// ReplaceCart swaps the owner's lines for the given ones in a single transaction.
// Line order is kept through the position column.
func (r *cartRepository) ReplaceCart(ctx context.Context, ownerID string, lines []domain.CartLine) error {
	if ownerID == "" {
		return domain.ErrOwnerIDRequired
	}

	err := withTx(ctx, r.pool, r.q, func(q *db.Queries) error {
		if _, err := q.DeleteCart(ctx, ownerID); err != nil {
			return fmt.Errorf("q.DeleteCart: %w", err)
		}

		for i, line := range lines {
			if err := q.AddItem(ctx, mapDomainToAddItemParams(ownerID, i, line)); err != nil {
				return fmt.Errorf("q.AddItem[%s/%s]: %w", line.ProductID, line.VariantID, err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("withTx: %w", err)
	}

	return nil
}

func mapDomainToAddItemParams(ownerID string, position int, line domain.CartLine) db.AddItemParams {
	params := db.AddItemParams{
		OwnerID:       ownerID,
		ProductID:     line.ProductID,
		VariantID:     line.VariantID,
		Position:      int32(position),
		Title:         line.Title,
		ImageRef:      line.ImageRef,
		WeightUnit:    line.Weight.Unit,
		PriceAmount:   line.CurrentPrice.Amount,
		PriceCurrency: line.CurrentPrice.Currency.String(),
		Quantity:      int32(line.Quantity),
	}
	if line.Weight.Unit != "" || !line.Weight.Value.IsZero() {
		params.WeightValue = decimal.NewNullDecimal(line.Weight.Value)
	}
	if line.OriginalPrice != nil {
		params.OriginalPriceAmount = decimal.NewNullDecimal(line.OriginalPrice.Amount)
	}
	return params
}

func mapGetCartRowToDomain(row db.GetCartRow) (domain.CartItem, error) {
	parsedCurrency, err := currency.ParseISO(row.PriceCurrency)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}

	line := domain.CartLine{
		ProductID:    row.ProductID,
		VariantID:    row.VariantID,
		Title:        row.Title,
		ImageRef:     row.ImageRef,
		Weight:       domain.Weight{Unit: row.WeightUnit},
		CurrentPrice: domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
		Quantity:     int(row.Quantity),
	}
	if row.WeightValue.Valid {
		line.Weight.Value = row.WeightValue.Decimal
	}
	if row.OriginalPriceAmount.Valid {
		line.OriginalPrice = &domain.Money{Amount: row.OriginalPriceAmount.Decimal, Currency: parsedCurrency}
	}

	return domain.CartItem{
		Line:      line,
		CreatedAt: row.CreatedAt,
	}, nil
}

func mapGetCartRowsToDomain(rows []db.GetCartRow) ([]domain.CartItem, error) {
	var items []domain.CartItem

	for _, row := range rows {
		item, err := mapGetCartRowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapGetCartRowToDomain: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}
