package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, cur currency.Unit) Money {
	return Money{Amount: amount, Currency: cur}
}

func ZeroMoney(cur currency.Unit) Money {
	return Money{Amount: decimal.Zero, Currency: cur}
}

func (m Money) Mul(quantity int) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(int64(quantity))), Currency: m.Currency}
}

// Add sums amounts and keeps the receiver's currency.
func (m Money) Add(other Money) Money {
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}
}

func (m Money) Sub(other Money) Money {
	return Money{Amount: m.Amount.Sub(other.Amount), Currency: m.Currency}
}

func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

func (m Money) Equal(other Money) bool {
	return m.Amount.Equal(other.Amount) && m.Currency.String() == other.Currency.String()
}
