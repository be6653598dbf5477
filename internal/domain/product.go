package domain

import "github.com/shopspring/decimal"

type Product struct {
	ProductID string
	Title     string
	Images    []string
	Variants  []Variant
}

type Variant struct {
	Size            string
	Price           decimal.Decimal
	DiscountPercent decimal.Decimal
	Weight          Weight
}

func (p Product) Variant(size string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.Size == size {
			return v, true
		}
	}
	return Variant{}, false
}
