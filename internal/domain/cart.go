package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GuestUserID owns the cart before an identity is known and after logout.
const GuestUserID = "guest"

type Cart struct {
	OwnerID string
	Items   []CartItem
}

// CartItem is a line as stored by the remote cart service.
type CartItem struct {
	Line CartLine

	CreatedAt time.Time
}

type LineKey struct {
	ProductID string
	VariantID string
}

type Weight struct {
	Value decimal.Decimal
	Unit  string
}

type CartLine struct {
	ProductID string
	VariantID string

	Title    string
	ImageRef string
	Weight   Weight

	CurrentPrice  Money
	OriginalPrice *Money

	Quantity int
}

func (l CartLine) Key() LineKey {
	return LineKey{ProductID: l.ProductID, VariantID: l.VariantID}
}

// Clone returns a copy that shares no pointers with l.
func (l CartLine) Clone() CartLine {
	if l.OriginalPrice != nil {
		original := *l.OriginalPrice
		l.OriginalPrice = &original
	}
	return l
}

type CartState struct {
	UserID string
	Items  []CartLine
	Ready  bool
}

func NewCartState() CartState {
	return CartState{UserID: GuestUserID}
}

func (s CartState) IsGuest() bool {
	return IsGuest(s.UserID)
}

// Clone deep-copies the item list so callers can't reach the store's slice.
func (s CartState) Clone() CartState {
	s.Items = CloneLines(s.Items)
	return s
}

func IsGuest(userID string) bool {
	return userID == "" || userID == GuestUserID
}

func CloneLines(lines []CartLine) []CartLine {
	if lines == nil {
		return nil
	}
	out := make([]CartLine, len(lines))
	for i, line := range lines {
		out[i] = line.Clone()
	}
	return out
}
