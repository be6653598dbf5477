package cart

import (
	"github.com/nikolayk812/storefront-cart/internal/domain"
)

// Action is a cart state transition request.
type Action interface {
	apply(s domain.CartState) (domain.CartState, bool)
}

// Hydrate switches the owner and installs the items loaded for that owner.
type Hydrate struct {
	UserID string
	Items  []domain.CartLine
}

type ReplaceItems struct {
	Items []domain.CartLine
}

type AddItem struct {
	Line domain.CartLine
}

type IncrementQuantity struct {
	Key domain.LineKey
}

type DecrementQuantity struct {
	Key domain.LineKey
}

type RemoveItem struct {
	Key domain.LineKey
}

type Clear struct{}

// Reduce applies a to s and reports whether the state changed.
// The input state is never modified.
func Reduce(s domain.CartState, a Action) (domain.CartState, bool) {
	if a == nil {
		return s, false
	}
	return a.apply(s)
}

func (a Hydrate) apply(s domain.CartState) (domain.CartState, bool) {
	userID := a.UserID
	if userID == "" {
		userID = domain.GuestUserID
	}
	return domain.CartState{
		UserID: userID,
		Items:  normalize(a.Items),
		Ready:  true,
	}, true
}

func (a ReplaceItems) apply(s domain.CartState) (domain.CartState, bool) {
	s.Items = normalize(a.Items)
	return s, true
}

func (a AddItem) apply(s domain.CartState) (domain.CartState, bool) {
	line := a.Line.Clone()
	if line.ProductID == "" {
		return s, false
	}
	if line.Quantity < 1 {
		line.Quantity = 1
	}

	items := domain.CloneLines(s.Items)
	if i := indexOf(items, line.Key()); i >= 0 {
		items[i].Quantity += line.Quantity
	} else {
		items = append(items, line)
	}

	s.Items = items
	return s, true
}

func (a IncrementQuantity) apply(s domain.CartState) (domain.CartState, bool) {
	i := indexOf(s.Items, a.Key)
	if i < 0 {
		return s, false
	}

	items := domain.CloneLines(s.Items)
	items[i].Quantity++
	s.Items = items
	return s, true
}

func (a DecrementQuantity) apply(s domain.CartState) (domain.CartState, bool) {
	i := indexOf(s.Items, a.Key)
	// decrementing never removes a line
	if i < 0 || s.Items[i].Quantity <= 1 {
		return s, false
	}

	items := domain.CloneLines(s.Items)
	items[i].Quantity--
	s.Items = items
	return s, true
}

func (a RemoveItem) apply(s domain.CartState) (domain.CartState, bool) {
	i := indexOf(s.Items, a.Key)
	if i < 0 {
		return s, false
	}

	items := make([]domain.CartLine, 0, len(s.Items)-1)
	items = append(items, domain.CloneLines(s.Items[:i])...)
	items = append(items, domain.CloneLines(s.Items[i+1:])...)
	s.Items = items
	return s, true
}

func (Clear) apply(s domain.CartState) (domain.CartState, bool) {
	return domain.CartState{
		UserID: domain.GuestUserID,
		Items:  []domain.CartLine{},
		Ready:  true,
	}, true
}

func indexOf(items []domain.CartLine, key domain.LineKey) int {
	for i, item := range items {
		if item.Key() == key {
			return i
		}
	}
	return -1
}

// normalize copies lines, drops lines without a product and folds duplicate keys
// into the first occurrence so externally supplied lists keep the uniqueness invariant.
func normalize(lines []domain.CartLine) []domain.CartLine {
	items := make([]domain.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.ProductID == "" {
			continue
		}
		line = line.Clone()
		if line.Quantity < 1 {
			line.Quantity = 1
		}
		if i := indexOf(items, line.Key()); i >= 0 {
			items[i].Quantity += line.Quantity
			continue
		}
		items = append(items, line)
	}
	return items
}
