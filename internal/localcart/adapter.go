package localcart

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/nikolayk812/storefront-cart/internal/wire"
)

const keyPrefix = "cart:"

// SlotKey namespaces the cart slot of a user; every guest shares one slot.
func SlotKey(userID string) string {
	if domain.IsGuest(userID) {
		return keyPrefix + domain.GuestUserID
	}
	return keyPrefix + userID
}

// Adapter stores the item list of each user in its own slot. Failures are logged and
// degrade to "no saved cart".
type Adapter struct {
	slots  port.SlotStore
	logger zerolog.Logger
}

func New(slots port.SlotStore, logger zerolog.Logger) *Adapter {
	return &Adapter{
		slots:  slots,
		logger: logger.With().Str("component", "local-cart").Logger(),
	}
}

func (a *Adapter) Load(ctx context.Context, userID string) ([]domain.CartLine, bool) {
	key := SlotKey(userID)

	data, err := a.slots.Get(ctx, key)
	if errors.Is(err, domain.ErrSlotNotFound) {
		return nil, false
	}
	if err != nil {
		a.logger.Warn().Err(err).Str("slot_key", key).Msg("read cart slot")
		return nil, false
	}

	var lines []wire.Line
	if err := json.Unmarshal(data, &lines); err != nil {
		a.logger.Warn().Err(err).Str("slot_key", key).Msg("cart slot is not valid json")
		return nil, false
	}

	items, err := wire.LinesToDomain(lines)
	if err != nil {
		a.logger.Warn().Err(err).Str("slot_key", key).Msg("cart slot holds invalid lines")
		return nil, false
	}
	return items, true
}

func (a *Adapter) Save(ctx context.Context, userID string, items []domain.CartLine) {
	key := SlotKey(userID)

	data, err := json.Marshal(wire.LinesFromDomain(items))
	if err != nil {
		a.logger.Error().Err(err).Str("slot_key", key).Msg("encode cart slot")
		return
	}

	if err := a.slots.Put(ctx, key, data); err != nil {
		a.logger.Warn().Err(err).Str("slot_key", key).Msg("write cart slot")
	}
}
