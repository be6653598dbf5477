package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/text/currency"

	"github.com/nikolayk812/storefront-cart/internal/cart"
	"github.com/nikolayk812/storefront-cart/internal/cartapi"
	"github.com/nikolayk812/storefront-cart/internal/catalog"
	"github.com/nikolayk812/storefront-cart/internal/config"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/identity"
	"github.com/nikolayk812/storefront-cart/internal/localcart"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/nikolayk812/storefront-cart/internal/projection"
	"github.com/nikolayk812/storefront-cart/internal/remotesync"
	"github.com/nikolayk812/storefront-cart/internal/slot"
)

// Deps overrides what New would otherwise build from configuration.
type Deps struct {
	Slots      port.SlotStore
	Remote     port.RemoteCart
	Registerer prometheus.Registerer
}

// Cart is the composition root of the storefront cart: one store per application,
// handed to the cart view, checkout and header badge.
type Cart struct {
	Store    *cart.Store
	Identity *identity.Resolver

	currency currency.Unit
	syncer   *remotesync.Syncer
	closer   io.Closer
	logger   zerolog.Logger
}

func New(ctx context.Context, cfg config.Config, deps Deps, logger zerolog.Logger) (*Cart, error) {
	cur, err := cfg.Cart.CurrencyUnit()
	if err != nil {
		return nil, err
	}

	slots, closer := deps.Slots, io.Closer(nil)
	if slots == nil {
		slots, closer, err = newSlots(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("newSlots: %w", err)
		}
	}

	remote := deps.Remote
	if remote == nil && cfg.Remote.BaseURL != "" {
		client, err := cartapi.NewClient(cfg.Remote.BaseURL, cartapi.WithTimeout(cfg.Remote.Timeout))
		if err != nil {
			return nil, fmt.Errorf("cartapi.NewClient: %w", err)
		}
		remote = client
	}

	opts := []cart.Option{cart.WithLogger(logger)}
	var syncer *remotesync.Syncer
	if remote != nil {
		syncer = remotesync.New(remote,
			remotesync.WithLogger(logger),
			remotesync.WithMetrics(remotesync.NewMetrics(deps.Registerer)),
			remotesync.WithPushTimeout(cfg.Remote.Timeout),
		)
		opts = append(opts, cart.WithSyncer(syncer))
	}

	c := &Cart{
		Store:    cart.NewStore(localcart.New(slots, logger), opts...),
		Identity: identity.NewResolver(slots, cfg.Cart.SessionKey, logger),
		currency: cur,
		syncer:   syncer,
		closer:   closer,
		logger:   logger.With().Str("component", "app").Logger(),
	}

	c.Store.SetUser(ctx, c.Identity.Current(ctx))
	return c, nil
}

func newSlots(ctx context.Context, cfg config.Config) (port.SlotStore, io.Closer, error) {
	switch strings.ToLower(cfg.Cart.SlotBackend) {
	case config.SlotBackendFile:
		slots, err := slot.NewFile(cfg.Cart.SlotDir)
		return slots, nil, err
	case config.SlotBackendRedis:
		slots, err := slot.NewRedis(ctx, cfg.Redis.URL, cfg.Redis.SlotTTL)
		if err != nil {
			return nil, nil, err
		}
		return slots, slots, nil
	default:
		return slot.NewMemory(), nil, nil
	}
}

// Login records the session and switches the cart to that user. The guest cart is
// not merged into the user's cart.
func (c *Cart) Login(ctx context.Context, session domain.Session) error {
	if err := c.Identity.Save(ctx, session); err != nil {
		return fmt.Errorf("identity.Save: %w", err)
	}
	c.Store.SetUser(ctx, session.Identity())
	c.logger.Info().Str("user_id", session.User.ID).Msg("logged in")
	return nil
}

func (c *Cart) Logout(ctx context.Context) error {
	c.Store.Clear(ctx)
	if err := c.Identity.Forget(ctx); err != nil {
		return fmt.Errorf("identity.Forget: %w", err)
	}
	c.logger.Info().Msg("logged out")
	return nil
}

// AddProduct prices the chosen variant and adds it to the cart.
func (c *Cart) AddProduct(ctx context.Context, product domain.Product, size string, quantity int) error {
	line, err := catalog.LineFor(product, size, quantity, c.currency)
	if err != nil {
		return fmt.Errorf("catalog.LineFor: %w", err)
	}
	c.Store.AddItem(ctx, line)
	return nil
}

func (c *Cart) Summary() projection.Summary {
	return projection.Summarize(c.Store.Items(), c.currency)
}

// Close waits for in-flight remote pushes and releases the slot backend.
func (c *Cart) Close() error {
	if c.syncer != nil {
		c.syncer.Wait()
	}
	if c.closer != nil {
		if err := c.closer.Close(); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("close slots: %w", err)
		}
	}
	return nil
}
