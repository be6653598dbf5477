package cart

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/nikolayk812/storefront-cart/internal/domain"
)

// Persister mirrors cart items into the durable per-user slot.
// Implementations handle their own failures.
type Persister interface {
	Load(ctx context.Context, userID string) ([]domain.CartLine, bool)
	Save(ctx context.Context, userID string, items []domain.CartLine)
}

// Syncer mirrors cart items to the remote cart endpoint.
type Syncer interface {
	Push(identity domain.Identity, items []domain.CartLine)
	Fetch(ctx context.Context, identity domain.Identity) ([]domain.CartLine, error)
}

type Listener func(domain.CartState)

type Option func(*Store)

func WithSyncer(syncer Syncer) Option {
	return func(s *Store) {
		s.syncer = syncer
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Store owns the active cart. Operations are applied one at a time in call order;
// State never waits for an in-flight hydration.
type Store struct {
	opMu sync.Mutex

	stateMu  sync.RWMutex
	state    domain.CartState
	identity domain.Identity

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int

	persister Persister
	syncer    Syncer
	logger    zerolog.Logger
}

func NewStore(persister Persister, opts ...Option) *Store {
	s := &Store{
		state:     domain.NewCartState(),
		identity:  domain.GuestIdentity(),
		listeners: make(map[int]Listener),
		persister: persister,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("component", "cart-store").Logger()
	return s
}

// State returns a snapshot; mutating it does not affect the store.
func (s *Store) State() domain.CartState {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state.Clone()
}

func (s *Store) Items() []domain.CartLine {
	return s.State().Items
}

// Subscribe registers fn to receive the state after every accepted change.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		delete(s.listeners, id)
	}
}

// SetUser switches the owner and hydrates its cart: the local slot first, then the
// remote cart for a logged-in user without a local one. Ready is false meanwhile.
func (s *Store) SetUser(ctx context.Context, identity domain.Identity) {
	if identity.UserID == "" {
		identity = domain.GuestIdentity()
	}

	snapshot := func() domain.CartState {
		s.opMu.Lock()
		defer s.opMu.Unlock()

		s.stateMu.Lock()
		s.identity = identity
		s.state.UserID = identity.UserID
		s.state.Ready = false
		s.stateMu.Unlock()

		items, fromRemote := s.hydrate(ctx, identity)

		s.stateMu.Lock()
		s.state, _ = Reduce(s.state, Hydrate{UserID: identity.UserID, Items: items})
		snapshot := s.state.Clone()
		s.stateMu.Unlock()

		if fromRemote {
			s.persist(ctx, snapshot)
		}
		return snapshot
	}()

	s.logger.Debug().
		Str("user_id", snapshot.UserID).
		Int("items", len(snapshot.Items)).
		Msg("cart hydrated")

	s.notify(snapshot)
}

func (s *Store) hydrate(ctx context.Context, identity domain.Identity) ([]domain.CartLine, bool) {
	if s.persister != nil {
		if items, ok := s.persister.Load(ctx, identity.UserID); ok {
			return items, false
		}
	}

	if identity.IsGuest() || s.syncer == nil {
		return nil, false
	}

	items, err := s.syncer.Fetch(ctx, identity)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", identity.UserID).Msg("remote cart fetch failed")
		return nil, false
	}
	return items, len(items) > 0
}

func (s *Store) ReplaceItems(ctx context.Context, items []domain.CartLine) {
	s.dispatch(ctx, ReplaceItems{Items: items})
}

func (s *Store) AddItem(ctx context.Context, line domain.CartLine) {
	if line.ProductID == "" {
		s.logger.Warn().Msg("add item ignored: productID is empty")
		return
	}
	s.dispatch(ctx, AddItem{Line: line})
}

func (s *Store) IncrementQuantity(ctx context.Context, productID, variantID string) {
	s.dispatch(ctx, IncrementQuantity{Key: domain.LineKey{ProductID: productID, VariantID: variantID}})
}

// DecrementQuantity stops at 1; use RemoveItem to drop a line.
func (s *Store) DecrementQuantity(ctx context.Context, productID, variantID string) {
	s.dispatch(ctx, DecrementQuantity{Key: domain.LineKey{ProductID: productID, VariantID: variantID}})
}

func (s *Store) RemoveItem(ctx context.Context, productID, variantID string) {
	s.dispatch(ctx, RemoveItem{Key: domain.LineKey{ProductID: productID, VariantID: variantID}})
}

// Clear empties the cart and resets the owner to guest. The previous owner's slot
// is left untouched.
func (s *Store) Clear(ctx context.Context) {
	s.dispatch(ctx, Clear{})
}

func (s *Store) dispatch(ctx context.Context, a Action) {
	snapshot, changed := func() (domain.CartState, bool) {
		s.opMu.Lock()
		defer s.opMu.Unlock()

		s.stateMu.Lock()
		next, changed := Reduce(s.state, a)
		if !changed {
			s.stateMu.Unlock()
			return domain.CartState{}, false
		}
		if _, ok := a.(Clear); ok {
			s.identity = domain.GuestIdentity()
		}
		s.state = next
		snapshot := next.Clone()
		identity := s.identity
		s.stateMu.Unlock()

		s.persist(ctx, snapshot)
		if s.syncer != nil && !identity.IsGuest() {
			s.syncer.Push(identity, snapshot.Items)
		}
		return snapshot, true
	}()
	if !changed {
		return
	}

	s.notify(snapshot)
}

func (s *Store) persist(ctx context.Context, snapshot domain.CartState) {
	if s.persister == nil {
		return
	}
	s.persister.Save(ctx, snapshot.UserID, snapshot.Items)
}

func (s *Store) notify(snapshot domain.CartState) {
	s.listenersMu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.listenersMu.Unlock()

	for _, fn := range listeners {
		fn(snapshot.Clone())
	}
}
