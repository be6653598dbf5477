package remotesync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
)

const defaultPushTimeout = 10 * time.Second

type Option func(*Syncer)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Syncer) {
		s.logger = logger
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(s *Syncer) {
		s.metrics = metrics
	}
}

// WithPushTimeout bounds each detached push.
func WithPushTimeout(timeout time.Duration) Option {
	return func(s *Syncer) {
		if timeout > 0 {
			s.pushTimeout = timeout
		}
	}
}

// Syncer mirrors the cart to the remote endpoint. Pushes run detached from the caller;
// failures are logged and dropped, never retried.
type Syncer struct {
	remote      port.RemoteCart
	logger      zerolog.Logger
	metrics     *Metrics
	pushTimeout time.Duration

	wg sync.WaitGroup
}

func New(remote port.RemoteCart, opts ...Option) *Syncer {
	s := &Syncer{
		remote:      remote,
		logger:      zerolog.Nop(),
		pushTimeout: defaultPushTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("component", "remote-sync").Logger()
	return s
}

// Push sends items for identity in the background. identity and items are bound now,
// so a later logout or user switch can't redirect this request.
func (s *Syncer) Push(identity domain.Identity, items []domain.CartLine) {
	if identity.IsGuest() || identity.Token == "" {
		return
	}
	items = domain.CloneLines(items)

	s.wg.Add(1)
	s.metrics.pushStarted()
	go func() {
		defer s.wg.Done()
		defer s.metrics.pushFinished()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error().Interface("panic", r).Str("user_id", identity.UserID).Msg("remote cart push panicked")
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), s.pushTimeout)
		defer cancel()

		start := time.Now()
		err := s.remote.UpdateCart(ctx, identity.Token, items)
		s.metrics.observe(opPush, time.Since(start).Seconds(), err)
		if err != nil {
			s.logger.Warn().Err(err).
				Str("user_id", identity.UserID).
				Int("items", len(items)).
				Msg("remote cart push failed")
			return
		}

		s.logger.Debug().Str("user_id", identity.UserID).Int("items", len(items)).Msg("remote cart pushed")
	}()
}

func (s *Syncer) Fetch(ctx context.Context, identity domain.Identity) ([]domain.CartLine, error) {
	if identity.IsGuest() || identity.Token == "" {
		return nil, nil
	}

	start := time.Now()
	items, err := s.remote.GetCart(ctx, identity.Token)
	s.metrics.observe(opFetch, time.Since(start).Seconds(), err)
	if err != nil {
		return nil, fmt.Errorf("remote.GetCart: %w", err)
	}
	return items, nil
}

// Wait blocks until every issued push has finished.
func (s *Syncer) Wait() {
	s.wg.Wait()
}
