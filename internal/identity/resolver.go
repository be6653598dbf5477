package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
)

const DefaultSessionKey = "session"

type userRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type sessionRecord struct {
	User  *userRecord `json:"user"`
	Token string      `json:"token"`
}

// Resolver reads the persisted session record. A missing or unreadable record means guest.
type Resolver struct {
	slots  port.SlotStore
	key    string
	logger zerolog.Logger
}

func NewResolver(slots port.SlotStore, key string, logger zerolog.Logger) *Resolver {
	if key == "" {
		key = DefaultSessionKey
	}
	return &Resolver{
		slots:  slots,
		key:    key,
		logger: logger.With().Str("component", "identity").Logger(),
	}
}

func (r *Resolver) Session(ctx context.Context) (domain.Session, bool) {
	data, err := r.slots.Get(ctx, r.key)
	if errors.Is(err, domain.ErrSlotNotFound) {
		return domain.Session{}, false
	}
	if err != nil {
		r.logger.Warn().Err(err).Msg("read session record")
		return domain.Session{}, false
	}

	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		r.logger.Warn().Err(err).Msg("session record is not valid json")
		return domain.Session{}, false
	}
	if rec.User == nil || rec.User.ID == "" {
		return domain.Session{}, false
	}

	return domain.Session{
		User:  domain.User{ID: rec.User.ID, Name: rec.User.Name, Email: rec.User.Email},
		Token: rec.Token,
	}, true
}

func (r *Resolver) Current(ctx context.Context) domain.Identity {
	session, ok := r.Session(ctx)
	if !ok {
		return domain.GuestIdentity()
	}
	return session.Identity()
}

func (r *Resolver) Save(ctx context.Context, session domain.Session) error {
	if session.User.ID == "" {
		return fmt.Errorf("user id is empty")
	}

	data, err := json.Marshal(sessionRecord{
		User:  &userRecord{ID: session.User.ID, Name: session.User.Name, Email: session.User.Email},
		Token: session.Token,
	})
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := r.slots.Put(ctx, r.key, data); err != nil {
		return fmt.Errorf("slots.Put: %w", err)
	}
	return nil
}

func (r *Resolver) Forget(ctx context.Context) error {
	if err := r.slots.Delete(ctx, r.key); err != nil {
		return fmt.Errorf("slots.Delete: %w", err)
	}
	return nil
}
