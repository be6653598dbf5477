package remotesync_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/text/currency"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/remotesync"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type update struct {
	token string
	items []domain.CartLine
}

type fakeRemote struct {
	mu        sync.Mutex
	updates   []update
	updateErr error
	cart      []domain.CartLine
	getErr    error
	block     chan struct{}
}

func (f *fakeRemote) UpdateCart(ctx context.Context, token string, lines []domain.CartLine) error {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, update{token: token, items: lines})
	return f.updateErr
}

func (f *fakeRemote) GetCart(_ context.Context, _ string) ([]domain.CartLine, error) {
	return f.cart, f.getErr
}

func (f *fakeRemote) recorded() []update {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]update(nil), f.updates...)
}

func line(productID string, qty int) domain.CartLine {
	return domain.CartLine{
		ProductID:    productID,
		CurrentPrice: domain.NewMoney(decimal.NewFromInt(10), currency.USD),
		Quantity:     qty,
	}
}

func TestPush_SendsBoundSnapshot(t *testing.T) {
	remote := &fakeRemote{}
	syncer := remotesync.New(remote)

	items := []domain.CartLine{line("p1", 1)}
	syncer.Push(domain.Identity{UserID: "u1", Token: "t1"}, items)
	items[0].Quantity = 7

	syncer.Wait()

	updates := remote.recorded()
	require.Len(t, updates, 1)
	assert.Equal(t, "t1", updates[0].token)
	assert.Equal(t, 1, updates[0].items[0].Quantity)
}

func TestPush_SkipsGuestAndTokenless(t *testing.T) {
	remote := &fakeRemote{}
	syncer := remotesync.New(remote)

	syncer.Push(domain.GuestIdentity(), []domain.CartLine{line("p1", 1)})
	syncer.Push(domain.Identity{UserID: "u1"}, []domain.CartLine{line("p1", 1)})
	syncer.Wait()

	assert.Empty(t, remote.recorded())
}

func TestPush_FailureIsLoggedAndNotRetried(t *testing.T) {
	remote := &fakeRemote{updateErr: errors.New("503 service unavailable")}
	reg := prometheus.NewRegistry()

	var buf bytes.Buffer
	syncer := remotesync.New(remote,
		remotesync.WithLogger(zerolog.New(&buf)),
		remotesync.WithMetrics(remotesync.NewMetrics(reg)),
	)

	syncer.Push(domain.Identity{UserID: "u1", Token: "t1"}, []domain.CartLine{line("p1", 1)})
	syncer.Wait()

	assert.Len(t, remote.recorded(), 1)
	assert.Contains(t, buf.String(), "remote cart push failed")
	assert.Contains(t, buf.String(), "503 service unavailable")

	count, err := testutil.GatherAndCount(reg, "storefront_cart_sync_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPush_PushesDoNotBlockCaller(t *testing.T) {
	remote := &fakeRemote{block: make(chan struct{})}
	syncer := remotesync.New(remote)

	for i := 0; i < 3; i++ {
		syncer.Push(domain.Identity{UserID: "u1", Token: "t1"}, []domain.CartLine{line("p1", i+1)})
	}
	assert.Empty(t, remote.recorded())

	close(remote.block)
	syncer.Wait()
	assert.Len(t, remote.recorded(), 3)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	remote := &fakeRemote{cart: []domain.CartLine{line("p1", 2)}}
	syncer := remotesync.New(remote, remotesync.WithMetrics(remotesync.NewMetrics(reg)))
	user := domain.Identity{UserID: "u1", Token: "t1"}

	syncer.Push(user, nil)
	syncer.Push(user, nil)
	syncer.Wait()

	remote.getErr = errors.New("boom")
	_, err := syncer.Fetch(context.Background(), user)
	require.Error(t, err)

	// a second registration reuses the collectors already in reg
	metrics := remotesync.NewMetrics(reg)
	require.NotNil(t, metrics)

	count, err := testutil.GatherAndCount(reg, "storefront_cart_sync_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	families, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != "storefront_cart_sync_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			key := ""
			for _, lp := range m.GetLabel() {
				key += lp.GetValue() + "/"
			}
			values[key] = m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, map[string]float64{"push/success/": 2, "fetch/failure/": 1}, values)

	var inflight float64
	for _, mf := range families {
		if mf.GetName() == "storefront_cart_sync_inflight" {
			inflight = mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	assert.Zero(t, inflight)
}

func TestFetch(t *testing.T) {
	remote := &fakeRemote{cart: []domain.CartLine{line("p1", 2)}}
	syncer := remotesync.New(remote)

	items, err := syncer.Fetch(context.Background(), domain.Identity{UserID: "u1", Token: "t1"})
	require.NoError(t, err)
	assert.Len(t, items, 1)

	items, err = syncer.Fetch(context.Background(), domain.GuestIdentity())
	require.NoError(t, err)
	assert.Nil(t, items)
}
