// Package slot provides durable key/value slots for the local cart and session record.
package slot

import (
	"context"
	"sync"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
)

type memorySlots struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemory returns process-local slots; they survive a store restart but not a process restart.
func NewMemory() port.SlotStore {
	return &memorySlots{items: make(map[string][]byte)}
}

func (m *memorySlots) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.items[key]
	if !ok {
		return nil, domain.ErrSlotNotFound
	}
	return append([]byte(nil), value...), nil
}

func (m *memorySlots) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = append([]byte(nil), value...)
	return nil
}

func (m *memorySlots) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}

var _ port.SlotStore = (*memorySlots)(nil)
