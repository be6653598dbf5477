package slot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
)

type fileSlots struct {
	dir string
}

// NewFile stores each slot as a file under dir, creating dir if needed.
func NewFile(dir string) (port.SlotStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("dir is empty")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("os.MkdirAll: %w", err)
	}
	return &fileSlots{dir: dir}, nil
}

func (f *fileSlots) path(key string) string {
	// keys contain ':' and user-supplied IDs
	return filepath.Join(f.dir, url.PathEscape(key)+".json")
}

func (f *fileSlots) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}
	return data, nil
}

// Put writes through a temp file and rename so readers never see a partial value.
func (f *fileSlots) Put(_ context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(f.dir, ".slot-*")
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("tmp.Write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("tmp.Close: %w", err)
	}
	if err := os.Rename(tmpName, f.path(key)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("os.Rename: %w", err)
	}
	return nil
}

func (f *fileSlots) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("os.Remove: %w", err)
	}
	return nil
}

var _ port.SlotStore = (*fileSlots)(nil)
