package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	StorageKey = "commerce-cart"

	defaultJustAddedFor = time.Second
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

type persistedCart struct {
	Items []domain.LineItem `json:"items"`
}

// Store owns the session's cart. Every mutation is written through to
// Storage; totals are always derived from the current items.
type Store struct {
	storage Storage
	log     *zap.Logger

	justAddedFor time.Duration

	mu        sync.Mutex
	items     []domain.LineItem
	justAdded bool
	flashGen  uint64
	flash     *time.Timer
}

type Option func(*Store)

// WithJustAddedFor overrides how long JustAdded stays true after an add.
func WithJustAddedFor(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.justAddedFor = d
		}
	}
}

func NewStore(storage Storage, log *zap.Logger, opts ...Option) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		storage:      storage,
		log:          log,
		justAddedFor: defaultJustAddedFor,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load hydrates the store from storage. Stored data that cannot be decoded
// is discarded and the cart starts empty; only storage failures are returned.
func (s *Store) Load(ctx context.Context) error {
	raw, ok, err := s.storage.Get(ctx, StorageKey)
	if err != nil {
		return fmt.Errorf("read cart: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	if !ok {
		return nil
	}

	items, err := decode(raw)
	if err != nil {
		s.log.Warn("discarding unreadable stored cart", zap.Error(err))
		return nil
	}
	s.items = items
	return nil
}

func decode(raw []byte) ([]domain.LineItem, error) {
	var pc persistedCart
	if err := json.Unmarshal(raw, &pc); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(pc.Items))
	for i, it := range pc.Items {
		if it.VariantKey == "" {
			return nil, fmt.Errorf("item %d: missing variant key", i)
		}
		if it.Quantity < 1 {
			return nil, fmt.Errorf("item %d: quantity %d", i, it.Quantity)
		}
		if _, dup := seen[it.VariantKey]; dup {
			return nil, fmt.Errorf("item %d: duplicate variant key %q", i, it.VariantKey)
		}
		seen[it.VariantKey] = struct{}{}
	}
	return pc.Items, nil
}

// AddItem adds quantity units of the variant. An existing line for the same
// variant key has its quantity increased; otherwise a new line is appended
// with the variant's current price. No stock ceiling is applied.
func (s *Store) AddItem(ctx context.Context, product domain.Product, variant domain.Variant, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	key := domain.VariantKey(product, variant)

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(key); i >= 0 {
		s.items[i].Quantity += quantity
	} else {
		s.items = append(s.items, domain.LineItem{
			VariantKey: key,
			Quantity:   quantity,
			UnitPrice:  variant.Price,
			Product:    product,
			Variant:    variant,
		})
	}
	s.flashAdded()

	s.log.Debug("item added", zap.String("variant_key", key), zap.Int("quantity", quantity))
	return s.persist(ctx)
}

// RemoveItem drops the line for key. Unknown keys leave the cart untouched.
func (s *Store) RemoveItem(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.removeLocked(ctx, key)
}

func (s *Store) removeLocked(ctx context.Context, key string) error {
	i := s.indexOf(key)
	if i < 0 {
		return nil
	}
	s.items = slices.Delete(s.items, i, i+1)
	return s.persist(ctx)
}

// UpdateQuantity sets the absolute quantity of a line. Zero or less removes it.
func (s *Store) UpdateQuantity(ctx context.Context, key string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return s.removeLocked(ctx, key)
	}

	i := s.indexOf(key)
	if i < 0 {
		return nil
	}
	s.items[i].Quantity = quantity
	return s.persist(ctx)
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	return s.persist(ctx)
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.items)
}

func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.Total(s.items)
}

func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.ItemCount(s.items)
}

// JustAdded reports whether an item was added within the last flash window.
func (s *Store) JustAdded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.justAdded
}

// Close cancels a pending JustAdded reset.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.flash != nil {
		s.flash.Stop()
		s.flash = nil
	}
}

func (s *Store) indexOf(key string) int {
	return slices.IndexFunc(s.items, func(it domain.LineItem) bool {
		return it.VariantKey == key
	})
}

// flashAdded must be called with mu held. The generation check keeps a
// stale timer from clearing the flag set by a later add.
func (s *Store) flashAdded() {
	s.justAdded = true
	s.flashGen++
	gen := s.flashGen

	if s.flash != nil {
		s.flash.Stop()
	}
	s.flash = time.AfterFunc(s.justAddedFor, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.flashGen == gen {
			s.justAdded = false
		}
	})
}

// persist must be called with mu held.
func (s *Store) persist(ctx context.Context) error {
	items := s.items
	if items == nil {
		items = []domain.LineItem{}
	}

	raw, err := json.Marshal(persistedCart{Items: items})
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.storage.Set(ctx, StorageKey, raw); err != nil {
		s.log.Error("persist cart failed", zap.Error(err))
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}
