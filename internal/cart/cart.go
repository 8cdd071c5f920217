package cart

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
)

// SelectedOptions are the customization choices that, together with the
// product id, make up a line item's merge key.
type SelectedOptions struct {
	Size  string `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
}

type LineItem struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Image           string          `json:"image"`
	Price           float64         `json:"price"`
	Quantity        uint            `json:"quantity"`
	Size            string          `json:"size,omitempty"`
	Color           string          `json:"color,omitempty"`
	Category        string          `json:"category,omitempty"`
	SelectedOptions SelectedOptions `json:"selected_options,omitempty"`
}

type Totals struct {
	TotalItems uint    `json:"total_items"`
	TotalPrice float64 `json:"total_price"`
}

// Service owns one cart table. Mutations recompute the aggregate totals from
// the table before returning, and write the whole table through the injected
// Storage. A failed write degrades the cart to in-memory operation, it is
// never returned to the caller.
type Service struct {
	mu      sync.Mutex
	items   []LineItem
	totals  Totals
	storage Storage
	log     *slog.Logger
}

// NewService restores the table from storage. A missing or broken snapshot
// starts an empty cart.
func NewService(storage Storage, log *slog.Logger) *Service {
	s := &Service{storage: storage, log: log}
	if s.log == nil {
		s.log = slog.Default()
	}
	if storage != nil {
		items, err := storage.Load()
		if err != nil {
			s.log.Warn("cart_snapshot_load_failed", "error", err)
		} else {
			s.items = items
		}
	}
	s.totals = recompute(s.items)
	return s
}

func recompute(items []LineItem) Totals {
	var t Totals
	for _, it := range items {
		t.TotalItems += it.Quantity
		t.TotalPrice += it.Price * float64(it.Quantity)
	}
	return t
}

func (s *Service) index(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) commit() {
	s.totals = recompute(s.items)
	if s.storage == nil {
		return
	}
	if err := s.storage.Save(s.items); err != nil {
		s.log.Error("cart_snapshot_save_failed", "error", err)
	}
}

// AddItem merges by id: an existing row gets its quantity incremented,
// otherwise the item is inserted. quantity 0 means 1.
func (s *Service) AddItem(item LineItem, quantity int) error {
	if item.ID == "" {
		return fmt.Errorf("item id must not be empty: %w", ErrValidation)
	}
	if item.Price < 0 {
		return fmt.Errorf("price must not be negative: %w", ErrValidation)
	}
	if quantity < 0 {
		return fmt.Errorf("quantity must not be negative: %w", ErrValidation)
	}
	if quantity == 0 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(item.ID); i >= 0 {
		s.items[i].Quantity += uint(quantity)
	} else {
		item.Quantity = uint(quantity)
		s.items = append(s.items, item)
	}
	s.commit()
	return nil
}

// RemoveItem deletes the row if present. A missing id is a no-op.
func (s *Service) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.commit()
}

// UpdateQuantity replaces the row's quantity. quantity <= 0 removes the row,
// same as RemoveItem. A missing id is a no-op.
func (s *Service) UpdateQuantity(id string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return
	}
	if quantity <= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	} else {
		s.items[i].Quantity = uint(quantity)
	}
	s.commit()
}

func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.commit()
}

func (s *Service) ItemQuantity(id string) uint {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(id); i >= 0 {
		return s.items[i].Quantity
	}
	return 0
}

func (s *Service) ItemCount() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals.TotalItems
}

func (s *Service) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals
}

// Items returns a copy of the table in insertion order.
func (s *Service) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}
