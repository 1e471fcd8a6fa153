// Package memory is a RecordStore that keeps everything in process memory.
// It is meant for development, demos and tests; data is lost on exit.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/catatusaha/internal/production"
	"github.com/MrJamesThe3rd/catatusaha/internal/stock"
	"github.com/MrJamesThe3rd/catatusaha/internal/storage"
	"github.com/MrJamesThe3rd/catatusaha/internal/transaction"
)

var _ storage.RecordStore = (*Store)(nil)

// Store holds all records behind a single lock, so every operation, including
// batch creation and movement application, is atomic.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	transactions []*transaction.Transaction
	batches      []*production.Batch
	items        map[uuid.UUID]*stock.Item
	itemsByKey   map[stock.ItemKey]uuid.UUID
	movements    []*stock.Movement
}

type Option func(*Store)

// WithClock overrides the source of creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(opts ...Option) *Store {
	s := &Store{
		now:        time.Now,
		items:      make(map[uuid.UUID]*stock.Item),
		itemsByKey: make(map[stock.ItemKey]uuid.UUID),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Store) Close() error { return nil }

func (s *Store) CreateTransaction(_ context.Context, tx *transaction.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.insertTransaction(tx)

	return nil
}

func (s *Store) CreateTransactions(_ context.Context, txs []*transaction.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tx := range txs {
		s.insertTransaction(tx)
	}

	return nil
}

func (s *Store) insertTransaction(tx *transaction.Transaction) {
	tx.ID = uuid.New()
	tx.CreatedAt = s.now()

	cp := *tx
	s.transactions = append(s.transactions, &cp)
}

func (s *Store) ListTransactions(_ context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var txs []*transaction.Transaction

	// Walk backwards so that full ties keep the latest insert first.
	for i := len(s.transactions) - 1; i >= 0; i-- {
		tx := s.transactions[i]
		if tx.UserKey != filter.UserKey {
			continue
		}

		if filter.StartDate != nil && tx.Date.Before(*filter.StartDate) {
			continue
		}

		if filter.EndDate != nil && tx.Date.After(*filter.EndDate) {
			continue
		}

		cp := *tx
		txs = append(txs, &cp)
	}

	slices.SortStableFunc(txs, func(a, b *transaction.Transaction) int {
		switch {
		case transaction.Newer(a, b):
			return -1
		case transaction.Newer(b, a):
			return 1
		default:
			return 0
		}
	})

	if filter.Limit > 0 && len(txs) > filter.Limit {
		txs = txs[:filter.Limit]
	}

	return txs, nil
}

func (s *Store) CreateBatch(_ context.Context, b *production.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b.ID = uuid.New()
	b.CreatedAt = s.now()

	cp := *b
	cp.Materials = slices.Clone(b.Materials)
	s.batches = append(s.batches, &cp)

	return nil
}

func (s *Store) ListBatches(_ context.Context, userKey string) ([]*production.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var batches []*production.Batch

	for i := len(s.batches) - 1; i >= 0; i-- {
		b := s.batches[i]
		if b.UserKey != userKey {
			continue
		}

		cp := *b
		cp.Materials = slices.Clone(b.Materials)
		batches = append(batches, &cp)
	}

	slices.SortStableFunc(batches, func(a, b *production.Batch) int {
		switch {
		case production.Newer(a, b):
			return -1
		case production.Newer(b, a):
			return 1
		default:
			return 0
		}
	})

	return batches, nil
}

func (s *Store) GetOrCreateItem(_ context.Context, key stock.ItemKey, unit string) (*stock.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *s.itemLocked(key, unit)

	return &cp, nil
}

// itemLocked returns the item for key, inserting it when absent. Callers
// hold mu for writing.
func (s *Store) itemLocked(key stock.ItemKey, unit string) *stock.Item {
	if id, ok := s.itemsByKey[key]; ok {
		return s.items[id]
	}

	item := &stock.Item{
		ID:           uuid.New(),
		UserKey:      key.UserKey,
		ItemName:     key.ItemName,
		Kind:         key.Kind,
		CurrentStock: decimal.Zero,
		Unit:         unit,
		CreatedAt:    s.now(),
	}

	s.items[item.ID] = item
	s.itemsByKey[key] = item.ID

	return item
}

func (s *Store) ListItems(_ context.Context, userKey string) ([]*stock.Item, error) {
	s.mu.RLock()
	items := s.userItems(userKey, func(*stock.Item) bool { return true })
	s.mu.RUnlock()

	stock.SortByName(items)

	return items, nil
}

func (s *Store) ListLowStockItems(_ context.Context, userKey string, threshold decimal.Decimal) ([]*stock.Item, error) {
	s.mu.RLock()
	items := s.userItems(userKey, func(it *stock.Item) bool {
		return it.CurrentStock.LessThan(threshold)
	})
	s.mu.RUnlock()

	slices.SortStableFunc(items, func(a, b *stock.Item) int {
		if c := a.CurrentStock.Cmp(b.CurrentStock); c != 0 {
			return c
		}

		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return items, nil
}

// userItems copies the items of userKey that satisfy keep. Callers hold mu.
func (s *Store) userItems(userKey string, keep func(*stock.Item) bool) []*stock.Item {
	var items []*stock.Item

	for _, it := range s.items {
		if it.UserKey != userKey || !keep(it) {
			continue
		}

		cp := *it
		items = append(items, &cp)
	}

	return items
}

func (s *Store) RecordMovement(_ context.Context, m *stock.Movement) (*stock.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[m.StockItemID]
	if !ok || item.UserKey != m.UserKey {
		return nil, stock.ErrItemNotFound
	}

	return s.applyLocked(item, m), nil
}

// RecordItemMovement holds the lock across lookup, creation and apply, so
// nothing can observe a created item without its movement.
func (s *Store) RecordItemMovement(_ context.Context, key stock.ItemKey, unit string, m *stock.Movement) (*stock.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.applyLocked(s.itemLocked(key, unit), m), nil
}

func (s *Store) applyLocked(item *stock.Item, m *stock.Movement) *stock.Item {
	item.CurrentStock, m.Overdrawn = stock.Apply(item.CurrentStock, m.Direction, m.Quantity)

	m.StockItemID = item.ID
	m.ID = uuid.New()
	m.CreatedAt = s.now()

	cp := *m
	s.movements = append(s.movements, &cp)

	updated := *item

	return &updated
}

// ListMovements returns the movement log of one item in the order it was applied.
func (s *Store) ListMovements(_ context.Context, userKey string, itemID uuid.UUID) ([]*stock.Movement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if item, ok := s.items[itemID]; !ok || item.UserKey != userKey {
		return nil, stock.ErrItemNotFound
	}

	var out []*stock.Movement

	for _, m := range s.movements {
		if m.StockItemID == itemID {
			cp := *m
			out = append(out, &cp)
		}
	}

	return out, nil
}
