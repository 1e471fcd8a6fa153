package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/catatusaha/internal/production"
	"github.com/MrJamesThe3rd/catatusaha/internal/stock"
	"github.com/MrJamesThe3rd/catatusaha/internal/storage/memory"
	"github.com/MrJamesThe3rd/catatusaha/internal/transaction"
)

func day(d int) time.Time {
	return time.Date(2025, 7, d, 0, 0, 0, 0, time.UTC)
}

// tickingClock returns strictly increasing timestamps.
func tickingClock() func() time.Time {
	var (
		mu  sync.Mutex
		cur = time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	)

	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()

		cur = cur.Add(time.Second)

		return cur
	}
}

func newTx(userKey, desc string, date time.Time) *transaction.Transaction {
	return &transaction.Transaction{
		UserKey:       userKey,
		Date:          date,
		Type:          transaction.TypeIncome,
		Description:   desc,
		Amount:        decimal.NewFromInt(1000),
		PaymentMethod: "cash",
	}
}

func TestStore_Transactions(t *testing.T) {
	ctx := context.Background()
	s := memory.New(memory.WithClock(tickingClock()))

	require.NoError(t, s.CreateTransaction(ctx, newTx("u1", "a", day(20))))
	require.NoError(t, s.CreateTransaction(ctx, newTx("u1", "b", day(24))))
	require.NoError(t, s.CreateTransaction(ctx, newTx("u2", "other", day(24))))
	require.NoError(t, s.CreateTransactions(ctx, []*transaction.Transaction{
		newTx("u1", "c", day(22)),
		newTx("u1", "d", day(24)),
	}))

	t.Run("NewestFirstAndScoped", func(t *testing.T) {
		got, err := s.ListTransactions(ctx, transaction.ListFilter{UserKey: "u1"})
		require.NoError(t, err)

		assert.Equal(t, []string{"d", "b", "c", "a"}, descriptions(got))
	})

	t.Run("Limit", func(t *testing.T) {
		got, err := s.ListTransactions(ctx, transaction.ListFilter{UserKey: "u1", Limit: 2})
		require.NoError(t, err)

		assert.Equal(t, []string{"d", "b"}, descriptions(got))
	})

	t.Run("DateRange", func(t *testing.T) {
		start, end := day(21), day(23)

		got, err := s.ListTransactions(ctx, transaction.ListFilter{UserKey: "u1", StartDate: &start, EndDate: &end})
		require.NoError(t, err)

		assert.Equal(t, []string{"c"}, descriptions(got))
	})

	t.Run("OtherUser", func(t *testing.T) {
		got, err := s.ListTransactions(ctx, transaction.ListFilter{UserKey: "u2"})
		require.NoError(t, err)

		assert.Equal(t, []string{"other"}, descriptions(got))
	})

	t.Run("ReturnedCopiesAreDetached", func(t *testing.T) {
		got, err := s.ListTransactions(ctx, transaction.ListFilter{UserKey: "u2"})
		require.NoError(t, err)

		got[0].Description = "mutated"

		again, err := s.ListTransactions(ctx, transaction.ListFilter{UserKey: "u2"})
		require.NoError(t, err)
		assert.Equal(t, "other", again[0].Description)
	})
}

func TestStore_CreateTransaction_KeepsAmountExact(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	tx := newTx("u1", "Roti Tawar", day(24))
	tx.Amount = decimal.RequireFromString("25000.105")

	require.NoError(t, s.CreateTransaction(ctx, tx))
	assert.NotEqual(t, uuid.Nil, tx.ID)
	assert.False(t, tx.CreatedAt.IsZero())

	got, err := s.ListTransactions(ctx, transaction.ListFilter{UserKey: "u1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "25000.105", got[0].Amount.String())
}

func descriptions(txs []*transaction.Transaction) []string {
	out := make([]string, len(txs))
	for i, tx := range txs {
		out[i] = tx.Description
	}

	return out
}

func TestStore_Batches(t *testing.T) {
	ctx := context.Background()
	s := memory.New(memory.WithClock(tickingClock()))

	older := &production.Batch{
		UserKey: "u1", Date: day(20), ProductName: "Donat", Quantity: 5,
		Materials: []production.MaterialUsage{{MaterialName: "Tepung", Quantity: decimal.NewFromInt(1), Unit: "kg"}},
	}
	newer := &production.Batch{
		UserKey: "u1", Date: day(24), ProductName: "Roti Tawar", Quantity: 10,
		Materials: []production.MaterialUsage{
			{MaterialName: "Tepung", Quantity: decimal.NewFromInt(2), Unit: "kg"},
			{MaterialName: "Gula", Quantity: decimal.RequireFromString("0.5"), Unit: "kg"},
		},
	}

	require.NoError(t, s.CreateBatch(ctx, older))
	require.NoError(t, s.CreateBatch(ctx, newer))
	require.NoError(t, s.CreateBatch(ctx, &production.Batch{UserKey: "u2", Date: day(24), ProductName: "x", Quantity: 1}))

	got, err := s.ListBatches(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Roti Tawar", got[0].ProductName)
	assert.Equal(t, []string{"Tepung", "Gula"}, []string{got[0].Materials[0].MaterialName, got[0].Materials[1].MaterialName})
	assert.Equal(t, "Donat", got[1].ProductName)
	assert.Equal(t, newer.ID, got[0].ID)
}

func TestStore_GetOrCreateItem_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	key := stock.ItemKey{UserKey: "u1", ItemName: "Gula", Kind: stock.KindRawMaterial}

	first, err := s.GetOrCreateItem(ctx, key, "kg")
	require.NoError(t, err)
	assert.True(t, first.CurrentStock.IsZero())

	second, err := s.GetOrCreateItem(ctx, key, "kg")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// Same name, different kind or user, is a different item.
	finished, err := s.GetOrCreateItem(ctx, stock.ItemKey{UserKey: "u1", ItemName: "Gula", Kind: stock.KindFinishedProduct}, "kg")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, finished.ID)

	other, err := s.GetOrCreateItem(ctx, stock.ItemKey{UserKey: "u2", ItemName: "Gula", Kind: stock.KindRawMaterial}, "kg")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	items, err := s.ListItems(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestStore_RecordMovement(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	item, err := s.GetOrCreateItem(ctx, stock.ItemKey{UserKey: "u1", ItemName: "Gula", Kind: stock.KindRawMaterial}, "kg")
	require.NoError(t, err)

	in := &stock.Movement{UserKey: "u1", StockItemID: item.ID, Date: day(24), Direction: stock.DirectionIn, Quantity: decimal.NewFromInt(50), Reason: "purchase"}
	updated, err := s.RecordMovement(ctx, in)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(50).Equal(updated.CurrentStock))
	assert.False(t, in.Overdrawn)

	out := &stock.Movement{UserKey: "u1", StockItemID: item.ID, Date: day(24), Direction: stock.DirectionOut, Quantity: decimal.NewFromInt(70), Reason: "usage"}
	updated, err = s.RecordMovement(ctx, out)
	require.NoError(t, err)
	assert.True(t, updated.CurrentStock.IsZero())
	assert.True(t, out.Overdrawn)

	movements, err := s.ListMovements(ctx, "u1", item.ID)
	require.NoError(t, err)
	require.Len(t, movements, 2)
	assert.Equal(t, stock.DirectionIn, movements[0].Direction)
	assert.Equal(t, stock.DirectionOut, movements[1].Direction)

	t.Run("ForeignItem", func(t *testing.T) {
		_, err := s.RecordMovement(ctx, &stock.Movement{UserKey: "u2", StockItemID: item.ID, Direction: stock.DirectionIn, Quantity: decimal.NewFromInt(1)})
		assert.ErrorIs(t, err, stock.ErrItemNotFound)

		_, err = s.ListMovements(ctx, "u2", item.ID)
		assert.ErrorIs(t, err, stock.ErrItemNotFound)
	})

	t.Run("UnknownItem", func(t *testing.T) {
		_, err := s.RecordMovement(ctx, &stock.Movement{UserKey: "u1", StockItemID: uuid.New(), Direction: stock.DirectionIn, Quantity: decimal.NewFromInt(1)})
		assert.ErrorIs(t, err, stock.ErrItemNotFound)
	})
}

func TestStore_RecordItemMovement(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	key := stock.ItemKey{UserKey: "u1", ItemName: "Gula", Kind: stock.KindRawMaterial}

	in := &stock.Movement{UserKey: "u1", Date: day(24), Direction: stock.DirectionIn, Quantity: decimal.NewFromInt(50), Reason: "purchase"}
	created, err := s.RecordItemMovement(ctx, key, "kg", in)
	require.NoError(t, err)
	assert.Equal(t, created.ID, in.StockItemID)
	assert.Equal(t, "kg", created.Unit)
	assert.True(t, decimal.NewFromInt(50).Equal(created.CurrentStock))

	out := &stock.Movement{UserKey: "u1", Date: day(24), Direction: stock.DirectionOut, Quantity: decimal.NewFromInt(70), Reason: "usage"}
	updated, err := s.RecordItemMovement(ctx, key, "karung", out)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "kg", updated.Unit)
	assert.True(t, updated.CurrentStock.IsZero())
	assert.True(t, out.Overdrawn)

	items, err := s.ListItems(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestStore_RecordMovement_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	item, err := s.GetOrCreateItem(ctx, stock.ItemKey{UserKey: "u1", ItemName: "Telur", Kind: stock.KindRawMaterial}, "butir")
	require.NoError(t, err)

	const workers = 50

	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := s.RecordMovement(ctx, &stock.Movement{
				UserKey: "u1", StockItemID: item.ID, Direction: stock.DirectionIn, Quantity: decimal.NewFromInt(2),
			})
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	items, err := s.ListItems(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, decimal.NewFromInt(2*workers).Equal(items[0].CurrentStock))
}

func TestStore_ListItems_Ordering(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	add := func(name string, qty int64) {
		item, err := s.GetOrCreateItem(ctx, stock.ItemKey{UserKey: "u1", ItemName: name, Kind: stock.KindRawMaterial}, "kg")
		require.NoError(t, err)

		if qty > 0 {
			_, err = s.RecordMovement(ctx, &stock.Movement{UserKey: "u1", StockItemID: item.ID, Direction: stock.DirectionIn, Quantity: decimal.NewFromInt(qty)})
			require.NoError(t, err)
		}
	}

	add("Tepung", 25)
	add("gula", 4)
	add("Ragi", 0)
	add("Mentega", 9)

	items, err := s.ListItems(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"gula", "Mentega", "Ragi", "Tepung"}, itemNames(items))

	low, err := s.ListLowStockItems(ctx, "u1", decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.Equal(t, []string{"Ragi", "gula", "Mentega"}, itemNames(low))
}

func itemNames(items []*stock.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ItemName
	}

	return out
}
