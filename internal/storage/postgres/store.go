// Package postgres is the SQL RecordStore backed by PostgreSQL through the
// pgx database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/catatusaha/internal/production"
	"github.com/MrJamesThe3rd/catatusaha/internal/stock"
	"github.com/MrJamesThe3rd/catatusaha/internal/storage"
	"github.com/MrJamesThe3rd/catatusaha/internal/transaction"
)

var _ storage.RecordStore = (*Store)(nil)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// snapshot is for multi-statement reads that must see one consistent state.
var snapshot = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// withTx runs fn inside a database transaction and commits when it succeeds.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return s.withTxOptions(ctx, nil, fn)
}

func (s *Store) withTxOptions(ctx context.Context, opts *sql.TxOptions, fn func(tx *sql.Tx) error) error {
	dbTx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if err := fn(dbTx); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// Transactions

const selectTransactionColumns = `
	id, user_key, date, type, description, amount, payment_method, notes, created_at
`

// scanTransaction expects the columns of selectTransactionColumns in order.
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var (
		tx      transaction.Transaction
		typeStr string
	)

	if err := s.Scan(
		&tx.ID, &tx.UserKey, &tx.Date, &typeStr, &tx.Description,
		&tx.Amount, &tx.PaymentMethod, &tx.Notes, &tx.CreatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)

	return &tx, nil
}

func insertTransaction(ctx context.Context, q queryer, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (user_key, date, type, description, amount, payment_method, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRowContext(ctx, query,
		tx.UserKey,
		tx.Date,
		tx.Type,
		tx.Description,
		tx.Amount,
		tx.PaymentMethod,
		tx.Notes,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	return insertTransaction(ctx, s.db, tx)
}

func (s *Store) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	return s.withTx(ctx, func(dbTx *sql.Tx) error {
		for _, tx := range txs {
			if err := insertTransaction(ctx, dbTx, tx); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE user_key = $1`

	args := []any{filter.UserKey}
	argIdx := 2

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY date DESC, created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)

		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

// Production batches

// CreateBatch inserts the batch and its materials in one database
// transaction, so readers never observe a batch without its materials.
func (s *Store) CreateBatch(ctx context.Context, b *production.Batch) error {
	return s.withTx(ctx, func(dbTx *sql.Tx) error {
		batchQuery := `
			INSERT INTO production_batches (user_key, date, product_name, quantity, notes, created_at)
			VALUES ($1, $2, $3, $4, $5, NOW())
			RETURNING id, created_at
		`

		if err := dbTx.QueryRowContext(ctx, batchQuery,
			b.UserKey, b.Date, b.ProductName, b.Quantity, b.Notes,
		).Scan(&b.ID, &b.CreatedAt); err != nil {
			return fmt.Errorf("creating batch: %w", err)
		}

		materialQuery := `
			INSERT INTO production_materials (batch_id, position, material_name, quantity, unit)
			VALUES ($1, $2, $3, $4, $5)
		`

		for i, m := range b.Materials {
			if _, err := dbTx.ExecContext(ctx, materialQuery,
				b.ID, i, m.MaterialName, m.Quantity, m.Unit,
			); err != nil {
				return fmt.Errorf("creating material %d: %w", i, err)
			}
		}

		return nil
	})
}

// ListBatches reads batches and their materials in one snapshot, so every
// batch comes back with exactly the materials it was created with.
func (s *Store) ListBatches(ctx context.Context, userKey string) ([]*production.Batch, error) {
	var batches []*production.Batch

	err := s.withTxOptions(ctx, snapshot, func(dbTx *sql.Tx) error {
		var err error

		batches, err = listBatches(ctx, dbTx, userKey)

		return err
	})
	if err != nil {
		return nil, err
	}

	return batches, nil
}

func listBatches(ctx context.Context, dbTx *sql.Tx, userKey string) ([]*production.Batch, error) {
	batchQuery := `
		SELECT id, user_key, date, product_name, quantity, notes, created_at
		FROM production_batches
		WHERE user_key = $1
		ORDER BY date DESC, created_at DESC
	`

	rows, err := dbTx.QueryContext(ctx, batchQuery, userKey)
	if err != nil {
		return nil, fmt.Errorf("listing batches: %w", err)
	}
	defer rows.Close()

	var (
		batches []*production.Batch
		byID    = make(map[uuid.UUID]*production.Batch)
	)

	for rows.Next() {
		var b production.Batch
		if err := rows.Scan(&b.ID, &b.UserKey, &b.Date, &b.ProductName, &b.Quantity, &b.Notes, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning batch: %w", err)
		}

		batches = append(batches, &b)
		byID[b.ID] = &b
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating batches: %w", err)
	}

	if len(batches) == 0 {
		return batches, nil
	}

	materialQuery := `
		SELECT m.batch_id, m.material_name, m.quantity, m.unit
		FROM production_materials m
		JOIN production_batches b ON b.id = m.batch_id
		WHERE b.user_key = $1
		ORDER BY m.batch_id, m.position
	`

	mrows, err := dbTx.QueryContext(ctx, materialQuery, userKey)
	if err != nil {
		return nil, fmt.Errorf("listing materials: %w", err)
	}
	defer mrows.Close()

	for mrows.Next() {
		var (
			batchID uuid.UUID
			m       production.MaterialUsage
		)

		if err := mrows.Scan(&batchID, &m.MaterialName, &m.Quantity, &m.Unit); err != nil {
			return nil, fmt.Errorf("scanning material: %w", err)
		}

		b := byID[batchID]
		b.Materials = append(b.Materials, m)
	}

	if err := mrows.Err(); err != nil {
		return nil, fmt.Errorf("iterating materials: %w", err)
	}

	return batches, nil
}

// Stock

const selectItemColumns = `
	id, user_key, item_name, type, current_stock, unit, created_at
`

func scanItem(s scanner) (*stock.Item, error) {
	var (
		item    stock.Item
		kindStr string
	)

	if err := s.Scan(
		&item.ID, &item.UserKey, &item.ItemName, &kindStr, &item.CurrentStock, &item.Unit, &item.CreatedAt,
	); err != nil {
		return nil, err
	}

	item.Kind = stock.Kind(kindStr)

	return &item, nil
}

// GetOrCreateItem relies on the (user_key, item_name, type) unique
// constraint, so concurrent callers converge on the same row.
func (s *Store) GetOrCreateItem(ctx context.Context, key stock.ItemKey, unit string) (*stock.Item, error) {
	return upsertItem(ctx, s.db, key, unit)
}

func upsertItem(ctx context.Context, q queryer, key stock.ItemKey, unit string) (*stock.Item, error) {
	query := `
		INSERT INTO stock_items (user_key, item_name, type, current_stock, unit, created_at)
		VALUES ($1, $2, $3, 0, $4, NOW())
		ON CONFLICT (user_key, item_name, type) DO UPDATE SET item_name = EXCLUDED.item_name
		RETURNING ` + selectItemColumns

	item, err := scanItem(q.QueryRowContext(ctx, query, key.UserKey, key.ItemName, key.Kind, unit))
	if err != nil {
		return nil, fmt.Errorf("upserting stock item: %w", err)
	}

	return item, nil
}

func (s *Store) listItems(ctx context.Context, query string, args ...any) ([]*stock.Item, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing stock items: %w", err)
	}
	defer rows.Close()

	var items []*stock.Item

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning stock item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stock items: %w", err)
	}

	return items, nil
}

// ListItems sorts in Go rather than in SQL so the order does not depend on
// the database collation.
func (s *Store) ListItems(ctx context.Context, userKey string) ([]*stock.Item, error) {
	items, err := s.listItems(ctx, `SELECT `+selectItemColumns+`
		FROM stock_items
		WHERE user_key = $1`, userKey)
	if err != nil {
		return nil, err
	}

	stock.SortByName(items)

	return items, nil
}

func (s *Store) ListLowStockItems(ctx context.Context, userKey string, threshold decimal.Decimal) ([]*stock.Item, error) {
	return s.listItems(ctx, `SELECT `+selectItemColumns+`
		FROM stock_items
		WHERE user_key = $1 AND current_stock < $2
		ORDER BY current_stock ASC, created_at ASC`, userKey, threshold)
}

// RecordMovement locks the item row for the duration of the transaction, so
// concurrent movements on the same item apply one after another.
func (s *Store) RecordMovement(ctx context.Context, m *stock.Movement) (*stock.Item, error) {
	var item *stock.Item

	err := s.withTx(ctx, func(dbTx *sql.Tx) error {
		var err error

		item, err = applyMovement(ctx, dbTx, m)

		return err
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// RecordItemMovement upserts the item and applies m in the same
// transaction, so a failed movement leaves no new item behind.
func (s *Store) RecordItemMovement(ctx context.Context, key stock.ItemKey, unit string, m *stock.Movement) (*stock.Item, error) {
	var item *stock.Item

	err := s.withTx(ctx, func(dbTx *sql.Tx) error {
		resolved, err := upsertItem(ctx, dbTx, key, unit)
		if err != nil {
			return err
		}

		m.StockItemID = resolved.ID

		item, err = applyMovement(ctx, dbTx, m)

		return err
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

func applyMovement(ctx context.Context, dbTx *sql.Tx, m *stock.Movement) (*stock.Item, error) {
	lockQuery := `SELECT ` + selectItemColumns + `
		FROM stock_items
		WHERE id = $1 AND user_key = $2
		FOR UPDATE`

	item, err := scanItem(dbTx.QueryRowContext(ctx, lockQuery, m.StockItemID, m.UserKey))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, stock.ErrItemNotFound
		}

		return nil, fmt.Errorf("locking stock item: %w", err)
	}

	item.CurrentStock, m.Overdrawn = stock.Apply(item.CurrentStock, m.Direction, m.Quantity)

	if _, err := dbTx.ExecContext(ctx,
		`UPDATE stock_items SET current_stock = $1 WHERE id = $2`,
		item.CurrentStock, item.ID,
	); err != nil {
		return nil, fmt.Errorf("updating stock balance: %w", err)
	}

	movementQuery := `
		INSERT INTO stock_movements (user_key, stock_item_id, date, type, quantity, reason, notes, overdrawn, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	if err := dbTx.QueryRowContext(ctx, movementQuery,
		m.UserKey, m.StockItemID, m.Date, m.Direction, m.Quantity, m.Reason, m.Notes, m.Overdrawn,
	).Scan(&m.ID, &m.CreatedAt); err != nil {
		return nil, fmt.Errorf("creating stock movement: %w", err)
	}

	return item, nil
}

func (s *Store) ListMovements(ctx context.Context, userKey string, itemID uuid.UUID) ([]*stock.Movement, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM stock_items WHERE id = $1 AND user_key = $2)`,
		itemID, userKey,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("checking stock item: %w", err)
	}

	if !exists {
		return nil, stock.ErrItemNotFound
	}

	query := `
		SELECT id, user_key, stock_item_id, date, type, quantity, reason, notes, overdrawn, created_at
		FROM stock_movements
		WHERE stock_item_id = $1 AND user_key = $2
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, itemID, userKey)
	if err != nil {
		return nil, fmt.Errorf("listing stock movements: %w", err)
	}
	defer rows.Close()

	var movements []*stock.Movement

	for rows.Next() {
		var (
			m      stock.Movement
			dirStr string
		)

		if err := rows.Scan(
			&m.ID, &m.UserKey, &m.StockItemID, &m.Date, &dirStr, &m.Quantity, &m.Reason, &m.Notes, &m.Overdrawn, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning stock movement: %w", err)
		}

		m.Direction = stock.Direction(dirStr)
		movements = append(movements, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stock movements: %w", err)
	}

	return movements, nil
}
