// Package storage defines the record store contract shared by all backends.
package storage

import (
	"github.com/MrJamesThe3rd/catatusaha/internal/production"
	"github.com/MrJamesThe3rd/catatusaha/internal/stock"
	"github.com/MrJamesThe3rd/catatusaha/internal/transaction"
)

// RecordStore persists every entity kind, always scoped by user key.
type RecordStore interface {
	transaction.Repository
	production.Repository
	stock.Repository

	Close() error
}
