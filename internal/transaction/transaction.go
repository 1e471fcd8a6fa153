package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Transaction is a single sale or expense recorded by a business owner.
// Transactions are immutable once created.
type Transaction struct {
	ID            uuid.UUID
	UserKey       string
	Date          time.Time
	Type          Type
	Description   string
	Amount        decimal.Decimal
	PaymentMethod string
	Notes         *string
	CreatedAt     time.Time
}

// Newer reports whether a sorts before b in listings: newest date first,
// then most recently created.
func Newer(a, b *Transaction) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}

	return a.CreatedAt.After(b.CreatedAt)
}
