package production

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Batch is one production run of a product. It owns its material usage
// rows, which are created together with the batch and never edited alone.
type Batch struct {
	ID          uuid.UUID
	UserKey     string
	Date        time.Time
	ProductName string
	Quantity    int
	Notes       *string
	Materials   []MaterialUsage
	CreatedAt   time.Time
}

// MaterialUsage records how much of a material a batch consumed.
type MaterialUsage struct {
	MaterialName string
	Quantity     decimal.Decimal
	Unit         string
}

// Newer orders batches newest date first, then most recently created.
func Newer(a, b *Batch) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}

	return a.CreatedAt.After(b.CreatedAt)
}
