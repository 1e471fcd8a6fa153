package stock

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrItemNotFound = errors.New("stock item not found")

// Kind distinguishes purchased inputs from goods the business produces.
type Kind string

const (
	KindRawMaterial     Kind = "raw_material"
	KindFinishedProduct Kind = "finished_product"
)

// Direction of a movement relative to the item's balance.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

const (
	DefaultUnit         = "kg"
	DefaultLowThreshold = 10
)

// Item is a tracked stock balance. CurrentStock only changes through Apply.
type Item struct {
	ID           uuid.UUID
	UserKey      string
	ItemName     string
	Kind         Kind
	CurrentStock decimal.Decimal
	Unit         string
	CreatedAt    time.Time
}

// ItemKey uniquely identifies an item within a user's records.
type ItemKey struct {
	UserKey  string
	ItemName string
	Kind     Kind
}

// Movement is an append-only adjustment to an item's balance.
type Movement struct {
	ID          uuid.UUID
	UserKey     string
	StockItemID uuid.UUID
	Date        time.Time
	Direction   Direction
	Quantity    decimal.Decimal
	Reason      string
	Notes       *string
	// Overdrawn is set when an out movement exceeded the balance and the
	// balance was floored at zero.
	Overdrawn bool
	CreatedAt time.Time
}
