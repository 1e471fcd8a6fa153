package stock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/catatusaha/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=stock
type Repository interface {
	// GetOrCreateItem returns the item identified by key, inserting it with a
	// zero balance when it does not exist.
	GetOrCreateItem(ctx context.Context, key ItemKey, unit string) (*Item, error)
	ListItems(ctx context.Context, userKey string) ([]*Item, error)
	ListLowStockItems(ctx context.Context, userKey string, threshold decimal.Decimal) ([]*Item, error)
	// RecordMovement appends mv and applies it to its item in one atomic step.
	// Concurrent movements on the same item are serialized.
	RecordMovement(ctx context.Context, mv *Movement) (*Item, error)
	// RecordItemMovement is RecordMovement for the item identified by key,
	// creating it with a zero balance when it does not exist. The item is
	// only created if the movement is stored too.
	RecordItemMovement(ctx context.Context, key ItemKey, unit string, mv *Movement) (*Item, error)
	// ListMovements returns an item's movements oldest first, or
	// ErrItemNotFound when the item does not belong to userKey.
	ListMovements(ctx context.Context, userKey string, itemID uuid.UUID) ([]*Movement, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type MovementParams struct {
	ItemName     string          `validate:"required,max=200"`
	Type         Kind            `validate:"oneof=raw_material finished_product"`
	Unit         string
	MovementType Direction       `validate:"oneof=in out"`
	Quantity     decimal.Decimal `validate:"gt=0"`
	Reason       string          `validate:"required"`
	Date         time.Time       `validate:"required"`
	Notes        *string
}

// RecordMovement resolves (or creates) the item named in params and applies
// the movement to it. It returns the movement and the item's new balance.
func (s *Service) RecordMovement(ctx context.Context, userKey string, params MovementParams) (*Movement, *Item, error) {
	if err := validate.Struct(params); err != nil {
		return nil, nil, err
	}

	unit := params.Unit
	if unit == "" {
		unit = DefaultUnit
	}

	key := ItemKey{
		UserKey:  userKey,
		ItemName: params.ItemName,
		Kind:     params.Type,
	}

	m := &Movement{
		UserKey:   userKey,
		Date:      params.Date,
		Direction: params.MovementType,
		Quantity:  params.Quantity,
		Reason:    params.Reason,
		Notes:     params.Notes,
	}

	updated, err := s.repo.RecordItemMovement(ctx, key, unit, m)
	if err != nil {
		return nil, nil, fmt.Errorf("recording movement: %w", err)
	}

	if m.Overdrawn {
		slog.Warn("stock movement exceeded balance, floored at zero",
			"item_id", updated.ID,
			"item_name", updated.ItemName,
			"quantity", m.Quantity.String(),
		)
	}

	return m, updated, nil
}

func (s *Service) GetOrCreateItem(ctx context.Context, key ItemKey, unit string) (*Item, error) {
	if unit == "" {
		unit = DefaultUnit
	}

	return s.repo.GetOrCreateItem(ctx, key, unit)
}

func (s *Service) Items(ctx context.Context, userKey string) ([]*Item, error) {
	return s.repo.ListItems(ctx, userKey)
}

// LowStock lists items whose balance is below threshold, lowest first.
// A non-positive threshold falls back to DefaultLowThreshold.
func (s *Service) LowStock(ctx context.Context, userKey string, threshold decimal.Decimal) ([]*Item, error) {
	if !threshold.IsPositive() {
		threshold = decimal.NewFromInt(DefaultLowThreshold)
	}

	return s.repo.ListLowStockItems(ctx, userKey, threshold)
}

func (s *Service) Movements(ctx context.Context, userKey string, itemID uuid.UUID) ([]*Movement, error) {
	return s.repo.ListMovements(ctx, userKey, itemID)
}
