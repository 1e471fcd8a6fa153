package production

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/catatusaha/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=production
type Repository interface {
	// CreateBatch stores the batch and all of its materials atomically.
	CreateBatch(ctx context.Context, b *Batch) error
	ListBatches(ctx context.Context, userKey string) ([]*Batch, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Date        time.Time        `validate:"required"`
	ProductName string           `validate:"required,max=200"`
	Quantity    int              `validate:"gt=0"`
	Materials   []MaterialParams `validate:"dive"`
	Notes       *string
}

type MaterialParams struct {
	MaterialName string          `validate:"required"`
	Quantity     decimal.Decimal `validate:"gt=0"`
	Unit         string          `validate:"required"`
}

func (s *Service) Create(ctx context.Context, userKey string, params CreateParams) (*Batch, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	b := &Batch{
		UserKey:     userKey,
		Date:        params.Date,
		ProductName: params.ProductName,
		Quantity:    params.Quantity,
		Notes:       params.Notes,
		Materials:   make([]MaterialUsage, len(params.Materials)),
	}

	for i, m := range params.Materials {
		b.Materials[i] = MaterialUsage{
			MaterialName: m.MaterialName,
			Quantity:     m.Quantity,
			Unit:         m.Unit,
		}
	}

	if err := s.repo.CreateBatch(ctx, b); err != nil {
		return nil, fmt.Errorf("creating batch: %w", err)
	}

	return b, nil
}

func (s *Service) List(ctx context.Context, userKey string) ([]*Batch, error) {
	return s.repo.ListBatches(ctx, userKey)
}
