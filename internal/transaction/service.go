package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/catatusaha/internal/validate"
)

const (
	DefaultRecentLimit = 5
	MaxRecentLimit     = 100
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Date          time.Time       `validate:"required"`
	Type          Type            `validate:"oneof=income expense"`
	Description   string          `validate:"required,max=500"`
	Amount        decimal.Decimal `validate:"gt=0"`
	PaymentMethod string          `validate:"required"`
	Notes         *string
}

// ListFilter scopes a listing to one user. Limit <= 0 means no limit.
type ListFilter struct {
	UserKey   string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}

func (s *Service) Create(ctx context.Context, userKey string, params CreateParams) (*Transaction, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	tx := newTransaction(userKey, params)
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// CreateBatch validates every row before persisting any, then stores them
// all or none.
func (s *Service) CreateBatch(ctx context.Context, userKey string, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	txs := make([]*Transaction, len(params))

	for i, p := range params {
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		txs[i] = newTransaction(userKey, p)
	}

	if err := s.repo.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	return txs, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	filter.Limit = 0
	return s.repo.ListTransactions(ctx, filter)
}

// Recent returns the newest transactions of a user. A non-positive limit
// falls back to DefaultRecentLimit.
func (s *Service) Recent(ctx context.Context, userKey string, limit int) ([]*Transaction, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	limit = min(limit, MaxRecentLimit)

	return s.repo.ListTransactions(ctx, ListFilter{UserKey: userKey, Limit: limit})
}

// All returns the complete history of a user, for reporting.
func (s *Service) All(ctx context.Context, userKey string) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, ListFilter{UserKey: userKey})
}

func newTransaction(userKey string, p CreateParams) *Transaction {
	return &Transaction{
		UserKey:       userKey,
		Date:          p.Date,
		Type:          p.Type,
		Description:   p.Description,
		Amount:        p.Amount,
		PaymentMethod: p.PaymentMethod,
		Notes:         p.Notes,
	}
}
