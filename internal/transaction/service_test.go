package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/catatusaha/internal/transaction"
	"github.com/MrJamesThe3rd/catatusaha/internal/validate"
)

func validParams() transaction.CreateParams {
	return transaction.CreateParams{
		Date:          time.Date(2025, 7, 24, 0, 0, 0, 0, time.UTC),
		Type:          transaction.TypeIncome,
		Description:   "Roti Tawar",
		Amount:        decimal.RequireFromString("25000.50"),
		PaymentMethod: "cash",
	}
}

func TestService_Create(t *testing.T) {
	type args struct {
		params transaction.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *transaction.MockRepository)
		wantField string
		wantErr   bool
	}

	withParams := func(mutate func(p *transaction.CreateParams)) args {
		p := validParams()
		mutate(&p)

		return args{params: p}
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{params: validParams()},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						tx.ID = uuid.New()
						tx.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name:      "MissingDescription",
			args:      withParams(func(p *transaction.CreateParams) { p.Description = "" }),
			wantField: "description",
			wantErr:   true,
		},
		{
			name:      "NegativeAmount",
			args:      withParams(func(p *transaction.CreateParams) { p.Amount = decimal.NewFromInt(-1) }),
			wantField: "amount",
			wantErr:   true,
		},
		{
			name:      "MissingAmount",
			args:      withParams(func(p *transaction.CreateParams) { p.Amount = decimal.Decimal{} }),
			wantField: "amount",
			wantErr:   true,
		},
		{
			name:      "UnknownType",
			args:      withParams(func(p *transaction.CreateParams) { p.Type = "transfer" }),
			wantField: "type",
			wantErr:   true,
		},
		{
			name:      "MissingPaymentMethod",
			args:      withParams(func(p *transaction.CreateParams) { p.PaymentMethod = "" }),
			wantField: "paymentMethod",
			wantErr:   true,
		},
		{
			name: "RepoError",
			args: args{params: validParams()},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.Create(context.Background(), "u1", tt.args.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				if tt.wantField != "" {
					var vErr *validate.Error
					require.True(t, errors.As(err, &vErr))
					assert.Equal(t, tt.wantField, vErr.Field)
				}

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, "u1", got.UserKey)
			assert.True(t, tt.args.params.Amount.Equal(got.Amount))
		})
	}
}

func TestService_CreateBatch(t *testing.T) {
	t.Run("InvalidRowPersistsNothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := transaction.NewMockRepository(ctrl)

		bad := validParams()
		bad.Amount = decimal.Zero

		svc := transaction.NewService(repo)
		_, err := svc.CreateBatch(context.Background(), "u1", []transaction.CreateParams{validParams(), bad})

		var vErr *validate.Error
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "amount", vErr.Field)
		assert.Contains(t, err.Error(), "row 2")
	})

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := transaction.NewMockRepository(ctrl)

		repo.EXPECT().
			CreateTransactions(gomock.Any(), gomock.Len(2)).
			Return(nil)

		svc := transaction.NewService(repo)
		got, err := svc.CreateBatch(context.Background(), "u1", []transaction.CreateParams{validParams(), validParams()})
		require.NoError(t, err)
		assert.Len(t, got, 2)

		for _, tx := range got {
			assert.Equal(t, "u1", tx.UserKey)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := transaction.NewMockRepository(ctrl)

		got, err := transaction.NewService(repo).CreateBatch(context.Background(), "u1", nil)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestService_Recent(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{name: "Default", limit: 0, wantLimit: transaction.DefaultRecentLimit},
		{name: "Explicit", limit: 3, wantLimit: 3},
		{name: "Capped", limit: 1000, wantLimit: transaction.MaxRecentLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := transaction.NewMockRepository(ctrl)

			repo.EXPECT().
				ListTransactions(gomock.Any(), transaction.ListFilter{UserKey: "u1", Limit: tt.wantLimit}).
				Return([]*transaction.Transaction{{ID: uuid.New()}}, nil)

			got, err := transaction.NewService(repo).Recent(context.Background(), "u1", tt.limit)
			require.NoError(t, err)
			assert.Len(t, got, 1)
		})
	}
}

func TestService_List(t *testing.T) {
	type testCase struct {
		name      string
		filter    transaction.ListFilter
		setupMock func(m *transaction.MockRepository)
		wantLen   int
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "Success",
			filter: transaction.ListFilter{UserKey: "u1", Limit: 9},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					ListTransactions(gomock.Any(), transaction.ListFilter{UserKey: "u1"}).
					Return([]*transaction.Transaction{
						{ID: uuid.New()},
						{ID: uuid.New()},
					}, nil)
			},
			wantLen: 2,
		},
		{
			name:   "Error",
			filter: transaction.ListFilter{UserKey: "u1"},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					ListTransactions(gomock.Any(), transaction.ListFilter{UserKey: "u1"}).
					Return(nil, errors.New("list error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := transaction.NewService(repo).List(context.Background(), tt.filter)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestNewer(t *testing.T) {
	day := time.Date(2025, 7, 24, 0, 0, 0, 0, time.UTC)

	older := &transaction.Transaction{Date: day.AddDate(0, 0, -1), CreatedAt: day.Add(time.Hour)}
	newer := &transaction.Transaction{Date: day, CreatedAt: day}
	sameDayLater := &transaction.Transaction{Date: day, CreatedAt: day.Add(time.Minute)}

	assert.True(t, transaction.Newer(newer, older))
	assert.False(t, transaction.Newer(older, newer))
	assert.True(t, transaction.Newer(sameDayLater, newer))
}
