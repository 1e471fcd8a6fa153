package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/catatusaha/internal/production"
	"github.com/MrJamesThe3rd/catatusaha/internal/report"
	"github.com/MrJamesThe3rd/catatusaha/internal/transaction"
)

func tx(typ transaction.Type, desc string, amount int64, date time.Time) *transaction.Transaction {
	return &transaction.Transaction{
		UserKey:     "u1",
		Date:        date,
		Type:        typ,
		Description: desc,
		Amount:      decimal.NewFromInt(amount),
	}
}

func batch(name string, qty int, materials ...decimal.Decimal) *production.Batch {
	b := &production.Batch{UserKey: "u1", ProductName: name, Quantity: qty}
	for _, m := range materials {
		b.Materials = append(b.Materials, production.MaterialUsage{MaterialName: "Tepung", Quantity: m, Unit: "kg"})
	}

	return b
}

func newService(t *testing.T, loc *time.Location) (*report.Service, *report.MockTransactionLister, *report.MockProductionLister) {
	t.Helper()

	ctrl := gomock.NewController(t)
	txs := report.NewMockTransactionLister(ctrl)
	batches := report.NewMockProductionLister(ctrl)

	return report.NewService(txs, batches, loc), txs, batches
}

func TestService_Dashboard(t *testing.T) {
	t.Run("WindowIsStartOfDayUntilAsOf", func(t *testing.T) {
		svc, txs, _ := newService(t, time.UTC)
		asOf := time.Date(2025, 7, 24, 10, 0, 0, 0, time.UTC)

		txs.EXPECT().All(gomock.Any(), "u1").Return([]*transaction.Transaction{
			tx(transaction.TypeIncome, "later today", 9000, time.Date(2025, 7, 24, 11, 0, 0, 0, time.UTC)),
			tx(transaction.TypeIncome, "Roti Tawar", 25000, time.Date(2025, 7, 24, 0, 1, 0, 0, time.UTC)),
			tx(transaction.TypeIncome, "Donat", 5000, time.Date(2025, 7, 24, 9, 0, 0, 0, time.UTC)),
			tx(transaction.TypeExpense, "Tepung", 12000, time.Date(2025, 7, 24, 8, 0, 0, 0, time.UTC)),
			tx(transaction.TypeIncome, "yesterday", 7000, time.Date(2025, 7, 23, 23, 59, 0, 0, time.UTC)),
		}, nil)

		got, err := svc.Dashboard(context.Background(), "u1", asOf)
		require.NoError(t, err)

		assert.Equal(t, "30000", got.TodayIncome.String())
		assert.Equal(t, "12000", got.TodayExpenses.String())
		assert.Equal(t, 2, got.ProductsSold)
	})

	t.Run("DayBoundaryFollowsLocation", func(t *testing.T) {
		jakarta := time.FixedZone("WIB", 7*60*60)
		svc, txs, _ := newService(t, jakarta)

		// 09:00 WIB on the 24th; the day started at 17:00 UTC on the 23rd.
		asOf := time.Date(2025, 7, 24, 2, 0, 0, 0, time.UTC)

		txs.EXPECT().All(gomock.Any(), "u1").Return([]*transaction.Transaction{
			tx(transaction.TypeIncome, "early", 1000, time.Date(2025, 7, 23, 18, 0, 0, 0, time.UTC)),
			tx(transaction.TypeIncome, "before midnight", 1000, time.Date(2025, 7, 23, 16, 0, 0, 0, time.UTC)),
		}, nil)

		got, err := svc.Dashboard(context.Background(), "u1", asOf)
		require.NoError(t, err)

		assert.Equal(t, "1000", got.TodayIncome.String())
		assert.Equal(t, 1, got.ProductsSold)
	})

	t.Run("Empty", func(t *testing.T) {
		svc, txs, _ := newService(t, nil)
		txs.EXPECT().All(gomock.Any(), "u1").Return(nil, nil)

		got, err := svc.Dashboard(context.Background(), "u1", time.Now())
		require.NoError(t, err)
		assert.True(t, got.TodayIncome.IsZero())
		assert.True(t, got.TodayExpenses.IsZero())
		assert.Zero(t, got.ProductsSold)
	})

	t.Run("ListError", func(t *testing.T) {
		svc, txs, _ := newService(t, nil)
		txs.EXPECT().All(gomock.Any(), "u1").Return(nil, errors.New("db down"))

		_, err := svc.Dashboard(context.Background(), "u1", time.Now())
		assert.Error(t, err)
	})
}

func TestService_Financial(t *testing.T) {
	svc, txs, _ := newService(t, nil)
	day := time.Date(2025, 7, 24, 0, 0, 0, 0, time.UTC)

	txs.EXPECT().All(gomock.Any(), "u1").Return([]*transaction.Transaction{
		tx(transaction.TypeIncome, "Roti Tawar", 25000, day),
		tx(transaction.TypeIncome, "Roti Tawar", 25000, day.AddDate(-1, 0, 0)),
		tx(transaction.TypeExpense, "Gas", 60000, day),
	}, nil)

	got, err := svc.Financial(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, "50000", got.TotalIncome.String())
	assert.Equal(t, "60000", got.TotalExpenses.String())
	assert.Equal(t, "-10000", got.NetProfit.String())
}

func TestService_TopProducts(t *testing.T) {
	day := time.Date(2025, 7, 24, 0, 0, 0, 0, time.UTC)

	// Newest first, as the store lists them.
	history := []*transaction.Transaction{
		tx(transaction.TypeIncome, "Kue", 10000, day),
		tx(transaction.TypeExpense, "Roti Tawar", 99999, day),
		tx(transaction.TypeIncome, "Roti Tawar ", 5000, day),
		tx(transaction.TypeIncome, "Donat", 20000, day),
		tx(transaction.TypeIncome, "Roti Tawar", 25000, day),
		tx(transaction.TypeIncome, "Bolu", 20000, day),
		tx(transaction.TypeIncome, "Roti Tawar", 25000, day),
	}

	t.Run("RankedByRevenueWithStableTies", func(t *testing.T) {
		svc, txs, _ := newService(t, nil)
		txs.EXPECT().All(gomock.Any(), "u1").Return(history, nil)

		got, err := svc.TopProducts(context.Background(), "u1", 0)
		require.NoError(t, err)
		require.Len(t, got, 5)

		assert.Equal(t, "Roti Tawar", got[0].ProductName)
		assert.Equal(t, 2, got[0].QuantitySold)
		assert.Equal(t, "50000", got[0].TotalRevenue.String())

		// Bolu was sold before Donat, so it wins the tie.
		assert.Equal(t, "Bolu", got[1].ProductName)
		assert.Equal(t, "Donat", got[2].ProductName)
		assert.Equal(t, "Kue", got[3].ProductName)
		assert.Equal(t, "Roti Tawar ", got[4].ProductName)
	})

	t.Run("Limit", func(t *testing.T) {
		svc, txs, _ := newService(t, nil)
		txs.EXPECT().All(gomock.Any(), "u1").Return(history, nil)

		got, err := svc.TopProducts(context.Background(), "u1", 2)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("NoSales", func(t *testing.T) {
		svc, txs, _ := newService(t, nil)
		txs.EXPECT().All(gomock.Any(), "u1").Return(nil, nil)

		got, err := svc.TopProducts(context.Background(), "u1", 5)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestService_HPP(t *testing.T) {
	svc, _, batches := newService(t, nil)

	batches.EXPECT().List(gomock.Any(), "u1").Return([]*production.Batch{
		batch("Roti Tawar", 10, decimal.NewFromInt(2)),
		batch("Gagal", 0, decimal.NewFromInt(3)),
		batch("Kue Lapis", 4, decimal.RequireFromString("1.5"), decimal.RequireFromString("0.5")),
	}, nil)

	got, err := svc.HPP(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "2000", got[0].ProductionCost.String())
	assert.True(t, got[0].Available)
	assert.Equal(t, "200", got[0].HPPPerUnit.Decimal.String())
	assert.Equal(t, 10, got[0].TotalProduction)

	assert.Equal(t, "3000", got[1].ProductionCost.String())
	assert.False(t, got[1].Available)
	assert.False(t, got[1].HPPPerUnit.Valid)

	assert.Equal(t, "2000", got[2].ProductionCost.String())
	assert.Equal(t, "500", got[2].HPPPerUnit.Decimal.String())
}

func TestService_BEP(t *testing.T) {
	tests := []struct {
		name       string
		batch      *production.Batch
		wantStatus report.BEPStatus
		wantQty    *int64
	}{
		{
			// 100000 / (25000 - 200) = 4.03..., rounded up.
			name:       "Achievable",
			batch:      batch("Roti Tawar", 10, decimal.NewFromInt(2)),
			wantStatus: report.BEPOK,
			wantQty:    new(int64(5)),
		},
		{
			name:       "ExactDivision",
			batch:      batch("Bolu", 1, decimal.NewFromInt(5)),
			wantStatus: report.BEPOK,
			wantQty:    new(int64(5)),
		},
		{
			name:       "CostEqualsPrice",
			batch:      batch("Kue Mahal", 1, decimal.NewFromInt(25)),
			wantStatus: report.BEPNotAchievable,
		},
		{
			name:       "CostAbovePrice",
			batch:      batch("Kue Sangat Mahal", 1, decimal.NewFromInt(40)),
			wantStatus: report.BEPNotAchievable,
		},
		{
			name:       "NothingProduced",
			batch:      batch("Gagal", 0, decimal.NewFromInt(1)),
			wantStatus: report.BEPCostUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, batches := newService(t, nil)
			batches.EXPECT().List(gomock.Any(), "u1").Return([]*production.Batch{tt.batch}, nil)

			got, err := svc.BEP(context.Background(), "u1")
			require.NoError(t, err)
			require.Len(t, got, 1)

			row := got[0]
			assert.Equal(t, tt.wantStatus, row.Status)
			assert.Equal(t, tt.wantQty, row.BEPQuantity)
			assert.True(t, report.FixedCost.Equal(row.FixedCost))
			assert.True(t, report.SellingPrice.Equal(row.SellingPrice))

			if tt.wantStatus == report.BEPCostUnavailable {
				assert.False(t, row.VariableCost.Valid)
			} else {
				assert.True(t, row.VariableCost.Valid)
			}
		})
	}
}

func TestService_BEP_ListError(t *testing.T) {
	svc, _, batches := newService(t, nil)
	batches.EXPECT().List(gomock.Any(), "u1").Return(nil, errors.New("db down"))

	_, err := svc.BEP(context.Background(), "u1")
	assert.Error(t, err)
}
