package report

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/catatusaha/internal/production"
	"github.com/MrJamesThe3rd/catatusaha/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=report

// TransactionLister returns the full transaction history of a user.
type TransactionLister interface {
	All(ctx context.Context, userKey string) ([]*transaction.Transaction, error)
}

// ProductionLister returns every production batch of a user, materials
// included.
type ProductionLister interface {
	List(ctx context.Context, userKey string) ([]*production.Batch, error)
}

// Service computes reports from the current records. It never writes.
type Service struct {
	txs     TransactionLister
	batches ProductionLister
	loc     *time.Location
}

// NewService builds a report service. Day boundaries are taken in loc; a nil
// loc means UTC.
func NewService(txs TransactionLister, batches ProductionLister, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}

	return &Service{txs: txs, batches: batches, loc: loc}
}

// Dashboard sums the transactions dated in [start of asOf's day, asOf).
func (s *Service) Dashboard(ctx context.Context, userKey string, asOf time.Time) (*Dashboard, error) {
	txs, err := s.txs.All(ctx, userKey)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	local := asOf.In(s.loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)

	d := &Dashboard{TodayIncome: decimal.Zero, TodayExpenses: decimal.Zero}

	for _, tx := range txs {
		if tx.Date.Before(start) || !tx.Date.Before(asOf) {
			continue
		}

		switch tx.Type {
		case transaction.TypeIncome:
			d.TodayIncome = d.TodayIncome.Add(tx.Amount)
			d.ProductsSold++
		case transaction.TypeExpense:
			d.TodayExpenses = d.TodayExpenses.Add(tx.Amount)
		}
	}

	return d, nil
}

func (s *Service) Financial(ctx context.Context, userKey string) (*Financial, error) {
	txs, err := s.txs.All(ctx, userKey)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	f := &Financial{TotalIncome: decimal.Zero, TotalExpenses: decimal.Zero}

	for _, tx := range txs {
		switch tx.Type {
		case transaction.TypeIncome:
			f.TotalIncome = f.TotalIncome.Add(tx.Amount)
		case transaction.TypeExpense:
			f.TotalExpenses = f.TotalExpenses.Add(tx.Amount)
		}
	}

	f.NetProfit = f.TotalIncome.Sub(f.TotalExpenses)

	return f, nil
}

// TopProducts ranks income descriptions by revenue. Descriptions are matched
// exactly, so "Roti" and "roti " are separate products. Equal revenues keep
// the order in which each product was first sold.
func (s *Service) TopProducts(ctx context.Context, userKey string, limit int) ([]ProductSales, error) {
	if limit <= 0 {
		limit = DefaultTopProductsLimit
	}

	txs, err := s.txs.All(ctx, userKey)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	// Listings are newest first; walk oldest first so ties follow insertion.
	var (
		products []ProductSales
		index    = make(map[string]int)
	)

	for _, tx := range slices.Backward(txs) {
		if tx.Type != transaction.TypeIncome {
			continue
		}

		i, ok := index[tx.Description]
		if !ok {
			i = len(products)
			index[tx.Description] = i
			products = append(products, ProductSales{ProductName: tx.Description, TotalRevenue: decimal.Zero})
		}

		products[i].QuantitySold++
		products[i].TotalRevenue = products[i].TotalRevenue.Add(tx.Amount)
	}

	slices.SortStableFunc(products, func(a, b ProductSales) int {
		return b.TotalRevenue.Cmp(a.TotalRevenue)
	})

	return products[:min(limit, len(products))], nil
}

// HPP returns one cost row per production batch, in listing order.
func (s *Service) HPP(ctx context.Context, userKey string) ([]HPPRow, error) {
	batches, err := s.batches.List(ctx, userKey)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}

	rows := make([]HPPRow, 0, len(batches))
	for _, b := range batches {
		rows = append(rows, hppRow(b))
	}

	return rows, nil
}

// BEP returns one break-even row per HPP row. A row that cannot be computed
// carries a status instead of failing the report.
func (s *Service) BEP(ctx context.Context, userKey string) ([]BEPRow, error) {
	hpp, err := s.HPP(ctx, userKey)
	if err != nil {
		return nil, err
	}

	rows := make([]BEPRow, 0, len(hpp))
	for _, h := range hpp {
		rows = append(rows, bepRow(h))
	}

	return rows, nil
}

func hppRow(b *production.Batch) HPPRow {
	cost := decimal.Zero
	for _, m := range b.Materials {
		cost = cost.Add(m.Quantity.Mul(UnitMaterialCost))
	}

	row := HPPRow{
		ProductName:     b.ProductName,
		ProductionCost:  cost,
		TotalProduction: b.Quantity,
	}

	if b.Quantity > 0 {
		row.HPPPerUnit = decimal.NewNullDecimal(cost.Div(decimal.NewFromInt(int64(b.Quantity))))
		row.Available = true
	}

	return row
}

func bepRow(h HPPRow) BEPRow {
	row := BEPRow{
		ProductName:  h.ProductName,
		FixedCost:    FixedCost,
		SellingPrice: SellingPrice,
		VariableCost: h.HPPPerUnit,
	}

	if !h.Available {
		row.Status = BEPCostUnavailable
		return row
	}

	margin := SellingPrice.Sub(h.HPPPerUnit.Decimal)
	if margin.Sign() <= 0 {
		row.Status = BEPNotAchievable
		return row
	}

	row.Status = BEPOK
	row.BEPQuantity = new(FixedCost.Div(margin).Ceil().IntPart())

	return row
}
