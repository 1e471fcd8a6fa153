package report

import (
	"github.com/shopspring/decimal"
)

// Cost model placeholders. They apply to every product of every user; there
// is no per-product pricing yet.
var (
	// UnitMaterialCost is charged per unit of any material consumed.
	UnitMaterialCost = decimal.NewFromInt(1000)
	FixedCost        = decimal.NewFromInt(100000)
	SellingPrice     = decimal.NewFromInt(25000)
)

const DefaultTopProductsLimit = 5

// Dashboard summarizes the current day. ProductsSold counts income
// transactions, not units or distinct products.
type Dashboard struct {
	TodayIncome   decimal.Decimal
	TodayExpenses decimal.Decimal
	ProductsSold  int
}

type Financial struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	NetProfit     decimal.Decimal
}

// ProductSales aggregates income transactions sharing one description.
type ProductSales struct {
	ProductName  string
	QuantitySold int
	TotalRevenue decimal.Decimal
}

// HPPRow is the cost of goods for one production batch. HPPPerUnit is only
// valid when Available is true, i.e. the batch produced at least one unit.
type HPPRow struct {
	ProductName     string
	ProductionCost  decimal.Decimal
	TotalProduction int
	HPPPerUnit      decimal.NullDecimal
	Available       bool
}

type BEPStatus string

const (
	BEPOK BEPStatus = "ok"
	// BEPNotAchievable means the unit cost meets or exceeds the selling price,
	// so no sales volume covers the fixed cost.
	BEPNotAchievable BEPStatus = "not_achievable"
	// BEPCostUnavailable means the batch has no per-unit cost to work from.
	BEPCostUnavailable BEPStatus = "cost_unavailable"
)

// BEPRow is the break-even point derived from one HPPRow. BEPQuantity is set
// only when Status is BEPOK.
type BEPRow struct {
	ProductName  string
	FixedCost    decimal.Decimal
	SellingPrice decimal.Decimal
	VariableCost decimal.NullDecimal
	BEPQuantity  *int64
	Status       BEPStatus
}
