package report

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/catatusaha/internal/report"
)

type financialResponse struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetProfit     decimal.Decimal `json:"netProfit"`
}

type productSalesResponse struct {
	ProductName  string          `json:"productName"`
	QuantitySold int             `json:"quantitySold"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
}

// hppResponse reports hppPerUnit as null when the batch produced nothing.
type hppResponse struct {
	ProductName     string              `json:"productName"`
	ProductionCost  decimal.Decimal     `json:"productionCost"`
	TotalProduction int                 `json:"totalProduction"`
	HPPPerUnit      decimal.NullDecimal `json:"hppPerUnit"`
	Available       bool                `json:"available"`
}

type bepResponse struct {
	ProductName  string              `json:"productName"`
	FixedCost    decimal.Decimal     `json:"fixedCost"`
	SellingPrice decimal.Decimal     `json:"sellingPrice"`
	VariableCost decimal.NullDecimal `json:"variableCost"`
	BEPQuantity  *int64              `json:"bepQuantity"`
	Status       report.BEPStatus    `json:"status"`
}

func toFinancialResponse(f *report.Financial) financialResponse {
	return financialResponse{
		TotalIncome:   f.TotalIncome,
		TotalExpenses: f.TotalExpenses,
		NetProfit:     f.NetProfit,
	}
}

func toProductSalesList(rows []report.ProductSales) []productSalesResponse {
	responses := make([]productSalesResponse, 0, len(rows))
	for _, p := range rows {
		responses = append(responses, productSalesResponse{
			ProductName:  p.ProductName,
			QuantitySold: p.QuantitySold,
			TotalRevenue: p.TotalRevenue,
		})
	}

	return responses
}

func toHPPList(rows []report.HPPRow) []hppResponse {
	responses := make([]hppResponse, 0, len(rows))
	for _, h := range rows {
		responses = append(responses, hppResponse{
			ProductName:     h.ProductName,
			ProductionCost:  h.ProductionCost,
			TotalProduction: h.TotalProduction,
			HPPPerUnit:      h.HPPPerUnit,
			Available:       h.Available,
		})
	}

	return responses
}

func toBEPList(rows []report.BEPRow) []bepResponse {
	responses := make([]bepResponse, 0, len(rows))
	for _, b := range rows {
		responses = append(responses, bepResponse{
			ProductName:  b.ProductName,
			FixedCost:    b.FixedCost,
			SellingPrice: b.SellingPrice,
			VariableCost: b.VariableCost,
			BEPQuantity:  b.BEPQuantity,
			Status:       b.Status,
		})
	}

	return responses
}
