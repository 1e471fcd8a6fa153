package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/catatusaha/internal/stock"
)

type itemResponse struct {
	ID           uuid.UUID       `json:"id"`
	ItemName     string          `json:"itemName"`
	Type         stock.Kind      `json:"type"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	Unit         string          `json:"unit"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type movementResponse struct {
	ID           uuid.UUID       `json:"id"`
	StockItemID  uuid.UUID       `json:"stockItemId"`
	Date         time.Time       `json:"date"`
	MovementType stock.Direction `json:"movementType"`
	Quantity     decimal.Decimal `json:"quantity"`
	Reason       string          `json:"reason"`
	Notes        *string         `json:"notes"`
	Overdrawn    bool            `json:"overdrawn"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// recordedResponse is a new movement together with the balance it produced.
type recordedResponse struct {
	movementResponse
	Item itemResponse `json:"item"`
}

func toItemResponse(it *stock.Item) itemResponse {
	return itemResponse{
		ID:           it.ID,
		ItemName:     it.ItemName,
		Type:         it.Kind,
		CurrentStock: it.CurrentStock,
		Unit:         it.Unit,
		CreatedAt:    it.CreatedAt,
	}
}

func toItemList(items []*stock.Item) []itemResponse {
	responses := make([]itemResponse, 0, len(items))
	for _, it := range items {
		responses = append(responses, toItemResponse(it))
	}

	return responses
}

func toMovementResponse(m *stock.Movement) movementResponse {
	return movementResponse{
		ID:           m.ID,
		StockItemID:  m.StockItemID,
		Date:         m.Date,
		MovementType: m.Direction,
		Quantity:     m.Quantity,
		Reason:       m.Reason,
		Notes:        m.Notes,
		Overdrawn:    m.Overdrawn,
		CreatedAt:    m.CreatedAt,
	}
}
