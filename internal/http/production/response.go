package production

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/catatusaha/internal/production"
)

type materialResponse struct {
	MaterialName string          `json:"materialName"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
}

type batchResponse struct {
	ID          uuid.UUID          `json:"id"`
	Date        time.Time          `json:"date"`
	ProductName string             `json:"productName"`
	Quantity    int                `json:"quantity"`
	Notes       *string            `json:"notes"`
	Materials   []materialResponse `json:"materials"`
	CreatedAt   time.Time          `json:"createdAt"`
}

func toResponse(b *production.Batch) batchResponse {
	materials := make([]materialResponse, 0, len(b.Materials))
	for _, m := range b.Materials {
		materials = append(materials, materialResponse{
			MaterialName: m.MaterialName,
			Quantity:     m.Quantity,
			Unit:         m.Unit,
		})
	}

	return batchResponse{
		ID:          b.ID,
		Date:        b.Date,
		ProductName: b.ProductName,
		Quantity:    b.Quantity,
		Notes:       b.Notes,
		Materials:   materials,
		CreatedAt:   b.CreatedAt,
	}
}
