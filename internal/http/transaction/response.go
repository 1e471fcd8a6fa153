package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/catatusaha/internal/transaction"
)

type transactionResponse struct {
	ID            uuid.UUID        `json:"id"`
	Date          time.Time        `json:"date"`
	Type          transaction.Type `json:"type"`
	Description   string           `json:"description"`
	Amount        decimal.Decimal  `json:"amount"`
	PaymentMethod string           `json:"paymentMethod"`
	Notes         *string          `json:"notes"`
	CreatedAt     time.Time        `json:"createdAt"`
}

type importResponse struct {
	Imported     int                   `json:"imported"`
	Transactions []transactionResponse `json:"transactions"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:            tx.ID,
		Date:          tx.Date,
		Type:          tx.Type,
		Description:   tx.Description,
		Amount:        tx.Amount,
		PaymentMethod: tx.PaymentMethod,
		Notes:         tx.Notes,
		CreatedAt:     tx.CreatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	responses := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		responses = append(responses, toResponse(tx))
	}

	return responses
}
