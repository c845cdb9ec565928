package dto

import (
	"time"

	"github.com/spec-kit/bank-crm-service/internal/domain"
)

// TransactionResponse is the outward shape of a ledger entry.
type TransactionResponse struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	ClientID  string    `json:"client_id"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Date      string    `json:"date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTransactionResponse maps the domain record.
func NewTransactionResponse(tx *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        tx.ID,
		AccountID: tx.AccountID,
		ClientID:  tx.ClientID,
		Type:      string(tx.Type),
		Amount:    tx.Amount,
		Date:      tx.Date.Format(DateOnly),
		Status:    string(tx.Status),
		CreatedAt: tx.CreatedAt,
	}
}
