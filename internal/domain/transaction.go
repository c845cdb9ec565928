package domain

import "time"

// TransactionType uses the ledger's single-letter codes.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "D"
	TransactionTypeWithdrawal TransactionType = "W"
	TransactionTypeTransfer   TransactionType = "T"
)

// TransactionStatus enumerates settlement states.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "Completed"
	TransactionStatusPending   TransactionStatus = "Pending"
	TransactionStatusFailed    TransactionStatus = "Failed"
)

// Transaction belongs to exactly one account and is immutable once recorded.
// It carries no owner of its own; authorization is derived from the parent
// account's managing agent.
type Transaction struct {
	ID        string
	AccountID string
	ClientID  string
	Type      TransactionType
	Amount    float64
	Date      time.Time
	Status    TransactionStatus
	CreatedAt time.Time
}
