package dto

import (
	"time"

	"github.com/spec-kit/bank-crm-service/internal/domain"
)

// CreateAccountRequest payload for opening an account. The client email is
// used for the creation notification only.
type CreateAccountRequest struct {
	ClientID       string  `json:"client_id" validate:"required"`
	ClientEmail    string  `json:"client_email" validate:"required,email"`
	AccountType    string  `json:"account_type" validate:"required,oneof=Savings Checking Fixed"`
	InitialDeposit float64 `json:"initial_deposit" validate:"gte=0"`
	Currency       string  `json:"currency" validate:"required,len=3"`
	BranchID       string  `json:"branch_id" validate:"omitempty,max=20"`
}

// UpdateAccountRequest payload; omitted fields keep current values.
type UpdateAccountRequest struct {
	AccountType    *string  `json:"account_type" validate:"omitempty,oneof=Savings Checking Fixed"`
	Status         *string  `json:"status" validate:"omitempty,oneof=Active Inactive"`
	InitialDeposit *float64 `json:"initial_deposit" validate:"omitempty,gte=0"`
	Currency       *string  `json:"currency" validate:"omitempty,len=3"`
	BranchID       *string  `json:"branch_id" validate:"omitempty,max=20"`
	OpeningDate    *string  `json:"opening_date"`
}

// AccountResponse is the outward shape of an account.
type AccountResponse struct {
	ID             string    `json:"id"`
	ClientID       string    `json:"client_id"`
	AgentID        string    `json:"agent_id"`
	AccountType    string    `json:"account_type"`
	Status         string    `json:"status"`
	OpeningDate    string    `json:"opening_date"`
	InitialDeposit float64   `json:"initial_deposit"`
	Currency       string    `json:"currency"`
	BranchID       string    `json:"branch_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewAccountResponse maps the domain record.
func NewAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:             account.ID,
		ClientID:       account.ClientID,
		AgentID:        account.AgentID,
		AccountType:    string(account.AccountType),
		Status:         string(account.Status),
		OpeningDate:    account.OpeningDate.Format(DateOnly),
		InitialDeposit: account.InitialDeposit,
		Currency:       account.Currency,
		BranchID:       account.BranchID,
		CreatedAt:      account.CreatedAt,
		UpdatedAt:      account.UpdatedAt,
	}
}
