package domain

import "time"

// AccountType enumerates supported account products.
type AccountType string

const (
	AccountTypeSavings  AccountType = "Savings"
	AccountTypeChecking AccountType = "Checking"
	AccountTypeFixed    AccountType = "Fixed"
)

// AccountStatus enumerates lifecycle states for an account. Inactive is
// reversible via update; Deleted is terminal.
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "Active"
	AccountStatusInactive AccountStatus = "Inactive"
	AccountStatusDeleted  AccountStatus = "Deleted"
)

// ParseAccountStatus validates a status value received from the outside.
func ParseAccountStatus(s string) (AccountStatus, bool) {
	switch AccountStatus(s) {
	case AccountStatusActive, AccountStatusInactive, AccountStatusDeleted:
		return AccountStatus(s), true
	}
	return "", false
}

// Account is a bank account opened for a client and managed by one agent.
type Account struct {
	ID             string
	ClientID       string
	AgentID        string
	AccountType    AccountType
	Status         AccountStatus
	OpeningDate    time.Time
	InitialDeposit float64
	Currency       string
	BranchID       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OwnerID satisfies authz.Owned.
func (a *Account) OwnerID() string { return a.AgentID }

// Deleted reports whether the account is a read-only historical record.
// Transactions referencing it remain queryable.
func (a *Account) Deleted() bool {
	return a.Status == AccountStatusDeleted
}
