package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bank-crm-service/internal/authz"
	"github.com/spec-kit/bank-crm-service/internal/domain"
	"github.com/spec-kit/bank-crm-service/internal/repository"
	apperrors "github.com/spec-kit/bank-crm-service/pkg/util"
)

// TransactionService exposes read-only access to the ledger. Transactions
// carry no owner of their own: every lookup is gated through the parent
// account's managing agent, so a valid transaction id is Forbidden whenever
// the account is.
type TransactionService struct {
	transactions repository.TransactionRepository
	accounts     repository.AccountRepository
}

// NewTransactionService constructs the service.
func NewTransactionService(transactions repository.TransactionRepository, accounts repository.AccountRepository) *TransactionService {
	return &TransactionService{transactions: transactions, accounts: accounts}
}

// ListTransactions lists the account's transactions after the account gate.
func (s *TransactionService) ListTransactions(ctx context.Context, callerID, accountID string) ([]domain.Transaction, error) {
	if _, err := s.authorizeAccount(ctx, callerID, accountID); err != nil {
		return nil, err
	}
	return s.transactions.ListByAccount(ctx, accountID)
}

// GetTransaction fetches one transaction scoped to the account. A
// transaction id that exists under a different account is NotFound here.
func (s *TransactionService) GetTransaction(ctx context.Context, callerID, accountID, transactionID string) (*domain.Transaction, error) {
	if _, err := s.authorizeAccount(ctx, callerID, accountID); err != nil {
		return nil, err
	}

	tx, err := s.transactions.GetByAccountAndID(ctx, accountID, transactionID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("transaction", map[string]any{"id": transactionID})
		}
		return nil, apperrors.MapError(err)
	}
	return tx, nil
}

func (s *TransactionService) authorizeAccount(ctx context.Context, callerID, accountID string) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("account", map[string]any{"id": accountID})
		}
		return nil, apperrors.MapError(err)
	}
	if err := authz.Authorize(callerID, account); err != nil {
		return nil, err
	}
	return account, nil
}
