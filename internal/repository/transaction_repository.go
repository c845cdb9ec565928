package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bank-crm-service/internal/domain"
)

// TransactionRepository reads the transaction ledger. Transactions are
// written by the core banking pipeline, never by this service.
type TransactionRepository interface {
	ListByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error)
	GetByAccountAndID(ctx context.Context, accountID, transactionID string) (*domain.Transaction, error)
}

type transactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository instantiates the repository.
func NewTransactionRepository(pool *pgxpool.Pool) TransactionRepository {
	return &transactionRepository{pool: pool}
}

const transactionColumns = `id, account_id, client_id, transaction_type, amount, transaction_date, status, created_at`

func (r *transactionRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	const query = `SELECT ` + transactionColumns + ` FROM transactions WHERE account_id=$1 ORDER BY transaction_date DESC`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(
			&tx.ID,
			&tx.AccountID,
			&tx.ClientID,
			&tx.Type,
			&tx.Amount,
			&tx.Date,
			&tx.Status,
			&tx.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	return result, rows.Err()
}

func (r *transactionRepository) GetByAccountAndID(ctx context.Context, accountID, transactionID string) (*domain.Transaction, error) {
	// Scoped to the account so a valid transaction id under a different
	// account behaves as absent.
	const query = `SELECT ` + transactionColumns + ` FROM transactions WHERE account_id=$1 AND id=$2`

	var tx domain.Transaction
	if err := r.pool.QueryRow(ctx, query, accountID, transactionID).Scan(
		&tx.ID,
		&tx.AccountID,
		&tx.ClientID,
		&tx.Type,
		&tx.Amount,
		&tx.Date,
		&tx.Status,
		&tx.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &tx, nil
}
