package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bank-crm-service/internal/domain"
)

// ClientRepository handles persistence for client profiles. Deleted profiles
// stay in storage; GetByID returns them so soft-delete semantics are decided
// in the service layer.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	Update(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	GetByEmail(ctx context.Context, email string) (*domain.Client, error)
	GetByPhoneNumber(ctx context.Context, phone string) (*domain.Client, error)
	ListByAgent(ctx context.Context, agentID string) ([]domain.Client, error)
}

type clientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository instantiates the repository.
func NewClientRepository(pool *pgxpool.Pool) ClientRepository {
	return &clientRepository{pool: pool}
}

const clientColumns = `id, agent_id, first_name, last_name, date_of_birth, gender, email,
        phone_number, address, city, state, country, postal_code,
        verification_status, status, created_at, updated_at`

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	const query = `
        INSERT INTO clients (id, agent_id, first_name, last_name, date_of_birth, gender, email,
            phone_number, address, city, state, country, postal_code, verification_status, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		client.ID,
		client.AgentID,
		client.FirstName,
		client.LastName,
		client.DateOfBirth,
		client.Gender,
		client.Email,
		client.PhoneNumber,
		client.Address,
		client.City,
		client.State,
		client.Country,
		client.PostalCode,
		client.VerificationStatus,
		client.Status,
	).Scan(&client.CreatedAt, &client.UpdatedAt)
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	const query = `
        UPDATE clients
        SET first_name=$1, last_name=$2, date_of_birth=$3, gender=$4, email=$5,
            phone_number=$6, address=$7, city=$8, state=$9, country=$10, postal_code=$11,
            verification_status=$12, status=$13, updated_at=NOW()
        WHERE id=$14`

	cmd, err := r.pool.Exec(ctx, query,
		client.FirstName,
		client.LastName,
		client.DateOfBirth,
		client.Gender,
		client.Email,
		client.PhoneNumber,
		client.Address,
		client.City,
		client.State,
		client.Country,
		client.PostalCode,
		client.VerificationStatus,
		client.Status,
		client.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	return r.getOne(ctx, `SELECT `+clientColumns+` FROM clients WHERE id=$1`, id)
}

func (r *clientRepository) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	return r.getOne(ctx, `SELECT `+clientColumns+` FROM clients WHERE email=$1`, email)
}

func (r *clientRepository) GetByPhoneNumber(ctx context.Context, phone string) (*domain.Client, error) {
	return r.getOne(ctx, `SELECT `+clientColumns+` FROM clients WHERE phone_number=$1`, phone)
}

func (r *clientRepository) getOne(ctx context.Context, query string, arg any) (*domain.Client, error) {
	var client domain.Client
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&client.ID,
		&client.AgentID,
		&client.FirstName,
		&client.LastName,
		&client.DateOfBirth,
		&client.Gender,
		&client.Email,
		&client.PhoneNumber,
		&client.Address,
		&client.City,
		&client.State,
		&client.Country,
		&client.PostalCode,
		&client.VerificationStatus,
		&client.Status,
		&client.CreatedAt,
		&client.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) ListByAgent(ctx context.Context, agentID string) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE agent_id=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Client
	for rows.Next() {
		var client domain.Client
		if err := rows.Scan(
			&client.ID,
			&client.AgentID,
			&client.FirstName,
			&client.LastName,
			&client.DateOfBirth,
			&client.Gender,
			&client.Email,
			&client.PhoneNumber,
			&client.Address,
			&client.City,
			&client.State,
			&client.Country,
			&client.PostalCode,
			&client.VerificationStatus,
			&client.Status,
			&client.CreatedAt,
			&client.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, client)
	}
	return result, rows.Err()
}
