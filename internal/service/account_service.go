package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/bank-crm-service/internal/authz"
	"github.com/spec-kit/bank-crm-service/internal/domain"
	"github.com/spec-kit/bank-crm-service/internal/events"
	"github.com/spec-kit/bank-crm-service/internal/repository"
	apperrors "github.com/spec-kit/bank-crm-service/pkg/util"
)

// AccountService manages bank accounts on behalf of their owning agent.
type AccountService struct {
	accounts   repository.AccountRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAccountService constructs the service.
func NewAccountService(accounts repository.AccountRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AccountService {
	return &AccountService{accounts: accounts, dispatcher: dispatcher, logger: logger}
}

// AccountCreateInput describes a new account. ClientEmail is used only for
// the creation notification; it is not persisted on the account.
type AccountCreateInput struct {
	ClientID       string
	ClientEmail    string
	AccountType    domain.AccountType
	InitialDeposit float64
	Currency       string
	BranchID       string
}

// AccountPatch carries partial updates; nil fields keep current values.
// Status accepts Active and Inactive; Deleted is reachable only via delete.
type AccountPatch struct {
	AccountType    *domain.AccountType
	Status         *domain.AccountStatus
	InitialDeposit *float64
	Currency       *string
	BranchID       *string
	OpeningDate    *time.Time
}

// ListAccounts returns the caller's portfolio.
func (s *AccountService) ListAccounts(ctx context.Context, callerID string) ([]domain.Account, error) {
	return s.accounts.ListByAgent(ctx, callerID)
}

// GetAccount fetches one account. Deleted accounts stay readable as
// historical records.
func (s *AccountService) GetAccount(ctx context.Context, callerID, accountID string) (*domain.Account, error) {
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

// CreateAccount opens an account owned by the caller; the owner is always
// the authenticated agent regardless of the input.
func (s *AccountService) CreateAccount(ctx context.Context, callerID string, input AccountCreateInput) (*domain.Account, error) {
	account := &domain.Account{
		ID:             uuid.NewString(),
		ClientID:       input.ClientID,
		AgentID:        callerID,
		AccountType:    input.AccountType,
		Status:         domain.AccountStatusActive,
		OpeningDate:    time.Now(),
		InitialDeposit: input.InitialDeposit,
		Currency:       input.Currency,
		BranchID:       input.BranchID,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventAccountCreated, account, callerID, input.ClientEmail)
	return account, nil
}

// UpdateAccount applies a partial update. Deleted accounts are read-only,
// and a field-identical patch succeeds without a write.
func (s *AccountService) UpdateAccount(ctx context.Context, callerID, accountID string, patch AccountPatch) (*domain.Account, error) {
	account, err := s.GetAccount(ctx, callerID, accountID)
	if err != nil {
		return nil, err
	}
	if account.Deleted() {
		return nil, apperrors.NewGone("account has been deleted and cannot be updated")
	}
	if patch.Status != nil && *patch.Status == domain.AccountStatusDeleted {
		return nil, apperrors.NewValidationError("deletion goes through the delete operation", nil)
	}

	before := *account
	if patch.AccountType != nil {
		account.AccountType = *patch.AccountType
	}
	if patch.Status != nil {
		account.Status = *patch.Status
	}
	if patch.InitialDeposit != nil {
		account.InitialDeposit = *patch.InitialDeposit
	}
	if patch.Currency != nil {
		account.Currency = *patch.Currency
	}
	if patch.BranchID != nil {
		account.BranchID = *patch.BranchID
	}
	if patch.OpeningDate != nil {
		account.OpeningDate = *patch.OpeningDate
	}
	if *account == before {
		return account, nil
	}

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventAccountUpdated, account, callerID, "")
	return account, nil
}

// DeleteAccount soft-deletes the account. Transactions referencing it remain
// intact and queryable.
func (s *AccountService) DeleteAccount(ctx context.Context, callerID, accountID string) error {
	account, err := s.GetAccount(ctx, callerID, accountID)
	if err != nil {
		return err
	}
	if account.Deleted() {
		return apperrors.NewGone("account has already been deleted")
	}

	account.Status = domain.AccountStatusDeleted
	if err := s.accounts.Update(ctx, account); err != nil {
		return apperrors.MapError(err)
	}

	s.logger.Info("account deleted",
		zap.String("account_id", account.ID),
		zap.String("agent_id", account.AgentID))
	s.publish(ctx, events.EventAccountDeleted, account, callerID, "")
	return nil
}

func (s *AccountService) publish(ctx context.Context, eventType events.EventType, account *domain.Account, callerID, recipient string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:             uuid.NewString(),
		Type:           eventType,
		ResourceID:     account.ID,
		RecipientEmail: recipient,
		Actor:          events.Actor{StaffID: callerID, Role: domain.StaffRoleAgent},
		Timestamp:      time.Now(),
		Payload: events.AccountEventPayload{
			ClientID: account.ClientID,
			AgentID:  account.AgentID,
			Status:   account.Status,
		},
	})
}
