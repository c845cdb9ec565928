package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/bank-crm-service/internal/domain"
	"github.com/spec-kit/bank-crm-service/internal/events"
)

type accountRepoStub struct {
	records map[string]*domain.Account
	updated []*domain.Account
}

func newAccountRepoStub(records ...*domain.Account) *accountRepoStub {
	s := &accountRepoStub{records: make(map[string]*domain.Account)}
	for _, r := range records {
		s.records[r.ID] = r
	}
	return s
}

func (s *accountRepoStub) Create(ctx context.Context, account *domain.Account) error {
	cp := *account
	s.records[account.ID] = &cp
	return nil
}

func (s *accountRepoStub) Update(ctx context.Context, account *domain.Account) error {
	cp := *account
	s.updated = append(s.updated, &cp)
	s.records[account.ID] = &cp
	return nil
}

func (s *accountRepoStub) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	account, ok := s.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *account
	return &cp, nil
}

func (s *accountRepoStub) ListByAgent(ctx context.Context, agentID string) ([]domain.Account, error) {
	out := make([]domain.Account, 0)
	for _, account := range s.records {
		if account.AgentID == agentID {
			out = append(out, *account)
		}
	}
	return out, nil
}

func activeAccount(id, agentID string) *domain.Account {
	return &domain.Account{
		ID:          id,
		ClientID:    "client-1",
		AgentID:     agentID,
		AccountType: domain.AccountTypeSavings,
		Status:      domain.AccountStatusActive,
		OpeningDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Currency:    "NGN",
	}
}

func newAccountServiceForTest(repo *accountRepoStub, dispatcher events.Dispatcher) *AccountService {
	return NewAccountService(repo, dispatcher, zap.NewNop())
}

func TestCreateAccountOwnerForced(t *testing.T) {
	repo := newAccountRepoStub()
	dispatcher := &dispatcherStub{}
	svc := newAccountServiceForTest(repo, dispatcher)

	account, err := svc.CreateAccount(context.Background(), "agent-1", AccountCreateInput{
		ClientID:       "client-1",
		ClientEmail:    "jane@clients.test",
		AccountType:    domain.AccountTypeChecking,
		InitialDeposit: 500,
		Currency:       "NGN",
	})
	require.NoError(t, err)

	require.Equal(t, "agent-1", account.AgentID)
	require.Equal(t, domain.AccountStatusActive, account.Status)
	require.False(t, account.OpeningDate.IsZero())

	require.Len(t, dispatcher.published, 1)
	require.Equal(t, events.EventAccountCreated, dispatcher.published[0].Type)
	require.Equal(t, "jane@clients.test", dispatcher.published[0].RecipientEmail)
}

func TestGetAccountForbiddenForOtherAgent(t *testing.T) {
	svc := newAccountServiceForTest(newAccountRepoStub(activeAccount("a1", "agent-1")), nil)

	_, err := svc.GetAccount(context.Background(), "agent-2", "a1")
	requireDomainCode(t, err, "FORBIDDEN")
}

func TestGetAccountNotFound(t *testing.T) {
	svc := newAccountServiceForTest(newAccountRepoStub(), nil)

	_, err := svc.GetAccount(context.Background(), "agent-1", "missing")
	requireDomainCode(t, err, "NOT_FOUND")
}

func TestUpdateAccountStatusToggle(t *testing.T) {
	repo := newAccountRepoStub(activeAccount("a1", "agent-1"))
	svc := newAccountServiceForTest(repo, nil)

	inactive := domain.AccountStatusInactive
	got, err := svc.UpdateAccount(context.Background(), "agent-1", "a1", AccountPatch{Status: &inactive})
	require.NoError(t, err)
	require.Equal(t, domain.AccountStatusInactive, got.Status)

	active := domain.AccountStatusActive
	got, err = svc.UpdateAccount(context.Background(), "agent-1", "a1", AccountPatch{Status: &active})
	require.NoError(t, err)
	require.Equal(t, domain.AccountStatusActive, got.Status)
}

func TestUpdateAccountIdenticalPatchIsNoOp(t *testing.T) {
	account := activeAccount("a1", "agent-1")
	repo := newAccountRepoStub(account)
	svc := newAccountServiceForTest(repo, nil)

	sameCurrency := account.Currency
	got, err := svc.UpdateAccount(context.Background(), "agent-1", "a1", AccountPatch{Currency: &sameCurrency})
	require.NoError(t, err)
	require.Equal(t, account.Currency, got.Currency)
	require.Empty(t, repo.updated, "a field-identical patch must not write")
}

func TestUpdateAccountRejectsDeletedStatus(t *testing.T) {
	repo := newAccountRepoStub(activeAccount("a1", "agent-1"))
	svc := newAccountServiceForTest(repo, nil)

	deleted := domain.AccountStatusDeleted
	_, err := svc.UpdateAccount(context.Background(), "agent-1", "a1", AccountPatch{Status: &deleted})
	requireDomainCode(t, err, "VALIDATION_FAILED")
	require.Empty(t, repo.updated)
}

func TestUpdateAccountGoneAfterDelete(t *testing.T) {
	gone := activeAccount("a1", "agent-1")
	gone.Status = domain.AccountStatusDeleted
	svc := newAccountServiceForTest(newAccountRepoStub(gone), nil)

	currency := "USD"
	_, err := svc.UpdateAccount(context.Background(), "agent-1", "a1", AccountPatch{Currency: &currency})
	requireDomainCode(t, err, "GONE")
}

func TestDeleteAccountIsTerminal(t *testing.T) {
	repo := newAccountRepoStub(activeAccount("a1", "agent-1"))
	svc := newAccountServiceForTest(repo, nil)

	require.NoError(t, svc.DeleteAccount(context.Background(), "agent-1", "a1"))
	require.Equal(t, domain.AccountStatusDeleted, repo.records["a1"].Status)

	err := svc.DeleteAccount(context.Background(), "agent-1", "a1")
	requireDomainCode(t, err, "GONE")
}

func TestDeletedAccountStillReadableByOwner(t *testing.T) {
	repo := newAccountRepoStub(activeAccount("a1", "agent-1"))
	svc := newAccountServiceForTest(repo, nil)

	require.NoError(t, svc.DeleteAccount(context.Background(), "agent-1", "a1"))

	got, err := svc.GetAccount(context.Background(), "agent-1", "a1")
	require.NoError(t, err)
	require.Equal(t, domain.AccountStatusDeleted, got.Status)
}

func TestListAccountsScopedToCaller(t *testing.T) {
	repo := newAccountRepoStub(activeAccount("a1", "agent-1"), activeAccount("a2", "agent-2"))
	svc := newAccountServiceForTest(repo, nil)

	accounts, err := svc.ListAccounts(context.Background(), "agent-1")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	require.Equal(t, "a1", accounts[0].ID)
}
