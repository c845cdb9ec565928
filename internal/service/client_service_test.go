package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/bank-crm-service/internal/domain"
	"github.com/spec-kit/bank-crm-service/internal/events"
)

type clientRepoStub struct {
	records   map[string]*domain.Client
	updated   []*domain.Client
	createErr error
}

func newClientRepoStub(records ...*domain.Client) *clientRepoStub {
	s := &clientRepoStub{records: make(map[string]*domain.Client)}
	for _, r := range records {
		s.records[r.ID] = r
	}
	return s
}

func (s *clientRepoStub) Create(ctx context.Context, client *domain.Client) error {
	if s.createErr != nil {
		return s.createErr
	}
	cp := *client
	s.records[client.ID] = &cp
	return nil
}

func (s *clientRepoStub) Update(ctx context.Context, client *domain.Client) error {
	cp := *client
	s.updated = append(s.updated, &cp)
	s.records[client.ID] = &cp
	return nil
}

func (s *clientRepoStub) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	client, ok := s.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *client
	return &cp, nil
}

func (s *clientRepoStub) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	for _, client := range s.records {
		if client.Email == email {
			cp := *client
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *clientRepoStub) GetByPhoneNumber(ctx context.Context, phone string) (*domain.Client, error) {
	for _, client := range s.records {
		if client.PhoneNumber == phone {
			cp := *client
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *clientRepoStub) ListByAgent(ctx context.Context, agentID string) ([]domain.Client, error) {
	out := make([]domain.Client, 0)
	for _, client := range s.records {
		if client.AgentID == agentID {
			out = append(out, *client)
		}
	}
	return out, nil
}

func activeClient(id, agentID string) *domain.Client {
	return &domain.Client{
		ID:                 id,
		AgentID:            agentID,
		FirstName:          "Jane",
		LastName:           "Doe",
		DateOfBirth:        time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC),
		Gender:             domain.GenderFemale,
		Email:              id + "@clients.test",
		PhoneNumber:        "+23480000" + id,
		VerificationStatus: domain.VerificationStatusPending,
		Status:             domain.ClientStatusActive,
	}
}

func newClientServiceForTest(repo *clientRepoStub, dispatcher events.Dispatcher) *ClientService {
	return NewClientService(repo, dispatcher, zap.NewNop())
}

func TestCreateClientOwnedByCaller(t *testing.T) {
	repo := newClientRepoStub()
	dispatcher := &dispatcherStub{}
	svc := newClientServiceForTest(repo, dispatcher)

	client, err := svc.CreateClient(context.Background(), "agent-1", ClientCreateInput{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@clients.test",
		PhoneNumber: "+2348012345678",
	})
	require.NoError(t, err)

	require.Equal(t, "agent-1", client.AgentID)
	require.NotEmpty(t, client.ID)
	require.Equal(t, domain.ClientStatusActive, client.Status)
	require.Equal(t, domain.VerificationStatusPending, client.VerificationStatus)

	require.Len(t, dispatcher.published, 1)
	require.Equal(t, events.EventClientCreated, dispatcher.published[0].Type)
	require.Equal(t, "jane@clients.test", dispatcher.published[0].RecipientEmail)
}

func TestCreateClientDuplicateEmail(t *testing.T) {
	existing := activeClient("c1", "agent-1")
	existing.Email = "jane@clients.test"
	svc := newClientServiceForTest(newClientRepoStub(existing), nil)

	_, err := svc.CreateClient(context.Background(), "agent-2", ClientCreateInput{
		Email:       "jane@clients.test",
		PhoneNumber: "+2348000000000",
	})
	requireDomainCode(t, err, "CONFLICT")
}

func TestCreateClientDuplicatePhone(t *testing.T) {
	existing := activeClient("c1", "agent-1")
	existing.PhoneNumber = "+2348012345678"
	svc := newClientServiceForTest(newClientRepoStub(existing), nil)

	_, err := svc.CreateClient(context.Background(), "agent-2", ClientCreateInput{
		Email:       "other@clients.test",
		PhoneNumber: "+2348012345678",
	})
	requireDomainCode(t, err, "CONFLICT")
}

func TestCreateClientLosingRaceSurfacesConflict(t *testing.T) {
	// Two concurrent creates can both pass the pre-insert check; the
	// second writer's unique index violation must still read as Conflict.
	repo := newClientRepoStub()
	repo.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "clients_email_key"}
	svc := newClientServiceForTest(repo, nil)

	_, err := svc.CreateClient(context.Background(), "agent-1", ClientCreateInput{
		Email:       "raced@clients.test",
		PhoneNumber: "+2348000000001",
	})
	requireDomainCode(t, err, "CONFLICT")
}

func TestGetClientNotFound(t *testing.T) {
	svc := newClientServiceForTest(newClientRepoStub(), nil)

	_, err := svc.GetClient(context.Background(), "agent-1", "missing")
	requireDomainCode(t, err, "NOT_FOUND")
}

func TestGetClientForbiddenForOtherAgent(t *testing.T) {
	svc := newClientServiceForTest(newClientRepoStub(activeClient("c1", "agent-1")), nil)

	_, err := svc.GetClient(context.Background(), "agent-2", "c1")
	requireDomainCode(t, err, "FORBIDDEN")
}

func TestGetClientDeletedStillReadableByOwner(t *testing.T) {
	deleted := activeClient("c1", "agent-1")
	deleted.Status = domain.ClientStatusDeleted
	svc := newClientServiceForTest(newClientRepoStub(deleted), nil)

	got, err := svc.GetClient(context.Background(), "agent-1", "c1")
	require.NoError(t, err)
	require.Equal(t, domain.ClientStatusDeleted, got.Status)
}

func TestUpdateClientPatch(t *testing.T) {
	repo := newClientRepoStub(activeClient("c1", "agent-1"))
	svc := newClientServiceForTest(repo, nil)

	city := "Lagos"
	got, err := svc.UpdateClient(context.Background(), "agent-1", "c1", ClientPatch{City: &city})
	require.NoError(t, err)
	require.Equal(t, "Lagos", got.City)
	require.Equal(t, "Jane", got.FirstName, "omitted fields keep current values")
	require.Len(t, repo.updated, 1)
}

func TestUpdateClientIdenticalPatchIsNoOp(t *testing.T) {
	client := activeClient("c1", "agent-1")
	repo := newClientRepoStub(client)
	svc := newClientServiceForTest(repo, nil)

	sameName := client.FirstName
	sameCity := client.City
	got, err := svc.UpdateClient(context.Background(), "agent-1", "c1", ClientPatch{
		FirstName: &sameName,
		City:      &sameCity,
	})
	require.NoError(t, err)
	require.Equal(t, client.FirstName, got.FirstName)
	require.Empty(t, repo.updated, "a field-identical patch must not write")
}

func TestUpdateClientSameEmailSkipsUniquenessCheck(t *testing.T) {
	client := activeClient("c1", "agent-1")
	client.Email = "jane@clients.test"
	repo := newClientRepoStub(client)
	svc := newClientServiceForTest(repo, nil)

	// The record itself holds this email; re-submitting it must not conflict.
	same := "Jane@Clients.Test"
	_, err := svc.UpdateClient(context.Background(), "agent-1", "c1", ClientPatch{Email: &same})
	require.NoError(t, err)
}

func TestUpdateClientChangedEmailConflicts(t *testing.T) {
	a := activeClient("c1", "agent-1")
	a.Email = "a@clients.test"
	b := activeClient("c2", "agent-1")
	b.Email = "b@clients.test"
	svc := newClientServiceForTest(newClientRepoStub(a, b), nil)

	taken := "b@clients.test"
	_, err := svc.UpdateClient(context.Background(), "agent-1", "c1", ClientPatch{Email: &taken})
	requireDomainCode(t, err, "CONFLICT")
}

func TestUpdateClientGoneAfterDelete(t *testing.T) {
	deleted := activeClient("c1", "agent-1")
	deleted.Status = domain.ClientStatusDeleted
	svc := newClientServiceForTest(newClientRepoStub(deleted), nil)

	name := "Janet"
	_, err := svc.UpdateClient(context.Background(), "agent-1", "c1", ClientPatch{FirstName: &name})
	requireDomainCode(t, err, "GONE")
}

func TestUpdateClientForbiddenBeforeGone(t *testing.T) {
	deleted := activeClient("c1", "agent-1")
	deleted.Status = domain.ClientStatusDeleted
	svc := newClientServiceForTest(newClientRepoStub(deleted), nil)

	name := "Janet"
	_, err := svc.UpdateClient(context.Background(), "agent-2", "c1", ClientPatch{FirstName: &name})
	requireDomainCode(t, err, "FORBIDDEN")
}

func TestVerifyClient(t *testing.T) {
	repo := newClientRepoStub(activeClient("c1", "agent-1"))
	dispatcher := &dispatcherStub{}
	svc := newClientServiceForTest(repo, dispatcher)

	got, err := svc.VerifyClient(context.Background(), "agent-1", "c1")
	require.NoError(t, err)
	require.Equal(t, domain.VerificationStatusVerified, got.VerificationStatus)
	require.Equal(t, events.EventClientVerified, dispatcher.published[0].Type)
}

func TestDeleteClientIsTerminal(t *testing.T) {
	repo := newClientRepoStub(activeClient("c1", "agent-1"))
	svc := newClientServiceForTest(repo, nil)

	require.NoError(t, svc.DeleteClient(context.Background(), "agent-1", "c1"))
	require.Equal(t, domain.ClientStatusDeleted, repo.records["c1"].Status)

	err := svc.DeleteClient(context.Background(), "agent-1", "c1")
	requireDomainCode(t, err, "GONE")
}

func TestListClientsScopedToCaller(t *testing.T) {
	repo := newClientRepoStub(activeClient("c1", "agent-1"), activeClient("c2", "agent-2"))
	svc := newClientServiceForTest(repo, nil)

	clients, err := svc.ListClients(context.Background(), "agent-1")
	require.NoError(t, err)
	require.Len(t, clients, 1)
	require.Equal(t, "c1", clients[0].ID)
}
