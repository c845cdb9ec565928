package service

import (
	"context"
	"strings"
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

// ClientService manages client profiles on behalf of their owning agent.
// Every operation gates existence before ownership: a caller learns 404 or
// 403, never both reasons.
type ClientService struct {
	clients    repository.ClientRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewClientService constructs the service.
func NewClientService(clients repository.ClientRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ClientService {
	return &ClientService{clients: clients, dispatcher: dispatcher, logger: logger}
}

// ClientCreateInput describes a new client profile.
type ClientCreateInput struct {
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Gender      domain.Gender
	Email       string
	PhoneNumber string
	Address     string
	City        string
	State       string
	Country     string
	PostalCode  string
}

// ClientPatch carries partial updates; nil fields keep current values.
type ClientPatch struct {
	FirstName   *string
	LastName    *string
	DateOfBirth *time.Time
	Gender      *domain.Gender
	Email       *string
	PhoneNumber *string
	Address     *string
	City        *string
	State       *string
	Country     *string
	PostalCode  *string
}

// ListClients returns the caller's portfolio.
func (s *ClientService) ListClients(ctx context.Context, callerID string) ([]domain.Client, error) {
	return s.clients.ListByAgent(ctx, callerID)
}

// GetClient fetches one client. Deleted profiles remain readable by their
// owner for audit.
func (s *ClientService) GetClient(ctx context.Context, callerID, clientID string) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("client", map[string]any{"id": clientID})
		}
		return nil, apperrors.MapError(err)
	}
	if err := authz.Authorize(callerID, client); err != nil {
		return nil, err
	}
	return client, nil
}

// CreateClient creates a profile owned by the caller. Ownership comes from
// the authenticated caller only; nothing in the input can assign it. Email
// and phone number are unique across the whole directory.
func (s *ClientService) CreateClient(ctx context.Context, callerID string, input ClientCreateInput) (*domain.Client, error) {
	if err := s.checkEmailUnique(ctx, input.Email); err != nil {
		return nil, err
	}
	if err := s.checkPhoneUnique(ctx, input.PhoneNumber); err != nil {
		return nil, err
	}

	client := &domain.Client{
		ID:                 uuid.NewString(),
		AgentID:            callerID,
		FirstName:          input.FirstName,
		LastName:           input.LastName,
		DateOfBirth:        input.DateOfBirth,
		Gender:             input.Gender,
		Email:              input.Email,
		PhoneNumber:        input.PhoneNumber,
		Address:            input.Address,
		City:               input.City,
		State:              input.State,
		Country:            input.Country,
		PostalCode:         input.PostalCode,
		VerificationStatus: domain.VerificationStatusPending,
		Status:             domain.ClientStatusActive,
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventClientCreated, client, callerID)
	return client, nil
}

// UpdateClient applies a partial update. A Deleted profile yields Gone; the
// uniqueness re-check runs only when the unique field actually changes, and a
// field-identical patch succeeds without a write.
func (s *ClientService) UpdateClient(ctx context.Context, callerID, clientID string, patch ClientPatch) (*domain.Client, error) {
	client, err := s.GetClient(ctx, callerID, clientID)
	if err != nil {
		return nil, err
	}
	if client.Deleted() {
		return nil, apperrors.NewGone("client has been deleted and cannot be updated")
	}

	if patch.Email != nil && !strings.EqualFold(*patch.Email, client.Email) {
		if err := s.checkEmailUnique(ctx, *patch.Email); err != nil {
			return nil, err
		}
	}
	if patch.PhoneNumber != nil && *patch.PhoneNumber != client.PhoneNumber {
		if err := s.checkPhoneUnique(ctx, *patch.PhoneNumber); err != nil {
			return nil, err
		}
	}

	before := *client
	applyClientPatch(client, patch)
	if *client == before {
		return client, nil
	}
	if err := s.clients.Update(ctx, client); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventClientUpdated, client, callerID)
	return client, nil
}

// VerifyClient marks the profile as KYC-verified.
func (s *ClientService) VerifyClient(ctx context.Context, callerID, clientID string) (*domain.Client, error) {
	client, err := s.GetClient(ctx, callerID, clientID)
	if err != nil {
		return nil, err
	}
	if client.Deleted() {
		return nil, apperrors.NewGone("client has been deleted and cannot be verified")
	}

	client.VerificationStatus = domain.VerificationStatusVerified
	if err := s.clients.Update(ctx, client); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.logger.Info("client verified",
		zap.String("client_id", client.ID),
		zap.String("agent_id", client.AgentID))
	s.publish(ctx, events.EventClientVerified, client, callerID)
	return client, nil
}

// DeleteClient soft-deletes the profile. The row and every reference survive;
// only the status flips, and the transition is terminal.
func (s *ClientService) DeleteClient(ctx context.Context, callerID, clientID string) error {
	client, err := s.GetClient(ctx, callerID, clientID)
	if err != nil {
		return err
	}
	if client.Deleted() {
		return apperrors.NewGone("client has already been deleted")
	}

	client.Status = domain.ClientStatusDeleted
	if err := s.clients.Update(ctx, client); err != nil {
		return apperrors.MapError(err)
	}

	s.logger.Info("client deleted",
		zap.String("client_id", client.ID),
		zap.String("agent_id", client.AgentID))
	s.publish(ctx, events.EventClientDeleted, client, callerID)
	return nil
}

func (s *ClientService) checkEmailUnique(ctx context.Context, email string) error {
	if existing, err := s.clients.GetByEmail(ctx, email); err == nil && existing != nil {
		return apperrors.NewConflict("email already exists", map[string]any{"email": email})
	} else if err != nil && err != pgx.ErrNoRows {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *ClientService) checkPhoneUnique(ctx context.Context, phone string) error {
	if existing, err := s.clients.GetByPhoneNumber(ctx, phone); err == nil && existing != nil {
		return apperrors.NewConflict("phone number already exists", map[string]any{"phone_number": phone})
	} else if err != nil && err != pgx.ErrNoRows {
		return apperrors.MapError(err)
	}
	return nil
}

func applyClientPatch(client *domain.Client, patch ClientPatch) {
	if patch.FirstName != nil {
		client.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		client.LastName = *patch.LastName
	}
	if patch.DateOfBirth != nil {
		client.DateOfBirth = *patch.DateOfBirth
	}
	if patch.Gender != nil {
		client.Gender = *patch.Gender
	}
	if patch.Email != nil {
		client.Email = *patch.Email
	}
	if patch.PhoneNumber != nil {
		client.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Address != nil {
		client.Address = *patch.Address
	}
	if patch.City != nil {
		client.City = *patch.City
	}
	if patch.State != nil {
		client.State = *patch.State
	}
	if patch.Country != nil {
		client.Country = *patch.Country
	}
	if patch.PostalCode != nil {
		client.PostalCode = *patch.PostalCode
	}
}

func (s *ClientService) publish(ctx context.Context, eventType events.EventType, client *domain.Client, callerID string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:             uuid.NewString(),
		Type:           eventType,
		ResourceID:     client.ID,
		RecipientEmail: client.Email,
		Actor:          events.Actor{StaffID: callerID, Role: domain.StaffRoleAgent},
		Timestamp:      time.Now(),
		Payload:        events.ClientEventPayload{AgentID: client.AgentID},
	})
}
