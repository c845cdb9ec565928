package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/bank-crm-service/internal/auth"
	"github.com/spec-kit/bank-crm-service/internal/domain"
	"github.com/spec-kit/bank-crm-service/internal/events"
	"github.com/spec-kit/bank-crm-service/internal/identity"
	"github.com/spec-kit/bank-crm-service/internal/repository"
	apperrors "github.com/spec-kit/bank-crm-service/pkg/util"
)

// StaffService orchestrates the staff identity lifecycle across the local
// directory and the identity provider. The provider call is the commit point
// for "the identity exists"; the local write follows it. The two writes are
// not transactional: a failure after the provider-side creation surfaces as
// INCONSISTENT_STATE and needs operator reconciliation, never a silent retry.
//
// Deactivation flips only the local status; provider-side credentials are
// left untouched, matching current product behavior.
type StaffService struct {
	staff      repository.StaffRepository
	provider   identity.Gateway
	cache      *auth.StaffCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// StaffDependencies bundles collaborators for the staff service.
type StaffDependencies struct {
	StaffRepo  repository.StaffRepository
	Provider   identity.Gateway
	Cache      *auth.StaffCache
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewStaffService constructs the service.
func NewStaffService(deps StaffDependencies) *StaffService {
	return &StaffService{
		staff:      deps.StaffRepo,
		provider:   deps.Provider,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// StaffCreateInput describes a new staff identity.
type StaffCreateInput struct {
	FirstName string
	LastName  string
	Email     string
	Role      domain.StaffRole
}

// StaffPatch carries partial updates; nil fields keep current values.
type StaffPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Role      *domain.StaffRole
}

func requireActor(actor *domain.Staff) error {
	if actor == nil {
		return apperrors.NewForbidden("staff principal required")
	}
	return nil
}

// CreateStaff provisions a staff identity in the provider and the directory.
// password may be empty; a random temporary credential is generated and
// handed to the provider without ever being logged or stored.
func (s *StaffService) CreateStaff(ctx context.Context, actor *domain.Staff, input StaffCreateInput, password string) (*domain.Staff, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	// Fails closed before any side effect: the requester must strictly
	// outrank the role being created, so Agents are always rejected.
	if !auth.MayActOn(actor.Role, input.Role) {
		return nil, apperrors.NewForbidden("not allowed to create staff with this role")
	}

	if existing, err := s.staff.GetByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, apperrors.NewConflict("staff email already exists", map[string]any{"email": input.Email})
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, apperrors.MapError(err)
	}

	if password == "" {
		password = uuid.NewString()
	}

	attrs := identity.UserAttributes{
		Email:      input.Email,
		GivenName:  input.FirstName,
		FamilyName: input.LastName,
	}

	// Irrevocable external step. On failure nothing was persisted, so a
	// plain abort leaves both systems consistent.
	subjectID, err := s.provider.CreateUser(ctx, input.Email, password, attrs)
	if err != nil {
		return nil, err
	}

	if err := s.provider.AddUserToGroup(ctx, input.Email, string(input.Role)); err != nil {
		s.logger.Error("staff identity created at provider but group assignment failed",
			zap.String("subject_id", subjectID),
			zap.String("email", input.Email),
			zap.Error(err))
		return nil, apperrors.NewInconsistentState(
			"identity exists at provider without group or directory record",
			map[string]any{"subject_id": subjectID, "email": input.Email},
			err,
		)
	}

	staff := &domain.Staff{
		ID:        subjectID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Role:      input.Role,
		Status:    domain.StaffStatusActive,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		s.logger.Error("staff identity created at provider but directory write failed",
			zap.String("subject_id", subjectID),
			zap.String("email", input.Email),
			zap.Error(err))
		return nil, apperrors.NewInconsistentState(
			"identity exists at provider without directory record",
			map[string]any{"subject_id": subjectID, "email": input.Email},
			err,
		)
	}

	s.logger.Info("staff identity provisioned",
		zap.String("subject_id", staff.ID),
		zap.String("role", string(staff.Role)))
	s.publish(ctx, events.EventStaffProvisioned, staff, actor)
	return staff, nil
}

// UpdateStaff pushes attribute changes to the provider first, then persists
// locally, so a provider failure leaves the directory at its old values. A
// patch identical to current state succeeds without any write or provider
// call.
func (s *StaffService) UpdateStaff(ctx context.Context, actor *domain.Staff, staffID string, patch StaffPatch, newPassword string) (*domain.Staff, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	target, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		if err == pgx.ErrNoRows {
			// Disabled identities are invisible, indistinguishable from absent.
			return nil, apperrors.NewNotFound("staff", map[string]any{"id": staffID})
		}
		return nil, apperrors.MapError(err)
	}

	if !auth.MayActOn(actor.Role, target.Role) {
		return nil, apperrors.NewForbidden("not allowed to update this staff identity")
	}

	next := *target
	if patch.FirstName != nil {
		next.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		next.LastName = *patch.LastName
	}
	if patch.Email != nil {
		next.Email = *patch.Email
	}
	if patch.Role != nil {
		next.Role = *patch.Role
	}

	unchanged := next.FirstName == target.FirstName &&
		next.LastName == target.LastName &&
		next.Email == target.Email &&
		next.Role == target.Role
	if unchanged && newPassword == "" {
		return target, nil
	}

	// Directory uniqueness gates the provider call, same as create: the
	// local UNIQUE index must never be what stops an already-pushed
	// provider change.
	if next.Email != target.Email {
		if existing, err := s.staff.GetByEmail(ctx, next.Email); err == nil && existing != nil {
			return nil, apperrors.NewConflict("staff email already exists", map[string]any{"email": next.Email})
		} else if err != nil && err != pgx.ErrNoRows {
			return nil, apperrors.MapError(err)
		}
	}

	// The provider is keyed by email-as-username, so calls use the email
	// on record even when the patch changes it.
	if !unchanged {
		attrs := identity.UserAttributes{
			Email:      next.Email,
			GivenName:  next.FirstName,
			FamilyName: next.LastName,
		}
		if err := s.provider.UpdateUserAttributes(ctx, target.Email, attrs); err != nil {
			return nil, err
		}
	}
	if newPassword != "" {
		if err := s.provider.SetUserPassword(ctx, target.Email, newPassword); err != nil {
			return nil, err
		}
	}

	if !unchanged {
		if err := s.staff.Update(ctx, &next); err != nil {
			return nil, apperrors.MapError(err)
		}
	}

	s.cache.Invalidate(ctx, next.ID)
	s.publish(ctx, events.EventStaffUpdated, &next, actor)
	return &next, nil
}

// DeactivateStaff disables the identity in the directory. Disabled is
// terminal: every later lookup treats the identity as absent.
func (s *StaffService) DeactivateStaff(ctx context.Context, actor *domain.Staff, staffID string) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	target, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("staff", map[string]any{"id": staffID})
		}
		return apperrors.MapError(err)
	}

	if !auth.MayActOn(actor.Role, target.Role) {
		return apperrors.NewForbidden("not allowed to deactivate this staff identity")
	}

	target.Status = domain.StaffStatusDisabled
	if err := s.staff.Update(ctx, target); err != nil {
		return apperrors.MapError(err)
	}

	s.cache.Invalidate(ctx, target.ID)
	s.logger.Info("staff identity deactivated", zap.String("subject_id", target.ID))
	s.publish(ctx, events.EventStaffDeactivated, target, actor)
	return nil
}

// ListStaff lists directory records; route-level role gating applies.
func (s *StaffService) ListStaff(ctx context.Context, actor *domain.Staff, filter repository.StaffFilter) ([]domain.Staff, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	return s.staff.List(ctx, filter)
}

// GetStaffByEmail resolves an active identity by email.
func (s *StaffService) GetStaffByEmail(ctx context.Context, actor *domain.Staff, email string) (*domain.Staff, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	staff, err := s.staff.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("staff", map[string]any{"email": email})
		}
		return nil, apperrors.MapError(err)
	}
	return staff, nil
}

func (s *StaffService) publish(ctx context.Context, eventType events.EventType, subject *domain.Staff, actor *domain.Staff) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		ResourceID: subject.ID,
		Actor:      events.Actor{StaffID: actor.ID, Role: actor.Role},
		Timestamp:  time.Now(),
		Payload: events.StaffEventPayload{
			Email: subject.Email,
			Role:  subject.Role,
		},
	})
}
