package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bank-crm-service/internal/api/dto"
	"github.com/spec-kit/bank-crm-service/internal/auth"
	"github.com/spec-kit/bank-crm-service/internal/domain"
	"github.com/spec-kit/bank-crm-service/internal/repository"
	"github.com/spec-kit/bank-crm-service/internal/service"
	apperrors "github.com/spec-kit/bank-crm-service/pkg/util"
)

// StaffHandler exposes staff identity management endpoints. Routes are
// restricted to Admin/SuperAdmin; the finer role-hierarchy decisions live in
// the provisioning service.
type StaffHandler struct {
	service *service.StaffService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{service: staffService}
}

func staffActor(c *fiber.Ctx) (*domain.Staff, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Staff == nil {
		return nil, apperrors.NewUnauthorized("staff principal required")
	}
	return principal.Staff, nil
}

// CreateStaff POST /api/users.
func (h *StaffHandler) CreateStaff(c *fiber.Ctx) error {
	actor, err := staffActor(c)
	if err != nil {
		return err
	}

	var req dto.CreateStaffRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	role, ok := domain.ParseStaffRole(req.Role)
	if !ok {
		return apperrors.NewValidationError("unknown role", map[string]any{"role": req.Role})
	}

	input := service.StaffCreateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      role,
	}
	staff, err := h.service.CreateStaff(c.UserContext(), actor, input, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewStaffResponse(staff)})
}

// ListStaff GET /api/users. An email query narrows the listing to the single
// active identity holding that address.
func (h *StaffHandler) ListStaff(c *fiber.Ctx) error {
	actor, err := staffActor(c)
	if err != nil {
		return err
	}

	if email := c.Query("email"); email != "" {
		staff, err := h.service.GetStaffByEmail(c.UserContext(), actor, email)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": []dto.StaffResponse{dto.NewStaffResponse(staff)}})
	}

	filter := repository.StaffFilter{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	if roleParam := c.Query("role"); roleParam != "" {
		role, ok := domain.ParseStaffRole(roleParam)
		if !ok {
			return apperrors.NewValidationError("unknown role", map[string]any{"role": roleParam})
		}
		filter.Role = &role
	}

	staff, err := h.service.ListStaff(c.UserContext(), actor, filter)
	if err != nil {
		return err
	}
	items := make([]dto.StaffResponse, 0, len(staff))
	for i := range staff {
		items = append(items, dto.NewStaffResponse(&staff[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateStaff PATCH /api/users/:id.
func (h *StaffHandler) UpdateStaff(c *fiber.Ctx) error {
	actor, err := staffActor(c)
	if err != nil {
		return err
	}

	var req dto.UpdateStaffRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	patch := service.StaffPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	if req.Role != nil {
		role, ok := domain.ParseStaffRole(*req.Role)
		if !ok {
			return apperrors.NewValidationError("unknown role", map[string]any{"role": *req.Role})
		}
		patch.Role = &role
	}

	staff, err := h.service.UpdateStaff(c.UserContext(), actor, c.Params("id"), patch, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStaffResponse(staff)})
}

// DeactivateStaff DELETE /api/users/:id.
func (h *StaffHandler) DeactivateStaff(c *fiber.Ctx) error {
	actor, err := staffActor(c)
	if err != nil {
		return err
	}

	if err := h.service.DeactivateStaff(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"result": "ok"}})
}
