package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bank-crm-service/internal/api/dto"
	"github.com/spec-kit/bank-crm-service/internal/auth"
	"github.com/spec-kit/bank-crm-service/internal/domain"
	"github.com/spec-kit/bank-crm-service/internal/service"
	apperrors "github.com/spec-kit/bank-crm-service/pkg/util"
)

// ClientsHandler exposes the agent-facing client portfolio endpoints. Every
// route resolves the caller from the token and only touches records the caller
// manages.
type ClientsHandler struct {
	service *service.ClientService
}

// NewClientsHandler constructs handler.
func NewClientsHandler(clientService *service.ClientService) *ClientsHandler {
	return &ClientsHandler{service: clientService}
}

func callerID(c *fiber.Ctx) (string, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Staff == nil {
		return "", apperrors.NewUnauthorized("staff principal required")
	}
	return principal.Staff.ID, nil
}

func parseBirthDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(dto.DateOnly, raw)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("invalid date_of_birth", map[string]any{"date_of_birth": raw})
	}
	return parsed, nil
}

// ListClients GET /api/clients.
func (h *ClientsHandler) ListClients(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	clients, err := h.service.ListClients(c.UserContext(), caller)
	if err != nil {
		return err
	}
	items := make([]dto.ClientResponse, 0, len(clients))
	for i := range clients {
		items = append(items, dto.NewClientResponse(&clients[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetClient GET /api/clients/:id.
func (h *ClientsHandler) GetClient(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	client, err := h.service.GetClient(c.UserContext(), caller, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewClientResponse(client)})
}

// CreateClient POST /api/clients.
func (h *ClientsHandler) CreateClient(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req dto.CreateClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	birthDate, err := parseBirthDate(req.DateOfBirth)
	if err != nil {
		return err
	}

	input := service.ClientCreateInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: birthDate,
		Gender:      domain.Gender(req.Gender),
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		PostalCode:  req.PostalCode,
	}
	client, err := h.service.CreateClient(c.UserContext(), caller, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewClientResponse(client)})
}

// UpdateClient PATCH /api/clients/:id.
func (h *ClientsHandler) UpdateClient(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	patch := service.ClientPatch{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		PostalCode:  req.PostalCode,
	}
	if req.DateOfBirth != nil {
		birthDate, err := parseBirthDate(*req.DateOfBirth)
		if err != nil {
			return err
		}
		patch.DateOfBirth = &birthDate
	}
	if req.Gender != nil {
		gender := domain.Gender(*req.Gender)
		patch.Gender = &gender
	}

	client, err := h.service.UpdateClient(c.UserContext(), caller, c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewClientResponse(client)})
}

// VerifyClient POST /api/clients/:id/verify.
func (h *ClientsHandler) VerifyClient(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	client, err := h.service.VerifyClient(c.UserContext(), caller, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewClientResponse(client)})
}

// DeleteClient DELETE /api/clients/:id.
func (h *ClientsHandler) DeleteClient(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteClient(c.UserContext(), caller, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"result": "ok"}})
}
