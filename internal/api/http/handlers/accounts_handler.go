package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bank-crm-service/internal/api/dto"
	"github.com/spec-kit/bank-crm-service/internal/domain"
	"github.com/spec-kit/bank-crm-service/internal/service"
	apperrors "github.com/spec-kit/bank-crm-service/pkg/util"
)

// AccountsHandler exposes the agent-facing account endpoints.
type AccountsHandler struct {
	service *service.AccountService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accountService *service.AccountService) *AccountsHandler {
	return &AccountsHandler{service: accountService}
}

// ListAccounts GET /api/accounts.
func (h *AccountsHandler) ListAccounts(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	accounts, err := h.service.ListAccounts(c.UserContext(), caller)
	if err != nil {
		return err
	}
	items := make([]dto.AccountResponse, 0, len(accounts))
	for i := range accounts {
		items = append(items, dto.NewAccountResponse(&accounts[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetAccount GET /api/accounts/:id.
func (h *AccountsHandler) GetAccount(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	account, err := h.service.GetAccount(c.UserContext(), caller, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(account)})
}

// CreateAccount POST /api/accounts.
func (h *AccountsHandler) CreateAccount(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req dto.CreateAccountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := service.AccountCreateInput{
		ClientID:       req.ClientID,
		ClientEmail:    req.ClientEmail,
		AccountType:    domain.AccountType(req.AccountType),
		InitialDeposit: req.InitialDeposit,
		Currency:       req.Currency,
		BranchID:       req.BranchID,
	}
	account, err := h.service.CreateAccount(c.UserContext(), caller, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAccountResponse(account)})
}

// UpdateAccount PATCH /api/accounts/:id.
func (h *AccountsHandler) UpdateAccount(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateAccountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	patch := service.AccountPatch{
		InitialDeposit: req.InitialDeposit,
		Currency:       req.Currency,
		BranchID:       req.BranchID,
	}
	if req.AccountType != nil {
		accountType := domain.AccountType(*req.AccountType)
		patch.AccountType = &accountType
	}
	if req.Status != nil {
		status, ok := domain.ParseAccountStatus(*req.Status)
		if !ok {
			return apperrors.NewValidationError("unknown status", map[string]any{"status": *req.Status})
		}
		patch.Status = &status
	}
	if req.OpeningDate != nil {
		openingDate, err := time.Parse(dto.DateOnly, *req.OpeningDate)
		if err != nil {
			return apperrors.NewValidationError("invalid opening_date", map[string]any{"opening_date": *req.OpeningDate})
		}
		patch.OpeningDate = &openingDate
	}

	account, err := h.service.UpdateAccount(c.UserContext(), caller, c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(account)})
}

// DeleteAccount DELETE /api/accounts/:id.
func (h *AccountsHandler) DeleteAccount(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteAccount(c.UserContext(), caller, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"result": "ok"}})
}
