package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bank-crm-service/internal/api/dto"
	"github.com/spec-kit/bank-crm-service/internal/service"
)

// TransactionsHandler exposes the read-only ledger nested under accounts.
// Access follows the parent account's ownership.
type TransactionsHandler struct {
	service *service.TransactionService
}

// NewTransactionsHandler constructs handler.
func NewTransactionsHandler(transactionService *service.TransactionService) *TransactionsHandler {
	return &TransactionsHandler{service: transactionService}
}

// ListTransactions GET /api/accounts/:accountId/transactions.
func (h *TransactionsHandler) ListTransactions(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	transactions, err := h.service.ListTransactions(c.UserContext(), caller, c.Params("accountId"))
	if err != nil {
		return err
	}
	items := make([]dto.TransactionResponse, 0, len(transactions))
	for i := range transactions {
		items = append(items, dto.NewTransactionResponse(&transactions[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTransaction GET /api/accounts/:accountId/transactions/:id.
func (h *TransactionsHandler) GetTransaction(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	tx, err := h.service.GetTransaction(c.UserContext(), caller, c.Params("accountId"), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTransactionResponse(tx)})
}
