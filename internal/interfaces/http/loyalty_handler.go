package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/application/loyalty"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

// LoyaltyHandler maneja saldos, historial y operaciones administrativas de puntos (protegido).
type LoyaltyHandler struct {
	uc          *loyalty.UseCase
	loyaltyRepo repository.LoyaltyRepository
}

// NewLoyaltyHandler construye el handler. El repositorio es de solo lectura (pool).
func NewLoyaltyHandler(uc *loyalty.UseCase, loyaltyRepo repository.LoyaltyRepository) *LoyaltyHandler {
	return &LoyaltyHandler{uc: uc, loyaltyRepo: loyaltyRepo}
}

// GetBalance devuelve el saldo de puntos de un cliente.
func (h *LoyaltyHandler) GetBalance(c *fiber.Ctx) error {
	balance, err := h.loyaltyRepo.GetBalance(c.Params("customerId"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.BalanceResponse{
		CustomerID:      balance.CustomerID,
		TotalPoints:     balance.TotalPoints,
		PointsUsed:      balance.PointsUsed,
		PointsAvailable: balance.Available(),
	})
}

// ListTransactions devuelve el historial de puntos de un cliente.
func (h *LoyaltyHandler) ListTransactions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	txs, err := h.loyaltyRepo.ListTransactions(c.Params("customerId"), limit, offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(txs), "transactions": txs})
}

// Adjust aplica un ajuste administrativo de puntos (delta firmado, solo admin).
func (h *LoyaltyHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustPointsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Delta == 0 || in.Reason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "delta distinto de cero y reason son requeridos"})
	}
	if err := h.uc.Adjust(c.Context(), c.Params("customerId"), in.Delta, in.Reason); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "ajuste aplicado"})
}

// Reset deja el saldo del cliente en cero (solo admin).
func (h *LoyaltyHandler) Reset(c *fiber.Ctx) error {
	var in dto.ResetPointsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Reason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "reason es requerido"})
	}
	if err := h.uc.Reset(c.Context(), c.Params("customerId"), in.Reason); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "saldo reiniciado"})
}
