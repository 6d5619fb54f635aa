package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/application/inventory"
	"github.com/jhoicas/retail-ops-api/internal/application/receiving"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

// InventoryHandler maneja stock, ajustes y recepciones de compra (protegido).
type InventoryHandler struct {
	ledgerUC    *inventory.LedgerUseCase
	receivingUC *receiving.UseCase
	invRepo     repository.InventoryRepository
	movRepo     repository.StockMovementRepository
	serialRepo  repository.SerialRepository
}

// NewInventoryHandler construye el handler. Los repositorios son de solo lectura (pool).
func NewInventoryHandler(
	ledgerUC *inventory.LedgerUseCase,
	receivingUC *receiving.UseCase,
	invRepo repository.InventoryRepository,
	movRepo repository.StockMovementRepository,
	serialRepo repository.SerialRepository,
) *InventoryHandler {
	return &InventoryHandler{
		ledgerUC:    ledgerUC,
		receivingUC: receivingUC,
		invRepo:     invRepo,
		movRepo:     movRepo,
		serialRepo:  serialRepo,
	}
}

// GetStock devuelve los contadores de inventario de una variante.
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	rec, err := h.invRepo.Get(c.Params("variantId"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.StockResponse{
		VariantID:         rec.VariantID,
		QuantityPhysical:  rec.QuantityPhysical,
		QuantityReserved:  rec.QuantityReserved,
		QuantityAvailable: rec.Available(),
		MinThreshold:      rec.MinThreshold,
		UpdatedAt:         rec.UpdatedAt,
	})
}

// ListMovements devuelve el historial de movimientos de una variante.
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	movements, err := h.movRepo.ListByVariant(c.Params("variantId"), limit, offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(movements), "movements": movements})
}

// Adjust registra un ajuste manual con cantidad firmada.
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.ledgerUC.AdjustStock(c.Context(), inventory.AdjustInput{
		VariantID: in.VariantID,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		UserID:    GetUserID(c),
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "ajuste registrado"})
}

// Receive aplica una recepción de compra (costo promedio, stock y seriales).
func (h *InventoryHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]receiving.ReceiveLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, receiving.ReceiveLine{
			VariantID:     l.VariantID,
			Quantity:      l.Quantity,
			ImportPrice:   l.ImportPrice,
			SerialNumbers: l.SerialNumbers,
		})
	}
	err := h.receivingUC.Receive(c.Context(), receiving.ReceiveInput{
		Reference: in.Reference,
		UserID:    GetUserID(c),
		Lines:     lines,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "recepción aplicada"})
}
