package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/application/promotion"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
)

// PromotionHandler maneja la administración de promociones (protegido, solo admin).
type PromotionHandler struct {
	uc *promotion.UseCase
}

// NewPromotionHandler construye el handler de promociones.
func NewPromotionHandler(uc *promotion.UseCase) *PromotionHandler {
	return &PromotionHandler{uc: uc}
}

// Create da de alta una promoción.
func (h *PromotionHandler) Create(c *fiber.Ctx) error {
	var in dto.PromotionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	created, err := h.uc.Create(c.Context(), &entity.Promotion{
		Code:              in.Code,
		Name:              in.Name,
		Scope:             in.Scope,
		Type:              in.Type,
		Value:             in.Value,
		MaxDiscountAmount: in.MaxDiscountAmount,
		MinOrderValue:     in.MinOrderValue,
		StartDate:         in.StartDate,
		EndDate:           in.EndDate,
		Status:            in.Status,
		UsageLimit:        in.UsageLimit,
		UsagePerCustomer:  in.UsagePerCustomer,
		RequiresCode:      in.RequiresCode,
		Priority:          in.Priority,
		ConflictIDs:       in.ConflictIDs,
		EligibleTierIDs:   in.EligibleTierIDs,
		TargetProductIDs:  in.TargetProductIDs,
		TargetCategoryIDs: in.TargetCategoryIDs,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPromotionResponse(created))
}

// GetByID devuelve una promoción.
func (h *PromotionHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toPromotionResponse(p))
}

// List devuelve promociones por estado (default ACTIVE), paginadas.
func (h *PromotionHandler) List(c *fiber.Ctx) error {
	status := c.Query("status", entity.PromotionStatusActive)
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	promos, err := h.uc.ListByStatus(c.Context(), status, limit, offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.PromotionResponse, 0, len(promos))
	for _, p := range promos {
		out = append(out, toPromotionResponse(p))
	}
	return c.JSON(fiber.Map{"total": len(out), "promotions": out})
}

// Deactivate apaga una promoción manualmente.
func (h *PromotionHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Context(), c.Params("id")); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "promoción desactivada"})
}

// RefreshStatuses barre ventanas: activa SCHEDULED vencidas de inicio y expira ACTIVE vencidas.
func (h *PromotionHandler) RefreshStatuses(c *fiber.Ctx) error {
	if err := h.uc.RefreshStatuses(c.Context(), time.Now()); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "estados actualizados"})
}

func toPromotionResponse(p *entity.Promotion) dto.PromotionResponse {
	return dto.PromotionResponse{
		ID:                p.ID,
		Code:              p.Code,
		Name:              p.Name,
		Scope:             p.Scope,
		Type:              p.Type,
		Value:             p.Value,
		MaxDiscountAmount: p.MaxDiscountAmount,
		MinOrderValue:     p.MinOrderValue,
		StartDate:         p.StartDate,
		EndDate:           p.EndDate,
		Status:            p.Status,
		UsageLimit:        p.UsageLimit,
		UsageCount:        p.UsageCount,
		UsagePerCustomer:  p.UsagePerCustomer,
		RequiresCode:      p.RequiresCode,
		Priority:          p.Priority,
	}
}
