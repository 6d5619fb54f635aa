package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/application/order"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/pricing"
)

// OrderHandler maneja las peticiones HTTP del ciclo de vida de órdenes (protegido).
type OrderHandler struct {
	uc *order.UseCase
}

// NewOrderHandler construye el handler de órdenes.
func NewOrderHandler(uc *order.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Quote cotiza un carrito sin crear orden ni consumir nada.
func (h *OrderHandler) Quote(c *fiber.Ctx) error {
	var in dto.QuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	breakdown, err := h.uc.Quote(c.Context(), order.QuoteInput{
		CustomerID:  in.CustomerID,
		ManualCodes: in.ManualCodes,
		Items:       toItemInputs(in.Items),
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toQuoteResponse(breakdown))
}

// Create crea una orden en PENDING con reserva de stock y asignación de seriales.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	created, err := h.uc.Create(c.Context(), order.CreateOrderInput{
		CustomerID:   in.CustomerID,
		UserID:       userID,
		RedeemPoints: in.RedeemPoints,
		ManualCodes:  in.ManualCodes,
		Items:        toItemInputs(in.Items),
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(created, nil))
}

// GetByID devuelve una orden con sus líneas.
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	ord, items, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toOrderResponse(ord, items))
}

// Confirm confirma la orden: descuenta stock físico, acumula puntos y consume cupos.
func (h *OrderHandler) Confirm(c *fiber.Ctx) error {
	if err := h.uc.Confirm(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "orden confirmada"})
}

// Complete completa la orden y estampa la garantía de cada ítem.
func (h *OrderHandler) Complete(c *fiber.Ctx) error {
	if err := h.uc.Complete(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "orden completada"})
}

// Cancel cancela la orden y revierte stock, seriales, puntos y cupos.
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "orden cancelada"})
}

func toItemInputs(items []dto.OrderItemRequest) []order.CreateItemInput {
	out := make([]order.CreateItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, order.CreateItemInput{
			VariantID:    it.VariantID,
			Quantity:     it.Quantity,
			SerialNumber: it.SerialNumber,
		})
	}
	return out
}

func toQuoteResponse(b *pricing.Breakdown) dto.QuoteResponse {
	applied := make([]dto.AppliedPromotionResponse, 0, len(b.Applied))
	for _, ap := range b.Applied {
		applied = append(applied, dto.AppliedPromotionResponse{
			PromotionID: ap.PromotionID, Code: ap.Code, Scope: ap.Scope, Amount: ap.Amount,
		})
	}
	return dto.QuoteResponse{
		Subtotal:        b.Subtotal,
		TierDiscount:    b.TierDiscount,
		ProductDiscount: b.ProductDiscount,
		OrderDiscount:   b.OrderDiscount,
		TotalDiscount:   b.TotalDiscount,
		FinalAmount:     b.FinalAmount,
		Applied:         applied,
	}
}

func toOrderResponse(o *entity.Order, items []*entity.OrderItem) dto.OrderResponse {
	applied := make([]dto.AppliedPromotionResponse, 0, len(o.AppliedPromotions))
	for _, ap := range o.AppliedPromotions {
		applied = append(applied, dto.AppliedPromotionResponse{
			PromotionID: ap.PromotionID, Code: ap.Code, Scope: ap.Scope, Amount: ap.Amount,
		})
	}
	resp := dto.OrderResponse{
		ID:              o.ID,
		Code:            o.Code,
		CustomerID:      o.CustomerID,
		Status:          o.Status,
		Subtotal:        o.Subtotal,
		TierDiscount:    o.TierDiscount,
		ProductDiscount: o.ProductPromoDiscount,
		OrderDiscount:   o.OrderPromoDiscount,
		PointsUsed:      o.PointsUsed,
		PointsDiscount:  o.PointsDiscount,
		TotalDiscount:   o.TotalDiscount,
		FinalAmount:     o.FinalAmount,
		Applied:         applied,
		CreatedAt:       o.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:             it.ID,
			VariantID:      it.VariantID,
			SerialID:       it.SerialID,
			UnitPrice:      it.UnitPrice,
			LineDiscount:   it.LineDiscount,
			WarrantyExpiry: it.WarrantyExpiry,
		})
	}
	return resp
}
