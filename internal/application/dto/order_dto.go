package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea solicitada; quantity > 1 se expande en N ítems seriales.
type OrderItemRequest struct {
	VariantID    string `json:"variant_id"`
	Quantity     int    `json:"quantity"`
	SerialNumber string `json:"serial_number,omitempty"`
}

// CreateOrderRequest solicitud de creación de orden.
type CreateOrderRequest struct {
	CustomerID   string             `json:"customer_id,omitempty"`
	RedeemPoints int64              `json:"redeem_points,omitempty"`
	ManualCodes  []string           `json:"manual_codes,omitempty"`
	Items        []OrderItemRequest `json:"items"`
}

// QuoteRequest cotización de carrito sin crear orden (repetible, sin efectos).
type QuoteRequest struct {
	CustomerID  string             `json:"customer_id,omitempty"`
	ManualCodes []string           `json:"manual_codes,omitempty"`
	Items       []OrderItemRequest `json:"items"`
}

// AppliedPromotionResponse promoción aplicada y su monto.
type AppliedPromotionResponse struct {
	PromotionID string          `json:"promotion_id"`
	Code        string          `json:"code,omitempty"`
	Scope       string          `json:"scope"`
	Amount      decimal.Decimal `json:"amount"`
}

// QuoteResponse desglose de una cotización.
type QuoteResponse struct {
	Subtotal        decimal.Decimal            `json:"subtotal"`
	TierDiscount    decimal.Decimal            `json:"tier_discount"`
	ProductDiscount decimal.Decimal            `json:"product_discount"`
	OrderDiscount   decimal.Decimal            `json:"order_discount"`
	TotalDiscount   decimal.Decimal            `json:"total_discount"`
	FinalAmount     decimal.Decimal            `json:"final_amount"`
	Applied         []AppliedPromotionResponse `json:"applied"`
}

// OrderItemResponse línea de orden persistida.
type OrderItemResponse struct {
	ID             string          `json:"id"`
	VariantID      string          `json:"variant_id"`
	SerialID       string          `json:"serial_id"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	LineDiscount   decimal.Decimal `json:"line_discount"`
	WarrantyExpiry *time.Time      `json:"warranty_expiry,omitempty"`
}

// OrderResponse orden con su consolidado financiero.
type OrderResponse struct {
	ID              string                     `json:"id"`
	Code            string                     `json:"code"`
	CustomerID      string                     `json:"customer_id,omitempty"`
	Status          string                     `json:"status"`
	Subtotal        decimal.Decimal            `json:"subtotal"`
	TierDiscount    decimal.Decimal            `json:"tier_discount"`
	ProductDiscount decimal.Decimal            `json:"product_discount"`
	OrderDiscount   decimal.Decimal            `json:"order_discount"`
	PointsUsed      int64                      `json:"points_used"`
	PointsDiscount  decimal.Decimal            `json:"points_discount"`
	TotalDiscount   decimal.Decimal            `json:"total_discount"`
	FinalAmount     decimal.Decimal            `json:"final_amount"`
	Applied         []AppliedPromotionResponse `json:"applied,omitempty"`
	Items           []OrderItemResponse        `json:"items,omitempty"`
	CreatedAt       time.Time                  `json:"created_at"`
}
