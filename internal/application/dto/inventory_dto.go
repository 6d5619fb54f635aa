package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest ajuste manual con cantidad firmada (positiva suma, negativa resta).
type AdjustStockRequest struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

// ReceiveLineRequest línea de recepción de compra.
type ReceiveLineRequest struct {
	VariantID     string          `json:"variant_id"`
	Quantity      int             `json:"quantity"`
	ImportPrice   decimal.Decimal `json:"import_price"`
	SerialNumbers []string        `json:"serial_numbers,omitempty"`
}

// ReceiveRequest recepción de una orden de compra.
type ReceiveRequest struct {
	Reference string               `json:"reference"`
	Lines     []ReceiveLineRequest `json:"lines"`
}

// StockResponse contadores de inventario de una variante.
type StockResponse struct {
	VariantID         string    `json:"variant_id"`
	QuantityPhysical  int       `json:"quantity_physical"`
	QuantityReserved  int       `json:"quantity_reserved"`
	QuantityAvailable int       `json:"quantity_available"`
	MinThreshold      int       `json:"min_threshold"`
	UpdatedAt         time.Time `json:"updated_at"`
}
