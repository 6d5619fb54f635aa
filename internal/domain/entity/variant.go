package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Variant representa un SKU vendible de un producto.
// PurchasePriceAvg es costo promedio ponderado; solo lo muta la recepción de compras.
type Variant struct {
	ID               string
	ProductID        string
	SKU              string // código único
	Name             string
	SellingPrice     decimal.Decimal
	PurchasePriceAvg decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
