package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente del programa de fidelización.
// TierID puede estar vacío (cliente sin nivel asignado todavía).
type Customer struct {
	ID            string
	Name          string
	Phone         string
	Email         string
	TierID        string
	TotalPurchase decimal.Decimal // acumulado de compras completadas
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
