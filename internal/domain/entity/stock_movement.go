package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario. La cantidad del movimiento siempre lleva signo
// explícito en el registro; el tipo nunca determina el signo (un ADJUSTMENT puede
// ser positivo o negativo según lo declare quien lo registra).
const (
	MovementTypeIN         = "IN"         // recepción de compra
	MovementTypeOUT        = "OUT"        // salida confirmada de una orden
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste manual aprobado
)

// StockMovement representa un movimiento físico de inventario (registro inmutable).
type StockMovement struct {
	ID            string
	TransactionID string // referencia: ID de orden, recepción o nota de ajuste
	VariantID     string
	Type          string
	Quantity      int             // con signo: positivo entra, negativo sale
	UnitCost      decimal.Decimal // costo promedio al momento del movimiento
	TotalCost     decimal.Decimal
	Date          time.Time
	CreatedAt     time.Time
	CreatedBy     string // UserID
}
