package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden. COMPLETED y CANCELLED son terminales.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

// orderTransitions tabla de transiciones permitidas del ciclo de vida.
var orderTransitions = map[string][]string{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// CanTransition indica si el cambio de estado from -> to está permitido.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order representa una orden de venta con su consolidado financiero.
// Los campos snapshot (TierDiscountRate, PointRateSnapshot) congelan la configuración
// vigente al crear la orden: cambios posteriores de nivel o tarifas no la alteran.
type Order struct {
	ID                   string
	Code                 string
	CustomerID           string // vacío en venta a invitado
	Status               string
	Subtotal             decimal.Decimal
	TierDiscountRate     decimal.Decimal // snapshot de la tasa del nivel al crear
	TierDiscount         decimal.Decimal
	ProductPromoDiscount decimal.Decimal
	OrderPromoDiscount   decimal.Decimal
	PointsUsed           int64
	PointRateSnapshot    decimal.Decimal // valor en moneda por punto al crear
	PointsDiscount       decimal.Decimal
	TotalDiscount        decimal.Decimal
	FinalAmount          decimal.Decimal
	AppliedPromotions    []OrderPromotion
	CreatedBy            string
	ConfirmedAt          *time.Time
	CompletedAt          *time.Time
	CancelledAt          *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// OrderPromotion es el snapshot de una promoción aplicada a la orden, con el monto
// que descontó. Congela la selección del motor de precios al momento de crear.
type OrderPromotion struct {
	PromotionID string          `json:"promotion_id"`
	Code        string          `json:"code"`
	Scope       string          `json:"scope"`
	Amount      decimal.Decimal `json:"amount"`
}

// IsTerminal indica si la orden está en un estado terminal.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled
}

// OrderItem representa una línea de orden atada a exactamente un serial.
// La cantidad es siempre 1: las solicitudes multi-cantidad se expanden en N ítems.
type OrderItem struct {
	ID             string
	OrderID        string
	VariantID      string
	SerialID       string
	UnitPrice      decimal.Decimal
	LineDiscount   decimal.Decimal // suma de promociones PRODUCT aplicadas a la línea
	WarrantyExpiry *time.Time      // se estampa al completar la orden
	CreatedAt      time.Time
}
