package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
)

// CartLine es una línea de carrito ya resuelta contra el catálogo.
type CartLine struct {
	VariantID  string
	ProductID  string
	CategoryID string
	UnitPrice  decimal.Decimal
	Quantity   int
}

// Amount devuelve el monto base de la línea.
func (l CartLine) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CustomerContext es lo que el motor necesita saber del cliente.
// Nil representa una venta a invitado: sin nivel y sin historial de usos.
type CustomerContext struct {
	ID               string
	TierID           string
	TierDiscountRate decimal.Decimal
	// UsageByPromotion usos confirmados previos por promoción (cuota por cliente).
	UsageByPromotion map[string]int
}

// Input es la solicitud de cotización del motor de precios.
type Input struct {
	Now         time.Time
	Lines       []CartLine
	Customer    *CustomerContext
	Candidates  []*entity.Promotion
	ManualCodes []string
}

// AppliedPromotion es una promoción seleccionada por el motor, con su monto.
type AppliedPromotion struct {
	PromotionID string
	Code        string
	Scope       string
	Amount      decimal.Decimal
}

// LineDiscount es el descuento PRODUCT acumulado de una línea.
type LineDiscount struct {
	VariantID string
	Amount    decimal.Decimal
}

// Breakdown es el desglose de la cotización. FinalAmount nunca es negativo.
// TierDiscountRate es la tasa usada, para congelarla como snapshot en la orden.
type Breakdown struct {
	Subtotal         decimal.Decimal
	TierDiscountRate decimal.Decimal
	TierDiscount     decimal.Decimal
	ProductDiscount  decimal.Decimal
	OrderDiscount    decimal.Decimal
	TotalDiscount    decimal.Decimal
	FinalAmount      decimal.Decimal
	Applied          []AppliedPromotion
	LineDiscounts    []LineDiscount
}
