package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
)

// discountFunc calcula el monto de descuento de una promoción sobre un monto base.
type discountFunc func(p *entity.Promotion, base decimal.Decimal) decimal.Decimal

// Una función por tipo de descuento. Un tipo nuevo exige registrar su función aquí:
// un tipo sin registrar hace fallar la cotización en vez de caer en una rama por defecto.
var discountFuncs = map[string]discountFunc{
	entity.PromotionTypePercentage: percentageDiscount,
	entity.PromotionTypeFixed:      fixedDiscount,
}

// percentageDiscount: base * value/100, topado por MaxDiscountAmount si está definido.
func percentageDiscount(p *entity.Promotion, base decimal.Decimal) decimal.Decimal {
	d := base.Mul(p.Value).Div(decimal.NewFromInt(100))
	if p.MaxDiscountAmount != nil && d.GreaterThan(*p.MaxDiscountAmount) {
		return *p.MaxDiscountAmount
	}
	return d
}

// fixedDiscount: min(value, base) — un monto fijo nunca descuenta más que la base.
func fixedDiscount(p *entity.Promotion, base decimal.Decimal) decimal.Decimal {
	if p.Value.GreaterThan(base) {
		return base
	}
	return p.Value
}

// DiscountAmount calcula el descuento de p sobre base según su tipo.
func DiscountAmount(p *entity.Promotion, base decimal.Decimal) (decimal.Decimal, error) {
	fn, ok := discountFuncs[p.Type]
	if !ok {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if base.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}
	return fn(p, base), nil
}
