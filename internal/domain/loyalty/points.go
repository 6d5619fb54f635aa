package loyalty

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-ops-api/internal/domain"
)

// PointsEarned calcula los puntos ganados por una orden.
// baseAmount es el subtotal después de descuentos MÁS el valor de los puntos redimidos
// en la misma orden (la acumulación se computa sobre el valor pre-redención).
// Resultado: floor(baseAmount / earnRate); cero si la tarifa no es positiva.
func PointsEarned(baseAmount, earnRate decimal.Decimal) int64 {
	if earnRate.LessThanOrEqual(decimal.Zero) || baseAmount.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	return baseAmount.Div(earnRate).Floor().IntPart()
}

// RedemptionValue devuelve el valor en moneda de una cantidad de puntos.
func RedemptionValue(points int64, redeemRate decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(points).Mul(redeemRate)
}

// ValidateRedemption valida una solicitud de redención contra el snapshot de configuración
// y el saldo disponible. Todas las violaciones devuelven ErrRedemptionRejected.
func ValidateRedemption(cfg Config, pointsAvailable, requested int64, orderSubtotal decimal.Decimal) error {
	if !cfg.RedeemEnabled {
		return domain.ErrRedemptionRejected
	}
	if requested <= 0 {
		return domain.ErrRedemptionRejected
	}
	if requested > pointsAvailable {
		return domain.ErrRedemptionRejected
	}
	if orderSubtotal.LessThan(cfg.MinOrderRedeem) {
		return domain.ErrRedemptionRejected
	}
	// El valor redimido no puede exceder MaxRedeemPercent del subtotal
	cap := orderSubtotal.Mul(cfg.MaxRedeemPercent).Div(decimal.NewFromInt(100))
	if RedemptionValue(requested, cfg.RedeemRate).GreaterThan(cap) {
		return domain.ErrRedemptionRejected
	}
	return nil
}
