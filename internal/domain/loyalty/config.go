package loyalty

import "github.com/shopspring/decimal"

// Config es el snapshot de configuración del programa de fidelización.
// Se carga una vez por operación desde el proveedor de configuración y se pasa
// como parámetro: nunca se mantiene como estado mutable de larga vida.
type Config struct {
	EarnEnabled      bool
	RedeemEnabled    bool
	EarnRate         decimal.Decimal // moneda por punto ganado (ej. 100.000 COP -> 1 punto cada EarnRate)
	RedeemRate       decimal.Decimal // valor en moneda de cada punto redimido
	MinOrderEarn     decimal.Decimal // monto mínimo de la orden para acumular
	MinOrderRedeem   decimal.Decimal // monto mínimo de la orden para redimir
	MaxRedeemPercent decimal.Decimal // porcentaje máximo del subtotal cubrible con puntos (0-100)
}

// Claves del proveedor de configuración y sus valores por defecto.
const (
	KeyEarnEnabled      = "loyalty.earn_enabled"
	KeyRedeemEnabled    = "loyalty.redeem_enabled"
	KeyEarnRate         = "loyalty.earn_rate"
	KeyRedeemRate       = "loyalty.redeem_rate"
	KeyMinOrderEarn     = "loyalty.min_order_earn"
	KeyMinOrderRedeem   = "loyalty.min_order_redeem"
	KeyMaxRedeemPercent = "loyalty.max_redeem_percent"
)
