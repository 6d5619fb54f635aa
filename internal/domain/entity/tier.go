package entity

import "github.com/shopspring/decimal"

// CustomerTier representa un nivel de fidelización.
// El nivel de un cliente es el de mayor MinPoint tal que MinPoint <= puntos acumulados.
type CustomerTier struct {
	ID           string
	Name         string
	MinPoint     int64
	DiscountRate decimal.Decimal // fracción sobre el subtotal (0.10 = 10%)
}
