package inventory

import "github.com/shopspring/decimal"

// MovingAverageCost implementa el costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Con stock actual cero el promedio es directamente el costo de la entrada.
func MovingAverageCost(currentQty, currentAvg, receivedQty, importPrice decimal.Decimal) decimal.Decimal {
	if currentQty.LessThanOrEqual(decimal.Zero) {
		return importPrice
	}
	sum := currentQty.Add(receivedQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := currentQty.Mul(currentAvg).Add(receivedQty.Mul(importPrice))
	return num.Div(sum)
}
