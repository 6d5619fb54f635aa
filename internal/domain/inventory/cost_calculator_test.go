package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/retail-ops-api/internal/domain/inventory"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestMovingAverageCost_PromedioPonderado(t *testing.T) {
	// 10 unidades a 1.000 + 10 unidades a 2.000 -> promedio 1.500
	avg := inventory.MovingAverageCost(d(10), d(1_000), d(10), d(2_000))
	assert.True(t, avg.Equal(d(1_500)), "esperado 1.500, obtenido %s", avg)
}

func TestMovingAverageCost_EntradaPequenaMuevePoco(t *testing.T) {
	// 90 a 1.000 + 10 a 2.000 -> (90.000 + 20.000) / 100 = 1.100
	avg := inventory.MovingAverageCost(d(90), d(1_000), d(10), d(2_000))
	assert.True(t, avg.Equal(d(1_100)))
}

func TestMovingAverageCost_StockCeroUsaPrecioDeEntrada(t *testing.T) {
	avg := inventory.MovingAverageCost(decimal.Zero, d(9_999), d(5), d(2_000))
	assert.True(t, avg.Equal(d(2_000)), "con stock cero el promedio es el precio de importación")
}

func TestMovingAverageCost_StockNegativoUsaPrecioDeEntrada(t *testing.T) {
	avg := inventory.MovingAverageCost(d(-3), d(1_000), d(5), d(2_000))
	assert.True(t, avg.Equal(d(2_000)))
}
