package pricing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/pricing"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// activePromo construye una promoción ACTIVE con ventana que cubre testNow.
func activePromo(id, scope, typ string, value int64) *entity.Promotion {
	return &entity.Promotion{
		ID:        id,
		Name:      "promo " + id,
		Scope:     scope,
		Type:      typ,
		Value:     d(value),
		StartDate: testNow.Add(-24 * time.Hour),
		EndDate:   testNow.Add(24 * time.Hour),
		Status:    entity.PromotionStatusActive,
	}
}

func lineOf(variantID, productID, categoryID string, unitPrice int64, qty int) pricing.CartLine {
	return pricing.CartLine{
		VariantID:  variantID,
		ProductID:  productID,
		CategoryID: categoryID,
		UnitPrice:  d(unitPrice),
		Quantity:   qty,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Vector de referencia: subtotal 300.000, nivel 10%, PRODUCT 20% topado en 50.000
// ──────────────────────────────────────────────────────────────────────────────

func TestPriceCart_VectorNivelYProductoConTope(t *testing.T) {
	cap := d(50_000)
	promo := activePromo("p1", entity.PromotionScopeProduct, entity.PromotionTypePercentage, 20)
	promo.MaxDiscountAmount = &cap
	promo.TargetProductIDs = []string{"prod-1"}

	b, err := pricing.PriceCart(pricing.Input{
		Now:   testNow,
		Lines: []pricing.CartLine{lineOf("var-1", "prod-1", "cat-1", 300_000, 1)},
		Customer: &pricing.CustomerContext{
			ID:               "cust-1",
			TierID:           "gold",
			TierDiscountRate: decimal.NewFromFloat(0.10),
		},
		Candidates: []*entity.Promotion{promo},
	})
	require.NoError(t, err)

	// 20% de 300.000 = 60.000, topado en 50.000; nivel 10% = 30.000
	assert.True(t, b.Subtotal.Equal(d(300_000)), "subtotal")
	assert.True(t, b.TierDiscount.Equal(d(30_000)), "descuento por nivel")
	assert.True(t, b.ProductDiscount.Equal(d(50_000)), "descuento PRODUCT topado")
	assert.True(t, b.TotalDiscount.Equal(d(80_000)), "descuento total")
	assert.True(t, b.FinalAmount.Equal(d(220_000)), "monto final")
	require.Len(t, b.Applied, 1)
	assert.Equal(t, "p1", b.Applied[0].PromotionID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Elegibilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestPriceCart_PromoFueraDeVentanaNoAplica(t *testing.T) {
	promo := activePromo("p1", entity.PromotionScopeOrder, entity.PromotionTypePercentage, 10)
	promo.EndDate = testNow.Add(-time.Hour)

	b, err := pricing.PriceCart(pricing.Input{
		Now:        testNow,
		Lines:      []pricing.CartLine{lineOf("var-1", "prod-1", "cat-1", 100_000, 1)},
		Candidates: []*entity.Promotion{promo},
	})
	require.NoError(t, err)
	assert.True(t, b.OrderDiscount.IsZero())
	assert.Empty(t, b.Applied)
}

func TestPriceCart_CupoGlobalAgotadoNoAplica(t *testing.T) {
	promo := activePromo("p1", entity.PromotionScopeOrder, entity.PromotionTypePercentage, 10)
	promo.UsageLimit = 5
	promo.UsageCount = 5

	b, err := pricing.PriceCart(pricing.Input{
		Now:        testNow,
		Lines:      []pricing.CartLine{lineOf("var-1", "prod-1", "cat-1", 100_000, 1)},
		Candidates: []*entity.Promotion{promo},
	})
	require.NoError(t, err)
	assert.Empty(t, b.Applied, "cupo agotado no debe aplicar")
}

func TestPriceCart_CodigoManualRequerido(t *testing.T) {
	promo := activePromo("p1", entity.PromotionScopeOrder, entity.PromotionTypeFixed, 10_000)
	promo.Code = "BIENVENIDA"
	promo.RequiresCode = true

	lines := []pricing.CartLine{lineOf("var-1", "prod-1", "cat-1", 100_000, 1)}

	// Sin código: no aplica
	b, err := pricing.PriceCart(pricing.Input{Now: testNow, Lines: lines, Candidates: []*entity.Promotion{promo}})
	require.NoError(t, err)
	assert.Empty(t, b.Applied)

	// Con código: aplica
	b, err = pricing.PriceCart(pricing.Input{
		Now: testNow, Lines: lines,
		Candidates:  []*entity.Promotion{promo},
		ManualCodes: []string{"BIENVENIDA"},
	})
	require.NoError(t, err)
	require.Len(t, b.Applied, 1)
	assert.True(t, b.OrderDiscount.Equal(d(10_000)))
}

func TestPriceCart_RestriccionDeNivelExcluyeInvitado(t *testing.T) {
	promo := activePromo("p1", entity.PromotionScopeOrder, entity.PromotionTypePercentage, 10)
	promo.EligibleTierIDs = []string{"gold"}

	lines := []pricing.CartLine{lineOf("var-1", "prod-1", "cat-1", 100_000, 1)}

	// Invitado (Customer nil): nunca elegible
	b, err := pricing.PriceCart(pricing.Input{Now: testNow, Lines: lines, Candidates: []*entity.Promotion{promo}})
	require.NoError(t, err)
	assert.Empty(t, b.Applied, "invitado no es elegible para promos restringidas por nivel")

	// Cliente con nivel silver: tampoco
	b, err = pricing.PriceCart(pricing.Input{
		Now: testNow, Lines: lines,
		Customer:   &pricing.CustomerContext{ID: "c1", TierID: "silver"},
		Candidates: []*entity.Promotion{promo},
	})
	require.NoError(t, err)
	assert.Empty(t, b.Applied)

	// Cliente gold: aplica
	b, err = pricing.PriceCart(pricing.Input{
		Now: testNow, Lines: lines,
		Customer:   &pricing.CustomerContext{ID: "c1", TierID: "gold"},
		Candidates: []*entity.Promotion{promo},
	})
	require.NoError(t, err)
	require.Len(t, b.Applied, 1)
}

func TestPriceCart_CupoPorClienteAgotado(t *testing.T) {
	promo := activePromo("p1", entity.PromotionScopeOrder, entity.PromotionTypeFixed, 5_000)
	promo.UsagePerCustomer = 1

	b, err := pricing.PriceCart(pricing.Input{
		Now:   testNow,
		Lines: []pricing.CartLine{lineOf("var-1", "prod-1", "cat-1", 100_000, 1)},
		Customer: &pricing.CustomerContext{
			ID:               "c1",
			UsageByPromotion: map[string]int{"p1": 1},
		},
		Candidates: []*entity.Promotion{promo},
	})
	require.NoError(t, err)
	assert.Empty(t, b.Applied)
}

func TestPriceCart_MinimoDeOrdenParaPromoORDER(t *testing.T) {
	promo := activePromo("p1", entity.PromotionScopeOrder, entity.PromotionTypePercentage, 10)
	promo.MinOrderValue = d(200_000)

	b, err := pricing.PriceCart(pricing.Input{
		Now:        testNow,
		Lines:      []pricing.CartLine{lineOf("var-1", "prod-1", "cat-1", 150_000, 1)},
		Candidates: []*entity.Promotion{promo},
	})
	require.NoError(t, err)
	assert.Empty(t, b.Applied, "subtotal bajo el mínimo no aplica")
}

// ──────────────────────────────────────────────────────────────────────────────
// Stacking PRODUCT: prioridad y conflictos declarados
// ──────────────────────────────────────────────────────────────────────────────

func TestPriceCart_ProductStackingConConflicto(t *testing.T) {
	// p-alta (prioridad 10) conflictúa con p-baja (prioridad 5): solo p-alta y p-libre aplican
	pAlta := activePromo("p-alta", entity.PromotionScopeProduct, entity.PromotionTypePercentage, 10)
	pAlta.Priority = 10
	pAlta.TargetProductIDs = []string{"prod-1"}
	pAlta.ConflictIDs = []string{"p-baja"}

	pBaja := activePromo("p-baja", entity.PromotionScopeProduct, entity.PromotionTypePercentage, 20)
	pBaja.Priority = 5
	pBaja.TargetProductIDs = []string{"prod-1"}

	pLibre := activePromo("p-libre", entity.PromotionScopeProduct, entity.PromotionTypeFixed, 5_000)
	pLibre.Priority = 1
	pLibre.TargetProductIDs = []string{"prod-1"}

	b, err := pricing.PriceCart(pricing.Input{
		Now:        testNow,
		Lines:      []pricing.CartLine{lineOf("var-1", "prod-1", "cat-1", 100_000, 1)},
		Candidates: []*entity.Promotion{pBaja, pLibre, pAlta},
	})
	require.NoError(t, err)

	// p-alta 10% = 10.000; p-baja vetada por conflicto; p-libre fija 5.000
	assert.True(t, b.ProductDiscount.Equal(d(15_000)), "10.000 + 5.000")
	require.Len(t, b.Applied, 2)
	assert.Equal(t, "p-alta", b.Applied[0].PromotionID, "mayor prioridad primero")
	assert.Equal(t, "p-libre", b.Applied[1].PromotionID)
}

func TestPriceCart_ConflictoEsBidireccional(t *testing.T) {
	// El conflicto declarado solo en p-baja también veta cuando p-alta ya fue aceptada
	pAlta := activePromo("p-alta", entity.PromotionScopeProduct, entity.PromotionTypePercentage, 10)
	pAlta.Priority = 10
	pAlta.TargetProductIDs = []string{"prod-1"}

	pBaja := activePromo("p-baja", entity.PromotionScopeProduct, entity.PromotionTypePercentage, 20)
	pBaja.Priority = 5
	pBaja.TargetProductIDs = []string{"prod-1"}
	pBaja.ConflictIDs = []string{"p-alta"}

	b, err := pricing.PriceCart(pricing.Input{
		Now:        testNow,
		Lines:      []pricing.CartLine{lineOf("var-1", "prod-1", "cat-1", 100_000, 1)},
		Candidates: []*entity.Promotion{pAlta, pBaja},
	})
	require.NoError(t, err)
	require.Len(t, b.Applied, 1)
	assert.Equal(t, "p-alta", b.Applied[0].PromotionID)
}

func TestPriceCart_ProductPorCategoria(t *testing.T) {
	promo := activePromo("p1", entity.PromotionScopeProduct, entity.PromotionTypePercentage, 10)
	promo.TargetCategoryIDs = []string{"cat-audio"}

	b, err := pricing.PriceCart(pricing.Input{
		Now: testNow,
		Lines: []pricing.CartLine{
			lineOf("var-1", "prod-1", "cat-audio", 80_000, 2), // objetivo: 160.000
			lineOf("var-2", "prod-2", "cat-video", 50_000, 1), // fuera del objetivo
		},
		Candidates: []*entity.Promotion{promo},
	})
	require.NoError(t, err)
	assert.True(t, b.ProductDiscount.Equal(d(16_000)), "10% solo sobre la línea objetivo")
	require.Len(t, b.LineDiscounts, 1)
	assert.Equal(t, "var-1", b.LineDiscounts[0].VariantID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Selección ORDER: el mayor descuento gana, no la mayor prioridad
// ──────────────────────────────────────────────────────────────────────────────

func TestPriceCart_OrderEligeMayorDescuento(t *testing.T) {
	pPorcentaje := activePromo("p-pct", entity.PromotionScopeOrder, entity.PromotionTypePercentage, 10)
	pPorcentaje.Priority = 100 // prioridad alta pero descuento menor

	pFija := activePromo("p-fija", entity.PromotionScopeOrder, entity.PromotionTypeFixed, 25_000)
	pFija.Priority = 1

	b, err := pricing.PriceCart(pricing.Input{
		Now:        testNow,
		Lines:      []pricing.CartLine{lineOf("var-1", "prod-1", "cat-1", 200_000, 1)},
		Candidates: []*entity.Promotion{pPorcentaje, pFija},
	})
	require.NoError(t, err)

	// 10% de 200.000 = 20.000 < 25.000 fija: gana la fija aunque tenga menos prioridad
	require.Len(t, b.Applied, 1)
	assert.Equal(t, "p-fija", b.Applied[0].PromotionID)
	assert.True(t, b.OrderDiscount.Equal(d(25_000)))
}

func TestPriceCart_OrderSobreBaseTrasNivelYProduct(t *testing.T) {
	pProd := activePromo("p-prod", entity.PromotionScopeProduct, entity.PromotionTypeFixed, 20_000)
	pProd.TargetProductIDs = []string{"prod-1"}

	pOrder := activePromo("p-order", entity.PromotionScopeOrder, entity.PromotionTypePercentage, 10)

	b, err := pricing.PriceCart(pricing.Input{
		Now:   testNow,
		Lines: []pricing.CartLine{lineOf("var-1", "prod-1", "cat-1", 200_000, 1)},
		Customer: &pricing.CustomerContext{
			ID:               "c1",
			TierDiscountRate: decimal.NewFromFloat(0.10),
		},
		Candidates: []*entity.Promotion{pProd, pOrder},
	})
	require.NoError(t, err)

	// base ORDER = 200.000 - 20.000 (nivel) - 20.000 (product) = 160.000; 10% = 16.000
	assert.True(t, b.OrderDiscount.Equal(d(16_000)), "ORDER se calcula sobre la base remanente")
	assert.True(t, b.FinalAmount.Equal(d(144_000)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariantes de redondeo y piso
// ──────────────────────────────────────────────────────────────────────────────

func TestPriceCart_FinalNuncaNegativo(t *testing.T) {
	promo := activePromo("p1", entity.PromotionScopeOrder, entity.PromotionTypeFixed, 999_999)

	b, err := pricing.PriceCart(pricing.Input{
		Now:        testNow,
		Lines:      []pricing.CartLine{lineOf("var-1", "prod-1", "cat-1", 10_000, 1)},
		Candidates: []*entity.Promotion{promo},
	})
	require.NoError(t, err)
	assert.True(t, b.OrderDiscount.Equal(d(10_000)), "monto fijo topado por la base")
	assert.True(t, b.FinalAmount.IsZero())
	assert.False(t, b.FinalAmount.IsNegative())
}

func TestDiscountAmount_TipoDesconocidoFalla(t *testing.T) {
	promo := activePromo("p1", entity.PromotionScopeOrder, "BOGO", 1)
	_, err := pricing.DiscountAmount(promo, d(100_000))
	assert.Error(t, err, "un tipo sin función registrada debe fallar, no caer en default")
}
