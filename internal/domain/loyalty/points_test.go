package loyalty_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/loyalty"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func defaultConfig() loyalty.Config {
	return loyalty.Config{
		EarnEnabled:      true,
		RedeemEnabled:    true,
		EarnRate:         d(100_000),
		RedeemRate:       d(1_000),
		MinOrderEarn:     decimal.Zero,
		MinOrderRedeem:   decimal.Zero,
		MaxRedeemPercent: d(50),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Acumulación
// ──────────────────────────────────────────────────────────────────────────────

func TestPointsEarned_PisoDeDivision(t *testing.T) {
	// 250.000 / 100.000 = 2.5 -> 2 puntos (floor, nunca redondeo)
	assert.Equal(t, int64(2), loyalty.PointsEarned(d(250_000), d(100_000)))
	assert.Equal(t, int64(0), loyalty.PointsEarned(d(99_999), d(100_000)))
	assert.Equal(t, int64(1), loyalty.PointsEarned(d(100_000), d(100_000)))
}

func TestPointsEarned_TarifaInvalidaDevuelveCero(t *testing.T) {
	assert.Equal(t, int64(0), loyalty.PointsEarned(d(500_000), decimal.Zero))
	assert.Equal(t, int64(0), loyalty.PointsEarned(decimal.Zero, d(100_000)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Redención
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateRedemption_Valida(t *testing.T) {
	// 20 puntos * 1.000 = 20.000 <= 50% de 100.000
	err := loyalty.ValidateRedemption(defaultConfig(), 80, 20, d(100_000))
	assert.NoError(t, err)
}

func TestValidateRedemption_MasQueDisponibleRechaza(t *testing.T) {
	err := loyalty.ValidateRedemption(defaultConfig(), 80, 100, d(500_000))
	assert.ErrorIs(t, err, domain.ErrRedemptionRejected, "100 puntos > 80 disponibles")
}

func TestValidateRedemption_ExcedeTopePorcentual(t *testing.T) {
	// 30 puntos * 1.000 = 30.000 > 25.000 (50% de 50.000)
	err := loyalty.ValidateRedemption(defaultConfig(), 200, 30, d(50_000))
	assert.ErrorIs(t, err, domain.ErrRedemptionRejected)
}

func TestValidateRedemption_RedencionDeshabilitada(t *testing.T) {
	cfg := defaultConfig()
	cfg.RedeemEnabled = false
	err := loyalty.ValidateRedemption(cfg, 100, 10, d(100_000))
	assert.ErrorIs(t, err, domain.ErrRedemptionRejected)
}

func TestValidateRedemption_MontoMinimoDeOrden(t *testing.T) {
	cfg := defaultConfig()
	cfg.MinOrderRedeem = d(50_000)
	err := loyalty.ValidateRedemption(cfg, 100, 10, d(40_000))
	assert.ErrorIs(t, err, domain.ErrRedemptionRejected)
}

func TestValidateRedemption_PuntosNoPositivos(t *testing.T) {
	assert.ErrorIs(t, loyalty.ValidateRedemption(defaultConfig(), 100, 0, d(100_000)), domain.ErrRedemptionRejected)
	assert.ErrorIs(t, loyalty.ValidateRedemption(defaultConfig(), 100, -5, d(100_000)), domain.ErrRedemptionRejected)
}

func TestRedemptionValue(t *testing.T) {
	assert.True(t, loyalty.RedemptionValue(25, d(1_000)).Equal(d(25_000)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolución de nivel
// ──────────────────────────────────────────────────────────────────────────────

func testTiers() []*entity.CustomerTier {
	return []*entity.CustomerTier{
		{ID: "gold", Name: "Oro", MinPoint: 500, DiscountRate: decimal.NewFromFloat(0.10)},
		{ID: "bronze", Name: "Bronce", MinPoint: 0, DiscountRate: decimal.Zero},
		{ID: "silver", Name: "Plata", MinPoint: 100, DiscountRate: decimal.NewFromFloat(0.05)},
	}
}

func TestResolveTier_MayorUmbralQueCubra(t *testing.T) {
	assert.Equal(t, "bronze", loyalty.ResolveTier(testTiers(), 0).ID)
	assert.Equal(t, "bronze", loyalty.ResolveTier(testTiers(), 99).ID)
	assert.Equal(t, "silver", loyalty.ResolveTier(testTiers(), 100).ID)
	assert.Equal(t, "silver", loyalty.ResolveTier(testTiers(), 499).ID)
	assert.Equal(t, "gold", loyalty.ResolveTier(testTiers(), 500).ID)
	assert.Equal(t, "gold", loyalty.ResolveTier(testTiers(), 10_000).ID)
}

func TestResolveTier_SinNivelesDevuelveNil(t *testing.T) {
	assert.Nil(t, loyalty.ResolveTier(nil, 500))
}

func TestLowestTier(t *testing.T) {
	assert.Equal(t, "bronze", loyalty.LowestTier(testTiers()).ID)
}
