package loyalty

import "github.com/jhoicas/retail-ops-api/internal/domain/entity"

// ResolveTier devuelve el nivel con el mayor MinPoint tal que MinPoint <= totalPoints.
// Los niveles no necesitan venir ordenados. Devuelve nil si ninguno aplica.
func ResolveTier(tiers []*entity.CustomerTier, totalPoints int64) *entity.CustomerTier {
	var best *entity.CustomerTier
	for _, t := range tiers {
		if t.MinPoint > totalPoints {
			continue
		}
		if best == nil || t.MinPoint > best.MinPoint {
			best = t
		}
	}
	return best
}

// LowestTier devuelve el nivel con el menor MinPoint (nivel base tras un RESET).
func LowestTier(tiers []*entity.CustomerTier) *entity.CustomerTier {
	var lowest *entity.CustomerTier
	for _, t := range tiers {
		if lowest == nil || t.MinPoint < lowest.MinPoint {
			lowest = t
		}
	}
	return lowest
}
