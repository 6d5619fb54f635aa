package pricing

import "github.com/jhoicas/retail-ops-api/internal/domain/entity"

// eligible aplica el filtro de elegibilidad en orden estricto, cortando en la
// primera condición que falle:
//  1. ACTIVE y dentro de la ventana de vigencia
//  2. cupo global no agotado
//  3. si exige código, el código viene en ManualCodes
//  4. si restringe niveles, el cliente tiene uno de ellos (nunca elegible para invitado)
//  5. cupo por cliente no agotado
//  6. ORDER: subtotal >= MinOrderValue; PRODUCT: alguna línea pertenece al objetivo
func eligible(p *entity.Promotion, in Input) bool {
	if !p.ActiveAt(in.Now) {
		return false
	}
	if p.QuotaExhausted() {
		return false
	}
	if p.RequiresCode && !codeProvided(p.Code, in.ManualCodes) {
		return false
	}
	if len(p.EligibleTierIDs) > 0 {
		if in.Customer == nil || !contains(p.EligibleTierIDs, in.Customer.TierID) {
			return false
		}
	}
	if p.UsagePerCustomer > 0 && in.Customer != nil {
		if in.Customer.UsageByPromotion[p.ID] >= p.UsagePerCustomer {
			return false
		}
	}
	switch p.Scope {
	case entity.PromotionScopeOrder:
		return subtotal(in.Lines).GreaterThanOrEqual(p.MinOrderValue)
	case entity.PromotionScopeProduct:
		for _, l := range in.Lines {
			if targetsLine(p, l) {
				return true
			}
		}
		return false
	}
	return false
}

// targetsLine indica si la promoción PRODUCT aplica a la línea: el producto o su
// categoría están en el conjunto objetivo.
func targetsLine(p *entity.Promotion, l CartLine) bool {
	if contains(p.TargetProductIDs, l.ProductID) {
		return true
	}
	return contains(p.TargetCategoryIDs, l.CategoryID)
}

func codeProvided(code string, manualCodes []string) bool {
	return contains(manualCodes, code)
}

func contains(set []string, v string) bool {
	if v == "" {
		return false
	}
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
