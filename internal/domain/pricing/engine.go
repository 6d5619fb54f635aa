package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
)

// PriceCart cotiza un carrito: descuento por nivel, promociones PRODUCT apiladas por
// línea y una única promoción ORDER. Es una función pura y repetible: no toca cupos
// ni escribe historial (eso ocurre al confirmar la orden, no al cotizar).
//
// Las dos políticas de selección son distintas a propósito y no deben unificarse:
// PRODUCT apila por prioridad con veto de conflictos declarados; ORDER elige la
// promoción de mayor descuento para la base vigente.
func PriceCart(in Input) (*Breakdown, error) {
	sub := subtotal(in.Lines)

	// Descuento por nivel sobre el subtotal (tasa ya congelada en el contexto del cliente)
	tierDiscount := decimal.Zero
	if in.Customer != nil && in.Customer.TierDiscountRate.GreaterThan(decimal.Zero) {
		tierDiscount = sub.Mul(in.Customer.TierDiscountRate)
	}

	var productCandidates, orderCandidates []*entity.Promotion
	for _, p := range in.Candidates {
		if !eligible(p, in) {
			continue
		}
		switch p.Scope {
		case entity.PromotionScopeProduct:
			productCandidates = append(productCandidates, p)
		case entity.PromotionScopeOrder:
			orderCandidates = append(orderCandidates, p)
		}
	}

	b := &Breakdown{Subtotal: sub, TierDiscount: tierDiscount}
	if in.Customer != nil {
		b.TierDiscountRate = in.Customer.TierDiscountRate
	}

	if err := applyProductPromotions(b, in.Lines, productCandidates); err != nil {
		return nil, err
	}

	// La promoción ORDER se calcula sobre lo que queda tras nivel y descuentos PRODUCT
	orderBase := sub.Sub(tierDiscount).Sub(b.ProductDiscount)
	if orderBase.LessThan(decimal.Zero) {
		orderBase = decimal.Zero
	}
	if err := applyOrderPromotion(b, orderBase, orderCandidates); err != nil {
		return nil, err
	}

	b.TotalDiscount = tierDiscount.Add(b.ProductDiscount).Add(b.OrderDiscount)
	b.FinalAmount = sub.Sub(b.TotalDiscount)
	if b.FinalAmount.LessThan(decimal.Zero) {
		b.FinalAmount = decimal.Zero
	}
	return b, nil
}

// applyProductPromotions aplica a cada línea los candidatos PRODUCT que la tienen
// como objetivo: ordenados por prioridad descendente, aceptación greedy con veto si
// conflictúa con uno ya aceptado para esa línea; los aceptados se suman sobre la base
// de la línea.
func applyProductPromotions(b *Breakdown, lines []CartLine, candidates []*entity.Promotion) error {
	sorted := make([]*entity.Promotion, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority > sorted[j].Priority
		}
		return sorted[i].ID < sorted[j].ID
	})

	appliedTotal := map[string]decimal.Decimal{} // por promoción, para la lista Applied

	for _, l := range lines {
		base := l.Amount()
		var accepted []*entity.Promotion
		lineDiscount := decimal.Zero
		for _, p := range sorted {
			if !targetsLine(p, l) {
				continue
			}
			if conflictsWithAny(p, accepted) {
				continue
			}
			amount, err := DiscountAmount(p, base)
			if err != nil {
				return err
			}
			accepted = append(accepted, p)
			lineDiscount = lineDiscount.Add(amount)
			appliedTotal[p.ID] = appliedTotal[p.ID].Add(amount)
		}
		if lineDiscount.GreaterThan(decimal.Zero) {
			b.LineDiscounts = append(b.LineDiscounts, LineDiscount{VariantID: l.VariantID, Amount: lineDiscount})
			b.ProductDiscount = b.ProductDiscount.Add(lineDiscount)
		}
	}

	// Lista Applied en el mismo orden determinista del sort
	for _, p := range sorted {
		if amount, ok := appliedTotal[p.ID]; ok {
			b.Applied = append(b.Applied, AppliedPromotion{
				PromotionID: p.ID, Code: p.Code, Scope: p.Scope, Amount: amount,
			})
		}
	}
	return nil
}

// applyOrderPromotion elige entre los candidatos ORDER el único de mayor descuento
// para la base actual (no el de mayor prioridad). Empates: prioridad y luego ID.
func applyOrderPromotion(b *Breakdown, base decimal.Decimal, candidates []*entity.Promotion) error {
	var best *entity.Promotion
	bestAmount := decimal.Zero
	for _, p := range candidates {
		amount, err := DiscountAmount(p, base)
		if err != nil {
			return err
		}
		if amount.LessThanOrEqual(decimal.Zero) {
			continue
		}
		switch {
		case best == nil,
			amount.GreaterThan(bestAmount),
			amount.Equal(bestAmount) && p.Priority > best.Priority,
			amount.Equal(bestAmount) && p.Priority == best.Priority && p.ID < best.ID:
			best = p
			bestAmount = amount
		}
	}
	if best != nil {
		b.OrderDiscount = bestAmount
		b.Applied = append(b.Applied, AppliedPromotion{
			PromotionID: best.ID, Code: best.Code, Scope: best.Scope, Amount: bestAmount,
		})
	}
	return nil
}

// conflictsWithAny verifica conflicto declarado en cualquier dirección del par.
func conflictsWithAny(p *entity.Promotion, accepted []*entity.Promotion) bool {
	for _, a := range accepted {
		if p.ConflictsWith(a.ID) || a.ConflictsWith(p.ID) {
			return true
		}
	}
	return false
}

func subtotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount())
	}
	return total
}
