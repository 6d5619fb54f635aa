package promotion

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/pricing"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

// UseCase expone la cotización de carritos y la contabilidad de uso de promociones.
// Quote es puro y repetible (no muta cupos); Confirm/Restore operan dentro de la
// transacción de la orden, bloqueando la fila de cada promoción para no perder
// actualizaciones del cupo cerca de UsageLimit.
type UseCase struct {
	promoRepo    repository.PromotionRepository
	customerRepo repository.CustomerRepository
	tierRepo     repository.TierRepository
}

// NewUseCase construye el caso de uso con repositorios de lectura (pool).
func NewUseCase(
	promoRepo repository.PromotionRepository,
	customerRepo repository.CustomerRepository,
	tierRepo repository.TierRepository,
) *UseCase {
	return &UseCase{promoRepo: promoRepo, customerRepo: customerRepo, tierRepo: tierRepo}
}

// CustomerContext arma el contexto del cliente para el motor de precios: tasa del
// nivel vigente y usos previos por promoción candidata. customerID vacío = invitado (nil).
func (uc *UseCase) CustomerContext(customerID string, candidates []*entity.Promotion) (*pricing.CustomerContext, error) {
	if customerID == "" {
		return nil, nil
	}
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	ctx := &pricing.CustomerContext{
		ID:               customer.ID,
		TierID:           customer.TierID,
		UsageByPromotion: map[string]int{},
	}
	if customer.TierID != "" {
		tier, err := uc.tierRepo.GetByID(customer.TierID)
		if err != nil {
			return nil, err
		}
		if tier != nil {
			ctx.TierDiscountRate = tier.DiscountRate
		}
	}
	for _, p := range candidates {
		if p.UsagePerCustomer <= 0 {
			continue
		}
		count, err := uc.promoRepo.CountUsageByCustomer(p.ID, customerID)
		if err != nil {
			return nil, err
		}
		ctx.UsageByPromotion[p.ID] = count
	}
	return ctx, nil
}

// Quote cotiza un carrito sin efectos secundarios. Cada código manual debe existir
// y resultar aplicado; si no, la cotización completa se rechaza.
func (uc *UseCase) Quote(ctx context.Context, lines []pricing.CartLine, customerID string, manualCodes []string) (*pricing.Breakdown, error) {
	now := time.Now()
	candidates, err := uc.promoRepo.ListActiveAt(now)
	if err != nil {
		return nil, err
	}
	custCtx, err := uc.CustomerContext(customerID, candidates)
	if err != nil {
		return nil, err
	}
	breakdown, err := pricing.PriceCart(pricing.Input{
		Now:         now,
		Lines:       lines,
		Customer:    custCtx,
		Candidates:  candidates,
		ManualCodes: manualCodes,
	})
	if err != nil {
		return nil, err
	}
	if err := uc.checkManualCodes(breakdown, manualCodes); err != nil {
		return nil, err
	}
	return breakdown, nil
}

// checkManualCodes exige que todo código enviado por el cliente haya sido aplicado.
func (uc *UseCase) checkManualCodes(b *pricing.Breakdown, manualCodes []string) error {
	for _, code := range manualCodes {
		applied := false
		for _, ap := range b.Applied {
			if ap.Code == code {
				applied = true
				break
			}
		}
		if !applied {
			return domain.ErrPromotionRejected
		}
	}
	return nil
}

// ConfirmUsageInTx incrementa el cupo y escribe exactamente un registro de uso por
// (promoción, orden). Repetir la confirmación no duplica cupos ni registros.
func (uc *UseCase) ConfirmUsageInTx(promoRepo repository.PromotionRepository, order *entity.Order) error {
	existing, err := promoRepo.ListUsageByOrder(order.ID)
	if err != nil {
		return err
	}
	confirmed := map[string]bool{}
	for _, u := range existing {
		confirmed[u.PromotionID] = true
	}
	for _, ap := range order.AppliedPromotions {
		if confirmed[ap.PromotionID] {
			continue
		}
		p, err := promoRepo.GetForUpdate(ap.PromotionID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		p.UsageCount++
		p.UpdatedAt = time.Now()
		if err := promoRepo.Update(p); err != nil {
			return err
		}
		usage := &entity.PromotionUsage{
			ID:             uuid.New().String(),
			PromotionID:    ap.PromotionID,
			OrderID:        order.ID,
			CustomerID:     order.CustomerID,
			DiscountAmount: ap.Amount,
			CreatedAt:      time.Now(),
		}
		if err := promoRepo.CreateUsage(usage); err != nil {
			return err
		}
	}
	return nil
}

// RestoreUsageInTx revierte la confirmación al cancelar: decrementa el cupo de cada
// promoción confirmada en la orden y borra sus registros de uso.
func (uc *UseCase) RestoreUsageInTx(promoRepo repository.PromotionRepository, orderID string) error {
	usages, err := promoRepo.ListUsageByOrder(orderID)
	if err != nil {
		return err
	}
	for _, u := range usages {
		p, err := promoRepo.GetForUpdate(u.PromotionID)
		if err != nil {
			return err
		}
		if p == nil {
			continue
		}
		if p.UsageCount > 0 {
			p.UsageCount--
		}
		p.UpdatedAt = time.Now()
		if err := promoRepo.Update(p); err != nil {
			return err
		}
	}
	return promoRepo.DeleteUsageByOrder(orderID)
}

// RefreshStatuses activa promociones SCHEDULED cuya ventana ya empezó y expira las
// ACTIVE cuya ventana terminó. Lo invoca un scheduler externo; no hay workers internos.
func (uc *UseCase) RefreshStatuses(ctx context.Context, now time.Time) error {
	scheduled, err := uc.promoRepo.ListByStatus(entity.PromotionStatusScheduled, 500, 0)
	if err != nil {
		return err
	}
	for _, p := range scheduled {
		if !now.Before(p.StartDate) && !now.After(p.EndDate) {
			p.Status = entity.PromotionStatusActive
			p.UpdatedAt = now
			if err := uc.promoRepo.Update(p); err != nil {
				return err
			}
		}
	}
	active, err := uc.promoRepo.ListByStatus(entity.PromotionStatusActive, 500, 0)
	if err != nil {
		return err
	}
	for _, p := range active {
		if now.After(p.EndDate) {
			p.Status = entity.PromotionStatusExpired
			p.UpdatedAt = now
			if err := uc.promoRepo.Update(p); err != nil {
				return err
			}
		}
	}
	return nil
}
