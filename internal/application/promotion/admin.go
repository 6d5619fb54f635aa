package promotion

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
)

// validScopes y validTypes del motor de precios; cualquier otro valor se rechaza al crear.
var validScopes = map[string]bool{
	entity.PromotionScopeProduct: true,
	entity.PromotionScopeOrder:   true,
}

var validTypes = map[string]bool{
	entity.PromotionTypePercentage: true,
	entity.PromotionTypeFixed:      true,
}

// Create da de alta una promoción. Sin estado explícito se programa (SCHEDULED) si la
// ventana aún no abre, o queda ACTIVE si ya está dentro de la ventana.
func (uc *UseCase) Create(ctx context.Context, p *entity.Promotion) (*entity.Promotion, error) {
	if p.Name == "" || !validScopes[p.Scope] || !validTypes[p.Type] {
		return nil, domain.ErrInvalidInput
	}
	if p.Value.IsNegative() || p.EndDate.Before(p.StartDate) {
		return nil, domain.ErrInvalidInput
	}
	if p.Type == entity.PromotionTypePercentage && p.Value.GreaterThan(decimal.NewFromInt(100)) {
		return nil, domain.ErrInvalidInput
	}
	if p.RequiresCode && p.Code == "" {
		return nil, domain.ErrInvalidInput
	}
	if p.Code != "" {
		existing, err := uc.promoRepo.GetByCode(p.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		now := time.Now()
		if now.Before(p.StartDate) {
			p.Status = entity.PromotionStatusScheduled
		} else {
			p.Status = entity.PromotionStatusActive
		}
	}
	p.UsageCount = 0
	if err := uc.promoRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get devuelve una promoción por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Promotion, error) {
	p, err := uc.promoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// ListByStatus devuelve promociones de un estado, paginadas.
func (uc *UseCase) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.Promotion, error) {
	if limit <= 0 {
		limit = 50
	}
	return uc.promoRepo.ListByStatus(status, limit, offset)
}

// Deactivate apaga una promoción manualmente (INACTIVE). No toca usos ya confirmados.
func (uc *UseCase) Deactivate(ctx context.Context, id string) error {
	p, err := uc.promoRepo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	p.Status = entity.PromotionStatusInactive
	return uc.promoRepo.Update(p)
}
