package repository

import (
	"time"

	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
)

// PromotionRepository define el puerto de persistencia para promociones y su historial de uso.
type PromotionRepository interface {
	Create(promotion *entity.Promotion) error
	GetByID(id string) (*entity.Promotion, error)
	GetByCode(code string) (*entity.Promotion, error)
	// GetForUpdate bloquea la fila de la promoción: serializa el incremento del cupo
	// cuando el uso se acerca a UsageLimit.
	GetForUpdate(id string) (*entity.Promotion, error)
	Update(promotion *entity.Promotion) error
	// ListActiveAt devuelve las promociones ACTIVE cuya ventana cubre el instante t.
	ListActiveAt(t time.Time) ([]*entity.Promotion, error)
	ListByStatus(status string, limit, offset int) ([]*entity.Promotion, error)

	CreateUsage(usage *entity.PromotionUsage) error
	DeleteUsageByOrder(orderID string) error
	ListUsageByOrder(orderID string) ([]*entity.PromotionUsage, error)
	// CountUsageByCustomer cuenta usos confirmados de una promoción por un cliente.
	CountUsageByCustomer(promotionID, customerID string) (int, error)
}
