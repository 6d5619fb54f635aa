package repository

import "github.com/jhoicas/retail-ops-api/internal/domain/entity"

// InventoryRepository define el puerto para los contadores de inventario por variante.
// Usado dentro de transacciones para garantizar consistencia.
type InventoryRepository interface {
	Get(variantID string) (*entity.InventoryRecord, error)
	// GetForUpdate bloquea la fila de la variante (SELECT FOR UPDATE): serializa
	// reservas concurrentes sobre el mismo inventario.
	GetForUpdate(variantID string) (*entity.InventoryRecord, error)
	Upsert(record *entity.InventoryRecord) error
}

// StockMovementRepository define el puerto para el historial de movimientos físicos.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByVariant(variantID string, limit, offset int) ([]*entity.StockMovement, error)
}
