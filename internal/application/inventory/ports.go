package inventory

import (
	"context"

	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad para las operaciones del ledger de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
		variantRepo repository.VariantRepository,
	) error) error
}
