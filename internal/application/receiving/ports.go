package receiving

import (
	"context"

	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

// TxRunner ejecuta una recepción de compra completa dentro de una transacción:
// costo promedio, stock físico y alta de seriales entran juntos o no entran.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
		variantRepo repository.VariantRepository,
		serialRepo repository.SerialRepository,
	) error) error
}
