package loyalty

import (
	"context"

	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD para las operaciones
// administrativas del ledger de puntos (ajustes y reset).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		loyaltyRepo repository.LoyaltyRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}
