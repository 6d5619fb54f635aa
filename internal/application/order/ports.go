package order

import (
	"context"

	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a la transacción de una operación de orden.
// El orquestador compone inventario, seriales, promociones y puntos sobre este conjunto:
// o se aplican todos los pasos, o ninguno.
type TxRepos struct {
	Inventory repository.InventoryRepository
	Movements repository.StockMovementRepository
	Serials   repository.SerialRepository
	Orders    repository.OrderRepository
	Promos    repository.PromotionRepository
	Loyalty   repository.LoyaltyRepository
	Customers repository.CustomerRepository
	Variants  repository.VariantRepository
}

// TxRunner ejecuta fn dentro de una transacción con el conjunto completo de repositorios.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}

// AuditSink es el sumidero de auditoría. Se invoca después de
// cada paso que cambia estado; su falla no revierte la transacción de negocio.
type AuditSink interface {
	Log(actorID, module, action, resourceID, oldValue, newValue, outcome string)
}

// Notifier emite el evento de orden nueva tras una creación exitosa. La semántica de
// entrega es responsabilidad del colaborador.
type Notifier interface {
	OrderCreated(order *entity.Order)
}
