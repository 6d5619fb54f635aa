package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/retail-ops-api/internal/application/inventory"
	"github.com/jhoicas/retail-ops-api/internal/application/loyalty"
	"github.com/jhoicas/retail-ops-api/internal/application/order"
	"github.com/jhoicas/retail-ops-api/internal/application/receiving"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

// Un solo runner satisface los puertos transaccionales de cada caso de uso.
var _ inventory.TxRunner = (*InventoryTxRunner)(nil)
var _ loyalty.TxRunner = (*LoyaltyTxRunner)(nil)
var _ order.TxRunner = (*OrderTxRunner)(nil)
var _ receiving.TxRunner = (*ReceivingTxRunner)(nil)

// begin abre la transacción y devuelve también el cleanup de rollback.
func begin(ctx context.Context, pool *pgxpool.Pool) (pgx.Tx, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return tx, nil
}

func commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// InventoryTxRunner ejecuta callbacks del ledger de inventario en una transacción.
type InventoryTxRunner struct {
	pool *pgxpool.Pool
}

func NewInventoryTxRunner(pool *pgxpool.Pool) *InventoryTxRunner {
	return &InventoryTxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *InventoryTxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	movRepo repository.StockMovementRepository,
	variantRepo repository.VariantRepository,
) error) error {
	tx, err := begin(ctx, r.pool)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInventoryRepository(tx), NewStockMovementRepository(tx), NewVariantRepository(tx)); err != nil {
		return err
	}
	return commit(ctx, tx)
}

// LoyaltyTxRunner ejecuta operaciones administrativas de puntos en una transacción.
type LoyaltyTxRunner struct {
	pool *pgxpool.Pool
}

func NewLoyaltyTxRunner(pool *pgxpool.Pool) *LoyaltyTxRunner {
	return &LoyaltyTxRunner{pool: pool}
}

func (r *LoyaltyTxRunner) Run(ctx context.Context, fn func(
	loyaltyRepo repository.LoyaltyRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	tx, err := begin(ctx, r.pool)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewLoyaltyRepository(tx), NewCustomerRepository(tx)); err != nil {
		return err
	}
	return commit(ctx, tx)
}

// OrderTxRunner ejecuta una operación de orden completa (inventario, seriales,
// promociones y puntos) en una sola transacción.
type OrderTxRunner struct {
	pool *pgxpool.Pool
}

func NewOrderTxRunner(pool *pgxpool.Pool) *OrderTxRunner {
	return &OrderTxRunner{pool: pool}
}

func (r *OrderTxRunner) Run(ctx context.Context, fn func(repos order.TxRepos) error) error {
	tx, err := begin(ctx, r.pool)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := order.TxRepos{
		Inventory: NewInventoryRepository(tx),
		Movements: NewStockMovementRepository(tx),
		Serials:   NewSerialRepository(tx),
		Orders:    NewOrderRepository(tx),
		Promos:    NewPromotionRepository(tx),
		Loyalty:   NewLoyaltyRepository(tx),
		Customers: NewCustomerRepository(tx),
		Variants:  NewVariantRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	return commit(ctx, tx)
}

// ReceivingTxRunner ejecuta una recepción de compra en una transacción.
type ReceivingTxRunner struct {
	pool *pgxpool.Pool
}

func NewReceivingTxRunner(pool *pgxpool.Pool) *ReceivingTxRunner {
	return &ReceivingTxRunner{pool: pool}
}

func (r *ReceivingTxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	movRepo repository.StockMovementRepository,
	variantRepo repository.VariantRepository,
	serialRepo repository.SerialRepository,
) error) error {
	tx, err := begin(ctx, r.pool)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInventoryRepository(tx), NewStockMovementRepository(tx), NewVariantRepository(tx), NewSerialRepository(tx)); err != nil {
		return err
	}
	return commit(ctx, tx)
}
