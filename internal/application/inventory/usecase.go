package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

// LedgerUseCase mantiene los contadores físico/reservado/disponible por variante.
// Todas las mutaciones bloquean la fila de la variante (SELECT FOR UPDATE): dos reservas
// concurrentes por la última unidad se serializan y la perdedora recibe ErrInsufficientStock.
//
// Los métodos ...InTx reciben repositorios atados a la transacción del caller, para que
// el orquestador de órdenes componga reservas, seriales y puntos en una sola tx.
type LedgerUseCase struct {
	txRunner TxRunner
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner}
}

// ReserveInTx toma qty unidades del disponible: QuantityReserved += qty.
// Falla con ErrInsufficientStock si qty excede el disponible.
func (uc *LedgerUseCase) ReserveInTx(invRepo repository.InventoryRepository, variantID string, qty int) error {
	if qty <= 0 {
		return domain.ErrInvalidInput
	}
	rec, err := invRepo.GetForUpdate(variantID)
	if err != nil {
		return err
	}
	if qty > rec.Available() {
		return domain.ErrInsufficientStock
	}
	rec.QuantityReserved += qty
	rec.UpdatedAt = time.Now()
	return invRepo.Upsert(rec)
}

// UnreserveInTx es la inversa de ReserveInTx; se usa al cancelar una orden PENDING.
// Solo puede liberar cantidad previamente reservada.
func (uc *LedgerUseCase) UnreserveInTx(invRepo repository.InventoryRepository, variantID string, qty int) error {
	if qty <= 0 {
		return domain.ErrInvalidInput
	}
	rec, err := invRepo.GetForUpdate(variantID)
	if err != nil {
		return err
	}
	if qty > rec.QuantityReserved {
		return domain.ErrConflict
	}
	rec.QuantityReserved -= qty
	rec.UpdatedAt = time.Now()
	return invRepo.Upsert(rec)
}

// ConfirmStockOutInTx convierte una reserva en salida definitiva:
// QuantityPhysical -= qty y QuantityReserved -= qty, con movimiento OUT firmado negativo.
// Solo debe llamarse por cantidad previamente reservada.
func (uc *LedgerUseCase) ConfirmStockOutInTx(
	invRepo repository.InventoryRepository,
	movRepo repository.StockMovementRepository,
	variantID string,
	qty int,
	unitCost decimal.Decimal,
	userID, transactionID string,
) error {
	if qty <= 0 {
		return domain.ErrInvalidInput
	}
	rec, err := invRepo.GetForUpdate(variantID)
	if err != nil {
		return err
	}
	if qty > rec.QuantityReserved {
		return domain.ErrConflict
	}
	rec.QuantityPhysical -= qty
	rec.QuantityReserved -= qty
	rec.UpdatedAt = time.Now()
	if err := invRepo.Upsert(rec); err != nil {
		return err
	}
	return movRepo.Create(newMovement(transactionID, variantID, entity.MovementTypeOUT, -qty, unitCost, userID))
}

// AddStockInTx incrementa el físico (y por derivación el disponible). Lo usan la
// recepción de compras (IN) y la devolución de stock al cancelar órdenes confirmadas.
func (uc *LedgerUseCase) AddStockInTx(
	invRepo repository.InventoryRepository,
	movRepo repository.StockMovementRepository,
	variantID string,
	qty int,
	unitCost decimal.Decimal,
	movementType, userID, transactionID string,
) error {
	if qty <= 0 {
		return domain.ErrInvalidInput
	}
	rec, err := invRepo.GetForUpdate(variantID)
	if err != nil {
		return err
	}
	rec.QuantityPhysical += qty
	rec.UpdatedAt = time.Now()
	if err := invRepo.Upsert(rec); err != nil {
		return err
	}
	return movRepo.Create(newMovement(transactionID, variantID, movementType, qty, unitCost, userID))
}

// AdjustInput entrada para un ajuste manual de inventario.
// Quantity lleva signo explícito: el tipo ADJUSTMENT nunca determina el sentido.
type AdjustInput struct {
	VariantID string
	Quantity  int // positivo suma físico, negativo resta del disponible
	Reason    string
	UserID    string
}

// AdjustStock aplica un ajuste aprobado en su propia transacción. Un ajuste negativo
// no puede tocar cantidad reservada: se valida contra el disponible.
func (uc *LedgerUseCase) AdjustStock(ctx context.Context, in AdjustInput) error {
	if in.VariantID == "" || in.Quantity == 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
		variantRepo repository.VariantRepository,
	) error {
		variant, err := variantRepo.GetByID(in.VariantID)
		if err != nil {
			return err
		}
		if variant == nil {
			return domain.ErrNotFound
		}
		rec, err := invRepo.GetForUpdate(in.VariantID)
		if err != nil {
			return err
		}
		if in.Quantity < 0 && -in.Quantity > rec.Available() {
			return domain.ErrInsufficientStock
		}
		rec.QuantityPhysical += in.Quantity
		rec.UpdatedAt = time.Now()
		if err := invRepo.Upsert(rec); err != nil {
			return err
		}
		return movRepo.Create(newMovement(
			uuid.New().String(), in.VariantID, entity.MovementTypeADJUSTMENT,
			in.Quantity, variant.PurchasePriceAvg, in.UserID,
		))
	})
}

func newMovement(transactionID, variantID, movType string, qty int, unitCost decimal.Decimal, userID string) *entity.StockMovement {
	now := time.Now()
	q := decimal.NewFromInt(int64(qty))
	return &entity.StockMovement{
		ID:            uuid.New().String(),
		TransactionID: transactionID,
		VariantID:     variantID,
		Type:          movType,
		Quantity:      qty,
		UnitCost:      unitCost,
		TotalCost:     q.Mul(unitCost),
		Date:          now,
		CreatedAt:     now,
		CreatedBy:     userID,
	}
}
