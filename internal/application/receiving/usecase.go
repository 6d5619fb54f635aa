package receiving

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinventory "github.com/jhoicas/retail-ops-api/internal/application/inventory"
	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	dominventory "github.com/jhoicas/retail-ops-api/internal/domain/inventory"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

// UseCase registra la recepción de una orden de compra: suma stock físico, actualiza
// el costo promedio ponderado de la variante y da de alta los seriales recibidos.
type UseCase struct {
	txRunner    TxRunner
	inventoryUC *appinventory.LedgerUseCase
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, inventoryUC *appinventory.LedgerUseCase) *UseCase {
	return &UseCase{txRunner: txRunner, inventoryUC: inventoryUC}
}

// ReceiveLine es una línea de recepción. Si la variante es serializada, SerialNumbers
// debe traer exactamente Quantity números de serie nuevos.
type ReceiveLine struct {
	VariantID     string
	Quantity      int
	ImportPrice   decimal.Decimal
	SerialNumbers []string
}

// ReceiveInput entrada de una recepción de compra.
type ReceiveInput struct {
	Reference string // número de la orden de compra
	UserID    string
	Lines     []ReceiveLine
}

// Receive aplica la recepción en una sola transacción.
// NuevoPromedio = (qtyActual*promedioActual + qtyRecibida*precioImportación) / (qtyActual+qtyRecibida),
// con fallback al precio de importación cuando el stock actual es cero.
func (uc *UseCase) Receive(ctx context.Context, in ReceiveInput) error {
	if len(in.Lines) == 0 {
		return domain.ErrInvalidInput
	}
	for _, l := range in.Lines {
		if l.VariantID == "" || l.Quantity <= 0 || l.ImportPrice.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		if len(l.SerialNumbers) > 0 && len(l.SerialNumbers) != l.Quantity {
			return domain.ErrInvalidInput
		}
	}

	receiptID := in.Reference
	if receiptID == "" {
		receiptID = uuid.New().String()
	}
	now := time.Now()

	return uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
		variantRepo repository.VariantRepository,
		serialRepo repository.SerialRepository,
	) error {
		for _, l := range in.Lines {
			variant, err := variantRepo.GetByID(l.VariantID)
			if err != nil {
				return err
			}
			if variant == nil {
				return domain.ErrNotFound
			}
			// Bloquea la fila para leer el físico actual de forma estable
			rec, err := invRepo.GetForUpdate(l.VariantID)
			if err != nil {
				return err
			}
			newAvg := dominventory.MovingAverageCost(
				decimal.NewFromInt(int64(rec.QuantityPhysical)),
				variant.PurchasePriceAvg,
				decimal.NewFromInt(int64(l.Quantity)),
				l.ImportPrice,
			)
			if err := variantRepo.UpdatePurchaseAvg(l.VariantID, newAvg); err != nil {
				return err
			}
			if err := uc.inventoryUC.AddStockInTx(
				invRepo, movRepo, l.VariantID, l.Quantity,
				l.ImportPrice, entity.MovementTypeIN, in.UserID, receiptID,
			); err != nil {
				return err
			}
			for _, sn := range l.SerialNumbers {
				s := &entity.Serial{
					ID:           uuid.New().String(),
					VariantID:    l.VariantID,
					SerialNumber: sn,
					Status:       entity.SerialStatusAvailable,
					CreatedAt:    now,
					UpdatedAt:    now,
				}
				if err := serialRepo.Create(s); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
