package order

import (
	"context"
	"time"

	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
)

// Confirm pasa PENDING -> CONFIRMED: convierte las reservas en salida definitiva,
// acumula puntos (idempotente) y confirma el uso de promociones. Todo en una tx.
func (uc *UseCase) Confirm(ctx context.Context, orderID, userID string) error {
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		ord, err := uc.lockTransition(r, orderID, entity.OrderStatusConfirmed)
		if err != nil {
			return err
		}
		if err := uc.confirmEffectsInTx(r, ord, userID); err != nil {
			return err
		}
		now := time.Now()
		ord.Status = entity.OrderStatusConfirmed
		ord.ConfirmedAt = &now
		ord.UpdatedAt = now
		return r.Orders.Update(ord)
	})
	if err != nil {
		uc.audit.Log(userID, "order", "confirm", orderID, "", "", entity.AuditOutcomeFailure)
		return err
	}
	uc.audit.Log(userID, "order", "confirm", orderID, entity.OrderStatusPending, entity.OrderStatusConfirmed, entity.AuditOutcomeSuccess)
	return nil
}

// Complete cierra la orden. Una orden PENDING (venta de mostrador que salta CONFIRMED)
// ejecuta aquí los efectos de confirmación. Estampa la garantía de cada ítem y acumula
// el monto final en el total de compras del cliente.
func (uc *UseCase) Complete(ctx context.Context, orderID, userID string) error {
	var fromStatus string
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		ord, err := uc.lockTransition(r, orderID, entity.OrderStatusCompleted)
		if err != nil {
			return err
		}
		fromStatus = ord.Status
		if ord.Status == entity.OrderStatusPending {
			if err := uc.confirmEffectsInTx(r, ord, userID); err != nil {
				return err
			}
		}
		now := time.Now()
		items, err := r.Orders.ListItems(ord.ID)
		if err != nil {
			return err
		}
		for _, item := range items {
			months, err := uc.warrantyMonths(r, item.VariantID)
			if err != nil {
				return err
			}
			expiry := now.AddDate(0, months, 0)
			item.WarrantyExpiry = &expiry
			if err := r.Orders.UpdateItem(item); err != nil {
				return err
			}
		}
		if ord.CustomerID != "" {
			if err := r.Customers.AccrueTotalPurchase(ord.CustomerID, ord.FinalAmount); err != nil {
				return err
			}
		}
		ord.Status = entity.OrderStatusCompleted
		ord.CompletedAt = &now
		ord.UpdatedAt = now
		return r.Orders.Update(ord)
	})
	if err != nil {
		uc.audit.Log(userID, "order", "complete", orderID, "", "", entity.AuditOutcomeFailure)
		return err
	}
	uc.audit.Log(userID, "order", "complete", orderID, fromStatus, entity.OrderStatusCompleted, entity.AuditOutcomeSuccess)
	return nil
}

// Cancel revierte la orden: es la inversa exacta de la creación (y de la confirmación
// si ya ocurrió). Inventario, seriales, puntos y cupos vuelven a su valor previo.
func (uc *UseCase) Cancel(ctx context.Context, orderID, userID string) error {
	var fromStatus string
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		ord, err := uc.lockTransition(r, orderID, entity.OrderStatusCancelled)
		if err != nil {
			return err
		}
		fromStatus = ord.Status
		qtyByVariant, err := uc.itemQuantities(r, ord.ID)
		if err != nil {
			return err
		}
		switch ord.Status {
		case entity.OrderStatusPending:
			// La reserva sigue viva: se libera
			for variantID, qty := range qtyByVariant {
				if err := uc.inventoryUC.UnreserveInTx(r.Inventory, variantID, qty); err != nil {
					return err
				}
			}
		case entity.OrderStatusConfirmed:
			// La salida ya se confirmó: el stock físico vuelve a entrar
			for variantID, qty := range qtyByVariant {
				variant, err := r.Variants.GetByID(variantID)
				if err != nil {
					return err
				}
				if variant == nil {
					return domain.ErrNotFound
				}
				if err := uc.inventoryUC.AddStockInTx(
					r.Inventory, r.Movements, variantID, qty,
					variant.PurchasePriceAvg, entity.MovementTypeADJUSTMENT, userID, ord.ID,
				); err != nil {
					return err
				}
			}
		}

		serials, err := r.Serials.ListByOrder(ord.ID)
		if err != nil {
			return err
		}
		for _, s := range serials {
			if err := uc.serialUC.ReleaseInTx(r.Serials, s.ID); err != nil {
				return err
			}
		}

		if ord.CustomerID != "" {
			if err := uc.loyaltyUC.RestoreInTx(r.Loyalty, ord.CustomerID, ord.ID, ord.PointsUsed); err != nil {
				return err
			}
			if err := uc.loyaltyUC.RevertEarnInTx(r.Loyalty, r.Customers, ord); err != nil {
				return err
			}
		}
		if err := uc.promoUC.RestoreUsageInTx(r.Promos, ord.ID); err != nil {
			return err
		}

		now := time.Now()
		ord.Status = entity.OrderStatusCancelled
		ord.CancelledAt = &now
		ord.UpdatedAt = now
		return r.Orders.Update(ord)
	})
	if err != nil {
		uc.audit.Log(userID, "order", "cancel", orderID, "", "", entity.AuditOutcomeFailure)
		return err
	}
	uc.audit.Log(userID, "order", "cancel", orderID, fromStatus, entity.OrderStatusCancelled, entity.AuditOutcomeSuccess)
	return nil
}

// confirmEffectsInTx ejecuta los efectos de confirmación: salida definitiva de stock,
// acumulación de puntos y confirmación de cupos de promoción. Idempotente por diseño:
// la acumulación se guarda por orden y los usos de promoción se escriben una sola vez.
func (uc *UseCase) confirmEffectsInTx(r TxRepos, ord *entity.Order, userID string) error {
	qtyByVariant, err := uc.itemQuantities(r, ord.ID)
	if err != nil {
		return err
	}
	for variantID, qty := range qtyByVariant {
		variant, err := r.Variants.GetByID(variantID)
		if err != nil {
			return err
		}
		if variant == nil {
			return domain.ErrNotFound
		}
		if err := uc.inventoryUC.ConfirmStockOutInTx(
			r.Inventory, r.Movements, variantID, qty,
			variant.PurchasePriceAvg, userID, ord.ID,
		); err != nil {
			return err
		}
	}
	cfg, err := uc.loyaltyUC.LoadConfig()
	if err != nil {
		return err
	}
	if err := uc.loyaltyUC.EarnInTx(r.Loyalty, r.Customers, cfg, ord); err != nil {
		return err
	}
	return uc.promoUC.ConfirmUsageInTx(r.Promos, ord)
}

// lockTransition bloquea la orden y valida la transición al estado destino.
func (uc *UseCase) lockTransition(r TxRepos, orderID, to string) (*entity.Order, error) {
	ord, err := r.Orders.GetForUpdate(orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransition(ord.Status, to) {
		return nil, domain.ErrInvalidTransition
	}
	return ord, nil
}

// itemQuantities agrega los ítems de la orden por variante (cada ítem cuenta 1).
func (uc *UseCase) itemQuantities(r TxRepos, orderID string) (map[string]int, error) {
	items, err := r.Orders.ListItems(orderID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrNotFound
	}
	qty := map[string]int{}
	for _, item := range items {
		qty[item.VariantID]++
	}
	return qty, nil
}

// warrantyMonths resuelve la garantía del producto de una variante.
func (uc *UseCase) warrantyMonths(r TxRepos, variantID string) (int, error) {
	variant, err := r.Variants.GetByID(variantID)
	if err != nil {
		return 0, err
	}
	if variant == nil {
		return 0, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(variant.ProductID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}
	return product.WarrantyMonths, nil
}

// Get devuelve una orden con sus ítems (lectura).
func (uc *UseCase) Get(ctx context.Context, orderID string) (*entity.Order, []*entity.OrderItem, error) {
	var ord *entity.Order
	var items []*entity.OrderItem
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		var err error
		ord, err = r.Orders.GetByID(orderID)
		if err != nil {
			return err
		}
		if ord == nil {
			return domain.ErrNotFound
		}
		items, err = r.Orders.ListItems(orderID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return ord, items, nil
}
