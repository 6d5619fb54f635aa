package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinventory "github.com/jhoicas/retail-ops-api/internal/application/inventory"
	apployalty "github.com/jhoicas/retail-ops-api/internal/application/loyalty"
	apppromotion "github.com/jhoicas/retail-ops-api/internal/application/promotion"
	appserial "github.com/jhoicas/retail-ops-api/internal/application/serial"
	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/pricing"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

// UseCase es el orquestador de órdenes: compone el ledger de inventario, el asignador
// de seriales, el motor de promociones y el ledger de puntos, y es dueño de la máquina
// de estados de la orden. Toda operación multi-paso corre en una sola transacción.
type UseCase struct {
	txRunner     TxRunner
	variantRepo  repository.VariantRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	inventoryUC  *appinventory.LedgerUseCase
	serialUC     *appserial.AllocatorUseCase
	promoUC      *apppromotion.UseCase
	loyaltyUC    *apployalty.UseCase
	audit        AuditSink
	notifier     Notifier
}

// NewUseCase construye el orquestador.
func NewUseCase(
	txRunner TxRunner,
	variantRepo repository.VariantRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	inventoryUC *appinventory.LedgerUseCase,
	serialUC *appserial.AllocatorUseCase,
	promoUC *apppromotion.UseCase,
	loyaltyUC *apployalty.UseCase,
	audit AuditSink,
	notifier Notifier,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		variantRepo:  variantRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		inventoryUC:  inventoryUC,
		serialUC:     serialUC,
		promoUC:      promoUC,
		loyaltyUC:    loyaltyUC,
		audit:        audit,
		notifier:     notifier,
	}
}

// CreateItemInput es una línea solicitada. Una cantidad N se expande en N ítems de
// cantidad 1, cada uno atado a su serial.
type CreateItemInput struct {
	VariantID    string
	Quantity     int
	SerialNumber string // opcional: serial concreto pedido por el cliente
}

// CreateOrderInput entrada para crear una orden.
type CreateOrderInput struct {
	CustomerID   string // vacío = venta a invitado
	UserID       string
	RedeemPoints int64
	ManualCodes  []string
	Items        []CreateItemInput
}

// Create crea la orden en PENDING: reserva inventario, asigna y vende seriales,
// cotiza promociones, valida y aplica la redención de puntos y consolida el total.
// Todo en una transacción: cualquier falla la aborta sin mutación parcial.
func (uc *UseCase) Create(ctx context.Context, in CreateOrderInput) (*entity.Order, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.VariantID == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.RedeemPoints < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.RedeemPoints > 0 && in.CustomerID == "" {
		return nil, domain.ErrInvalidInput
	}

	// Validaciones de catálogo y cliente fuera de la transacción (solo lectura)
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
	}
	lines, variantsByID, err := uc.buildCartLines(in.Items)
	if err != nil {
		return nil, err
	}

	cfg, err := uc.loyaltyUC.LoadConfig()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	orderID := uuid.New().String()
	var created *entity.Order

	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		// 1) Reserva + asignación de seriales por línea. Reserva y seriales se mueven
		// juntos para que los contadores y el conteo AVAILABLE no diverjan.
		var items []*entity.OrderItem
		for _, it := range in.Items {
			if err := uc.inventoryUC.ReserveInTx(r.Inventory, it.VariantID, it.Quantity); err != nil {
				return err
			}
			serials, err := uc.serialUC.AllocateInTx(r.Serials, it.VariantID, it.SerialNumber, it.Quantity)
			if err != nil {
				return err
			}
			variant := variantsByID[it.VariantID]
			for _, s := range serials {
				if err := uc.serialUC.MarkSoldInTx(r.Serials, s, orderID); err != nil {
					return err
				}
				items = append(items, &entity.OrderItem{
					ID:        uuid.New().String(),
					OrderID:   orderID,
					VariantID: it.VariantID,
					SerialID:  s.ID,
					UnitPrice: variant.SellingPrice,
					CreatedAt: now,
				})
			}
		}

		// 2) Cotización de promociones (sin efectos: los cupos se confirman después)
		breakdown, err := uc.promoUC.Quote(ctx, lines, in.CustomerID, in.ManualCodes)
		if err != nil {
			return err
		}

		// 3) Redención de puntos contra el saldo bloqueado
		pointsDiscount := decimal.Zero
		if in.RedeemPoints > 0 {
			if err := uc.loyaltyUC.RedeemInTx(r.Loyalty, cfg, in.CustomerID, orderID, in.RedeemPoints, breakdown.Subtotal); err != nil {
				return err
			}
			pointsDiscount = decimal.NewFromInt(in.RedeemPoints).Mul(cfg.RedeemRate)
		}

		// 4) Consolidado financiero con snapshots de tasas
		finalAmount := breakdown.FinalAmount.Sub(pointsDiscount)
		if finalAmount.LessThan(decimal.Zero) {
			finalAmount = decimal.Zero
		}
		applied := make([]entity.OrderPromotion, 0, len(breakdown.Applied))
		for _, ap := range breakdown.Applied {
			applied = append(applied, entity.OrderPromotion{
				PromotionID: ap.PromotionID, Code: ap.Code, Scope: ap.Scope, Amount: ap.Amount,
			})
		}
		created = &entity.Order{
			ID:                   orderID,
			Code:                 fmt.Sprintf("ORD-%d", now.Unix()),
			CustomerID:           in.CustomerID,
			Status:               entity.OrderStatusPending,
			Subtotal:             breakdown.Subtotal,
			TierDiscountRate:     breakdown.TierDiscountRate,
			TierDiscount:         breakdown.TierDiscount,
			ProductPromoDiscount: breakdown.ProductDiscount,
			OrderPromoDiscount:   breakdown.OrderDiscount,
			PointsUsed:           in.RedeemPoints,
			PointRateSnapshot:    cfg.RedeemRate,
			PointsDiscount:       pointsDiscount,
			TotalDiscount:        breakdown.TotalDiscount.Add(pointsDiscount),
			FinalAmount:          finalAmount,
			AppliedPromotions:    applied,
			CreatedBy:            in.UserID,
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		if err := r.Orders.Create(created); err != nil {
			return err
		}
		// Reparte el descuento PRODUCT de cada línea entre sus ítems expandidos
		lineDiscounts := map[string]decimal.Decimal{}
		for _, ld := range breakdown.LineDiscounts {
			lineDiscounts[ld.VariantID] = ld.Amount
		}
		perItem := uc.perItemDiscounts(in.Items, lineDiscounts)
		for _, item := range items {
			item.LineDiscount = perItem[item.VariantID]
			if err := r.Orders.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.audit.Log(in.UserID, "order", "create", orderID, "", "", entity.AuditOutcomeFailure)
		return nil, err
	}

	uc.audit.Log(in.UserID, "order", "create", created.ID, "", entity.OrderStatusPending, entity.AuditOutcomeSuccess)
	uc.notifier.OrderCreated(created)
	return created, nil
}

// buildCartLines resuelve las líneas solicitadas contra el catálogo.
func (uc *UseCase) buildCartLines(items []CreateItemInput) ([]pricing.CartLine, map[string]*entity.Variant, error) {
	lines := make([]pricing.CartLine, 0, len(items))
	variants := map[string]*entity.Variant{}
	for _, it := range items {
		variant, err := uc.variantRepo.GetByID(it.VariantID)
		if err != nil {
			return nil, nil, err
		}
		if variant == nil {
			return nil, nil, domain.ErrNotFound
		}
		product, err := uc.productRepo.GetByID(variant.ProductID)
		if err != nil {
			return nil, nil, err
		}
		if product == nil {
			return nil, nil, domain.ErrNotFound
		}
		variants[variant.ID] = variant
		lines = append(lines, pricing.CartLine{
			VariantID:  variant.ID,
			ProductID:  product.ID,
			CategoryID: product.CategoryID,
			UnitPrice:  variant.SellingPrice,
			Quantity:   it.Quantity,
		})
	}
	return lines, variants, nil
}

// perItemDiscounts divide el descuento de cada línea entre sus ítems expandidos.
func (uc *UseCase) perItemDiscounts(items []CreateItemInput, lineDiscounts map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := map[string]decimal.Decimal{}
	for _, it := range items {
		total, ok := lineDiscounts[it.VariantID]
		if !ok || it.Quantity == 0 {
			continue
		}
		out[it.VariantID] = total.Div(decimal.NewFromInt(int64(it.Quantity)))
	}
	return out
}
