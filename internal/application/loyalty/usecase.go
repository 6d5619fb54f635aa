package loyalty

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	domloyalty "github.com/jhoicas/retail-ops-api/internal/domain/loyalty"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

// UseCase administra el ledger de puntos: acumulación, redención, reversas y
// operaciones administrativas. La configuración se lee como snapshot una vez por
// operación y se pasa como parámetro (nunca estado mutable de larga vida).
type UseCase struct {
	txRunner    TxRunner
	settingRepo repository.SettingRepository
	tierRepo    repository.TierRepository
	loyaltyRepo repository.LoyaltyRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	settingRepo repository.SettingRepository,
	tierRepo repository.TierRepository,
	loyaltyRepo repository.LoyaltyRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, settingRepo: settingRepo, tierRepo: tierRepo, loyaltyRepo: loyaltyRepo}
}

// LoadConfig lee el snapshot de configuración del programa desde el proveedor.
func (uc *UseCase) LoadConfig() (domloyalty.Config, error) {
	var cfg domloyalty.Config
	var err error
	if cfg.EarnEnabled, err = uc.settingRepo.GetBool(domloyalty.KeyEarnEnabled, true); err != nil {
		return cfg, err
	}
	if cfg.RedeemEnabled, err = uc.settingRepo.GetBool(domloyalty.KeyRedeemEnabled, true); err != nil {
		return cfg, err
	}
	if cfg.EarnRate, err = uc.settingRepo.GetDecimal(domloyalty.KeyEarnRate, decimal.NewFromInt(100_000)); err != nil {
		return cfg, err
	}
	if cfg.RedeemRate, err = uc.settingRepo.GetDecimal(domloyalty.KeyRedeemRate, decimal.NewFromInt(1_000)); err != nil {
		return cfg, err
	}
	if cfg.MinOrderEarn, err = uc.settingRepo.GetDecimal(domloyalty.KeyMinOrderEarn, decimal.Zero); err != nil {
		return cfg, err
	}
	if cfg.MinOrderRedeem, err = uc.settingRepo.GetDecimal(domloyalty.KeyMinOrderRedeem, decimal.Zero); err != nil {
		return cfg, err
	}
	if cfg.MaxRedeemPercent, err = uc.settingRepo.GetDecimal(domloyalty.KeyMaxRedeemPercent, decimal.NewFromInt(50)); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ValidateRedemption valida una redención contra el saldo actual sin mutar nada.
func (uc *UseCase) ValidateRedemption(ctx context.Context, customerID string, points int64, orderSubtotal decimal.Decimal) error {
	cfg, err := uc.LoadConfig()
	if err != nil {
		return err
	}
	balance, err := uc.loyaltyRepo.GetBalance(customerID)
	if err != nil {
		return err
	}
	return domloyalty.ValidateRedemption(cfg, balance.Available(), points, orderSubtotal)
}

// RedeemInTx mueve puntos de disponible a usados y registra la transacción REDEEM.
// Revalida contra el saldo bloqueado: la validación previa pudo quedar obsoleta.
func (uc *UseCase) RedeemInTx(
	loyaltyRepo repository.LoyaltyRepository,
	cfg domloyalty.Config,
	customerID, orderID string,
	points int64,
	orderSubtotal decimal.Decimal,
) error {
	balance, err := loyaltyRepo.GetBalanceForUpdate(customerID)
	if err != nil {
		return err
	}
	if err := domloyalty.ValidateRedemption(cfg, balance.Available(), points, orderSubtotal); err != nil {
		return err
	}
	balance.PointsUsed += points
	balance.UpdatedAt = time.Now()
	if err := loyaltyRepo.UpsertBalance(balance); err != nil {
		return err
	}
	return loyaltyRepo.CreateTransaction(newTransaction(customerID, orderID, entity.LoyaltyTxRedeem, points, "redención en orden"))
}

// RestoreInTx devuelve a disponible los puntos redimidos en una orden cancelada.
func (uc *UseCase) RestoreInTx(loyaltyRepo repository.LoyaltyRepository, customerID, orderID string, points int64) error {
	if points <= 0 {
		return nil
	}
	balance, err := loyaltyRepo.GetBalanceForUpdate(customerID)
	if err != nil {
		return err
	}
	if points > balance.PointsUsed {
		return domain.ErrConflict
	}
	balance.PointsUsed -= points
	balance.UpdatedAt = time.Now()
	if err := loyaltyRepo.UpsertBalance(balance); err != nil {
		return err
	}
	return loyaltyRepo.CreateTransaction(newTransaction(customerID, orderID, entity.LoyaltyTxRestore, points, "restauración por cancelación"))
}

// EarnInTx acumula puntos por una orden. No hace nada si la acumulación está
// deshabilitada, la orden ya tiene transacción EARN (idempotencia) o el monto final
// no alcanza el mínimo. La base de cálculo suma de vuelta el valor redimido: la
// acumulación se computa sobre el valor pre-redención.
func (uc *UseCase) EarnInTx(
	loyaltyRepo repository.LoyaltyRepository,
	customerRepo repository.CustomerRepository,
	cfg domloyalty.Config,
	order *entity.Order,
) error {
	if !cfg.EarnEnabled || order.CustomerID == "" {
		return nil
	}
	existing, err := loyaltyRepo.GetEarnByOrder(order.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	if order.FinalAmount.LessThan(cfg.MinOrderEarn) {
		return nil
	}
	base := order.FinalAmount.Add(order.PointsDiscount)
	earned := domloyalty.PointsEarned(base, cfg.EarnRate)
	if earned <= 0 {
		return nil
	}
	balance, err := loyaltyRepo.GetBalanceForUpdate(order.CustomerID)
	if err != nil {
		return err
	}
	balance.TotalPoints += earned
	balance.UpdatedAt = time.Now()
	if err := loyaltyRepo.UpsertBalance(balance); err != nil {
		return err
	}
	if err := loyaltyRepo.CreateTransaction(newTransaction(order.CustomerID, order.ID, entity.LoyaltyTxEarn, earned, "acumulación por orden")); err != nil {
		return err
	}
	return uc.recomputeTierInTx(customerRepo, order.CustomerID, balance.TotalPoints)
}

// RevertEarnInTx descuenta los puntos acumulados por una orden confirmada que se
// cancela, dejando el saldo como antes de la confirmación.
func (uc *UseCase) RevertEarnInTx(
	loyaltyRepo repository.LoyaltyRepository,
	customerRepo repository.CustomerRepository,
	order *entity.Order,
) error {
	if order.CustomerID == "" {
		return nil
	}
	earn, err := loyaltyRepo.GetEarnByOrder(order.ID)
	if err != nil {
		return err
	}
	if earn == nil {
		return nil
	}
	balance, err := loyaltyRepo.GetBalanceForUpdate(order.CustomerID)
	if err != nil {
		return err
	}
	balance.TotalPoints -= earn.Points
	if balance.TotalPoints < balance.PointsUsed {
		return domain.ErrConflict
	}
	balance.UpdatedAt = time.Now()
	if err := loyaltyRepo.UpsertBalance(balance); err != nil {
		return err
	}
	if err := loyaltyRepo.CreateTransaction(newTransaction(order.CustomerID, order.ID, entity.LoyaltyTxAdjust, -earn.Points, "reversa de acumulación por cancelación")); err != nil {
		return err
	}
	return uc.recomputeTierInTx(customerRepo, order.CustomerID, balance.TotalPoints)
}

// Adjust aplica un ajuste administrativo con delta firmado y recalcula el nivel.
func (uc *UseCase) Adjust(ctx context.Context, customerID string, delta int64, reason string) error {
	if customerID == "" || delta == 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		loyaltyRepo repository.LoyaltyRepository,
		customerRepo repository.CustomerRepository,
	) error {
		balance, err := loyaltyRepo.GetBalanceForUpdate(customerID)
		if err != nil {
			return err
		}
		newTotal := balance.TotalPoints + delta
		if newTotal < 0 || newTotal < balance.PointsUsed {
			return domain.ErrInvalidInput
		}
		balance.TotalPoints = newTotal
		balance.UpdatedAt = time.Now()
		if err := loyaltyRepo.UpsertBalance(balance); err != nil {
			return err
		}
		if err := loyaltyRepo.CreateTransaction(newTransaction(customerID, "", entity.LoyaltyTxAdjust, delta, reason)); err != nil {
			return err
		}
		return uc.recomputeTierInTx(customerRepo, customerID, newTotal)
	})
}

// Reset pone el saldo en cero y baja al cliente al nivel más bajo.
func (uc *UseCase) Reset(ctx context.Context, customerID, reason string) error {
	if customerID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		loyaltyRepo repository.LoyaltyRepository,
		customerRepo repository.CustomerRepository,
	) error {
		balance, err := loyaltyRepo.GetBalanceForUpdate(customerID)
		if err != nil {
			return err
		}
		dropped := balance.TotalPoints
		balance.TotalPoints = 0
		balance.PointsUsed = 0
		balance.UpdatedAt = time.Now()
		if err := loyaltyRepo.UpsertBalance(balance); err != nil {
			return err
		}
		if err := loyaltyRepo.CreateTransaction(newTransaction(customerID, "", entity.LoyaltyTxReset, -dropped, reason)); err != nil {
			return err
		}
		tiers, err := uc.tierRepo.List()
		if err != nil {
			return err
		}
		if lowest := domloyalty.LowestTier(tiers); lowest != nil {
			return customerRepo.UpdateTier(customerID, lowest.ID)
		}
		return nil
	})
}

// recomputeTierInTx asigna el nivel de mayor MinPoint <= totalPoints si cambió.
// Sin efectos colaterales más allá de la asignación.
func (uc *UseCase) recomputeTierInTx(customerRepo repository.CustomerRepository, customerID string, totalPoints int64) error {
	tiers, err := uc.tierRepo.List()
	if err != nil {
		return err
	}
	tier := domloyalty.ResolveTier(tiers, totalPoints)
	if tier == nil {
		return nil
	}
	customer, err := customerRepo.GetByID(customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	if customer.TierID == tier.ID {
		return nil
	}
	return customerRepo.UpdateTier(customerID, tier.ID)
}

func newTransaction(customerID, orderID string, kind entity.LoyaltyTxKind, points int64, reason string) *entity.LoyaltyTransaction {
	return &entity.LoyaltyTransaction{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		OrderID:    orderID,
		Kind:       kind,
		Points:     points,
		Reason:     reason,
		CreatedAt:  time.Now(),
	}
}
