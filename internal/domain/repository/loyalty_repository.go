package repository

import "github.com/jhoicas/retail-ops-api/internal/domain/entity"

// LoyaltyRepository define el puerto para el saldo de puntos y sus transacciones.
type LoyaltyRepository interface {
	GetBalance(customerID string) (*entity.LoyaltyPoint, error)
	// GetBalanceForUpdate bloquea la fila del saldo (SELECT FOR UPDATE).
	GetBalanceForUpdate(customerID string) (*entity.LoyaltyPoint, error)
	UpsertBalance(balance *entity.LoyaltyPoint) error
	CreateTransaction(tx *entity.LoyaltyTransaction) error
	// GetEarnByOrder devuelve la transacción EARN de una orden (nil si no existe).
	// Es la guarda de idempotencia de la acumulación y la base de su reversa.
	GetEarnByOrder(orderID string) (*entity.LoyaltyTransaction, error)
	ListTransactions(customerID string, limit, offset int) ([]*entity.LoyaltyTransaction, error)
}
