package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	UpdateTier(customerID, tierID string) error
	// AccrueTotalPurchase suma el monto final de una orden completada al acumulado del cliente.
	AccrueTotalPurchase(customerID string, amount decimal.Decimal) error
	List(limit, offset int) ([]*entity.Customer, error)
}

// TierRepository define el puerto de lectura de niveles de fidelización.
type TierRepository interface {
	GetByID(id string) (*entity.CustomerTier, error)
	List() ([]*entity.CustomerTier, error)
}
