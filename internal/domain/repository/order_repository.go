package repository

import "github.com/jhoicas/retail-ops-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para órdenes y sus ítems.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	GetByID(id string) (*entity.Order, error)
	// GetForUpdate bloquea la fila de la orden: serializa transiciones de estado concurrentes.
	GetForUpdate(id string) (*entity.Order, error)
	Update(order *entity.Order) error
	UpdateItem(item *entity.OrderItem) error
	ListItems(orderID string) ([]*entity.OrderItem, error)
	ListByCustomer(customerID string, limit, offset int) ([]*entity.Order, error)
	ListByStatus(status string, limit, offset int) ([]*entity.Order, error)
}
