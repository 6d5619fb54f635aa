package repository

import "github.com/jhoicas/retail-ops-api/internal/domain/entity"

// SerialRepository define el puerto de persistencia para unidades serializadas.
type SerialRepository interface {
	Create(serial *entity.Serial) error
	GetByID(id string) (*entity.Serial, error)
	GetForUpdate(id string) (*entity.Serial, error)
	// GetBySerialNumberForUpdate busca por número de serie dentro de una variante y bloquea la fila.
	GetBySerialNumberForUpdate(variantID, serialNumber string) (*entity.Serial, error)
	// ListAvailableForUpdate devuelve hasta limit seriales AVAILABLE de la variante,
	// en orden ascendente de creación, bloqueando las filas devueltas.
	ListAvailableForUpdate(variantID string, limit int) ([]*entity.Serial, error)
	CountAvailable(variantID string) (int, error)
	Update(serial *entity.Serial) error
	ListByOrder(orderID string) ([]*entity.Serial, error)
}
