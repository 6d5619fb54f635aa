package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
)

// VariantRepository define el puerto de persistencia para Variant (DIP).
type VariantRepository interface {
	Create(variant *entity.Variant) error
	GetByID(id string) (*entity.Variant, error)
	GetBySKU(sku string) (*entity.Variant, error)
	Update(variant *entity.Variant) error
	// UpdatePurchaseAvg actualiza solo el costo promedio ponderado (lo usa recepción).
	UpdatePurchaseAvg(variantID string, avg decimal.Decimal) error
	List(limit, offset int) ([]*entity.Variant, error)
}

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
}
