package entity

import "time"

// Product representa un producto del catálogo. Las unidades vendibles son sus variantes.
// WarrantyMonths define la garantía que se congela en cada ítem al completar la venta.
type Product struct {
	ID             string
	CategoryID     string
	Name           string
	Description    string
	WarrantyMonths int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
