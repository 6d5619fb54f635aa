package entity

import "time"

// InventoryRecord representa los contadores de inventario de una variante.
// Invariantes: QuantityPhysical >= 0, QuantityReserved >= 0, QuantityReserved <= QuantityPhysical.
type InventoryRecord struct {
	VariantID        string
	QuantityPhysical int
	QuantityReserved int
	MinThreshold     int
	UpdatedAt        time.Time
}

// Available devuelve la cantidad disponible derivada (física - reservada).
func (r *InventoryRecord) Available() int {
	return r.QuantityPhysical - r.QuantityReserved
}

// BelowThreshold indica si el disponible cayó bajo el mínimo configurado.
func (r *InventoryRecord) BelowThreshold() bool {
	return r.Available() < r.MinThreshold
}
