package entity

import "time"

// Estados de una unidad serializada.
const (
	SerialStatusAvailable = "AVAILABLE"
	SerialStatusSold      = "SOLD"
	SerialStatusWarranty  = "WARRANTY"
	SerialStatusDefective = "DEFECTIVE"
)

// Serial representa una unidad física individual de una variante, con número de serie.
// Un serial SOLD referencia exactamente una orden abierta a la vez.
type Serial struct {
	ID           string
	VariantID    string
	SerialNumber string
	Status       string
	OrderID      string // vacío si no está vendido
	SoldDate     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanRelease indica si el serial puede volver a AVAILABLE (cualquier estado no terminal).
// DEFECTIVE es terminal: una unidad defectuosa no vuelve al stock vendible.
func (s *Serial) CanRelease() bool {
	return s.Status != SerialStatusDefective
}
