package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Alcance de una promoción: descuenta líneas concretas (PRODUCT) o la orden completa (ORDER).
const (
	PromotionScopeProduct = "PRODUCT"
	PromotionScopeOrder   = "ORDER"
)

// Tipo de descuento. Cada tipo tiene su propia función de cálculo en el motor de precios.
const (
	PromotionTypePercentage = "PERCENTAGE"
	PromotionTypeFixed      = "FIXED_AMOUNT"
)

// Estados del ciclo de vida de una promoción.
const (
	PromotionStatusScheduled = "SCHEDULED"
	PromotionStatusActive    = "ACTIVE"
	PromotionStatusExpired   = "EXPIRED"
	PromotionStatusInactive  = "INACTIVE"
)

// Promotion representa una regla de descuento.
// Los conjuntos (conflictos, niveles, productos, categorías) son slices en el dominio;
// la capa de persistencia decide cómo serializarlos.
type Promotion struct {
	ID                string
	Code              string
	Name              string
	Scope             string
	Type              string
	Value             decimal.Decimal  // porcentaje (0-100) o monto fijo según Type
	MaxDiscountAmount *decimal.Decimal // tope para PERCENTAGE; nil = sin tope
	MinOrderValue     decimal.Decimal
	StartDate         time.Time
	EndDate           time.Time
	Status            string
	UsageLimit        int // 0 = sin límite global
	UsageCount        int
	UsagePerCustomer  int  // 0 = sin límite por cliente
	RequiresCode      bool // true = aplicación manual con código
	Priority          int  // desempate de stacking en alcance PRODUCT (mayor gana)
	ConflictIDs       []string
	EligibleTierIDs   []string // vacío = todos los niveles (incluye invitados)
	TargetProductIDs  []string // alcance PRODUCT
	TargetCategoryIDs []string // alcance PRODUCT
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ActiveAt indica si la promoción está ACTIVE y dentro de su ventana de vigencia.
func (p *Promotion) ActiveAt(t time.Time) bool {
	return p.Status == PromotionStatusActive && !t.Before(p.StartDate) && !t.After(p.EndDate)
}

// QuotaExhausted indica si el cupo global está agotado.
func (p *Promotion) QuotaExhausted() bool {
	return p.UsageLimit > 0 && p.UsageCount >= p.UsageLimit
}

// ConflictsWith indica si existe conflicto declarado con otra promoción.
func (p *Promotion) ConflictsWith(otherID string) bool {
	for _, id := range p.ConflictIDs {
		if id == otherID {
			return true
		}
	}
	return false
}

// PromotionUsage representa un uso confirmado de una promoción en una orden.
// Exactamente un registro por (promoción, orden); se crea al confirmar, nunca al cotizar.
type PromotionUsage struct {
	ID             string
	PromotionID    string
	OrderID        string
	CustomerID     string // vacío en venta a invitado
	DiscountAmount decimal.Decimal
	CreatedAt      time.Time
}
