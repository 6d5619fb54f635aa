package entity

import "time"

// LoyaltyPoint representa el saldo de puntos de un cliente (un registro por cliente).
// Invariantes: TotalPoints >= PointsUsed >= 0.
type LoyaltyPoint struct {
	CustomerID  string
	TotalPoints int64
	PointsUsed  int64
	UpdatedAt   time.Time
}

// Available devuelve los puntos disponibles para redimir.
func (p *LoyaltyPoint) Available() int64 {
	return p.TotalPoints - p.PointsUsed
}

// LoyaltyTxKind clasifica una transacción de puntos. Cada tipo tiene su propia
// semántica de aplicación en el ledger; no hay rama por defecto.
type LoyaltyTxKind string

const (
	LoyaltyTxEarn    LoyaltyTxKind = "EARN"
	LoyaltyTxRedeem  LoyaltyTxKind = "REDEEM"
	LoyaltyTxRestore LoyaltyTxKind = "RESTORE" // reversa de REDEEM al cancelar la orden
	LoyaltyTxAdjust  LoyaltyTxKind = "ADJUST"
	LoyaltyTxReset   LoyaltyTxKind = "RESET"
)

// LoyaltyTransaction representa un movimiento de puntos (registro inmutable de auditoría).
// Points lleva signo explícito solo en ADJUST; en EARN/REDEEM es la magnitud del movimiento.
type LoyaltyTransaction struct {
	ID         string
	CustomerID string
	OrderID    string // vacío en operaciones administrativas
	Kind       LoyaltyTxKind
	Points     int64
	Reason     string
	CreatedAt  time.Time
}
