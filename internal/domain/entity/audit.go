package entity

import "time"

// Resultados de una acción auditada.
const (
	AuditOutcomeSuccess = "SUCCESS"
	AuditOutcomeFailure = "FAILURE"
)

// AuditEntry representa un evento de auditoría emitido después de cada paso que
// cambia estado. Su escritura es best-effort: fallar al auditar no revierte el negocio.
type AuditEntry struct {
	ID         string
	ActorID    string
	Module     string // "order", "inventory", "loyalty", "promotion", "receiving"
	Action     string
	ResourceID string
	OldValue   string
	NewValue   string
	Outcome    string
	CreatedAt  time.Time
}
