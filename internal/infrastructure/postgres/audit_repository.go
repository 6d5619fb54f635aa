package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementación de AuditRepository sobre PostgreSQL.
// Escribe siempre con el pool (fuera de la transacción de negocio): la entrada de
// auditoría sobrevive aunque la operación se revierta, y su falla no revierte nada.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador. Pasar el pool (no una tx).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Create persiste una entrada de auditoría.
func (r *AuditRepo) Create(e *entity.AuditEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	query := `
		INSERT INTO audit_entries (id, actor_id, module, action, resource_id, old_value, new_value, outcome, created_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, now())`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.ActorID, e.Module, e.Action, e.ResourceID, e.OldValue, e.NewValue, e.Outcome)
	if err != nil {
		return fmt.Errorf("create audit entry: %w", err)
	}
	return nil
}
