package notify

import (
	"github.com/jhoicas/retail-ops-api/internal/application/order"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
	"github.com/jhoicas/retail-ops-api/pkg/logger"
)

var _ order.AuditSink = (*AuditSink)(nil)

// AuditSink persiste entradas de auditoría vía repositorio. La escritura es
// best-effort: un fallo se registra en el log y no se propaga al caller.
type AuditSink struct {
	repo repository.AuditRepository
	log  *logger.Logger
}

// NewAuditSink construye el sumidero de auditoría.
func NewAuditSink(repo repository.AuditRepository, log *logger.Logger) *AuditSink {
	return &AuditSink{repo: repo, log: log}
}

// Log persiste una entrada de auditoría.
func (s *AuditSink) Log(actorID, module, action, resourceID, oldValue, newValue, outcome string) {
	entry := &entity.AuditEntry{
		ActorID:    actorID,
		Module:     module,
		Action:     action,
		ResourceID: resourceID,
		OldValue:   oldValue,
		NewValue:   newValue,
		Outcome:    outcome,
	}
	if err := s.repo.Create(entry); err != nil {
		s.log.Error().Err(err).
			Str("module", module).
			Str("action", action).
			Str("resource_id", resourceID).
			Msg("no se pudo escribir auditoría")
	}
}
