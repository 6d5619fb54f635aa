package repository

import "github.com/jhoicas/retail-ops-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para usuarios operadores.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}

// AuditRepository define el puerto de escritura del registro de auditoría.
// La escritura es best-effort: el caller registra el error y continúa.
type AuditRepository interface {
	Create(entry *entity.AuditEntry) error
}
