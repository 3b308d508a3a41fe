package repository

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// AuditLogRepository define el puerto de persistencia para el registro de auditoría.
type AuditLogRepository interface {
	Create(log *entity.AuditLog) error
	List(limit, offset int) ([]*entity.AuditLog, error)
}
