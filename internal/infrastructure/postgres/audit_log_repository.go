package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación de AuditLogRepository sobre PostgreSQL.
// Append-only: el registro de auditoría nunca se edita ni se borra.
type AuditLogRepo struct {
	q Querier
}

func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

func (r *AuditLogRepo) Create(log *entity.AuditLog) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO audit_logs (id, action, table_name, record_id, changes, timestamp, user_name)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		log.ID, log.Action, log.TableName, log.RecordID,
		nullable(log.Changes), log.Timestamp, nullable(log.User))
	if err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

// List devuelve entradas ordenadas por timestamp descendente (lo último primero).
func (r *AuditLogRepo) List(limit, offset int) ([]*entity.AuditLog, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, action, table_name, record_id, changes, timestamp, user_name
		 FROM audit_logs ORDER BY timestamp DESC, id DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		var changes, user *string
		if err := rows.Scan(&l.ID, &l.Action, &l.TableName, &l.RecordID, &changes, &l.Timestamp, &user); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		if changes != nil {
			l.Changes = *changes
		}
		if user != nil {
			l.User = *user
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
