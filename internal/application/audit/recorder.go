package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

// Recorder escribe entradas de auditoría de forma best-effort: un fallo de
// auditoría se loggea pero nunca aborta la operación principal.
type Recorder struct {
	repo repository.AuditLogRepository
	log  *logger.Logger
}

// NewRecorder construye el recorder de auditoría.
func NewRecorder(repo repository.AuditLogRepository, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

// Record registra una acción sobre una tabla. changes es JSON plano con los
// campos relevantes; user es el actor inyectado por la capa que llama.
func (r *Recorder) Record(action, tableName, recordID, changes, user string) {
	if r == nil || r.repo == nil {
		return
	}
	entry := &entity.AuditLog{
		ID:        uuid.New().String(),
		Action:    action,
		TableName: tableName,
		RecordID:  recordID,
		Changes:   changes,
		Timestamp: time.Now(),
		User:      user,
	}
	if err := r.repo.Create(entry); err != nil && r.log != nil {
		r.log.Warn().Err(err).
			Str("action", action).
			Str("table", tableName).
			Msg("entrada de auditoría no registrada")
	}
}

// List devuelve entradas de auditoría paginadas (más recientes primero).
func (r *Recorder) List(limit, offset int) ([]*entity.AuditLog, error) {
	if limit <= 0 {
		limit = 20
	}
	return r.repo.List(limit, offset)
}
