package entity

import "time"

// AuditLog registra quién hizo qué sobre qué tabla. Escritura best-effort
// desde los casos de uso que mutan estado; el formato de Changes es JSON plano.
type AuditLog struct {
	ID        string
	Action    string // create, update, delete, movement, alert_status
	TableName string
	RecordID  string
	Changes   string
	Timestamp time.Time
	User      string
}
