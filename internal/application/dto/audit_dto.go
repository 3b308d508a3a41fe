package dto

import "time"

// AuditLogResponse representación HTTP de una entrada de auditoría.
type AuditLogResponse struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	TableName string    `json:"table_name"`
	RecordID  string    `json:"record_id,omitempty"`
	Changes   string    `json:"changes,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user,omitempty"`
}
