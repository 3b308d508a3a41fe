package dto

import "time"

// AlertResponse representación HTTP de una alerta derivada.
type AlertResponse struct {
	ID         string     `json:"id"`
	ItemID     string     `json:"item_id"`
	AlertType  string     `json:"alert_type"`
	Message    string     `json:"message"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy *string    `json:"resolved_by,omitempty"`
}

// UpdateAlertStatusRequest body para PUT /api/alerts/:id.
type UpdateAlertStatusRequest struct {
	Status string `json:"status"` // active, resolved, ignored
}
