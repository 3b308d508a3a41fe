package entity

import "time"

// Tipos de alerta derivados del estado del artículo.
const (
	AlertTypeLowStock  = "low_stock"
	AlertTypeOverstock = "overstock"
	AlertTypeExpiring  = "expiring"
)

// Estados de una alerta.
const (
	AlertStatusActive   = "active"
	AlertStatusResolved = "resolved"
	AlertStatusIgnored  = "ignored"
)

// ValidAlertStatus indica si el estado pertenece al conjunto permitido.
func ValidAlertStatus(s string) bool {
	return s == AlertStatusActive || s == AlertStatusResolved || s == AlertStatusIgnored
}

// Alert es un registro derivado y mutable: una condición de umbral sobre un
// artículo. El motor de alertas solo crea alertas activas; la transición a
// resolved/ignored siempre es una acción externa explícita.
type Alert struct {
	ID         string
	ItemID     string
	Type       string // low_stock, overstock, expiring
	Message    string // snapshot denormalizado del estado al momento de crearla
	Status     string // active, resolved, ignored
	CreatedAt  time.Time
	ResolvedAt *time.Time // solo en transición a resolved
	ResolvedBy *string
}
