package repository

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// AlertFilter filtros para listar alertas.
type AlertFilter struct {
	ItemID string
	Status string
	Type   string
	Limit  int
	Offset int
}

// AlertRepository define el puerto de persistencia para alertas derivadas.
type AlertRepository interface {
	Create(alert *entity.Alert) error
	GetByID(id string) (*entity.Alert, error)
	// FindActiveByItemAndType soporta la deduplicación del motor:
	// a lo sumo una alerta activa por (artículo, tipo).
	FindActiveByItemAndType(itemID, alertType string) (*entity.Alert, error)
	List(filter AlertFilter) ([]*entity.Alert, error)
	UpdateStatus(alert *entity.Alert) error
	CountByItem(itemID string) (int64, error)
}
