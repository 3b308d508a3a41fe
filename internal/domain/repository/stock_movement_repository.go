package repository

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// StockMovementRepository define el puerto de persistencia para el kardex.
// Solo inserta y lee: los movimientos son inmutables (append-only).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// ListByItem devuelve el historial del artículo ordenado por timestamp ascendente.
	ListByItem(itemID string, limit, offset int) ([]*entity.StockMovement, error)
	CountByItem(itemID string) (int64, error)
}
