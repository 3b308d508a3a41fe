package repository

import (
	"time"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
// La cantidad solo se escribe vía UpdateQuantity dentro de la transacción
// del procesador de movimientos; Update nunca toca la columna quantity.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetBySKU(sku string) (*entity.Item, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	// Serializa los movimientos concurrentes sobre el mismo artículo.
	GetForUpdate(id string) (*entity.Item, error)
	Update(item *entity.Item) error
	UpdateQuantity(itemID string, quantity int64, lastRestock *time.Time, updatedBy string, updatedAt time.Time) error
	List(limit, offset int) ([]*entity.Item, error)
	Delete(id string) error
}
