package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la actualización de cantidad
// y la inserción del movimiento sean una única unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}

// Clock abstrae el reloj para que la regla de vencimiento sea determinista en tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock devuelve el reloj del sistema.
func SystemClock() Clock { return systemClock{} }

// AlertEvent evento publicado cuando el motor crea una alerta.
type AlertEvent struct {
	AlertID   string    `json:"alert_id"`
	ItemID    string    `json:"item_id"`
	AlertType string    `json:"alert_type"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// AlertPublisher publica eventos de alerta hacia el broker (best-effort:
// un fallo de publicación nunca afecta la alerta ya persistida).
type AlertPublisher interface {
	PublishAlertEvent(ctx context.Context, event *AlertEvent) error
}
