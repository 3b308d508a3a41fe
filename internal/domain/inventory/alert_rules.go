package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// AlertCondition describe una condición de umbral disparada para un artículo:
// el tipo de alerta y el mensaje denormalizado con el estado al momento de evaluar.
type AlertCondition struct {
	Type    string
	Message string
}

// EvaluateThresholds aplica las reglas de alerta sobre el estado actual del
// artículo (servicio de dominio, función pura de item + now):
//
//	low_stock:  Quantity <= MinimumStock
//	overstock:  MaximumStock definido y Quantity >= MaximumStock
//	expiring:   ExpirationDate definida y ExpirationDate <= now + expiryWindow
//
// Cada regla se evalúa de forma independiente; un artículo puede disparar
// cero, una o varias condiciones a la vez.
func EvaluateThresholds(item *entity.Item, now time.Time, expiryWindow time.Duration) []AlertCondition {
	var conditions []AlertCondition

	if item.Quantity <= item.MinimumStock {
		conditions = append(conditions, AlertCondition{
			Type: entity.AlertTypeLowStock,
			Message: fmt.Sprintf("stock bajo: %q tiene %d unidades (mínimo %d)",
				item.Name, item.Quantity, item.MinimumStock),
		})
	}

	if item.MaximumStock != nil && item.Quantity >= *item.MaximumStock {
		conditions = append(conditions, AlertCondition{
			Type: entity.AlertTypeOverstock,
			Message: fmt.Sprintf("sobrestock: %q tiene %d unidades (máximo %d)",
				item.Name, item.Quantity, *item.MaximumStock),
		})
	}

	if item.ExpirationDate != nil && !item.ExpirationDate.After(now.Add(expiryWindow)) {
		conditions = append(conditions, AlertCondition{
			Type: entity.AlertTypeExpiring,
			Message: fmt.Sprintf("por vencer: %q vence el %s",
				item.Name, item.ExpirationDate.Format("2006-01-02")),
		})
	}

	return conditions
}
