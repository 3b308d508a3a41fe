package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	domaininv "github.com/jhoicas/kardex-api/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

const testWindow = 30 * 24 * time.Hour

func item(quantity, minimum int64) *entity.Item {
	return &entity.Item{
		ID:           "item-1",
		Name:         "Tornillo 1/4",
		Quantity:     quantity,
		MinimumStock: minimum,
	}
}

func types(conds []domaininv.AlertCondition) []string {
	out := make([]string, 0, len(conds))
	for _, c := range conds {
		out = append(out, c.Type)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Regla low_stock
// ──────────────────────────────────────────────────────────────────────────────

// Cantidad por encima del mínimo → ninguna condición.
func TestEvaluateThresholds_SinCondiciones(t *testing.T) {
	conds := domaininv.EvaluateThresholds(item(100, 10), testNow, testWindow)
	assert.Empty(t, conds, "con stock sano no debe dispararse ninguna regla")
}

// Cantidad igual al mínimo dispara low_stock (el límite es inclusivo).
func TestEvaluateThresholds_LowStockEnElLimite(t *testing.T) {
	conds := domaininv.EvaluateThresholds(item(10, 10), testNow, testWindow)
	require.Len(t, conds, 1)
	assert.Equal(t, entity.AlertTypeLowStock, conds[0].Type)
	assert.Contains(t, conds[0].Message, "Tornillo 1/4", "el mensaje debe incluir el nombre del artículo")
	assert.Contains(t, conds[0].Message, "10", "el mensaje debe incluir la cantidad")
}

// Cantidad cero con mínimo cero también es low_stock.
func TestEvaluateThresholds_LowStockConCero(t *testing.T) {
	conds := domaininv.EvaluateThresholds(item(0, 0), testNow, testWindow)
	assert.Equal(t, []string{entity.AlertTypeLowStock}, types(conds))
}

// ──────────────────────────────────────────────────────────────────────────────
// Regla overstock
// ──────────────────────────────────────────────────────────────────────────────

// Sin máximo definido la regla de sobrestock no aplica nunca.
func TestEvaluateThresholds_OverstockSinMaximoNoAplica(t *testing.T) {
	conds := domaininv.EvaluateThresholds(item(1_000_000, 10), testNow, testWindow)
	assert.Empty(t, conds)
}

// Cantidad igual al máximo dispara overstock (límite inclusivo).
func TestEvaluateThresholds_OverstockEnElLimite(t *testing.T) {
	it := item(200, 10)
	max := int64(200)
	it.MaximumStock = &max

	conds := domaininv.EvaluateThresholds(it, testNow, testWindow)
	assert.Equal(t, []string{entity.AlertTypeOverstock}, types(conds))
}

// ──────────────────────────────────────────────────────────────────────────────
// Regla expiring
// ──────────────────────────────────────────────────────────────────────────────

// Vencimiento dentro de la ventana dispara expiring.
func TestEvaluateThresholds_ExpiringDentroDeVentana(t *testing.T) {
	it := item(100, 10)
	exp := testNow.Add(10 * 24 * time.Hour)
	it.ExpirationDate = &exp

	conds := domaininv.EvaluateThresholds(it, testNow, testWindow)
	assert.Equal(t, []string{entity.AlertTypeExpiring}, types(conds))
	assert.Contains(t, conds[0].Message, exp.Format("2006-01-02"))
}

// Vencimiento exactamente en el borde de la ventana también dispara.
func TestEvaluateThresholds_ExpiringEnElBorde(t *testing.T) {
	it := item(100, 10)
	exp := testNow.Add(testWindow)
	it.ExpirationDate = &exp

	conds := domaininv.EvaluateThresholds(it, testNow, testWindow)
	assert.Equal(t, []string{entity.AlertTypeExpiring}, types(conds))
}

// Vencimiento más allá de la ventana no dispara.
func TestEvaluateThresholds_ExpiringFueraDeVentana(t *testing.T) {
	it := item(100, 10)
	exp := testNow.Add(testWindow + time.Hour)
	it.ExpirationDate = &exp

	conds := domaininv.EvaluateThresholds(it, testNow, testWindow)
	assert.Empty(t, conds)
}

// Un artículo ya vencido sigue disparando expiring.
func TestEvaluateThresholds_YaVencido(t *testing.T) {
	it := item(100, 10)
	exp := testNow.Add(-24 * time.Hour)
	it.ExpirationDate = &exp

	conds := domaininv.EvaluateThresholds(it, testNow, testWindow)
	assert.Equal(t, []string{entity.AlertTypeExpiring}, types(conds))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reglas independientes
// ──────────────────────────────────────────────────────────────────────────────

// Varias condiciones pueden dispararse a la vez sobre el mismo artículo.
func TestEvaluateThresholds_VariasCondicionesALaVez(t *testing.T) {
	it := item(5, 10) // low_stock
	exp := testNow.Add(24 * time.Hour)
	it.ExpirationDate = &exp // expiring

	conds := domaininv.EvaluateThresholds(it, testNow, testWindow)
	assert.ElementsMatch(t,
		[]string{entity.AlertTypeLowStock, entity.AlertTypeExpiring},
		types(conds))
}
