package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newQueryFixture(t *testing.T) (*fakeStore, *inventory.QueryUseCase) {
	t.Helper()
	store := newFakeStore()
	uc := inventory.NewQueryUseCase(
		&fakeItemRepo{s: store},
		&fakeMovementRepo{s: store},
		&fakeAlertRepo{s: store},
	)
	return store, uc
}

func seedMovement(store *fakeStore, itemID, typ string, qty int64, at time.Time) {
	store.movements = append(store.movements, &entity.StockMovement{
		ID:              itemID + typ + at.String(),
		ItemID:          itemID,
		QuantityChanged: qty,
		Type:            typ,
		Timestamp:       at,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// GetItem y MovementHistory
// ──────────────────────────────────────────────────────────────────────────────

func TestGetItem_NotFound(t *testing.T) {
	_, uc := newQueryFixture(t)
	_, err := uc.GetItem("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El historial exige que el artículo exista.
func TestMovementHistory_ArticuloInexistente(t *testing.T) {
	_, uc := newQueryFixture(t)
	_, err := uc.MovementHistory("no-existe", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovementHistory_DevuelveSoloElArticulo(t *testing.T) {
	store, uc := newQueryFixture(t)
	store.putItem(&entity.Item{ID: "item-1", Quantity: 10})
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	seedMovement(store, "item-1", entity.MovementTypeIn, 10, base)
	seedMovement(store, "item-2", entity.MovementTypeIn, 99, base)

	movs, err := uc.MovementHistory("item-1", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "item-1", movs[0].ItemID)
}

// ──────────────────────────────────────────────────────────────────────────────
// VerifyLedger: el kardex explica la cantidad
// ──────────────────────────────────────────────────────────────────────────────

// Kardex consistente: suma con signo == cantidad actual.
func TestVerifyLedger_Consistente(t *testing.T) {
	store, uc := newQueryFixture(t)
	store.putItem(&entity.Item{ID: "item-1", Quantity: 70})
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	seedMovement(store, "item-1", entity.MovementTypeIn, 100, base)
	seedMovement(store, "item-1", entity.MovementTypeOut, 30, base.Add(time.Hour))

	out, err := uc.VerifyLedger("item-1")
	require.NoError(t, err)

	assert.EqualValues(t, 70, out.Quantity)
	assert.EqualValues(t, 70, out.LedgerSum)
	assert.True(t, out.Consistent)
}

// Kardex inconsistente (cantidad manipulada fuera del procesador) se reporta.
func TestVerifyLedger_Inconsistente(t *testing.T) {
	store, uc := newQueryFixture(t)
	store.putItem(&entity.Item{ID: "item-1", Quantity: 99})
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	seedMovement(store, "item-1", entity.MovementTypeIn, 100, base)
	seedMovement(store, "item-1", entity.MovementTypeOut, 30, base.Add(time.Hour))

	out, err := uc.VerifyLedger("item-1")
	require.NoError(t, err)

	assert.EqualValues(t, 99, out.Quantity)
	assert.EqualValues(t, 70, out.LedgerSum)
	assert.False(t, out.Consistent, "la discrepancia debe detectarse")
}

// Artículo sin movimientos y cantidad cero es consistente.
func TestVerifyLedger_SinMovimientos(t *testing.T) {
	store, uc := newQueryFixture(t)
	store.putItem(&entity.Item{ID: "item-1", Quantity: 0})

	out, err := uc.VerifyLedger("item-1")
	require.NoError(t, err)
	assert.True(t, out.Consistent)
	assert.EqualValues(t, 0, out.LedgerSum)
}

// La suma pagina por lotes: más movimientos que el tamaño de lote interno.
func TestVerifyLedger_MuchosMovimientos(t *testing.T) {
	store, uc := newQueryFixture(t)
	const n = 1203
	store.putItem(&entity.Item{ID: "item-1", Quantity: n})
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		seedMovement(store, "item-1", entity.MovementTypeIn, 1, base.Add(time.Duration(i)*time.Second))
	}

	out, err := uc.VerifyLedger("item-1")
	require.NoError(t, err)
	assert.EqualValues(t, n, out.LedgerSum)
	assert.True(t, out.Consistent)
}

// ──────────────────────────────────────────────────────────────────────────────
// ActiveAlerts
// ──────────────────────────────────────────────────────────────────────────────

func TestActiveAlerts_SoloActivasDelArticulo(t *testing.T) {
	store, uc := newQueryFixture(t)
	store.alerts["a1"] = &entity.Alert{ID: "a1", ItemID: "item-1", Type: entity.AlertTypeLowStock, Status: entity.AlertStatusActive}
	store.alerts["a2"] = &entity.Alert{ID: "a2", ItemID: "item-1", Type: entity.AlertTypeExpiring, Status: entity.AlertStatusResolved}
	store.alerts["a3"] = &entity.Alert{ID: "a3", ItemID: "item-2", Type: entity.AlertTypeLowStock, Status: entity.AlertStatusActive}

	alerts, err := uc.ActiveAlerts("item-1")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "a1", alerts[0].ID)
}
