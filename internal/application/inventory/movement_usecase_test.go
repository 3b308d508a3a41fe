package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/application/audit"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var movNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type movementFixture struct {
	store     *fakeStore
	uc        *inventory.MovementUseCase
	alerts    *inventory.AlertUseCase
	publisher *fakePublisher
}

func newMovementFixture(t *testing.T, allowNegative bool) *movementFixture {
	t.Helper()
	store := newFakeStore()
	clock := &fixedClock{now: movNow}
	log := logger.Nop()
	auditor := audit.NewRecorder(&fakeAuditRepo{s: store}, log)
	publisher := &fakePublisher{}
	alerts := inventory.NewAlertUseCase(
		&fakeAlertRepo{s: store}, &fakeItemRepo{s: store},
		auditor, publisher, clock, 30*24*time.Hour, log,
	)
	uc := inventory.NewMovementUseCase(
		&fakeTxRunner{s: store}, &fakeItemRepo{s: store},
		alerts, auditor, clock, allowNegative, log,
	)
	return &movementFixture{store: store, uc: uc, alerts: alerts, publisher: publisher}
}

func seedItem(store *fakeStore, id string, quantity, minimum int64) {
	store.putItem(&entity.Item{
		ID:           id,
		Name:         "Tornillo 1/4",
		SKU:          "TOR-014",
		Quantity:     quantity,
		MinimumStock: minimum,
	})
}

func apply(fx *movementFixture, itemID, typ string, qty int64) (*entity.Item, []*entity.Alert, error) {
	return fx.uc.ApplyMovement(context.Background(), inventory.ApplyMovementInput{
		ItemID:          itemID,
		QuantityChanged: qty,
		Type:            typ,
		Reason:          "test",
		Actor:           "tester",
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de entrada
// ──────────────────────────────────────────────────────────────────────────────

// Cantidad cero o negativa se rechaza sin persistir nada.
func TestApplyMovement_CantidadInvalida(t *testing.T) {
	fx := newMovementFixture(t, false)
	seedItem(fx.store, "item-1", 100, 10)

	for _, qty := range []int64{0, -5} {
		_, _, err := apply(fx, "item-1", entity.MovementTypeIn, qty)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Empty(t, fx.store.movements, "una entrada inválida no debe dejar movimientos")
	assert.EqualValues(t, 100, fx.store.items["item-1"].Quantity, "la cantidad no debe cambiar")
}

// Tipo de movimiento desconocido se rechaza sin persistir nada.
func TestApplyMovement_TipoInvalido(t *testing.T) {
	fx := newMovementFixture(t, false)
	seedItem(fx.store, "item-1", 100, 10)

	_, _, err := apply(fx, "item-1", "transfer", 5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, fx.store.movements)
}

// Artículo inexistente → ErrNotFound.
func TestApplyMovement_ArticuloInexistente(t *testing.T) {
	fx := newMovementFixture(t, false)

	_, _, err := apply(fx, "no-existe", entity.MovementTypeIn, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Semántica de entrada y salida
// ──────────────────────────────────────────────────────────────────────────────

// Una entrada suma cantidad, estampa last_restock_date y registra el movimiento.
func TestApplyMovement_Entrada(t *testing.T) {
	fx := newMovementFixture(t, false)
	seedItem(fx.store, "item-1", 100, 10)

	updated, _, err := apply(fx, "item-1", entity.MovementTypeIn, 25)
	require.NoError(t, err)

	assert.EqualValues(t, 125, updated.Quantity)
	require.NotNil(t, updated.LastRestockDate, "la entrada debe estampar last_restock_date")
	assert.Equal(t, movNow, *updated.LastRestockDate)

	require.Len(t, fx.store.movements, 1)
	mov := fx.store.movements[0]
	assert.Equal(t, entity.MovementTypeIn, mov.Type)
	assert.EqualValues(t, 25, mov.QuantityChanged, "la magnitud se guarda siempre positiva")
	assert.Equal(t, "tester", mov.CreatedBy)
}

// Una salida resta cantidad y no toca last_restock_date.
func TestApplyMovement_Salida(t *testing.T) {
	fx := newMovementFixture(t, false)
	seedItem(fx.store, "item-1", 100, 10)

	updated, _, err := apply(fx, "item-1", entity.MovementTypeOut, 30)
	require.NoError(t, err)

	assert.EqualValues(t, 70, updated.Quantity)
	assert.Nil(t, updated.LastRestockDate, "la salida no debe estampar last_restock_date")
}

// Salida que dejaría cantidad negativa se rechaza y no persiste nada.
func TestApplyMovement_StockInsuficiente(t *testing.T) {
	fx := newMovementFixture(t, false)
	seedItem(fx.store, "item-1", 10, 0)

	_, _, err := apply(fx, "item-1", entity.MovementTypeOut, 11)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, fx.store.movements, "el rechazo debe revertir la transacción completa")
	assert.EqualValues(t, 10, fx.store.items["item-1"].Quantity)
}

// Salida exacta a cero está permitida.
func TestApplyMovement_SalidaACero(t *testing.T) {
	fx := newMovementFixture(t, false)
	seedItem(fx.store, "item-1", 10, 0)

	updated, _, err := apply(fx, "item-1", entity.MovementTypeOut, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 0, updated.Quantity)
}

// Con la política de stock negativo habilitada, la salida pasa.
func TestApplyMovement_NegativoPermitido(t *testing.T) {
	fx := newMovementFixture(t, true)
	seedItem(fx.store, "item-1", 10, 0)

	updated, _, err := apply(fx, "item-1", entity.MovementTypeOut, 15)
	require.NoError(t, err)
	assert.EqualValues(t, -5, updated.Quantity)
	require.Len(t, fx.store.movements, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad
// ──────────────────────────────────────────────────────────────────────────────

// Si la inserción del movimiento falla, la actualización de cantidad se revierte.
func TestApplyMovement_RollbackSiFallaElMovimiento(t *testing.T) {
	fx := newMovementFixture(t, false)
	seedItem(fx.store, "item-1", 100, 10)
	fx.store.failMovementCreate = errors.New("insert falló")

	_, _, err := apply(fx, "item-1", entity.MovementTypeIn, 25)
	require.Error(t, err)

	assert.EqualValues(t, 100, fx.store.items["item-1"].Quantity,
		"cantidad y movimiento deben confirmar juntos o no confirmar")
	assert.Empty(t, fx.store.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Evaluación de alertas post-commit
// ──────────────────────────────────────────────────────────────────────────────

// Un movimiento que cruza el mínimo crea la alerta y la publica.
func TestApplyMovement_DisparaAlertaLowStock(t *testing.T) {
	fx := newMovementFixture(t, false)
	seedItem(fx.store, "item-1", 15, 10)

	_, alerts, err := apply(fx, "item-1", entity.MovementTypeOut, 5)
	require.NoError(t, err)

	require.Len(t, alerts, 1)
	assert.Equal(t, entity.AlertTypeLowStock, alerts[0].Type)
	assert.Equal(t, entity.AlertStatusActive, alerts[0].Status)
	require.Len(t, fx.publisher.events, 1, "la alerta nueva debe publicarse")
	assert.Equal(t, alerts[0].ID, fx.publisher.events[0].AlertID)
}

// Si el motor de alertas falla, el movimiento ya confirmado se conserva.
func TestApplyMovement_FalloDeAlertasNoRevierteElMovimiento(t *testing.T) {
	fx := newMovementFixture(t, false)
	seedItem(fx.store, "item-1", 15, 10)
	fx.store.failAlertCreate = errors.New("alert store caído")

	updated, alerts, err := apply(fx, "item-1", entity.MovementTypeOut, 10)
	require.NoError(t, err, "el fallo de alertas no es un fallo del movimiento")

	assert.EqualValues(t, 5, updated.Quantity)
	assert.Empty(t, alerts)
	require.Len(t, fx.store.movements, 1, "el movimiento confirmado se conserva")
}

// Dos movimientos consecutivos bajo el mínimo: la segunda evaluación no
// duplica la alerta activa.
func TestApplyMovement_EvaluacionNoDuplicaAlertas(t *testing.T) {
	fx := newMovementFixture(t, false)
	seedItem(fx.store, "item-1", 15, 10)

	_, first, err := apply(fx, "item-1", entity.MovementTypeOut, 5)
	require.NoError(t, err)
	require.Len(t, first, 1)

	_, second, err := apply(fx, "item-1", entity.MovementTypeOut, 2)
	require.NoError(t, err)
	assert.Empty(t, second, "ya existe una alerta activa del mismo tipo")
	assert.Len(t, fx.store.alerts, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia e invariante del kardex
// ──────────────────────────────────────────────────────────────────────────────

// Movimientos concurrentes sobre el mismo artículo no pierden actualizaciones:
// al final la cantidad es la inicial más la suma con signo, y el kardex cuadra.
func TestApplyMovement_ConcurrenciaSinLostUpdates(t *testing.T) {
	fx := newMovementFixture(t, false)
	seedItem(fx.store, "item-1", 1000, 0)

	const workers = 20
	const perWorker = 10

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		typ := entity.MovementTypeIn
		if w%2 == 0 {
			typ = entity.MovementTypeOut
		}
		go func(typ string) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_, _, err := apply(fx, "item-1", typ, 3)
				assert.NoError(t, err)
			}
		}(typ)
	}
	wg.Wait()

	// 10 workers suman y 10 restan la misma magnitud: neto cero.
	assert.EqualValues(t, 1000, fx.store.items["item-1"].Quantity)
	assert.Len(t, fx.store.movements, workers*perWorker)

	var sum int64
	for _, m := range fx.store.movements {
		sum += m.SignedQuantity()
	}
	assert.EqualValues(t, 0, sum, "la suma con signo del kardex debe explicar el delta neto")
}
