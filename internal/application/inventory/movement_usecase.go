package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/kardex-api/internal/application/audit"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

// MovementUseCase procesa movimientos de stock de forma transaccional con
// bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback: actualización de
// cantidad e inserción del movimiento suceden juntas o no suceden.
type MovementUseCase struct {
	txRunner      TxRunner
	itemRepo      repository.ItemRepository
	alerts        *AlertUseCase
	auditor       *audit.Recorder
	clock         Clock
	allowNegative bool
	log           *logger.Logger
}

// NewMovementUseCase construye el procesador de movimientos.
// allowNegative habilita la política de permitir stock negativo (por defecto
// la salida que dejaría cantidad negativa se rechaza con ErrInsufficientStock).
func NewMovementUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	alerts *AlertUseCase,
	auditor *audit.Recorder,
	clock Clock,
	allowNegative bool,
	log *logger.Logger,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:      txRunner,
		itemRepo:      itemRepo,
		alerts:        alerts,
		auditor:       auditor,
		clock:         clock,
		allowNegative: allowNegative,
		log:           log,
	}
}

// ApplyMovementInput entrada para aplicar un movimiento sobre un artículo.
// Actor lo inyecta la capa que llama (API/auth); nunca se deriva aquí.
type ApplyMovementInput struct {
	ItemID          string
	QuantityChanged int64
	Type            string
	Reason          string
	Actor           string
}

// ApplyMovement valida la entrada, serializa el read-modify-write por artículo
// con bloqueo de fila dentro de una transacción, y al confirmar dispara la
// evaluación de alertas exactamente una vez contra el estado resultante.
//
// Un fallo del motor de alertas no revierte el movimiento ya confirmado:
// los movimientos son la fuente de verdad y las alertas estado derivado
// best-effort; el fallo se loggea y la respuesta omite las alertas.
func (uc *MovementUseCase) ApplyMovement(ctx context.Context, in ApplyMovementInput) (*entity.Item, []*entity.Alert, error) {
	if in.QuantityChanged <= 0 {
		return nil, nil, fmt.Errorf("%w: quantity_changed debe ser positivo", domain.ErrInvalidInput)
	}
	if !entity.ValidMovementType(in.Type) {
		return nil, nil, fmt.Errorf("%w: movement_type debe ser in u out", domain.ErrInvalidInput)
	}

	// Existencia fuera de la tx; la relectura con FOR UPDATE dentro de la tx
	// es la que decide sobre el estado definitivo.
	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, domain.ErrNotFound
	}

	now := uc.clock.Now()
	var updated *entity.Item
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		// Bloquea la fila del artículo: dos movimientos concurrentes sobre el
		// mismo artículo no pueden leer la misma cantidad (lost update).
		locked, err := itemRepo.GetForUpdate(in.ItemID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}

		delta := in.QuantityChanged
		if in.Type == entity.MovementTypeOut {
			delta = -delta
		}
		newQty := locked.Quantity + delta
		if newQty < 0 && !uc.allowNegative {
			return domain.ErrInsufficientStock
		}

		lastRestock := locked.LastRestockDate
		if in.Type == entity.MovementTypeIn {
			t := now
			lastRestock = &t
		}
		if err := itemRepo.UpdateQuantity(locked.ID, newQty, lastRestock, in.Actor, now); err != nil {
			return err
		}

		mov := &entity.StockMovement{
			ID:              uuid.New().String(),
			ItemID:          locked.ID,
			QuantityChanged: in.QuantityChanged,
			Type:            in.Type,
			Reason:          in.Reason,
			Timestamp:       now,
			CreatedBy:       in.Actor,
		}
		if err := movementRepo.Create(mov); err != nil {
			return err
		}

		locked.Quantity = newQty
		locked.LastRestockDate = lastRestock
		locked.UpdatedAt = now
		locked.UpdatedBy = in.Actor
		updated = locked
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	uc.auditor.Record("movement", "stock_movements", updated.ID,
		fmt.Sprintf(`{"movement_type":%q,"quantity_changed":%d,"new_quantity":%d}`, in.Type, in.QuantityChanged, updated.Quantity),
		in.Actor)

	// Evaluación post-commit, exactamente una vez por movimiento aplicado.
	alerts, err := uc.alerts.Evaluate(ctx, updated)
	if err != nil {
		uc.log.Error().Err(err).
			Str("item_id", updated.ID).
			Msg("evaluación de alertas falló tras movimiento confirmado")
		return updated, nil, nil
	}
	return updated, alerts, nil
}
