package inventory

import (
	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// QueryUseCase capa de consulta/reconciliación: proyecciones de solo lectura
// sobre el último estado confirmado (cantidad actual, historial del kardex,
// alertas). Lee del mismo store donde confirman las transacciones, así que es
// consistente read-after-write para quien aplica un movimiento y consulta.
type QueryUseCase struct {
	itemRepo     repository.ItemRepository
	movementRepo repository.StockMovementRepository
	alertRepo    repository.AlertRepository
}

// NewQueryUseCase construye la capa de consulta.
func NewQueryUseCase(
	itemRepo repository.ItemRepository,
	movementRepo repository.StockMovementRepository,
	alertRepo repository.AlertRepository,
) *QueryUseCase {
	return &QueryUseCase{itemRepo: itemRepo, movementRepo: movementRepo, alertRepo: alertRepo}
}

// GetItem devuelve el estado actual del artículo.
func (uc *QueryUseCase) GetItem(id string) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// MovementHistory devuelve el kardex del artículo ordenado por timestamp
// ascendente. El historial es append-only, por lo que es seguro de cachear.
func (uc *QueryUseCase) MovementHistory(itemID string, page dto.PageRequest) ([]*entity.StockMovement, error) {
	page.DefaultPage()
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movementRepo.ListByItem(itemID, page.Limit, page.Offset)
}

// ActiveAlerts devuelve las alertas activas de un artículo.
func (uc *QueryUseCase) ActiveAlerts(itemID string) ([]*entity.Alert, error) {
	return uc.alertRepo.List(repository.AlertFilter{
		ItemID: itemID,
		Status: entity.AlertStatusActive,
		Limit:  100,
	})
}

// VerifyLedger comprueba el invariante del kardex: la suma con signo de todos
// los movimientos del artículo debe igualar su cantidad actual (el stock
// inicial se registra como movimiento de entrada al crear el artículo).
func (uc *QueryUseCase) VerifyLedger(itemID string) (*dto.LedgerCheckResponse, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	var sum int64
	offset := 0
	const batch = 500
	for {
		movements, err := uc.movementRepo.ListByItem(itemID, batch, offset)
		if err != nil {
			return nil, err
		}
		for _, m := range movements {
			sum += m.SignedQuantity()
		}
		if len(movements) < batch {
			break
		}
		offset += batch
	}

	return &dto.LedgerCheckResponse{
		ItemID:     itemID,
		Quantity:   item.Quantity,
		LedgerSum:  sum,
		Consistent: sum == item.Quantity,
	}, nil
}
