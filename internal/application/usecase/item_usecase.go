package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/kardex-api/internal/application/audit"
	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para artículos. La cantidad no se edita aquí:
// el stock inicial se registra como movimiento de entrada al crear, y desde
// entonces todo cambio de cantidad pasa por el procesador de movimientos.
type ItemUseCase struct {
	itemRepo     repository.ItemRepository
	movementRepo repository.StockMovementRepository
	alertRepo    repository.AlertRepository
	txRunner     inventory.TxRunner
	auditor      *audit.Recorder
	clock        inventory.Clock
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	itemRepo repository.ItemRepository,
	movementRepo repository.StockMovementRepository,
	alertRepo repository.AlertRepository,
	txRunner inventory.TxRunner,
	auditor *audit.Recorder,
	clock inventory.Clock,
) *ItemUseCase {
	return &ItemUseCase{
		itemRepo:     itemRepo,
		movementRepo: movementRepo,
		alertRepo:    alertRepo,
		txRunner:     txRunner,
		auditor:      auditor,
		clock:        clock,
	}
}

func validateThresholds(minimum int64, maximum *int64, reorder int64) error {
	if minimum < 0 || reorder < 0 {
		return fmt.Errorf("%w: los umbrales no pueden ser negativos", domain.ErrInvalidInput)
	}
	if maximum != nil && *maximum < minimum {
		return fmt.Errorf("%w: maximum_stock debe ser >= minimum_stock", domain.ErrInvalidInput)
	}
	return nil
}

// Create crea un artículo. Si el stock inicial es mayor que cero, el artículo
// y su movimiento de entrada inicial se insertan en la misma transacción, de
// modo que el kardex explica la cantidad desde el origen.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest, actor string) (*dto.ItemResponse, error) {
	if in.Name == "" || in.SKU == "" || in.CategoryID == "" || in.LocationID == "" {
		return nil, fmt.Errorf("%w: name, sku, category_id y location_id son obligatorios", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity no puede ser negativa", domain.ErrInvalidInput)
	}
	if err := validateThresholds(in.MinimumStock, in.MaximumStock, in.ReorderPoint); err != nil {
		return nil, err
	}
	if in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit_price no puede ser negativo", domain.ErrInvalidInput)
	}
	existing, err := uc.itemRepo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := uc.clock.Now()
	item := &entity.Item{
		ID:             uuid.New().String(),
		Name:           in.Name,
		SKU:            in.SKU,
		Description:    in.Description,
		CategoryID:     in.CategoryID,
		LocationID:     in.LocationID,
		SupplierID:     in.SupplierID,
		Quantity:       in.Quantity,
		MinimumStock:   in.MinimumStock,
		MaximumStock:   in.MaximumStock,
		ReorderPoint:   in.ReorderPoint,
		UnitPrice:      in.UnitPrice,
		Barcode:        in.Barcode,
		ExpirationDate: in.ExpirationDate,
		CreatedAt:      now,
		UpdatedAt:      now,
		CreatedBy:      actor,
		UpdatedBy:      actor,
	}
	if in.Quantity > 0 {
		t := now
		item.LastRestockDate = &t
		err = uc.txRunner.Run(ctx, func(
			itemRepo repository.ItemRepository,
			movementRepo repository.StockMovementRepository,
		) error {
			if err := itemRepo.Create(item); err != nil {
				return err
			}
			return movementRepo.Create(&entity.StockMovement{
				ID:              uuid.New().String(),
				ItemID:          item.ID,
				QuantityChanged: in.Quantity,
				Type:            entity.MovementTypeIn,
				Reason:          "stock inicial",
				Timestamp:       now,
				CreatedBy:       actor,
			})
		})
	} else {
		err = uc.itemRepo.Create(item)
	}
	if err != nil {
		return nil, err
	}

	uc.auditor.Record("create", "items", item.ID,
		fmt.Sprintf(`{"sku":%q,"quantity":%d}`, item.SKU, item.Quantity), actor)
	return dto.NewItemResponse(item), nil
}

// GetByID obtiene un artículo por ID.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewItemResponse(item), nil
}

// List lista artículos paginados.
func (uc *ItemUseCase) List(page dto.PageRequest) ([]*dto.ItemResponse, error) {
	page.DefaultPage()
	items, err := uc.itemRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewItemResponse(it))
	}
	return out, nil
}

// Update actualiza los atributos editables del artículo. No toca Quantity ni
// LastRestockDate: esos campos pertenecen al procesador de movimientos.
func (uc *ItemUseCase) Update(id string, in dto.UpdateItemRequest, actor string) (*dto.ItemResponse, error) {
	if in.Name == "" || in.CategoryID == "" || in.LocationID == "" {
		return nil, fmt.Errorf("%w: name, category_id y location_id son obligatorios", domain.ErrInvalidInput)
	}
	if err := validateThresholds(in.MinimumStock, in.MaximumStock, in.ReorderPoint); err != nil {
		return nil, err
	}
	if in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit_price no puede ser negativo", domain.ErrInvalidInput)
	}
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	item.Name = in.Name
	item.Description = in.Description
	item.CategoryID = in.CategoryID
	item.LocationID = in.LocationID
	item.SupplierID = in.SupplierID
	item.MinimumStock = in.MinimumStock
	item.MaximumStock = in.MaximumStock
	item.ReorderPoint = in.ReorderPoint
	item.UnitPrice = in.UnitPrice
	item.Barcode = in.Barcode
	item.ExpirationDate = in.ExpirationDate
	item.UpdatedAt = uc.clock.Now()
	item.UpdatedBy = actor

	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	uc.auditor.Record("update", "items", item.ID, fmt.Sprintf(`{"name":%q}`, item.Name), actor)
	return dto.NewItemResponse(item), nil
}

// Delete elimina un artículo sin historial. Si existen movimientos o alertas
// que lo referencian se rechaza con ErrConflict: el kardex es append-only y
// borrar su sujeto lo dejaría huérfano.
func (uc *ItemUseCase) Delete(id, actor string) error {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	movements, err := uc.movementRepo.CountByItem(id)
	if err != nil {
		return err
	}
	alerts, err := uc.alertRepo.CountByItem(id)
	if err != nil {
		return err
	}
	if movements > 0 || alerts > 0 {
		return fmt.Errorf("%w: el artículo tiene movimientos o alertas asociados", domain.ErrConflict)
	}
	if err := uc.itemRepo.Delete(id); err != nil {
		return err
	}
	uc.auditor.Record("delete", "items", id, fmt.Sprintf(`{"sku":%q}`, item.SKU), actor)
	return nil
}
