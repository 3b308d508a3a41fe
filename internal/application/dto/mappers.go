package dto

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// Constructores de responses a partir de entidades de dominio.

// NewItemResponse mapea un Item de dominio a su representación HTTP.
func NewItemResponse(i *entity.Item) *ItemResponse {
	if i == nil {
		return nil
	}
	return &ItemResponse{
		ID:              i.ID,
		Name:            i.Name,
		SKU:             i.SKU,
		Description:     i.Description,
		CategoryID:      i.CategoryID,
		LocationID:      i.LocationID,
		SupplierID:      i.SupplierID,
		Quantity:        i.Quantity,
		MinimumStock:    i.MinimumStock,
		MaximumStock:    i.MaximumStock,
		ReorderPoint:    i.ReorderPoint,
		UnitPrice:       i.UnitPrice,
		Barcode:         i.Barcode,
		ExpirationDate:  i.ExpirationDate,
		LastRestockDate: i.LastRestockDate,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
		CreatedBy:       i.CreatedBy,
		UpdatedBy:       i.UpdatedBy,
	}
}

// NewMovementResponse mapea un StockMovement a su representación HTTP.
func NewMovementResponse(m *entity.StockMovement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:              m.ID,
		ItemID:          m.ItemID,
		QuantityChanged: m.QuantityChanged,
		MovementType:    m.Type,
		Reason:          m.Reason,
		Timestamp:       m.Timestamp,
		CreatedBy:       m.CreatedBy,
	}
}

// NewAlertResponse mapea una Alert a su representación HTTP.
func NewAlertResponse(a *entity.Alert) *AlertResponse {
	if a == nil {
		return nil
	}
	return &AlertResponse{
		ID:         a.ID,
		ItemID:     a.ItemID,
		AlertType:  a.Type,
		Message:    a.Message,
		Status:     a.Status,
		CreatedAt:  a.CreatedAt,
		ResolvedAt: a.ResolvedAt,
		ResolvedBy: a.ResolvedBy,
	}
}

// NewAlertResponses mapea un slice de alertas (nunca devuelve nil).
func NewAlertResponses(alerts []*entity.Alert) []AlertResponse {
	out := make([]AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, *NewAlertResponse(a))
	}
	return out
}
