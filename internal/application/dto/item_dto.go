package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/items. Quantity es el stock inicial;
// si es mayor que cero se registra como un movimiento de entrada inicial para
// que el kardex explique la cantidad desde el origen.
type CreateItemRequest struct {
	Name           string          `json:"name"`
	SKU            string          `json:"sku"`
	Description    string          `json:"description,omitempty"`
	CategoryID     string          `json:"category_id"`
	LocationID     string          `json:"location_id"`
	SupplierID     *string         `json:"supplier_id,omitempty"`
	Quantity       int64           `json:"quantity"`
	MinimumStock   int64           `json:"minimum_stock"`
	MaximumStock   *int64          `json:"maximum_stock,omitempty"`
	ReorderPoint   int64           `json:"reorder_point"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Barcode        string          `json:"barcode,omitempty"`
	ExpirationDate *time.Time      `json:"expiration_date,omitempty"`
}

// UpdateItemRequest body para PUT /api/items/:id.
// No incluye quantity: la cantidad solo cambia vía movimientos de stock.
type UpdateItemRequest struct {
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	CategoryID     string          `json:"category_id"`
	LocationID     string          `json:"location_id"`
	SupplierID     *string         `json:"supplier_id,omitempty"`
	MinimumStock   int64           `json:"minimum_stock"`
	MaximumStock   *int64          `json:"maximum_stock,omitempty"`
	ReorderPoint   int64           `json:"reorder_point"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Barcode        string          `json:"barcode,omitempty"`
	ExpirationDate *time.Time      `json:"expiration_date,omitempty"`
}

// ItemResponse representación HTTP de un artículo.
type ItemResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	SKU             string          `json:"sku"`
	Description     string          `json:"description,omitempty"`
	CategoryID      string          `json:"category_id"`
	LocationID      string          `json:"location_id"`
	SupplierID      *string         `json:"supplier_id,omitempty"`
	Quantity        int64           `json:"quantity"`
	MinimumStock    int64           `json:"minimum_stock"`
	MaximumStock    *int64          `json:"maximum_stock,omitempty"`
	ReorderPoint    int64           `json:"reorder_point"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Barcode         string          `json:"barcode,omitempty"`
	ExpirationDate  *time.Time      `json:"expiration_date,omitempty"`
	LastRestockDate *time.Time      `json:"last_restock_date,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	CreatedBy       string          `json:"created_by,omitempty"`
	UpdatedBy       string          `json:"updated_by,omitempty"`
}
