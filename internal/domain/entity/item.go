package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo del inventario. Quantity se modifica únicamente
// a través de movimientos de stock (nunca por ediciones directas), de modo que
// el kardex del artículo siempre explique la cantidad actual.
type Item struct {
	ID              string
	Name            string
	SKU             string // código único
	Description     string
	CategoryID      string
	LocationID      string
	SupplierID      *string
	Quantity        int64
	MinimumStock    int64
	MaximumStock    *int64 // opcional; si existe debe ser >= MinimumStock
	ReorderPoint    int64
	UnitPrice       decimal.Decimal
	Barcode         string
	ExpirationDate  *time.Time
	LastRestockDate *time.Time // actualizada en cada entrada (in)
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CreatedBy       string
	UpdatedBy       string
}
