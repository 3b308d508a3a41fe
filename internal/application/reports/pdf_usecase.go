package reports

import (
	"context"
	"time"

	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// InventoryReportRow una fila del reporte: un artículo con su valorización.
type InventoryReportRow struct {
	SKU          string
	Name         string
	Quantity     int64
	MinimumStock int64
	UnitPrice    decimal.Decimal
	Value        decimal.Decimal // Quantity * UnitPrice
	LowStock     bool
}

// InventoryReportData datos agregados del reporte de inventario.
type InventoryReportData struct {
	GeneratedAt   time.Time
	Rows          []InventoryReportRow
	TotalValue    decimal.Decimal
	LowStockCount int
}

// InventoryReportGenerator puerto para renderizar el reporte (PDF).
type InventoryReportGenerator interface {
	GenerateInventoryReport(ctx context.Context, data *InventoryReportData) ([]byte, error)
}

// PDFUseCase arma los datos de valorización del inventario y delega el
// renderizado al generador.
type PDFUseCase struct {
	itemRepo  repository.ItemRepository
	generator InventoryReportGenerator
	clock     inventory.Clock
}

// NewPDFUseCase construye el caso de uso de reportes.
func NewPDFUseCase(itemRepo repository.ItemRepository, generator InventoryReportGenerator, clock inventory.Clock) *PDFUseCase {
	return &PDFUseCase{itemRepo: itemRepo, generator: generator, clock: clock}
}

// GenerateInventoryPDF genera el PDF de valorización y stock bajo de todo el
// inventario actual.
func (uc *PDFUseCase) GenerateInventoryPDF(ctx context.Context) ([]byte, error) {
	data := &InventoryReportData{
		GeneratedAt: uc.clock.Now(),
		TotalValue:  decimal.Zero,
	}

	offset := 0
	const batch = 200
	for {
		items, err := uc.itemRepo.List(batch, offset)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			value := it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
			low := it.Quantity <= it.MinimumStock
			if low {
				data.LowStockCount++
			}
			data.Rows = append(data.Rows, InventoryReportRow{
				SKU:          it.SKU,
				Name:         it.Name,
				Quantity:     it.Quantity,
				MinimumStock: it.MinimumStock,
				UnitPrice:    it.UnitPrice,
				Value:        value,
				LowStock:     low,
			})
			data.TotalValue = data.TotalValue.Add(value)
		}
		if len(items) < batch {
			break
		}
		offset += batch
	}

	return uc.generator.GenerateInventoryReport(ctx, data)
}
