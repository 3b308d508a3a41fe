// Package pdf implementa el reporte de valorización de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Artículo | Cant. | Mín. | P.Unit | Valor       │
//	│         (filas bajo mínimo marcadas en rojo)                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Valor total del inventario / Artículos bajo mínimo │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/kardex-api/internal/application/reports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ reports.InventoryReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa reports.InventoryReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateInventoryReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateInventoryReport(
	_ context.Context,
	data *reports.InventoryReportData,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(data.Rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título del reporte (izq) y fecha de generación (der).
func headerRow(data *reports.InventoryReportData) core.Row {
	fecha := data.GeneratedAt.Format("02/01/2006 15:04")
	return row.New(14).Add(
		col.New(8).Add(
			text.New("REPORTE DE VALORIZACIÓN DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d artículos", len(data.Rows)), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de artículos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Artículo", 4, align.Left),
		h("Cant.", 1, align.Right),
		h("Mín.", 1, align.Right),
		h("P. Unit.", 2, align.Right),
		h("Valor", 2, align.Right),
	)
}

// tableItemRows: una fila por artículo; las filas bajo mínimo van en rojo.
func tableItemRows(rows []reports.InventoryReportRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		color := colorGray
		style := fontstyle.Normal
		if r.LowStock {
			color = colorDanger
			style = fontstyle.Bold
		}
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{
				Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
				Color: color, Style: style,
			}))
		}
		result = append(result, row.New(6).Add(
			cell(r.SKU, 2, align.Left),
			cell(r.Name, 4, align.Left),
			cell(fmt.Sprintf("%d", r.Quantity), 1, align.Right),
			cell(fmt.Sprintf("%d", r.MinimumStock), 1, align.Right),
			cell("$"+r.UnitPrice.StringFixed(2), 2, align.Right),
			cell("$"+r.Value.StringFixed(2), 2, align.Right),
		))
	}
	return result
}

// totalsRow: valorización total y conteo de artículos bajo mínimo.
func totalsRow(data *reports.InventoryReportData) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New(fmt.Sprintf("Artículos bajo stock mínimo: %d", data.LowStockCount), props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorDanger, Top: 3,
			}),
		),
		col.New(6).Add(
			text.New("VALOR TOTAL DEL INVENTARIO:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 2,
			}),
			text.New("$"+data.TotalValue.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorPrimary, Top: 9,
			}),
		),
	)
}
