// Package pdf genera el reporte de inventario de la tienda en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha  │  Generado por                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Dulce | Categoría | Precio | Cant. | Valor stock     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Referencias / Agotados / Unidades / Valor total    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

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
	"github.com/shopspring/decimal"

	appinventory "github.com/jhoicas/sweetshop-api/internal/application/inventory"
	"github.com/jhoicas/sweetshop-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 156, Green: 39, Blue: 96}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 190, Green: 30, Blue: 30}
)

var _ appinventory.StockReportGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa inventory.StockReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	now func() time.Time
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{now: time.Now}
}

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStockReport(_ context.Context, report appinventory.StockReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(report.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(report.Sweets)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report.Sweets))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(report appinventory.StockReport, now time.Time) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(report.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado por: "+nonEmpty(report.GeneratedBy, "-"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Dulce", 4, align.Left),
		h("Categoría", 3, align.Left),
		h("Precio", 2, align.Right),
		h("Cant.", 1, align.Center),
		h("Valor stock", 2, align.Right),
	)
}

// tableDetailRows: una fila por dulce; los agotados se resaltan.
func tableDetailRows(sweets []*entity.Sweet) []core.Row {
	rows := make([]core.Row, 0, len(sweets))
	for _, s := range sweets {
		qtyProps := props.Text{Size: 8, Align: align.Center, Top: 1}
		if !s.InStock() {
			qtyProps.Color = colorAlert
			qtyProps.Style = fontstyle.Bold
		}
		rows = append(rows, row.New(7).Add(
			col.New(4).Add(text.New(s.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(s.Category, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatMoney(s.Price), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(strconv.Itoa(s.Quantity), qtyProps)),
			col.New(2).Add(text.New(formatMoney(s.StockValue()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalsRow(sweets []*entity.Sweet) core.Row {
	totals := summarize(sweets)
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(24).Add(
		col.New(6),
		col.New(3).Add(
			label("Referencias:"),
			label("Agotadas:"),
			label("Unidades:"),
			label("Valor total:"),
		),
		col.New(3).Add(
			value(strconv.Itoa(totals.References)),
			value(strconv.Itoa(totals.OutOfStock)),
			value(strconv.Itoa(totals.Units)),
			value(formatMoney(totals.Value)),
		),
	)
}

type stockTotals struct {
	References int
	OutOfStock int
	Units      int
	Value      decimal.Decimal
}

func summarize(sweets []*entity.Sweet) stockTotals {
	t := stockTotals{References: len(sweets), Value: decimal.Zero}
	for _, s := range sweets {
		if !s.InStock() {
			t.OutOfStock++
		}
		t.Units += s.Quantity
		t.Value = t.Value.Add(s.StockValue())
	}
	return t
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea con dos decimales y separador de miles: 1234.5 -> "$1,234.50".
func formatMoney(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	sign := ""
	if fixed[0] == '-' {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac := fixed[:len(fixed)-3], fixed[len(fixed)-3:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + "$" + string(buf) + frac
}
