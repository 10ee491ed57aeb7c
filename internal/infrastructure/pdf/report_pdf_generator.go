// Package pdf renderiza los reportes financieros de la granja.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Granja + tipo de reporte  │  Período + generado    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: ingresos / egresos / utilidad / margen            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLAS: por categoría, por mes o costos por ave/huevo      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/Granja-api/internal/application/dto"
	"github.com/jhoicas/Granja-api/internal/application/finance"
	domfinance "github.com/jhoicas/Granja-api/internal/domain/finance"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 34, Green: 102, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var reportTitles = map[string]string{
	domfinance.ReportSummary:      "RESUMEN FINANCIERO",
	domfinance.ReportProfitLoss:   "ESTADO DE RESULTADOS",
	domfinance.ReportCashFlow:     "FLUJO DE CAJA",
	domfinance.ReportCostAnalysis: "ANÁLISIS DE COSTOS",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ finance.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa finance.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	printer *message.Printer
	now     func() time.Time
}

// NewMarotoReportGenerator construye el generador; los montos se formatean en es-CO.
func NewMarotoReportGenerator() *MarotoReportGenerator {
	return &MarotoReportGenerator{
		printer: message.NewPrinter(language.MustParse("es-CO")),
		now:     time.Now,
	}
}

// Generate renderiza el reporte y devuelve los bytes del PDF.
func (g *MarotoReportGenerator) Generate(farmName string, report *dto.FinancialReportResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(reportTitles[report.Type], true).
		WithAuthor(farmName, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(g.headerRow(farmName, report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	var body []core.Row
	switch {
	case report.Summary != nil:
		body = g.summaryRows(report.Summary)
	case report.ProfitLoss != nil:
		body = g.profitLossRows(report.ProfitLoss)
	case report.CashFlow != nil:
		body = g.cashFlowRows(report.CashFlow)
	case report.CostAnalysis != nil:
		body = g.costAnalysisRows(report.CostAnalysis)
	default:
		return nil, fmt.Errorf("pdf: reporte %q sin contenido", report.Type)
	}
	m.AddRows(body...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Montos en pesos colombianos. Reporte generado a partir de los registros de ingresos y egresos.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: granja + título (izq) y período + fecha de generación (der).
func (g *MarotoReportGenerator) headerRow(farmName string, report *dto.FinancialReportResponse) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(farmName, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(reportTitles[report.Type], props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("Período: %s a %s", report.StartDate, report.EndDate), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Generado: "+g.now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoReportGenerator) summaryRows(s *domfinance.Summary) []core.Row {
	rows := []core.Row{
		g.totalsRow(
			kv{"Ingresos", s.TotalIncome},
			kv{"Egresos", s.TotalExpense},
			kv{"Utilidad neta", s.NetProfit},
		),
		g.labelRow(fmt.Sprintf("Margen: %s%%   |   %d ingresos   |   %d egresos",
			g.number(s.ProfitMargin), s.IncomeCount, s.ExpenseCount)),
		g.labelRow(fmt.Sprintf("Por cobrar: %s   |   Por pagar: %s",
			g.money(s.IncomePayments.Pending), g.money(s.ExpensePayments.Pending))),
	}
	rows = append(rows, g.sectionRow("INGRESOS POR CATEGORÍA"))
	rows = append(rows, g.categoryRows(s.IncomeByCategory)...)
	rows = append(rows, g.sectionRow("EGRESOS POR CATEGORÍA"))
	rows = append(rows, g.categoryRows(s.ExpenseByCategory)...)
	return rows
}

func (g *MarotoReportGenerator) profitLossRows(p *domfinance.ProfitLoss) []core.Row {
	rows := []core.Row{
		g.totalsRow(
			kv{"Ingresos", p.TotalIncome},
			kv{"Egresos", p.TotalExpense},
			kv{"Utilidad neta", p.NetProfit},
		),
		g.labelRow(fmt.Sprintf("Margen: %s%%", g.number(p.ProfitMargin))),
	}
	detail := func(title string, groups []domfinance.CategoryDetail) {
		rows = append(rows, g.sectionRow(title))
		for _, grp := range groups {
			rows = append(rows, g.amountRow(grp.Category, grp.Total, true))
			for _, tx := range grp.Transactions {
				rows = append(rows, g.amountRow("    "+tx.Date+"  "+tx.Description, tx.Amount, false))
			}
		}
	}
	detail("INGRESOS", p.Income)
	detail("EGRESOS", p.Expenses)
	return rows
}

func (g *MarotoReportGenerator) cashFlowRows(c *domfinance.CashFlow) []core.Row {
	rows := []core.Row{
		g.totalsRow(
			kv{"Entradas", c.TotalInflow},
			kv{"Salidas", c.TotalOutflow},
			kv{"Flujo neto", c.NetCashFlow},
		),
		g.sectionRow("FLUJO MENSUAL"),
		g.tableHeaderRow("Mes", "Entradas", "Salidas", "Neto"),
	}
	for _, mf := range c.MonthlyData {
		rows = append(rows, row.New(6).Add(
			col.New(3).Add(text.New(mf.Month, props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(g.money(mf.Inflow), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(g.money(mf.Outflow), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(g.money(mf.NetCashFlow), props.Text{Size: 8, Align: align.Right, Top: 1, Color: signColor(mf.NetCashFlow)})),
		))
	}
	return rows
}

func (g *MarotoReportGenerator) costAnalysisRows(c *domfinance.CostAnalysis) []core.Row {
	rows := []core.Row{
		g.labelRow(fmt.Sprintf("%s   |   Aves actuales: %d   |   Huevos: %d", c.Name, c.CurrentStock, c.TotalEggs)),
		g.totalsRow(
			kv{"Ingresos", c.TotalIncome},
			kv{"Egresos", c.TotalExpense},
			kv{"Utilidad neta", c.NetProfit},
		),
		g.labelRow(fmt.Sprintf("Costo por ave: %s   |   Costo por huevo: %s   |   ROI: %s%%",
			g.money(c.CostPerBird), g.money(c.CostPerEgg), g.number(c.ROI))),
		g.sectionRow("EGRESOS POR CATEGORÍA"),
	}
	return append(rows, g.categoryRows(c.ExpenseByCategory)...)
}

// ── Bloques reutilizables ─────────────────────────────────────────────────────

type kv struct {
	label string
	value decimal.Decimal
}

// totalsRow: tres totales en columnas; el último resaltado.
func (g *MarotoReportGenerator) totalsRow(a, b, total kv) core.Row {
	cell := func(item kv, bold bool) core.Col {
		style := fontstyle.Normal
		color := colorGray
		if bold {
			style = fontstyle.Bold
			color = signColor(item.value)
		}
		return col.New(4).Add(
			text.New(item.label, props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
			text.New(g.money(item.value), props.Text{Style: style, Size: 11, Align: align.Center, Top: 8, Color: color}),
		)
	}
	return row.New(18).Add(cell(a, false), cell(b, false), cell(total, true))
}

func (g *MarotoReportGenerator) sectionRow(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 3}),
	))
}

func (g *MarotoReportGenerator) labelRow(s string) core.Row {
	return row.New(6).Add(col.New(12).Add(text.New(s, props.Text{Size: 8, Top: 1, Color: colorGray})))
}

func (g *MarotoReportGenerator) tableHeaderRow(labels ...string) core.Row {
	r := row.New(7)
	for i, l := range labels {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		r.Add(col.New(12 / len(labels)).Add(text.New(l, props.Text{Style: fontstyle.Bold, Size: 8, Align: a, Top: 1})))
	}
	return r
}

func (g *MarotoReportGenerator) amountRow(label string, amount decimal.Decimal, bold bool) core.Row {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	return row.New(6).Add(
		col.New(8).Add(text.New(label, props.Text{Style: style, Size: 8, Top: 1})),
		col.New(4).Add(text.New(g.money(amount), props.Text{Style: style, Size: 8, Align: align.Right, Top: 1})),
	)
}

func (g *MarotoReportGenerator) categoryRows(totals []domfinance.CategoryTotal) []core.Row {
	if len(totals) == 0 {
		return []core.Row{g.labelRow("Sin movimientos en el período.")}
	}
	rows := []core.Row{g.tableHeaderRow("Categoría", "Registros", "Total")}
	for _, ct := range totals {
		rows = append(rows, row.New(6).Add(
			col.New(4).Add(text.New(ct.Category, props.Text{Size: 8, Top: 1})),
			col.New(4).Add(text.New(g.printer.Sprint(ct.Count), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(4).Add(text.New(g.money(ct.Total), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea con separadores de miles del locale y dos decimales, ej: "$1.234.567,89".
func (g *MarotoReportGenerator) money(d decimal.Decimal) string {
	return "$" + g.number(d)
}

func (g *MarotoReportGenerator) number(d decimal.Decimal) string {
	return g.printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}

func signColor(d decimal.Decimal) *props.Color {
	if d.IsNegative() {
		return colorRed
	}
	return colorPrimary
}
