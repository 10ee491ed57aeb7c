// Package finance agrega filas de ingresos y egresos en los cuatro modos de reporte.
// Todas las funciones son puras sobre las filas ya filtradas por fecha.
package finance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Granja-api/internal/domain"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
)

// Modos de reporte.
const (
	ReportSummary      = "summary"
	ReportProfitLoss   = "profit_loss"
	ReportCashFlow     = "cash_flow"
	ReportCostAnalysis = "cost_analysis"
)

var hundred = decimal.NewFromInt(100)

// IsValidReportType indica si el modo existe.
func IsValidReportType(t string) bool {
	switch t {
	case ReportSummary, ReportProfitLoss, ReportCashFlow, ReportCostAnalysis:
		return true
	}
	return false
}

// CategoryTotal suma por categoría.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// PaymentSplit montos pagados vs pendientes.
type PaymentSplit struct {
	Paid    decimal.Decimal `json:"paid"`
	Pending decimal.Decimal `json:"pending"`
}

// Summary totales, margen y desgloses.
type Summary struct {
	TotalIncome       decimal.Decimal `json:"total_income"`
	TotalExpense      decimal.Decimal `json:"total_expense"`
	NetProfit         decimal.Decimal `json:"net_profit"`
	ProfitMargin      decimal.Decimal `json:"profit_margin"`
	IncomeCount       int             `json:"income_count"`
	ExpenseCount      int             `json:"expense_count"`
	IncomeByCategory  []CategoryTotal `json:"income_by_category"`
	ExpenseByCategory []CategoryTotal `json:"expense_by_category"`
	IncomePayments    PaymentSplit    `json:"income_payments"`
	ExpensePayments   PaymentSplit    `json:"expense_payments"`
}

// TransactionLine fila resumida dentro del estado de resultados.
type TransactionLine struct {
	ID            string          `json:"id"`
	Date          string          `json:"date"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentStatus string          `json:"payment_status"`
}

// CategoryDetail total de una categoría con sus transacciones.
type CategoryDetail struct {
	Category     string            `json:"category"`
	Total        decimal.Decimal   `json:"total"`
	Transactions []TransactionLine `json:"transactions"`
}

// ProfitLoss estado de resultados agrupado por categoría.
type ProfitLoss struct {
	TotalIncome  decimal.Decimal  `json:"total_income"`
	TotalExpense decimal.Decimal  `json:"total_expense"`
	NetProfit    decimal.Decimal  `json:"net_profit"`
	ProfitMargin decimal.Decimal  `json:"profit_margin"`
	Income       []CategoryDetail `json:"income"`
	Expenses     []CategoryDetail `json:"expenses"`
}

// MonthFlow flujo de un mes calendario (clave YYYY-MM).
type MonthFlow struct {
	Month       string          `json:"month"`
	Inflow      decimal.Decimal `json:"inflow"`
	Outflow     decimal.Decimal `json:"outflow"`
	NetCashFlow decimal.Decimal `json:"net_cash_flow"`
}

// CashFlow flujo de caja sobre transacciones pagadas.
type CashFlow struct {
	TotalInflow  decimal.Decimal `json:"total_inflow"`
	TotalOutflow decimal.Decimal `json:"total_outflow"`
	NetCashFlow  decimal.Decimal `json:"net_cash_flow"`
	MonthlyData  []MonthFlow     `json:"monthly_data"`
}

// Scope datos de la parvada o lote analizado.
type Scope struct {
	FlockID      string
	BatchID      string
	Name         string
	CurrentStock int
	TotalEggs    int
}

// CostAnalysis costos asignados a una parvada o lote.
type CostAnalysis struct {
	FlockID           string          `json:"flock_id,omitempty"`
	BatchID           string          `json:"batch_id,omitempty"`
	Name              string          `json:"name"`
	CurrentStock      int             `json:"current_stock"`
	TotalEggs         int             `json:"total_eggs"`
	TotalIncome       decimal.Decimal `json:"total_income"`
	TotalExpense      decimal.Decimal `json:"total_expense"`
	NetProfit         decimal.Decimal `json:"net_profit"`
	CostPerBird       decimal.Decimal `json:"cost_per_bird"`
	CostPerEgg        decimal.Decimal `json:"cost_per_egg"`
	ROI               decimal.Decimal `json:"roi"`
	ExpenseByCategory []CategoryTotal `json:"expense_by_category"`
}

// BuildSummary arma el modo summary.
func BuildSummary(income, expense []entity.FinancialTransaction) Summary {
	ti, te := total(income), total(expense)
	return Summary{
		TotalIncome:       ti,
		TotalExpense:      te,
		NetProfit:         ti.Sub(te),
		ProfitMargin:      percent(ti.Sub(te), ti),
		IncomeCount:       len(income),
		ExpenseCount:      len(expense),
		IncomeByCategory:  byCategory(income),
		ExpenseByCategory: byCategory(expense),
		IncomePayments:    split(income),
		ExpensePayments:   split(expense),
	}
}

// BuildProfitLoss arma el modo profit_loss.
func BuildProfitLoss(income, expense []entity.FinancialTransaction) ProfitLoss {
	ti, te := total(income), total(expense)
	return ProfitLoss{
		TotalIncome:  ti,
		TotalExpense: te,
		NetProfit:    ti.Sub(te),
		ProfitMargin: percent(ti.Sub(te), ti),
		Income:       detailByCategory(income),
		Expenses:     detailByCategory(expense),
	}
}

// BuildCashFlow arma el modo cash_flow: solo filas pagadas, agrupadas por mes.
func BuildCashFlow(income, expense []entity.FinancialTransaction) CashFlow {
	months := map[string]*MonthFlow{}
	bucket := func(t time.Time) *MonthFlow {
		key := t.Format("2006-01")
		m, ok := months[key]
		if !ok {
			m = &MonthFlow{Month: key, Inflow: decimal.Zero, Outflow: decimal.Zero}
			months[key] = m
		}
		return m
	}

	cf := CashFlow{TotalInflow: decimal.Zero, TotalOutflow: decimal.Zero}
	for _, tx := range income {
		if !tx.IsPaid() {
			continue
		}
		m := bucket(tx.Date)
		m.Inflow = m.Inflow.Add(tx.Amount)
		cf.TotalInflow = cf.TotalInflow.Add(tx.Amount)
	}
	for _, tx := range expense {
		if !tx.IsPaid() {
			continue
		}
		m := bucket(tx.Date)
		m.Outflow = m.Outflow.Add(tx.Amount)
		cf.TotalOutflow = cf.TotalOutflow.Add(tx.Amount)
	}
	cf.NetCashFlow = cf.TotalInflow.Sub(cf.TotalOutflow)

	cf.MonthlyData = make([]MonthFlow, 0, len(months))
	for _, m := range months {
		m.NetCashFlow = m.Inflow.Sub(m.Outflow)
		cf.MonthlyData = append(cf.MonthlyData, *m)
	}
	sort.Slice(cf.MonthlyData, func(i, j int) bool { return cf.MonthlyData[i].Month < cf.MonthlyData[j].Month })
	return cf
}

// BuildCostAnalysis arma el modo cost_analysis para una parvada o lote.
func BuildCostAnalysis(scope Scope, income, expense []entity.FinancialTransaction) CostAnalysis {
	ti, te := total(income), total(expense)
	ca := CostAnalysis{
		FlockID:           scope.FlockID,
		BatchID:           scope.BatchID,
		Name:              scope.Name,
		CurrentStock:      scope.CurrentStock,
		TotalEggs:         scope.TotalEggs,
		TotalIncome:       ti,
		TotalExpense:      te,
		NetProfit:         ti.Sub(te),
		CostPerBird:       decimal.Zero,
		CostPerEgg:        decimal.Zero,
		ROI:               percent(ti.Sub(te), te),
		ExpenseByCategory: byCategory(expense),
	}
	if scope.CurrentStock > 0 {
		ca.CostPerBird = te.Div(decimal.NewFromInt(int64(scope.CurrentStock))).Round(2)
	}
	if scope.TotalEggs > 0 {
		ca.CostPerEgg = te.Div(decimal.NewFromInt(int64(scope.TotalEggs))).Round(4)
	}
	return ca
}

// ResolveRange aplica los defaults de fecha: inicio = primer día del mes de now,
// fin = now. Inicio posterior a fin es un error de validación.
func ResolveRange(start, end *time.Time, now time.Time) (time.Time, time.Time, error) {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	from := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := today
	if start != nil {
		from = *start
	}
	if end != nil {
		to = *end
	}
	if from.After(to) {
		return from, to, domain.Invalid("start_date", "debe ser anterior o igual a end_date")
	}
	return from, to, nil
}

func total(rows []entity.FinancialTransaction) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range rows {
		sum = sum.Add(r.Amount)
	}
	return sum
}

// percent = num/den × 100 redondeado a 2 decimales; 0 si den es 0.
func percent(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den).Mul(hundred).Round(2)
}

func split(rows []entity.FinancialTransaction) PaymentSplit {
	s := PaymentSplit{Paid: decimal.Zero, Pending: decimal.Zero}
	for _, r := range rows {
		if r.IsPaid() {
			s.Paid = s.Paid.Add(r.Amount)
		} else {
			s.Pending = s.Pending.Add(r.Amount)
		}
	}
	return s
}

func byCategory(rows []entity.FinancialTransaction) []CategoryTotal {
	idx := map[string]int{}
	out := []CategoryTotal{}
	for _, r := range rows {
		i, ok := idx[r.Category]
		if !ok {
			i = len(out)
			idx[r.Category] = i
			out = append(out, CategoryTotal{Category: r.Category, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(r.Amount)
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func detailByCategory(rows []entity.FinancialTransaction) []CategoryDetail {
	idx := map[string]int{}
	out := []CategoryDetail{}
	for _, r := range rows {
		i, ok := idx[r.Category]
		if !ok {
			i = len(out)
			idx[r.Category] = i
			out = append(out, CategoryDetail{Category: r.Category, Total: decimal.Zero, Transactions: []TransactionLine{}})
		}
		out[i].Total = out[i].Total.Add(r.Amount)
		out[i].Transactions = append(out[i].Transactions, TransactionLine{
			ID:            r.ID,
			Date:          r.Date.Format("2006-01-02"),
			Description:   r.Description,
			Amount:        r.Amount,
			PaymentStatus: r.PaymentStatus,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}
