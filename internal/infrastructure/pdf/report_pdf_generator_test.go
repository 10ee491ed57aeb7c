package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Granja-api/internal/application/dto"
	domfinance "github.com/jhoicas/Granja-api/internal/domain/finance"
)

func TestGenerateSummaryPDF(t *testing.T) {
	g := NewMarotoReportGenerator()
	g.now = func() time.Time { return time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC) }

	report := &dto.FinancialReportResponse{
		Type:      domfinance.ReportSummary,
		StartDate: "2024-03-01",
		EndDate:   "2024-03-20",
		Summary: &domfinance.Summary{
			TotalIncome:  decimal.NewFromInt(1500000),
			TotalExpense: decimal.NewFromInt(900000),
			NetProfit:    decimal.NewFromInt(600000),
			ProfitMargin: decimal.NewFromInt(40),
			IncomeByCategory: []domfinance.CategoryTotal{
				{Category: "huevos", Total: decimal.NewFromInt(1500000), Count: 3},
			},
		},
	}
	out, err := g.Generate("Granja La Esperanza", report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateCashFlowAndCostAnalysis(t *testing.T) {
	g := NewMarotoReportGenerator()

	cash := &dto.FinancialReportResponse{
		Type: domfinance.ReportCashFlow, StartDate: "2024-01-01", EndDate: "2024-03-31",
		CashFlow: &domfinance.CashFlow{
			TotalInflow: decimal.NewFromInt(100), TotalOutflow: decimal.NewFromInt(250), NetCashFlow: decimal.NewFromInt(-150),
			MonthlyData: []domfinance.MonthFlow{{Month: "2024-01", Inflow: decimal.NewFromInt(100), Outflow: decimal.NewFromInt(250), NetCashFlow: decimal.NewFromInt(-150)}},
		},
	}
	out, err := g.Generate("Granja", cash)
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	cost := &dto.FinancialReportResponse{
		Type: domfinance.ReportCostAnalysis, StartDate: "2024-01-01", EndDate: "2024-03-31",
		CostAnalysis: &domfinance.CostAnalysis{Name: "Lote L-1", CurrentStock: 500, TotalExpense: decimal.NewFromInt(1000000)},
	}
	out, err = g.Generate("Granja", cost)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGenerateEmptyReport(t *testing.T) {
	_, err := NewMarotoReportGenerator().Generate("Granja", &dto.FinancialReportResponse{Type: domfinance.ReportSummary})
	assert.Error(t, err)
}

func TestMoneyFormatting(t *testing.T) {
	g := NewMarotoReportGenerator()
	s := g.money(decimal.RequireFromString("1234567.891"))
	assert.True(t, len(s) > len("$1234567.89"), s)
	assert.Contains(t, s, "89")
	assert.Equal(t, "$", s[:1])
}
