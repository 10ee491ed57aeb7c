package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Granja-api/internal/application/dto"
	"github.com/jhoicas/Granja-api/internal/domain"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/finance"
	"github.com/jhoicas/Granja-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }
func sp(s string) *string       { return &s }

type fixture struct {
	store   *memory.Store
	txs     *TransactionUseCase
	reports *ReportUseCase
	flock   string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.New()
	r := store.Repos()
	now := time.Now()
	require.NoError(t, r.Flocks.Create(context.Background(), &entity.Flock{ID: "flock-1", Name: "Galpón Norte",
		Type: entity.BirdTypeLayer, InitialCount: 500, CurrentStock: 400, StartDate: now,
		Status: entity.GroupStatusActive, CreatedAt: now, UpdatedAt: now}))
	reports := NewReportUseCase(store.Transactions(), r.Flocks, r.Batches, store.EggCollections())
	reports.now = func() time.Time { return time.Date(2024, 3, 20, 15, 0, 0, 0, time.UTC) }
	return fixture{
		store:   store,
		txs:     NewTransactionUseCase(store.Transactions(), r.Flocks, r.Batches),
		reports: reports,
		flock:   "flock-1",
	}
}

func (fx fixture) add(t *testing.T, kind, date, category, amount, status string, flock *string) {
	t.Helper()
	_, err := fx.txs.Create(context.Background(), kind, "u", dto.CreateTransactionRequest{
		Date: date, Category: category, Amount: d(amount), PaymentStatus: status, FlockID: flock,
	})
	require.NoError(t, err)
}

func (fx fixture) seed(t *testing.T) {
	fx.add(t, entity.TxKindIncome, "2024-02-10", "huevos", "1200000", "paid", sp(fx.flock))
	fx.add(t, entity.TxKindIncome, "2024-03-05", "huevos", "800000", "pending", sp(fx.flock))
	fx.add(t, entity.TxKindIncome, "2024-03-06", "gallinaza", "150000", "paid", nil)
	fx.add(t, entity.TxKindExpense, "2024-02-12", "alimento", "700000", "paid", sp(fx.flock))
	fx.add(t, entity.TxKindExpense, "2024-03-07", "vacunas", "100000", "paid", sp(fx.flock))
	fx.add(t, entity.TxKindExpense, "2024-03-08", "alimento", "300000", "pending", nil)
}

func TestTransactionUseCase_Validaciones(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	tr, err := fx.txs.Create(ctx, entity.TxKindIncome, "u", dto.CreateTransactionRequest{Category: "huevos", Amount: d("10")})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPaid, tr.PaymentStatus)

	_, err = fx.txs.Create(ctx, "transfer", "u", dto.CreateTransactionRequest{Category: "x", Amount: d("10")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = fx.txs.Create(ctx, entity.TxKindIncome, "u", dto.CreateTransactionRequest{Category: "x", Amount: d("0")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = fx.txs.Create(ctx, entity.TxKindIncome, "u", dto.CreateTransactionRequest{Category: "x", Amount: d("10.005")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "más de 2 decimales")
	_, err = fx.txs.Create(ctx, entity.TxKindIncome, "u", dto.CreateTransactionRequest{Amount: d("1")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = fx.txs.Create(ctx, entity.TxKindIncome, "u", dto.CreateTransactionRequest{Category: "x", Amount: d("1"), PaymentStatus: "partial"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = fx.txs.Create(ctx, entity.TxKindExpense, "u", dto.CreateTransactionRequest{Category: "x", Amount: d("1"), FlockID: sp("nope")})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	amount := d("25")
	up, err := fx.txs.Update(ctx, entity.TxKindIncome, dto.UpdateTransactionRequest{ID: tr.ID, Amount: &amount})
	require.NoError(t, err)
	assert.True(t, amount.Equal(up.Amount))

	_, err = fx.txs.GetByID(ctx, entity.TxKindExpense, tr.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "un ingreso no aparece como egreso")

	require.NoError(t, fx.txs.Delete(ctx, entity.TxKindIncome, tr.ID))
	assert.True(t, errors.Is(fx.txs.Delete(ctx, entity.TxKindIncome, tr.ID), domain.ErrNotFound))
}

func TestReport_Summary(t *testing.T) {
	fx := newFixture(t)
	fx.seed(t)

	rep, err := fx.reports.Generate(context.Background(), dto.ReportQuery{Type: "summary", StartDate: "2024-02-01", EndDate: "2024-03-31"})
	require.NoError(t, err)
	require.NotNil(t, rep.Summary)
	assert.Nil(t, rep.CashFlow)

	s := rep.Summary
	assert.True(t, d("2150000").Equal(s.TotalIncome))
	assert.True(t, d("1100000").Equal(s.TotalExpense))
	assert.True(t, s.TotalIncome.Sub(s.TotalExpense).Equal(s.NetProfit))
	assert.Equal(t, 3, s.IncomeCount)
	assert.True(t, d("800000").Equal(s.IncomePayments.Pending))
}

func TestReport_RangoPorDefecto(t *testing.T) {
	fx := newFixture(t)
	fx.seed(t)

	rep, err := fx.reports.Generate(context.Background(), dto.ReportQuery{})
	require.NoError(t, err)
	assert.Equal(t, finance.ReportSummary, rep.Type)
	assert.Equal(t, "2024-03-01", rep.StartDate)
	assert.Equal(t, "2024-03-20", rep.EndDate)
	assert.True(t, d("950000").Equal(rep.Summary.TotalIncome), "solo marzo")
}

func TestReport_CashFlowSoloPagadas(t *testing.T) {
	fx := newFixture(t)
	fx.seed(t)

	rep, err := fx.reports.Generate(context.Background(), dto.ReportQuery{Type: "cash_flow", StartDate: "2024-02-01", EndDate: "2024-03-31"})
	require.NoError(t, err)
	cf := rep.CashFlow
	require.NotNil(t, cf)
	assert.True(t, d("1350000").Equal(cf.TotalInflow))
	assert.True(t, d("800000").Equal(cf.TotalOutflow))
	require.Len(t, cf.MonthlyData, 2)
	assert.Equal(t, "2024-02", cf.MonthlyData[0].Month)
	assert.True(t, d("500000").Equal(cf.MonthlyData[0].NetCashFlow))
	assert.Equal(t, "2024-03", cf.MonthlyData[1].Month)
}

func TestReport_CostAnalysis(t *testing.T) {
	fx := newFixture(t)
	fx.seed(t)
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, fx.store.EggCollections().Create(ctx, &entity.EggCollection{ID: "e1", FlockID: sp(fx.flock),
		Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), TotalEggs: 8000, CreatedAt: now}))

	_, err := fx.reports.Generate(ctx, dto.ReportQuery{Type: "cost_analysis"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	rep, err := fx.reports.Generate(ctx, dto.ReportQuery{Type: "cost_analysis", StartDate: "2024-02-01", EndDate: "2024-03-31", FlockID: fx.flock})
	require.NoError(t, err)
	ca := rep.CostAnalysis
	require.NotNil(t, ca)
	assert.Equal(t, "Galpón Norte", ca.Name)
	assert.Equal(t, 400, ca.CurrentStock)
	assert.Equal(t, 8000, ca.TotalEggs)
	assert.True(t, d("2000000").Equal(ca.TotalIncome))
	assert.True(t, d("800000").Equal(ca.TotalExpense))
	assert.True(t, d("2000").Equal(ca.CostPerBird))
	assert.True(t, d("100").Equal(ca.CostPerEgg))
	assert.True(t, d("150").Equal(ca.ROI))

	_, err = fx.reports.Generate(ctx, dto.ReportQuery{Type: "cost_analysis", BatchID: "nope"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestReport_Validaciones(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.reports.Generate(ctx, dto.ReportQuery{Type: "balance"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = fx.reports.Generate(ctx, dto.ReportQuery{StartDate: "2024-04-01", EndDate: "2024-03-01"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = fx.reports.Generate(ctx, dto.ReportQuery{StartDate: "ayer"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	rep, err := fx.reports.Generate(ctx, dto.ReportQuery{Type: "profit_loss"})
	require.NoError(t, err)
	assert.True(t, rep.ProfitLoss.NetProfit.IsZero(), "sin movimientos todo es 0")
	assert.True(t, rep.ProfitLoss.ProfitMargin.IsZero())
}

type fakePDF struct {
	farm   string
	report *dto.FinancialReportResponse
	err    error
}

func (f *fakePDF) Generate(farm string, r *dto.FinancialReportResponse) ([]byte, error) {
	f.farm, f.report = farm, r
	return []byte("%PDF-1.4"), f.err
}

func TestPDFUseCase(t *testing.T) {
	fx := newFixture(t)
	fx.seed(t)
	gen := &fakePDF{}
	uc := NewPDFUseCase(fx.reports, gen, "Granja La Esperanza")

	b, name, err := uc.DownloadReportPDF(context.Background(), dto.ReportQuery{Type: "profit_loss", StartDate: "2024-02-01", EndDate: "2024-02-29"})
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(b))
	assert.Equal(t, "reporte_profit_loss_2024-02-01_2024-02-29.pdf", name)
	assert.Equal(t, "Granja La Esperanza", gen.farm)
	require.NotNil(t, gen.report.ProfitLoss)
	assert.True(t, d("500000").Equal(gen.report.ProfitLoss.NetProfit))

	gen.err = errors.New("font missing")
	_, _, err = uc.DownloadReportPDF(context.Background(), dto.ReportQuery{})
	require.Error(t, err)

	_, _, err = uc.DownloadReportPDF(context.Background(), dto.ReportQuery{Type: "nope"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
