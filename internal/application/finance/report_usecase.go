package finance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Granja-api/internal/application/dto"
	"github.com/jhoicas/Granja-api/internal/domain"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/finance"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

// ReportUseCase genera los reportes financieros sobre un rango de fechas.
type ReportUseCase struct {
	txRepo  repository.TransactionRepository
	flocks  repository.FlockRepository
	batches repository.BatchRepository
	eggs    repository.EggCollectionRepository
	now     func() time.Time
}

func NewReportUseCase(
	txRepo repository.TransactionRepository,
	flocks repository.FlockRepository,
	batches repository.BatchRepository,
	eggs repository.EggCollectionRepository,
) *ReportUseCase {
	return &ReportUseCase{txRepo: txRepo, flocks: flocks, batches: batches, eggs: eggs, now: time.Now}
}

// Generate construye el reporte del modo pedido (summary por defecto).
//
// Ingresos y egresos se leen en paralelo; cost_analysis exige flock_id o batch_id
// y agrega el conteo de aves y los huevos del periodo.
func (uc *ReportUseCase) Generate(ctx context.Context, q dto.ReportQuery) (*dto.FinancialReportResponse, error) {
	// ── 1. Validar parámetros ────────────────────────────────────────────────
	kind := strings.TrimSpace(q.Type)
	if kind == "" {
		kind = finance.ReportSummary
	}
	if !finance.IsValidReportType(kind) {
		return nil, domain.Invalid("type", "valores permitidos: summary, profit_loss, cash_flow, cost_analysis")
	}
	start, err := dto.ParseOptionalDate("start_date", q.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := dto.ParseOptionalDate("end_date", q.EndDate)
	if err != nil {
		return nil, err
	}
	from, to, err := finance.ResolveRange(start, end, uc.now())
	if err != nil {
		return nil, err
	}
	flockID, batchID := strings.TrimSpace(q.FlockID), strings.TrimSpace(q.BatchID)
	if kind == finance.ReportCostAnalysis && flockID == "" && batchID == "" {
		return nil, domain.Invalid("flock_id", "cost_analysis requiere flock_id o batch_id")
	}

	// ── 2. Leer ingresos y egresos en paralelo ───────────────────────────────
	f := repository.Filter{FlockID: flockID, BatchID: batchID, From: &from, To: &to}
	income, expense, err := uc.fetch(ctx, f)
	if err != nil {
		return nil, err
	}

	// ── 3. Agregar ───────────────────────────────────────────────────────────
	out := &dto.FinancialReportResponse{
		Type:      kind,
		StartDate: dto.FormatDate(from),
		EndDate:   dto.FormatDate(to),
		FlockID:   flockID,
		BatchID:   batchID,
	}
	switch kind {
	case finance.ReportSummary:
		s := finance.BuildSummary(income, expense)
		out.Summary = &s
	case finance.ReportProfitLoss:
		pl := finance.BuildProfitLoss(income, expense)
		out.ProfitLoss = &pl
	case finance.ReportCashFlow:
		cf := finance.BuildCashFlow(income, expense)
		out.CashFlow = &cf
	case finance.ReportCostAnalysis:
		scope, err := uc.scope(ctx, f)
		if err != nil {
			return nil, err
		}
		ca := finance.BuildCostAnalysis(scope, income, expense)
		out.CostAnalysis = &ca
	}
	return out, nil
}

func (uc *ReportUseCase) fetch(ctx context.Context, f repository.Filter) ([]entity.FinancialTransaction, []entity.FinancialTransaction, error) {
	type result struct {
		rows []entity.FinancialTransaction
		err  error
	}
	incomeCh := make(chan result, 1)
	expenseCh := make(chan result, 1)
	load := func(kind string, ch chan<- result) {
		rows, err := uc.txRepo.List(ctx, kind, f)
		if err != nil {
			ch <- result{err: fmt.Errorf("reporte: listar %s: %w", kind, err)}
			return
		}
		vals := make([]entity.FinancialTransaction, 0, len(rows))
		for _, r := range rows {
			vals = append(vals, *r)
		}
		ch <- result{rows: vals}
	}
	go load(entity.TxKindIncome, incomeCh)
	go load(entity.TxKindExpense, expenseCh)

	income, expense := <-incomeCh, <-expenseCh
	if income.err != nil {
		return nil, nil, income.err
	}
	if expense.err != nil {
		return nil, nil, expense.err
	}
	return income.rows, expense.rows, nil
}

// scope resuelve la parvada o el lote analizado; si vienen ambos manda el lote.
func (uc *ReportUseCase) scope(ctx context.Context, f repository.Filter) (finance.Scope, error) {
	s := finance.Scope{FlockID: f.FlockID, BatchID: f.BatchID}
	if f.BatchID != "" {
		b, err := uc.batches.GetByID(ctx, f.BatchID)
		if err != nil {
			return s, err
		}
		if b == nil {
			return s, fmt.Errorf("lote: %w", domain.ErrNotFound)
		}
		s.Name, s.CurrentStock = b.BatchNumber, b.CurrentStock
	} else {
		fl, err := uc.flocks.GetByID(ctx, f.FlockID)
		if err != nil {
			return s, err
		}
		if fl == nil {
			return s, fmt.Errorf("parvada: %w", domain.ErrNotFound)
		}
		s.Name, s.CurrentStock = fl.Name, fl.CurrentStock
	}
	eggs, err := uc.eggs.SumEggs(ctx, f)
	if err != nil {
		return s, err
	}
	s.TotalEggs = eggs
	return s, nil
}
