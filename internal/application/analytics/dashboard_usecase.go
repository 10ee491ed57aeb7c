// Package analytics contiene el resumen del tablero principal de la granja.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Granja-api/internal/application/dto"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/inventory"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

// DashboardRepos repositorios de solo lectura que alimentan el tablero.
type DashboardRepos struct {
	Flocks         repository.FlockRepository
	Batches        repository.BatchRepository
	Eggs           repository.EggCollectionRepository
	Mortality      repository.MortalityRepository
	Transactions   repository.TransactionRepository
	FeedInventory  repository.FeedInventoryRepository
	InventoryItems repository.InventoryItemRepository
}

// DashboardUseCase genera las tarjetas del día y del mes en curso.
type DashboardUseCase struct {
	repos DashboardRepos
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repos DashboardRepos) *DashboardUseCase {
	return &DashboardUseCase{repos: repos, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro lecturas en paralelo:
//  1. parvadas y lotes activos  → ActiveFlocks, ActiveBatches, TotalBirds
//  2. huevos de hoy y bajas del mes
//  3. ingresos y egresos del mes
//  4. alimento e insumos        → LowStockCount, FeedStockValue
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	// Las fechas de los registros se guardan como día UTC.
	now := uc.now().UTC()

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	todayFilter := repository.Filter{From: &today, To: &today}
	monthFilter := repository.Filter{From: &monthStart, To: &today}

	// ── Goroutines para paralelizar las lecturas ──────────────────────────────
	type birdsResult struct {
		flocks, batches, birds int
		err                    error
	}
	type productionResult struct {
		eggs, deaths int
		err          error
	}
	type moneyResult struct {
		income, expense decimal.Decimal
		err             error
	}
	type stockResult struct {
		lowStock  int
		feedValue decimal.Decimal
		err       error
	}

	birdsCh := make(chan birdsResult, 1)
	prodCh := make(chan productionResult, 1)
	moneyCh := make(chan moneyResult, 1)
	stockCh := make(chan stockResult, 1)

	go func() {
		var r birdsResult
		r.flocks, r.batches, r.birds, r.err = uc.activeBirds(ctx)
		birdsCh <- r
	}()
	go func() {
		var r productionResult
		r.eggs, r.err = uc.repos.Eggs.SumEggs(ctx, todayFilter)
		if r.err == nil {
			r.deaths, r.err = uc.deaths(ctx, monthFilter)
		}
		prodCh <- r
	}()
	go func() {
		var r moneyResult
		r.income, r.err = uc.total(ctx, entity.TxKindIncome, monthFilter)
		if r.err == nil {
			r.expense, r.err = uc.total(ctx, entity.TxKindExpense, monthFilter)
		}
		moneyCh <- r
	}()
	go func() {
		var r stockResult
		r.lowStock, r.feedValue, r.err = uc.stock(ctx)
		stockCh <- r
	}()

	birds := <-birdsCh
	prod := <-prodCh
	money := <-moneyCh
	stock := <-stockCh

	if birds.err != nil {
		return nil, fmt.Errorf("dashboard: aves: %w", birds.err)
	}
	if prod.err != nil {
		return nil, fmt.Errorf("dashboard: producción: %w", prod.err)
	}
	if money.err != nil {
		return nil, fmt.Errorf("dashboard: finanzas del mes: %w", money.err)
	}
	if stock.err != nil {
		return nil, fmt.Errorf("dashboard: inventario: %w", stock.err)
	}

	return &dto.DashboardSummaryDTO{
		ActiveFlocks:   birds.flocks,
		ActiveBatches:  birds.batches,
		TotalBirds:     birds.birds,
		EggsToday:      prod.eggs,
		MortalityMonth: prod.deaths,
		MonthlyIncome:  money.income.Round(2),
		MonthlyExpense: money.expense.Round(2),
		MonthlyNet:     money.income.Sub(money.expense).Round(2),
		LowStockCount:  stock.lowStock,
		FeedStockValue: stock.feedValue.Round(2),
		DateLabel:      monthLabel(now),
	}, nil
}

// activeBirds cuenta aves de parvadas activas más las de lotes activos sin parvada,
// para no contar dos veces las aves de un lote que pertenece a una parvada.
func (uc *DashboardUseCase) activeBirds(ctx context.Context) (flocks, batches, birds int, err error) {
	active := repository.Filter{Status: entity.GroupStatusActive}
	fl, err := uc.repos.Flocks.List(ctx, active)
	if err != nil {
		return 0, 0, 0, err
	}
	bl, err := uc.repos.Batches.List(ctx, active)
	if err != nil {
		return 0, 0, 0, err
	}
	for _, f := range fl {
		birds += f.CurrentStock
	}
	for _, b := range bl {
		if b.FlockID == nil {
			birds += b.CurrentStock
		}
	}
	return len(fl), len(bl), birds, nil
}

func (uc *DashboardUseCase) deaths(ctx context.Context, f repository.Filter) (int, error) {
	list, err := uc.repos.Mortality.List(ctx, f)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, m := range list {
		n += m.Count
	}
	return n, nil
}

func (uc *DashboardUseCase) total(ctx context.Context, kind string, f repository.Filter) (decimal.Decimal, error) {
	list, err := uc.repos.Transactions.List(ctx, kind, f)
	if err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, t := range list {
		sum = sum.Add(t.Amount)
	}
	return sum, nil
}

func (uc *DashboardUseCase) stock(ctx context.Context) (int, decimal.Decimal, error) {
	feed, err := uc.repos.FeedInventory.List(ctx, repository.Filter{})
	if err != nil {
		return 0, decimal.Zero, err
	}
	items, err := uc.repos.InventoryItems.List(ctx, repository.Filter{})
	if err != nil {
		return 0, decimal.Zero, err
	}
	low := 0
	value := decimal.Zero
	for _, f := range feed {
		value = value.Add(f.CurrentStock.Mul(f.UnitCost))
		if inventory.IsLowStock(f.CurrentStock, f.ReorderLevel) {
			low++
		}
	}
	for _, it := range items {
		if inventory.IsLowStock(it.CurrentStock, it.ReorderLevel) {
			low++
		}
	}
	return low, value, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
