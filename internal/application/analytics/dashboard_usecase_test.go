package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/infrastructure/memory"
)

func TestGetSummary(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repos := store.Repos()
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2026, 9, 28, 0, 0, 0, 0, time.UTC)
	flockID := "flock-1"

	require.NoError(t, repos.Flocks.Create(ctx, &entity.Flock{ID: flockID, Name: "Galpón 1", Type: entity.BirdTypeLayer,
		InitialCount: 1000, CurrentStock: 980, StartDate: lastMonth, Status: entity.GroupStatusActive}))
	require.NoError(t, repos.Flocks.Create(ctx, &entity.Flock{ID: "flock-2", Name: "Galpón 2", Type: entity.BirdTypeLayer,
		InitialCount: 500, CurrentStock: 0, StartDate: lastMonth, Status: entity.GroupStatusSold}))
	require.NoError(t, repos.Batches.Create(ctx, &entity.Batch{ID: "b1", BatchNumber: "L-1", FlockID: &flockID,
		InitialCount: 300, CurrentStock: 300, StartDate: lastMonth, Status: entity.GroupStatusActive}))
	require.NoError(t, repos.Batches.Create(ctx, &entity.Batch{ID: "b2", BatchNumber: "L-2",
		InitialCount: 200, CurrentStock: 195, StartDate: lastMonth, Status: entity.GroupStatusActive}))

	require.NoError(t, store.EggCollections().Create(ctx, &entity.EggCollection{ID: "e1", FlockID: &flockID, Date: now, TotalEggs: 850, DamagedEggs: 10}))
	require.NoError(t, store.EggCollections().Create(ctx, &entity.EggCollection{ID: "e2", FlockID: &flockID, Date: now.AddDate(0, 0, -1), TotalEggs: 800}))

	require.NoError(t, repos.Mortality.Create(ctx, &entity.MortalityRecord{ID: "m1", FlockID: &flockID, Date: now.AddDate(0, 0, -3), Count: 20}))
	require.NoError(t, repos.Mortality.Create(ctx, &entity.MortalityRecord{ID: "m2", FlockID: &flockID, Date: lastMonth, Count: 7}))

	tx := store.Transactions()
	require.NoError(t, tx.Create(ctx, &entity.FinancialTransaction{ID: "i1", Kind: entity.TxKindIncome, Date: now, Category: "huevos",
		Amount: decimal.NewFromInt(500000), PaymentStatus: entity.PaymentPaid}))
	require.NoError(t, tx.Create(ctx, &entity.FinancialTransaction{ID: "x1", Kind: entity.TxKindExpense, Date: now.AddDate(0, 0, -5), Category: "alimento",
		Amount: decimal.NewFromInt(320000), PaymentStatus: entity.PaymentPaid}))
	require.NoError(t, tx.Create(ctx, &entity.FinancialTransaction{ID: "x2", Kind: entity.TxKindExpense, Date: lastMonth, Category: "alimento",
		Amount: decimal.NewFromInt(999), PaymentStatus: entity.PaymentPaid}))

	require.NoError(t, repos.FeedInventory.Create(ctx, &entity.FeedInventoryItem{ID: "f1", FeedType: "Postura",
		CurrentStock: decimal.NewFromInt(4), ReorderLevel: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(95000)}))
	require.NoError(t, repos.InventoryItems.Create(ctx, &entity.InventoryItem{ID: "item-1", Name: "Vacuna Newcastle", Category: entity.ItemCategoryVaccine,
		Unit: "dosis", CurrentStock: decimal.NewFromInt(100), ReorderLevel: decimal.NewFromInt(50)}))

	uc := NewDashboardUseCase(DashboardRepos{
		Flocks:         repos.Flocks,
		Batches:        repos.Batches,
		Eggs:           store.EggCollections(),
		Mortality:      repos.Mortality,
		Transactions:   tx,
		FeedInventory:  repos.FeedInventory,
		InventoryItems: repos.InventoryItems,
	})
	uc.now = func() time.Time { return now }

	got, err := uc.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ActiveFlocks)
	assert.Equal(t, 2, got.ActiveBatches)
	assert.Equal(t, 980+195, got.TotalBirds)
	assert.Equal(t, 850, got.EggsToday)
	assert.Equal(t, 20, got.MortalityMonth)
	assert.True(t, got.MonthlyIncome.Equal(decimal.NewFromInt(500000)))
	assert.True(t, got.MonthlyExpense.Equal(decimal.NewFromInt(320000)))
	assert.True(t, got.MonthlyNet.Equal(decimal.NewFromInt(180000)))
	assert.Equal(t, 1, got.LowStockCount)
	assert.True(t, got.FeedStockValue.Equal(decimal.NewFromInt(380000)))
	assert.Equal(t, "Octubre 2026", got.DateLabel)
}

func TestGetSummary_RelojFueraDeUTC(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repos := store.Repos()
	flockID := "flock-1"
	// 30 sep 21:00 en Bogotá es 1 oct 02:00 UTC.
	bogota := time.FixedZone("COT", -5*3600)
	now := time.Date(2026, 9, 30, 21, 0, 0, 0, bogota)
	day := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repos.Flocks.Create(ctx, &entity.Flock{ID: flockID, Name: "Galpón 1", Type: entity.BirdTypeLayer,
		InitialCount: 100, CurrentStock: 100, StartDate: day.AddDate(0, -1, 0), Status: entity.GroupStatusActive}))
	require.NoError(t, store.EggCollections().Create(ctx, &entity.EggCollection{ID: "e1", FlockID: &flockID, Date: day, TotalEggs: 90}))
	tx := store.Transactions()
	require.NoError(t, tx.Create(ctx, &entity.FinancialTransaction{ID: "i1", Kind: entity.TxKindIncome, Date: day, Category: "huevos",
		Amount: decimal.NewFromInt(1000), PaymentStatus: entity.PaymentPaid}))

	uc := NewDashboardUseCase(DashboardRepos{
		Flocks:         repos.Flocks,
		Batches:        repos.Batches,
		Eggs:           store.EggCollections(),
		Mortality:      repos.Mortality,
		Transactions:   tx,
		FeedInventory:  repos.FeedInventory,
		InventoryItems: repos.InventoryItems,
	})
	uc.now = func() time.Time { return now }

	got, err := uc.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 90, got.EggsToday)
	assert.True(t, got.MonthlyIncome.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, "Octubre 2026", got.DateLabel)
}
