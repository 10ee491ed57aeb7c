package production

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Granja-api/internal/application/dto"
	"github.com/jhoicas/Granja-api/internal/domain"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/fcr"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
	"github.com/jhoicas/Granja-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }
func sp(s string) *string       { return &s }

func TestFlockUseCase(t *testing.T) {
	store := memory.New()
	uc := NewFlockUseCase(store.Repos().Flocks)
	ctx := context.Background()

	f, err := uc.Create(ctx, dto.CreateFlockRequest{Name: "Galpón 1", InitialCount: 1000, StartDate: "2024-01-10"})
	require.NoError(t, err)
	assert.Equal(t, entity.BirdTypeLayer, f.Type)
	assert.Equal(t, 1000, f.CurrentStock)
	assert.Equal(t, entity.GroupStatusActive, f.Status)

	_, err = uc.Create(ctx, dto.CreateFlockRequest{Name: "Galpón 1", InitialCount: 10})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
	_, err = uc.Create(ctx, dto.CreateFlockRequest{Name: "Galpón 2", InitialCount: 0})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = uc.Create(ctx, dto.CreateFlockRequest{Name: "Galpón 2", Type: "duck", InitialCount: 10})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	status := entity.GroupStatusSold
	up, err := uc.Update(ctx, f.ID, dto.UpdateFlockRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, entity.GroupStatusSold, up.Status)
	assert.Equal(t, 1000, up.CurrentStock)

	bad := "gone"
	_, err = uc.Update(ctx, f.ID, dto.UpdateFlockRequest{Status: &bad})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	require.NoError(t, uc.Delete(ctx, f.ID))
	_, err = uc.GetByID(ctx, f.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMortalityRate(t *testing.T) {
	assert.True(t, d("2.5").Equal(MortalityRate(1000, 975)))
	assert.True(t, MortalityRate(0, 0).IsZero())
	assert.True(t, d("33.33").Equal(MortalityRate(3, 2)))
}

func TestMortality_AjustaConteo(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	flocks := NewFlockUseCase(store.Repos().Flocks)
	batches := NewBatchUseCase(store.Repos().Batches, store.Repos().Flocks)
	uc := NewMortalityUseCase(store, store.Repos().Mortality, nil, zerolog.Nop())

	f, err := flocks.Create(ctx, dto.CreateFlockRequest{Name: "Galpón 3", InitialCount: 100})
	require.NoError(t, err)
	b, err := batches.Create(ctx, dto.CreateBatchRequest{BatchNumber: "L-001", FlockID: sp(f.ID), InitialCount: 40})
	require.NoError(t, err)

	m, err := uc.Record(ctx, "u", dto.CreateMortalityRequest{FlockID: sp(f.ID), BatchID: sp(b.ID), Count: 5, Cause: "calor"})
	require.NoError(t, err)

	gotF, err := flocks.GetByID(ctx, f.ID)
	require.NoError(t, err)
	gotB, err := batches.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 95, gotF.CurrentStock)
	assert.Equal(t, 35, gotB.CurrentStock)

	// El lote no alcanza: ni la parvada ni el lote cambian.
	_, err = uc.Record(ctx, "u", dto.CreateMortalityRequest{FlockID: sp(f.ID), BatchID: sp(b.ID), Count: 36})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	gotF, _ = flocks.GetByID(ctx, f.ID)
	assert.Equal(t, 95, gotF.CurrentStock)

	require.NoError(t, uc.Delete(ctx, m.ID))
	gotF, _ = flocks.GetByID(ctx, f.ID)
	gotB, _ = batches.GetByID(ctx, b.ID)
	assert.Equal(t, 100, gotF.CurrentStock)
	assert.Equal(t, 40, gotB.CurrentStock)

	_, err = uc.Record(ctx, "u", dto.CreateMortalityRequest{Count: 1})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = uc.Record(ctx, "u", dto.CreateMortalityRequest{FlockID: sp("nope"), Count: 1})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRecords_Validaciones(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	r := store.Repos()
	flocks := NewFlockUseCase(r.Flocks)
	f, err := flocks.Create(ctx, dto.CreateFlockRequest{Name: "Ponedoras", InitialCount: 300})
	require.NoError(t, err)

	eggs := NewEggUseCase(store.EggCollections(), r.Flocks, r.Batches)
	e, err := eggs.Create(ctx, "u", dto.CreateEggCollectionRequest{FlockID: sp(f.ID), TotalEggs: 280, DamagedEggs: 6})
	require.NoError(t, err)
	assert.Equal(t, 274, e.GoodEggs)
	_, err = eggs.Create(ctx, "u", dto.CreateEggCollectionRequest{FlockID: sp(f.ID), TotalEggs: 5, DamagedEggs: 6})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	weights := NewWeightUseCase(store.WeightRecords(), r.Flocks, r.Batches)
	_, err = weights.Create(ctx, "u", dto.CreateWeightRecordRequest{BatchID: "nope", SampleSize: 10, AverageWeight: d("1.2")})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = weights.Create(ctx, "u", dto.CreateWeightRecordRequest{BatchID: "x", SampleSize: 10, AverageWeight: d("0")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	health := NewHealthUseCase(store.HealthRecords(), r.Flocks, r.Batches)
	h, err := health.Create(ctx, "u", dto.CreateHealthRecordRequest{FlockID: sp(f.ID), Type: entity.HealthVaccination,
		Description: "Newcastle + Bronquitis", Cost: d("85000")})
	require.NoError(t, err)
	assert.Equal(t, entity.HealthVaccination, h.Type)
	_, err = health.Create(ctx, "u", dto.CreateHealthRecordRequest{FlockID: sp(f.ID), Type: "surgery", Description: "x"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	list, err := health.List(ctx, repository.Filter{FlockID: f.ID})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func seedBatch(t *testing.T, store *memory.Store, current int) *entity.Batch {
	t.Helper()
	now := time.Now()
	b := &entity.Batch{ID: "batch-1", BatchNumber: "B-2024-01", Type: entity.BirdTypeBroiler,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), InitialCount: 1000, CurrentStock: current,
		Status: entity.GroupStatusActive, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Repos().Batches.Create(context.Background(), b))
	return b
}

func TestFCR_Escenario(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	b := seedBatch(t, store, 1000)
	r := store.Repos()
	now := time.Now()

	// 100 bultos = 2500 kg en dos consumos.
	require.NoError(t, r.FeedInventory.Create(ctx, &entity.FeedInventoryItem{ID: "feed-1", FeedType: "Engorde", CreatedAt: now, UpdatedAt: now}))
	for i, qty := range []string{"60", "40"} {
		require.NoError(t, r.FeedConsumption.Create(ctx, &entity.FeedConsumption{
			ID: "c" + string(rune('1'+i)), InventoryID: "feed-1", BatchID: &b.ID,
			Date: time.Date(2024, 1, 10+i*10, 0, 0, 0, 0, time.UTC), QuantityBags: d(qty), UnitCost: d("100000"), CreatedAt: now,
		}))
	}
	require.NoError(t, store.WeightRecords().Create(ctx, &entity.WeightRecord{ID: "w1", BatchID: b.ID,
		Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), SampleSize: 50, AverageWeight: d("0.8"), CreatedAt: now}))
	require.NoError(t, store.WeightRecords().Create(ctx, &entity.WeightRecord{ID: "w2", BatchID: b.ID,
		Date: time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC), SampleSize: 50, AverageWeight: d("2.2"), CreatedAt: now}))

	uc := NewFCRUseCase(r.Batches, r.FeedConsumption, store.WeightRecords(), r.Mortality, nil, zerolog.Nop())
	res, err := uc.Calculate(ctx, b.ID, "")
	require.NoError(t, err)

	assert.Equal(t, PopulationCurrent, res.PopulationMode)
	assert.True(t, d("2500").Equal(res.TotalFeedKg))
	assert.True(t, d("2.155").Equal(res.WeightGain))
	assert.True(t, d("2155").Equal(res.TotalWeightGain))
	assert.True(t, d("1.16").Equal(res.FCR), "fcr = %s", res.FCR)
	assert.Equal(t, fcr.PerformanceExcellent, res.Performance)
	assert.True(t, d("10000000").Equal(res.TotalFeedCost))
	assert.True(t, d("4640.37").Equal(res.CostPerKg), "costPerKg = %s", res.CostPerKg)
	assert.True(t, d("2.5").Equal(res.FeedPerBird))
	assert.Equal(t, 42, res.DaysOnFeed)
	require.Len(t, res.Trend, 2)
	assert.Equal(t, "2024-01-15", res.Trend[0].Date)
	assert.True(t, d("1500").Equal(res.Trend[0].CumulativeFeedKg))
}

func TestFCR_SinPesajes(t *testing.T) {
	store := memory.New()
	b := seedBatch(t, store, 500)
	r := store.Repos()
	uc := NewFCRUseCase(r.Batches, r.FeedConsumption, store.WeightRecords(), r.Mortality, nil, zerolog.Nop())

	res, err := uc.Calculate(context.Background(), b.ID, PopulationCurrent)
	require.NoError(t, err)
	assert.True(t, res.FCR.IsZero())
	assert.Equal(t, fcr.PerformanceNoData, res.Performance)
	assert.Equal(t, 500, res.Population)
	assert.Empty(t, res.Trend)
}

func TestFCR_PoblacionHistorica(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	b := seedBatch(t, store, 900)
	r := store.Repos()
	now := time.Now()

	require.NoError(t, store.WeightRecords().Create(ctx, &entity.WeightRecord{ID: "w1", BatchID: b.ID,
		Date: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), SampleSize: 50, AverageWeight: d("1.045"), CreatedAt: now}))
	require.NoError(t, r.Mortality.Create(ctx, &entity.MortalityRecord{ID: "m1", BatchID: &b.ID,
		Date: time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC), Count: 100, CreatedAt: now}))
	require.NoError(t, r.Mortality.Create(ctx, &entity.MortalityRecord{ID: "m0", BatchID: &b.ID,
		Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Count: 7, CreatedAt: now}))

	uc := NewFCRUseCase(r.Batches, r.FeedConsumption, store.WeightRecords(), r.Mortality, nil, zerolog.Nop())

	cur, err := uc.Calculate(ctx, b.ID, PopulationCurrent)
	require.NoError(t, err)
	assert.Equal(t, 900, cur.Population)
	assert.True(t, d("900").Equal(cur.TotalWeightGain))

	hist, err := uc.Calculate(ctx, b.ID, PopulationHistorical)
	require.NoError(t, err)
	assert.Equal(t, 1000, hist.Population, "solo suma las bajas posteriores al pesaje")
	assert.True(t, d("1000").Equal(hist.TotalWeightGain))

	_, err = uc.Calculate(ctx, b.ID, "average")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = uc.Calculate(ctx, "", "")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = uc.Calculate(ctx, "nope", "")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
