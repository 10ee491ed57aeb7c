package production

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Granja-api/internal/application/dto"
	"github.com/jhoicas/Granja-api/internal/application/ports"
	"github.com/jhoicas/Granja-api/internal/domain"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/fcr"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

// Modos de población para el cálculo de FCR.
const (
	PopulationCurrent    = "current"
	PopulationHistorical = "historical"
)

// FCRUseCase arma la entrada del cálculo de FCR de un lote a partir de sus registros.
type FCRUseCase struct {
	batches     repository.BatchRepository
	consumption repository.FeedConsumptionRepository
	weights     repository.WeightRecordRepository
	mortality   repository.MortalityRepository
	metrics     ports.Metrics
	log         zerolog.Logger
}

func NewFCRUseCase(
	batches repository.BatchRepository,
	consumption repository.FeedConsumptionRepository,
	weights repository.WeightRecordRepository,
	mortality repository.MortalityRepository,
	metrics ports.Metrics,
	log zerolog.Logger,
) *FCRUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &FCRUseCase{batches: batches, consumption: consumption, weights: weights, mortality: mortality, metrics: metrics, log: log}
}

// Calculate devuelve el FCR del lote. Con population=current todos los pesajes usan el conteo
// actual; con historical cada pesaje usa el conteo actual más las bajas posteriores a su fecha.
func (uc *FCRUseCase) Calculate(ctx context.Context, batchID, population string) (*dto.FCRResponse, error) {
	batchID = strings.TrimSpace(batchID)
	if batchID == "" {
		return nil, domain.Invalid("batch_id", "es obligatorio")
	}
	mode := strings.TrimSpace(population)
	if mode == "" {
		mode = PopulationCurrent
	}
	if mode != PopulationCurrent && mode != PopulationHistorical {
		return nil, domain.Invalid("population", "valores permitidos: current, historical")
	}

	batch, err := uc.batches.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, fmt.Errorf("lote: %w", domain.ErrNotFound)
	}

	f := repository.Filter{BatchID: batchID}
	consumptions, err := uc.consumption.List(ctx, f)
	if err != nil {
		return nil, err
	}
	weighings, err := uc.weights.List(ctx, f)
	if err != nil {
		return nil, err
	}
	var deaths []*entity.MortalityRecord
	if mode == PopulationHistorical {
		if deaths, err = uc.mortality.List(ctx, f); err != nil {
			return nil, err
		}
	}

	in := fcr.Input{StartDate: batch.StartDate}
	for _, c := range consumptions {
		in.Consumptions = append(in.Consumptions, fcr.Consumption{Date: c.Date, QuantityBags: c.QuantityBags, UnitCost: c.UnitCost})
	}
	for _, w := range weighings {
		pop := batch.CurrentStock
		for _, m := range deaths {
			if m.Date.After(w.Date) {
				pop += m.Count
			}
		}
		in.Weighings = append(in.Weighings, fcr.Weighing{Date: w.Date, AverageWeight: w.AverageWeight, Population: pop})
	}

	res := fcr.Compute(in)
	uc.metrics.FCRComputed(res.Performance)
	uc.log.Debug().Str("batch_id", batchID).Str("fcr", res.FCR.String()).Str("performance", res.Performance).Msg("fcr calculado")

	out := toFCRResponse(batch, mode, res)
	return &out, nil
}

// toFCRResponse redondea para transporte: razones y montos a 2 decimales, pesos a 3.
func toFCRResponse(b *entity.Batch, mode string, res fcr.Result) dto.FCRResponse {
	population := res.Population
	if len(res.Trend) == 0 {
		population = b.CurrentStock
	}
	trend := make([]dto.FCRTrendPointDTO, 0, len(res.Trend))
	for _, p := range res.Trend {
		trend = append(trend, dto.FCRTrendPointDTO{
			Date:             dto.FormatDate(p.Date),
			AverageWeight:    p.AverageWeight.Round(3),
			Population:       p.Population,
			CumulativeFeedKg: p.CumulativeFeedKg.Round(2),
			FCR:              p.FCR.Round(2),
		})
	}
	return dto.FCRResponse{
		BatchID:         b.ID,
		BatchNumber:     b.BatchNumber,
		PopulationMode:  mode,
		CurrentStock:    b.CurrentStock,
		Population:      population,
		TotalFeedKg:     res.TotalFeedKg.Round(2),
		TotalFeedCost:   res.TotalFeedCost.Round(2),
		CurrentWeight:   res.CurrentWeight.Round(3),
		WeightGain:      res.WeightGain.Round(3),
		TotalWeightGain: res.TotalWeightGain.Round(3),
		FCR:             res.FCR.Round(2),
		CostPerKg:       res.CostPerKg.Round(2),
		FeedPerBird:     res.FeedPerBird.Round(3),
		DaysOnFeed:      res.DaysOnFeed,
		Performance:     res.Performance,
		Trend:           trend,
	}
}
