package production

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Granja-api/internal/application/dto"
	"github.com/jhoicas/Granja-api/internal/application/ports"
	"github.com/jhoicas/Granja-api/internal/domain"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

const resourceBirds = "birds"

// MortalityUseCase registra bajas y ajusta el conteo de aves de la parvada y/o el lote
// en la misma transacción.
type MortalityUseCase struct {
	tx      ports.TxRunner
	repo    repository.MortalityRepository
	metrics ports.Metrics
	log     zerolog.Logger
}

func NewMortalityUseCase(tx ports.TxRunner, repo repository.MortalityRepository, metrics ports.Metrics, log zerolog.Logger) *MortalityUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &MortalityUseCase{tx: tx, repo: repo, metrics: metrics, log: log}
}

// Record inserta la baja y resta Count del grupo. Un conteo que quedaría negativo se rechaza.
func (uc *MortalityUseCase) Record(ctx context.Context, userID string, in dto.CreateMortalityRequest) (*dto.MortalityResponse, error) {
	flockID, batchID := dto.OptionalID(in.FlockID), dto.OptionalID(in.BatchID)
	if flockID == nil && batchID == nil {
		return nil, domain.Invalid("flock_id", "se requiere flock_id o batch_id")
	}
	if in.Count <= 0 {
		return nil, domain.Invalid("count", "debe ser mayor que 0")
	}
	date, err := dto.ParseDate("date", in.Date, false)
	if err != nil {
		return nil, err
	}
	rec := &entity.MortalityRecord{
		ID:        uuid.New().String(),
		FlockID:   flockID,
		BatchID:   batchID,
		Date:      date,
		Count:     in.Count,
		Cause:     strings.TrimSpace(in.Cause),
		Notes:     in.Notes,
		CreatedBy: userID,
		CreatedAt: time.Now(),
	}
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := adjustBirds(ctx, r, flockID, batchID, -rec.Count); err != nil {
			return err
		}
		return r.Mortality.Create(ctx, rec)
	})
	if err != nil {
		return nil, uc.fail("mortality", err)
	}
	uc.metrics.StockMutation(resourceBirds, "mortality")
	uc.log.Info().Str("mortality_id", rec.ID).Int("count", rec.Count).Msg("mortalidad registrada")
	out := ToMortalityResponse(rec)
	return &out, nil
}

// Delete borra el registro y devuelve las aves al grupo.
func (uc *MortalityUseCase) Delete(ctx context.Context, id string) error {
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		rec, err := r.Mortality.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("registro de mortalidad: %w", domain.ErrNotFound)
		}
		if err := adjustBirds(ctx, r, rec.FlockID, rec.BatchID, rec.Count); err != nil {
			return err
		}
		return r.Mortality.Delete(ctx, id)
	})
	if err != nil {
		return uc.fail("mortality_delete", err)
	}
	uc.metrics.StockMutation(resourceBirds, "mortality_delete")
	return nil
}

func (uc *MortalityUseCase) List(ctx context.Context, f repository.Filter) ([]dto.MortalityResponse, error) {
	rows, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MortalityResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, ToMortalityResponse(m))
	}
	return out, nil
}

func (uc *MortalityUseCase) fail(op string, err error) error {
	if errors.Is(err, domain.ErrInsufficientStock) {
		uc.metrics.StockRejection(resourceBirds, op)
	}
	return err
}

// adjustBirds suma delta al conteo de la parvada y del lote indicados, bloqueando cada fila.
func adjustBirds(ctx context.Context, r ports.Repos, flockID, batchID *string, delta int) error {
	if flockID != nil {
		f, err := r.Flocks.GetForUpdate(ctx, *flockID)
		if err != nil {
			return err
		}
		if f == nil {
			return fmt.Errorf("parvada: %w", domain.ErrNotFound)
		}
		if err := checkBirds(f.ID, f.CurrentStock, delta); err != nil {
			return err
		}
		if err := r.Flocks.UpdateStock(ctx, f.ID, f.CurrentStock+delta); err != nil {
			return err
		}
	}
	if batchID != nil {
		b, err := r.Batches.GetForUpdate(ctx, *batchID)
		if err != nil {
			return err
		}
		if b == nil {
			return fmt.Errorf("lote: %w", domain.ErrNotFound)
		}
		if err := checkBirds(b.ID, b.CurrentStock, delta); err != nil {
			return err
		}
		if err := r.Batches.UpdateStock(ctx, b.ID, b.CurrentStock+delta); err != nil {
			return err
		}
	}
	return nil
}

func checkBirds(id string, current, delta int) error {
	if current+delta < 0 {
		return &domain.InsufficientStockError{
			ItemID:    id,
			Available: strconv.Itoa(current),
			Requested: strconv.Itoa(-delta),
		}
	}
	return nil
}

func ToMortalityResponse(m *entity.MortalityRecord) dto.MortalityResponse {
	return dto.MortalityResponse{
		ID:        m.ID,
		FlockID:   m.FlockID,
		BatchID:   m.BatchID,
		Date:      dto.FormatDate(m.Date),
		Count:     m.Count,
		Cause:     m.Cause,
		Notes:     m.Notes,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
	}
}
