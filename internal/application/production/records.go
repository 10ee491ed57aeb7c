package production

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Granja-api/internal/application/dto"
	"github.com/jhoicas/Granja-api/internal/domain"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

// groups verifica que la parvada o el lote referenciados existan.
type groups struct {
	flocks  repository.FlockRepository
	batches repository.BatchRepository
}

func (g groups) ensure(ctx context.Context, flockID, batchID *string) error {
	if flockID != nil {
		f, err := g.flocks.GetByID(ctx, *flockID)
		if err != nil {
			return err
		}
		if f == nil {
			return fmt.Errorf("parvada: %w", domain.ErrNotFound)
		}
	}
	if batchID != nil {
		b, err := g.batches.GetByID(ctx, *batchID)
		if err != nil {
			return err
		}
		if b == nil {
			return fmt.Errorf("lote: %w", domain.ErrNotFound)
		}
	}
	return nil
}

// ── Huevos ──────────────────────────────────────────────────────────────────

type EggUseCase struct {
	repo repository.EggCollectionRepository
	groups
}

func NewEggUseCase(repo repository.EggCollectionRepository, flocks repository.FlockRepository, batches repository.BatchRepository) *EggUseCase {
	return &EggUseCase{repo: repo, groups: groups{flocks: flocks, batches: batches}}
}

func (uc *EggUseCase) Create(ctx context.Context, userID string, in dto.CreateEggCollectionRequest) (*dto.EggCollectionResponse, error) {
	flockID, batchID := dto.OptionalID(in.FlockID), dto.OptionalID(in.BatchID)
	if flockID == nil && batchID == nil {
		return nil, domain.Invalid("flock_id", "se requiere flock_id o batch_id")
	}
	if in.TotalEggs < 0 {
		return nil, domain.Invalid("total_eggs", "no puede ser negativo")
	}
	if in.DamagedEggs < 0 || in.DamagedEggs > in.TotalEggs {
		return nil, domain.Invalid("damaged_eggs", "debe estar entre 0 y total_eggs")
	}
	date, err := dto.ParseDate("date", in.Date, false)
	if err != nil {
		return nil, err
	}
	if err := uc.ensure(ctx, flockID, batchID); err != nil {
		return nil, err
	}
	e := &entity.EggCollection{
		ID:          uuid.New().String(),
		FlockID:     flockID,
		BatchID:     batchID,
		Date:        date,
		TotalEggs:   in.TotalEggs,
		DamagedEggs: in.DamagedEggs,
		Notes:       in.Notes,
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	out := ToEggResponse(e)
	return &out, nil
}

func (uc *EggUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *EggUseCase) List(ctx context.Context, f repository.Filter) ([]dto.EggCollectionResponse, error) {
	rows, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EggCollectionResponse, 0, len(rows))
	for _, e := range rows {
		out = append(out, ToEggResponse(e))
	}
	return out, nil
}

func ToEggResponse(e *entity.EggCollection) dto.EggCollectionResponse {
	return dto.EggCollectionResponse{
		ID:          e.ID,
		FlockID:     e.FlockID,
		BatchID:     e.BatchID,
		Date:        dto.FormatDate(e.Date),
		TotalEggs:   e.TotalEggs,
		DamagedEggs: e.DamagedEggs,
		GoodEggs:    e.TotalEggs - e.DamagedEggs,
		Notes:       e.Notes,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
}

// ── Pesajes ─────────────────────────────────────────────────────────────────

type WeightUseCase struct {
	repo repository.WeightRecordRepository
	groups
}

func NewWeightUseCase(repo repository.WeightRecordRepository, flocks repository.FlockRepository, batches repository.BatchRepository) *WeightUseCase {
	return &WeightUseCase{repo: repo, groups: groups{flocks: flocks, batches: batches}}
}

func (uc *WeightUseCase) Create(ctx context.Context, userID string, in dto.CreateWeightRecordRequest) (*dto.WeightRecordResponse, error) {
	batchID := strings.TrimSpace(in.BatchID)
	if batchID == "" {
		return nil, domain.Invalid("batch_id", "es obligatorio")
	}
	if in.SampleSize <= 0 {
		return nil, domain.Invalid("sample_size", "debe ser mayor que 0")
	}
	if !in.AverageWeight.IsPositive() {
		return nil, domain.Invalid("average_weight", "debe ser mayor que 0")
	}
	if err := domain.CheckQuantity("average_weight", in.AverageWeight); err != nil {
		return nil, err
	}
	date, err := dto.ParseDate("date", in.Date, false)
	if err != nil {
		return nil, err
	}
	if err := uc.ensure(ctx, nil, &batchID); err != nil {
		return nil, err
	}
	w := &entity.WeightRecord{
		ID:            uuid.New().String(),
		BatchID:       batchID,
		Date:          date,
		SampleSize:    in.SampleSize,
		AverageWeight: in.AverageWeight,
		Notes:         in.Notes,
		CreatedBy:     userID,
		CreatedAt:     time.Now(),
	}
	if err := uc.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	out := ToWeightResponse(w)
	return &out, nil
}

func (uc *WeightUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *WeightUseCase) List(ctx context.Context, f repository.Filter) ([]dto.WeightRecordResponse, error) {
	rows, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WeightRecordResponse, 0, len(rows))
	for _, w := range rows {
		out = append(out, ToWeightResponse(w))
	}
	return out, nil
}

func ToWeightResponse(w *entity.WeightRecord) dto.WeightRecordResponse {
	return dto.WeightRecordResponse{
		ID:            w.ID,
		BatchID:       w.BatchID,
		Date:          dto.FormatDate(w.Date),
		SampleSize:    w.SampleSize,
		AverageWeight: w.AverageWeight,
		Notes:         w.Notes,
		CreatedBy:     w.CreatedBy,
		CreatedAt:     w.CreatedAt,
	}
}

// ── Sanidad ─────────────────────────────────────────────────────────────────

type HealthUseCase struct {
	repo repository.HealthRecordRepository
	groups
}

func NewHealthUseCase(repo repository.HealthRecordRepository, flocks repository.FlockRepository, batches repository.BatchRepository) *HealthUseCase {
	return &HealthUseCase{repo: repo, groups: groups{flocks: flocks, batches: batches}}
}

func (uc *HealthUseCase) Create(ctx context.Context, userID string, in dto.CreateHealthRecordRequest) (*dto.HealthRecordResponse, error) {
	flockID, batchID := dto.OptionalID(in.FlockID), dto.OptionalID(in.BatchID)
	if flockID == nil && batchID == nil {
		return nil, domain.Invalid("flock_id", "se requiere flock_id o batch_id")
	}
	kind := strings.TrimSpace(in.Type)
	if kind == "" {
		kind = entity.HealthOther
	}
	switch kind {
	case entity.HealthVaccination, entity.HealthTreatment, entity.HealthCheckup, entity.HealthOther:
	default:
		return nil, domain.Invalid("type", "valores permitidos: vaccination, treatment, checkup, other")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, domain.Invalid("description", "es obligatorio")
	}
	if in.Cost.IsNegative() {
		return nil, domain.Invalid("cost", "no puede ser negativo")
	}
	if err := domain.CheckMoney("cost", in.Cost); err != nil {
		return nil, err
	}
	date, err := dto.ParseDate("date", in.Date, false)
	if err != nil {
		return nil, err
	}
	if err := uc.ensure(ctx, flockID, batchID); err != nil {
		return nil, err
	}
	h := &entity.HealthRecord{
		ID:           uuid.New().String(),
		FlockID:      flockID,
		BatchID:      batchID,
		Date:         date,
		Type:         kind,
		Description:  strings.TrimSpace(in.Description),
		Medication:   in.Medication,
		Dosage:       in.Dosage,
		Cost:         in.Cost,
		Veterinarian: in.Veterinarian,
		Notes:        in.Notes,
		CreatedBy:    userID,
		CreatedAt:    time.Now(),
	}
	if err := uc.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	out := ToHealthResponse(h)
	return &out, nil
}

func (uc *HealthUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *HealthUseCase) List(ctx context.Context, f repository.Filter) ([]dto.HealthRecordResponse, error) {
	rows, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HealthRecordResponse, 0, len(rows))
	for _, h := range rows {
		out = append(out, ToHealthResponse(h))
	}
	return out, nil
}

func ToHealthResponse(h *entity.HealthRecord) dto.HealthRecordResponse {
	return dto.HealthRecordResponse{
		ID:           h.ID,
		FlockID:      h.FlockID,
		BatchID:      h.BatchID,
		Date:         dto.FormatDate(h.Date),
		Type:         h.Type,
		Description:  h.Description,
		Medication:   h.Medication,
		Dosage:       h.Dosage,
		Cost:         h.Cost,
		Veterinarian: h.Veterinarian,
		Notes:        h.Notes,
		CreatedBy:    h.CreatedBy,
		CreatedAt:    h.CreatedAt,
	}
}
