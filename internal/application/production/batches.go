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

// BatchUseCase CRUD de lotes.
type BatchUseCase struct {
	repo      repository.BatchRepository
	flockRepo repository.FlockRepository
}

func NewBatchUseCase(repo repository.BatchRepository, flockRepo repository.FlockRepository) *BatchUseCase {
	return &BatchUseCase{repo: repo, flockRepo: flockRepo}
}

func (uc *BatchUseCase) Create(ctx context.Context, in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	number := strings.TrimSpace(in.BatchNumber)
	if number == "" {
		return nil, domain.Invalid("batch_number", "es obligatorio")
	}
	t, err := birdType(in.Type)
	if err != nil {
		return nil, err
	}
	if in.InitialCount <= 0 {
		return nil, domain.Invalid("initial_count", "debe ser mayor que 0")
	}
	start, err := dto.ParseDate("start_date", in.StartDate, false)
	if err != nil {
		return nil, err
	}
	flockID := dto.OptionalID(in.FlockID)
	if err := uc.ensureFlock(ctx, flockID); err != nil {
		return nil, err
	}
	now := time.Now()
	b := &entity.Batch{
		ID:           uuid.New().String(),
		BatchNumber:  number,
		FlockID:      flockID,
		Breed:        strings.TrimSpace(in.Breed),
		Type:         t,
		StartDate:    start,
		InitialCount: in.InitialCount,
		CurrentStock: in.InitialCount,
		Status:       entity.GroupStatusActive,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	out := ToBatchResponse(b, now)
	return &out, nil
}

func (uc *BatchUseCase) GetByID(ctx context.Context, id string) (*dto.BatchResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("lote: %w", domain.ErrNotFound)
	}
	out := ToBatchResponse(b, time.Now())
	return &out, nil
}

func (uc *BatchUseCase) Update(ctx context.Context, id string, in dto.UpdateBatchRequest) (*dto.BatchResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("lote: %w", domain.ErrNotFound)
	}
	if in.BatchNumber != nil {
		if strings.TrimSpace(*in.BatchNumber) == "" {
			return nil, domain.Invalid("batch_number", "no puede quedar vacío")
		}
		b.BatchNumber = strings.TrimSpace(*in.BatchNumber)
	}
	if in.FlockID != nil {
		b.FlockID = dto.OptionalID(in.FlockID)
		if err := uc.ensureFlock(ctx, b.FlockID); err != nil {
			return nil, err
		}
	}
	if in.Breed != nil {
		b.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Type != nil {
		if b.Type, err = birdType(*in.Type); err != nil {
			return nil, err
		}
	}
	if in.Status != nil {
		if !entity.IsValidGroupStatus(*in.Status) {
			return nil, domain.Invalid("status", "estado desconocido: "+*in.Status)
		}
		b.Status = *in.Status
	}
	if in.Notes != nil {
		b.Notes = *in.Notes
	}
	b.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	out := ToBatchResponse(b, b.UpdatedAt)
	return &out, nil
}

func (uc *BatchUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *BatchUseCase) List(ctx context.Context, f repository.Filter) ([]dto.BatchResponse, error) {
	rows, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.BatchResponse, 0, len(rows))
	for _, b := range rows {
		out = append(out, ToBatchResponse(b, now))
	}
	return out, nil
}

func (uc *BatchUseCase) ensureFlock(ctx context.Context, id *string) error {
	if id == nil {
		return nil
	}
	f, err := uc.flockRepo.GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if f == nil {
		return fmt.Errorf("parvada: %w", domain.ErrNotFound)
	}
	return nil
}

func ToBatchResponse(b *entity.Batch, now time.Time) dto.BatchResponse {
	return dto.BatchResponse{
		ID:            b.ID,
		BatchNumber:   b.BatchNumber,
		FlockID:       b.FlockID,
		Breed:         b.Breed,
		Type:          b.Type,
		StartDate:     dto.FormatDate(b.StartDate),
		AgeDays:       ageDays(b.StartDate, now),
		InitialCount:  b.InitialCount,
		CurrentStock:  b.CurrentStock,
		MortalityRate: MortalityRate(b.InitialCount, b.CurrentStock),
		Status:        b.Status,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
