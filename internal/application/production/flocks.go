// Package production agrupa parvadas, lotes, registros de campo y el cálculo de FCR.
package production

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Granja-api/internal/application/dto"
	"github.com/jhoicas/Granja-api/internal/domain"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

// FlockUseCase CRUD de parvadas.
type FlockUseCase struct {
	repo repository.FlockRepository
}

func NewFlockUseCase(repo repository.FlockRepository) *FlockUseCase {
	return &FlockUseCase{repo: repo}
}

// Create registra la parvada con CurrentStock = InitialCount y estado active.
func (uc *FlockUseCase) Create(ctx context.Context, in dto.CreateFlockRequest) (*dto.FlockResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "es obligatorio")
	}
	birdType, err := birdType(in.Type)
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
	now := time.Now()
	f := &entity.Flock{
		ID:           uuid.New().String(),
		Name:         name,
		Breed:        strings.TrimSpace(in.Breed),
		Type:         birdType,
		HouseNumber:  strings.TrimSpace(in.HouseNumber),
		InitialCount: in.InitialCount,
		CurrentStock: in.InitialCount,
		StartDate:    start,
		Status:       entity.GroupStatusActive,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	out := ToFlockResponse(f, now)
	return &out, nil
}

func (uc *FlockUseCase) GetByID(ctx context.Context, id string) (*dto.FlockResponse, error) {
	f, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("parvada: %w", domain.ErrNotFound)
	}
	out := ToFlockResponse(f, time.Now())
	return &out, nil
}

// Update modifica los campos descriptivos y el estado; el conteo de aves cambia solo con mortalidad.
func (uc *FlockUseCase) Update(ctx context.Context, id string, in dto.UpdateFlockRequest) (*dto.FlockResponse, error) {
	f, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("parvada: %w", domain.ErrNotFound)
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.Invalid("name", "no puede quedar vacío")
		}
		f.Name = strings.TrimSpace(*in.Name)
	}
	if in.Breed != nil {
		f.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Type != nil {
		if f.Type, err = birdType(*in.Type); err != nil {
			return nil, err
		}
	}
	if in.HouseNumber != nil {
		f.HouseNumber = strings.TrimSpace(*in.HouseNumber)
	}
	if in.Status != nil {
		if !entity.IsValidGroupStatus(*in.Status) {
			return nil, domain.Invalid("status", "estado desconocido: "+*in.Status)
		}
		f.Status = *in.Status
	}
	if in.Notes != nil {
		f.Notes = *in.Notes
	}
	f.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	out := ToFlockResponse(f, f.UpdatedAt)
	return &out, nil
}

func (uc *FlockUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *FlockUseCase) List(ctx context.Context, f repository.Filter) ([]dto.FlockResponse, error) {
	rows, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.FlockResponse, 0, len(rows))
	for _, fl := range rows {
		out = append(out, ToFlockResponse(fl, now))
	}
	return out, nil
}

// ToFlockResponse incluye tasa de mortalidad y edad en días a la fecha now.
func ToFlockResponse(f *entity.Flock, now time.Time) dto.FlockResponse {
	return dto.FlockResponse{
		ID:            f.ID,
		Name:          f.Name,
		Breed:         f.Breed,
		Type:          f.Type,
		HouseNumber:   f.HouseNumber,
		InitialCount:  f.InitialCount,
		CurrentStock:  f.CurrentStock,
		MortalityRate: MortalityRate(f.InitialCount, f.CurrentStock),
		StartDate:     dto.FormatDate(f.StartDate),
		AgeDays:       ageDays(f.StartDate, now),
		Status:        f.Status,
		Notes:         f.Notes,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

// MortalityRate porcentaje de bajas sobre el conteo inicial, a dos decimales.
func MortalityRate(initial, current int) decimal.Decimal {
	if initial <= 0 {
		return decimal.Zero
	}
	lost := decimal.NewFromInt(int64(initial - current))
	return lost.Div(decimal.NewFromInt(int64(initial))).Mul(decimal.NewFromInt(100)).Round(2)
}

func ageDays(start, now time.Time) int {
	if start.IsZero() || now.Before(start) {
		return 0
	}
	return int(now.Sub(start).Hours() / 24)
}

func birdType(t string) (string, error) {
	t = strings.TrimSpace(t)
	if t == "" {
		return entity.BirdTypeLayer, nil
	}
	if !entity.IsValidBirdType(t) {
		return "", domain.Invalid("type", "valores permitidos: layer, broiler, breeder")
	}
	return t, nil
}
