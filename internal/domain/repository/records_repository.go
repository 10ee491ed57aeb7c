package repository

import (
	"context"

	"github.com/jhoicas/Granja-api/internal/domain/entity"
)

// MortalityRepository registros de mortalidad.
type MortalityRepository interface {
	Create(ctx context.Context, r *entity.MortalityRecord) error
	GetByID(ctx context.Context, id string) (*entity.MortalityRecord, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f Filter) ([]*entity.MortalityRecord, error)
}

// EggCollectionRepository recolecciones de huevos.
type EggCollectionRepository interface {
	Create(ctx context.Context, r *entity.EggCollection) error
	GetByID(ctx context.Context, id string) (*entity.EggCollection, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f Filter) ([]*entity.EggCollection, error)
	// SumEggs total de huevos (sin descontar dañados) que cumplen el filtro.
	SumEggs(ctx context.Context, f Filter) (int, error)
}

// WeightRecordRepository pesajes.
type WeightRecordRepository interface {
	Create(ctx context.Context, r *entity.WeightRecord) error
	GetByID(ctx context.Context, id string) (*entity.WeightRecord, error)
	Delete(ctx context.Context, id string) error
	// List ordena por fecha ascendente.
	List(ctx context.Context, f Filter) ([]*entity.WeightRecord, error)
}

// HealthRecordRepository registros sanitarios.
type HealthRecordRepository interface {
	Create(ctx context.Context, r *entity.HealthRecord) error
	GetByID(ctx context.Context, id string) (*entity.HealthRecord, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f Filter) ([]*entity.HealthRecord, error)
}
