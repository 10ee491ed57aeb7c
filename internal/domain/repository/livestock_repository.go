package repository

import (
	"context"

	"github.com/jhoicas/Granja-api/internal/domain/entity"
)

// FlockRepository parvadas.
type FlockRepository interface {
	Create(ctx context.Context, f *entity.Flock) error
	GetByID(ctx context.Context, id string) (*entity.Flock, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Flock, error)
	Update(ctx context.Context, f *entity.Flock) error
	UpdateStock(ctx context.Context, id string, currentStock int) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f Filter) ([]*entity.Flock, error)
}

// BatchRepository lotes.
type BatchRepository interface {
	Create(ctx context.Context, b *entity.Batch) error
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Batch, error)
	Update(ctx context.Context, b *entity.Batch) error
	UpdateStock(ctx context.Context, id string, currentStock int) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f Filter) ([]*entity.Batch, error)
}
