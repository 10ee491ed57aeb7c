package repository

import (
	"context"

	"github.com/jhoicas/Granja-api/internal/domain/entity"
)

// FeedInventoryRepository existencias de alimento.
type FeedInventoryRepository interface {
	Create(ctx context.Context, item *entity.FeedInventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.FeedInventoryItem, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.FeedInventoryItem, error)
	// Update modifica los campos descriptivos; no toca el stock.
	Update(ctx context.Context, item *entity.FeedInventoryItem) error
	// UpdateStock persiste CurrentStock, UnitCost y LastRestockDate.
	UpdateStock(ctx context.Context, item *entity.FeedInventoryItem) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f Filter) ([]*entity.FeedInventoryItem, error)
}

// FeedPurchaseRepository compras de alimento.
type FeedPurchaseRepository interface {
	Create(ctx context.Context, p *entity.FeedPurchase) error
	GetByID(ctx context.Context, id string) (*entity.FeedPurchase, error)
	Update(ctx context.Context, p *entity.FeedPurchase) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f Filter) ([]*entity.FeedPurchase, error)
}

// FeedConsumptionRepository consumos de alimento.
type FeedConsumptionRepository interface {
	Create(ctx context.Context, c *entity.FeedConsumption) error
	GetByID(ctx context.Context, id string) (*entity.FeedConsumption, error)
	Delete(ctx context.Context, id string) error
	// List ordena por fecha descendente.
	List(ctx context.Context, f Filter) ([]*entity.FeedConsumption, error)
}
