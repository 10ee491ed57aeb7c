package repository

import (
	"context"

	"github.com/jhoicas/Granja-api/internal/domain/entity"
)

// InventoryItemRepository ítems de inventario general.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	UpdateStock(ctx context.Context, item *entity.InventoryItem) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f Filter) ([]*entity.InventoryItem, error)
}

// StockMovementRepository libro de movimientos (solo inserción y borrado compensado).
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	Delete(ctx context.Context, id string) error
	// List ordena por fecha de creación ascendente.
	List(ctx context.Context, f Filter) ([]*entity.StockMovement, error)
}

// PurchaseOrderRepository órdenes de compra con sus líneas.
type PurchaseOrderRepository interface {
	// Create inserta la orden y sus líneas.
	Create(ctx context.Context, o *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// UpdateStatus persiste Status, ReceivedDate y UpdatedAt.
	UpdateStatus(ctx context.Context, o *entity.PurchaseOrder) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f Filter) ([]*entity.PurchaseOrder, error)
}
