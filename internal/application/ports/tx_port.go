package ports

import (
	"context"

	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	FeedInventory   repository.FeedInventoryRepository
	FeedPurchases   repository.FeedPurchaseRepository
	FeedConsumption repository.FeedConsumptionRepository
	InventoryItems  repository.InventoryItemRepository
	StockMovements  repository.StockMovementRepository
	PurchaseOrders  repository.PurchaseOrderRepository
	Suppliers       repository.SupplierRepository
	Flocks          repository.FlockRepository
	Batches         repository.BatchRepository
	Mortality       repository.MortalityRepository
}

// TxRunner ejecuta fn dentro de una transacción: commit si fn devuelve nil, rollback en otro caso.
// Dentro de fn solo deben usarse los repositorios recibidos.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
