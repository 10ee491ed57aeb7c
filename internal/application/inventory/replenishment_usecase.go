package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Granja-api/internal/application/dto"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/inventory"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

// Orígenes de un ítem con stock bajo.
const (
	SourceFeed      = "feed"
	SourceInventory = "inventory"
)

// ReplenishmentUseCase arma la lista de reposición combinando alimento e inventario general.
type ReplenishmentUseCase struct {
	feedRepo repository.FeedInventoryRepository
	itemRepo repository.InventoryItemRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(feedRepo repository.FeedInventoryRepository, itemRepo repository.InventoryItemRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{feedRepo: feedRepo, itemRepo: itemRepo}
}

// GenerateLowStockList devuelve los ítems en o bajo su punto de reorden con la cantidad
// sugerida de pedido. Orden: mayor déficit primero, luego nombre.
func (uc *ReplenishmentUseCase) GenerateLowStockList(ctx context.Context) ([]dto.LowStockItemDTO, error) {
	type feedResult struct {
		rows []*entity.FeedInventoryItem
		err  error
	}
	feedCh := make(chan feedResult, 1)
	go func() {
		rows, err := uc.feedRepo.List(ctx, repository.Filter{})
		feedCh <- feedResult{rows, err}
	}()

	items, err := uc.itemRepo.List(ctx, repository.Filter{})
	if err != nil {
		<-feedCh
		return nil, err
	}
	feed := <-feedCh
	if feed.err != nil {
		return nil, feed.err
	}

	out := make([]dto.LowStockItemDTO, 0)
	for _, f := range feed.rows {
		if !inventory.IsLowStock(f.CurrentStock, f.ReorderLevel) {
			continue
		}
		name := f.FeedType
		if f.Brand != "" {
			name += " (" + f.Brand + ")"
		}
		out = append(out, suggestion(SourceFeed, f.ID, name, "bulto", f.CurrentStock, f.ReorderLevel, f.UnitCost, f.SupplierID))
	}
	for _, it := range items {
		if !inventory.IsLowStock(it.CurrentStock, it.ReorderLevel) {
			continue
		}
		out = append(out, suggestion(SourceInventory, it.ID, it.Name, it.Unit, it.CurrentStock, it.ReorderLevel, it.UnitCost, it.SupplierID))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Deficit.Equal(out[j].Deficit) {
			return out[i].Deficit.GreaterThan(out[j].Deficit)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func suggestion(source, id, name, unit string, current, reorder, unitCost decimal.Decimal, supplierID *string) dto.LowStockItemDTO {
	qty := inventory.SuggestedOrderQuantity(current, reorder)
	return dto.LowStockItemDTO{
		Source:             source,
		ID:                 id,
		Name:               name,
		Unit:               unit,
		CurrentStock:       current,
		ReorderLevel:       reorder,
		Deficit:            reorder.Sub(current),
		SuggestedOrderQty:  qty,
		UnitCost:           unitCost,
		EstimatedOrderCost: qty.Mul(unitCost),
		SupplierID:         supplierID,
	}
}
