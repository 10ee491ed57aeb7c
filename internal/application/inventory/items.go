package inventory

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
	"github.com/jhoicas/Granja-api/internal/domain/inventory"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

// ItemUseCase CRUD de ítems de inventario general.
type ItemUseCase struct {
	itemRepo     repository.InventoryItemRepository
	supplierRepo repository.SupplierRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(itemRepo repository.InventoryItemRepository, supplierRepo repository.SupplierRepository) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo, supplierRepo: supplierRepo}
}

func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "es obligatorio")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = entity.ItemCategoryOther
	}
	if !entity.IsValidItemCategory(category) {
		return nil, domain.Invalid("category", "categoría desconocida: "+category)
	}
	switch {
	case in.CurrentStock.IsNegative():
		return nil, domain.Invalid("current_stock", "no puede ser negativo")
	case in.ReorderLevel.IsNegative():
		return nil, domain.Invalid("reorder_level", "no puede ser negativo")
	case in.UnitCost.IsNegative():
		return nil, domain.Invalid("unit_cost", "no puede ser negativo")
	}
	if err := checkItemScale(in.CurrentStock, in.ReorderLevel, in.UnitCost); err != nil {
		return nil, err
	}
	supplierID := dto.OptionalID(in.SupplierID)
	if err := uc.ensureSupplier(ctx, supplierID); err != nil {
		return nil, err
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:           uuid.New().String(),
		Name:         name,
		Category:     category,
		Unit:         strings.TrimSpace(in.Unit),
		CurrentStock: in.CurrentStock,
		ReorderLevel: in.ReorderLevel,
		UnitCost:     in.UnitCost,
		SupplierID:   supplierID,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	out := ToItemResponse(item)
	return &out, nil
}

func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.InventoryItemResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("ítem de inventario: %w", domain.ErrNotFound)
	}
	out := ToItemResponse(item)
	return &out, nil
}

// Update modifica los campos descriptivos; el stock solo cambia con movimientos.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("ítem de inventario: %w", domain.ErrNotFound)
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.Invalid("name", "no puede quedar vacío")
		}
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		if !entity.IsValidItemCategory(*in.Category) {
			return nil, domain.Invalid("category", "categoría desconocida: "+*in.Category)
		}
		item.Category = *in.Category
	}
	if in.Unit != nil {
		item.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.ReorderLevel != nil {
		if in.ReorderLevel.IsNegative() {
			return nil, domain.Invalid("reorder_level", "no puede ser negativo")
		}
		item.ReorderLevel = *in.ReorderLevel
	}
	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			return nil, domain.Invalid("unit_cost", "no puede ser negativo")
		}
		item.UnitCost = *in.UnitCost
	}
	if err := checkItemScale(item.CurrentStock, item.ReorderLevel, item.UnitCost); err != nil {
		return nil, err
	}
	if in.SupplierID != nil {
		item.SupplierID = dto.OptionalID(in.SupplierID)
		if err := uc.ensureSupplier(ctx, item.SupplierID); err != nil {
			return nil, err
		}
	}
	if in.Notes != nil {
		item.Notes = *in.Notes
	}
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	out := ToItemResponse(item)
	return &out, nil
}

func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	return uc.itemRepo.Delete(ctx, id)
}

func (uc *ItemUseCase) List(ctx context.Context, f repository.Filter) ([]dto.InventoryItemResponse, error) {
	items, err := uc.itemRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ToItemResponse(it))
	}
	return out, nil
}

func (uc *ItemUseCase) ensureSupplier(ctx context.Context, id *string) error {
	if id == nil {
		return nil
	}
	s, err := uc.supplierRepo.GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("proveedor: %w", domain.ErrNotFound)
	}
	return nil
}

// ToItemResponse mapea un ítem a su DTO con valor de stock y alerta de reorden.
func ToItemResponse(it *entity.InventoryItem) dto.InventoryItemResponse {
	return dto.InventoryItemResponse{
		ID:              it.ID,
		Name:            it.Name,
		Category:        it.Category,
		Unit:            it.Unit,
		CurrentStock:    it.CurrentStock,
		ReorderLevel:    it.ReorderLevel,
		UnitCost:        it.UnitCost,
		StockValue:      it.CurrentStock.Mul(it.UnitCost),
		LowStock:        inventory.IsLowStock(it.CurrentStock, it.ReorderLevel),
		SupplierID:      it.SupplierID,
		LastRestockDate: dto.FormatOptionalDate(it.LastRestockDate),
		Notes:           it.Notes,
		CreatedAt:       it.CreatedAt,
		UpdatedAt:       it.UpdatedAt,
	}
}

func checkItemScale(stock, reorder, cost decimal.Decimal) error {
	if err := domain.CheckQuantity("current_stock", stock); err != nil {
		return err
	}
	if err := domain.CheckQuantity("reorder_level", reorder); err != nil {
		return err
	}
	return domain.CheckMoney("unit_cost", cost)
}
