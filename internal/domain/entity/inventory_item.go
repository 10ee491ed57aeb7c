package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de inventario general.
const (
	ItemCategoryFeed      = "feed"
	ItemCategoryMedicine  = "medicine"
	ItemCategoryVaccine   = "vaccine"
	ItemCategoryEquipment = "equipment"
	ItemCategorySupplies  = "supplies"
	ItemCategoryOther     = "other"
)

// InventoryItem ítem de inventario general (medicamentos, vacunas, equipos, insumos).
type InventoryItem struct {
	ID              string
	Name            string
	Category        string
	Unit            string
	CurrentStock    decimal.Decimal
	ReorderLevel    decimal.Decimal
	UnitCost        decimal.Decimal
	SupplierID      *string
	LastRestockDate *time.Time
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsValidItemCategory indica si la categoría existe.
func IsValidItemCategory(c string) bool {
	switch c {
	case ItemCategoryFeed, ItemCategoryMedicine, ItemCategoryVaccine,
		ItemCategoryEquipment, ItemCategorySupplies, ItemCategoryOther:
		return true
	}
	return false
}
