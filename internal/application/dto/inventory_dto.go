package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest body para POST /api/inventory/items.
type CreateInventoryItemRequest struct {
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	SupplierID   *string         `json:"supplier_id,omitempty"`
	Notes        string          `json:"notes"`
}

// UpdateInventoryItemRequest body para PUT /api/inventory/items/:id. El stock cambia solo vía movimientos.
type UpdateInventoryItemRequest struct {
	Name         *string          `json:"name,omitempty"`
	Category     *string          `json:"category,omitempty"`
	Unit         *string          `json:"unit,omitempty"`
	ReorderLevel *decimal.Decimal `json:"reorder_level,omitempty"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	SupplierID   *string          `json:"supplier_id,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
}

// InventoryItemResponse salida de un ítem.
type InventoryItemResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Unit            string          `json:"unit"`
	CurrentStock    decimal.Decimal `json:"current_stock"`
	ReorderLevel    decimal.Decimal `json:"reorder_level"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	StockValue      decimal.Decimal `json:"stock_value"`
	LowStock        bool            `json:"low_stock"`
	SupplierID      *string         `json:"supplier_id"`
	LastRestockDate *string         `json:"last_restock_date"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CreateStockMovementRequest body para POST /api/inventory/stock-movements.
// type: purchase | consumption | adjustment | return | damage.
type CreateStockMovementRequest struct {
	ItemID    string           `json:"item_id"`
	Type      string           `json:"type"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	Reason    string           `json:"reason"`
	Reference string           `json:"reference"`
	Date      string           `json:"date"`
}

// StockMovementResponse fila del libro de movimientos.
type StockMovementResponse struct {
	ID           string          `json:"id"`
	ItemID       string          `json:"item_id"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Reason       string          `json:"reason"`
	Reference    string          `json:"reference"`
	Date         string          `json:"date"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
}

// PurchaseOrderItemRequest línea de una orden nueva.
type PurchaseOrderItemRequest struct {
	ItemID    string          `json:"item_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseOrderRequest body para POST /api/inventory/purchase-orders.
// order_number vacío se genera automáticamente.
type CreatePurchaseOrderRequest struct {
	OrderNumber  string                     `json:"order_number"`
	SupplierID   string                     `json:"supplier_id"`
	OrderDate    string                     `json:"order_date"`
	ExpectedDate string                     `json:"expected_date"`
	Status       string                     `json:"status"`
	Notes        string                     `json:"notes"`
	Items        []PurchaseOrderItemRequest `json:"items"`
}

// UpdatePurchaseOrderStatusRequest body para PUT /api/inventory/purchase-orders.
type UpdatePurchaseOrderStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// PurchaseOrderItemResponse línea de orden.
type PurchaseOrderItemResponse struct {
	ID         string          `json:"id"`
	ItemID     string          `json:"item_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// PurchaseOrderResponse salida de una orden con sus líneas.
type PurchaseOrderResponse struct {
	ID           string                      `json:"id"`
	OrderNumber  string                      `json:"order_number"`
	SupplierID   string                      `json:"supplier_id"`
	OrderDate    string                      `json:"order_date"`
	ExpectedDate *string                     `json:"expected_date"`
	ReceivedDate *string                     `json:"received_date"`
	Status       string                      `json:"status"`
	TotalAmount  decimal.Decimal             `json:"total_amount"`
	Notes        string                      `json:"notes"`
	Items        []PurchaseOrderItemResponse `json:"items"`
	CreatedBy    string                      `json:"created_by"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// LowStockItemDTO ítem en o por debajo del punto de reorden con la cantidad sugerida de pedido.
type LowStockItemDTO struct {
	Source             string          `json:"source"` // feed | inventory
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Unit               string          `json:"unit"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	ReorderLevel       decimal.Decimal `json:"reorder_level"`
	Deficit            decimal.Decimal `json:"deficit"`             // ReorderLevel - CurrentStock
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"` // ReorderLevel * 1.5 - CurrentStock
	UnitCost           decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"`
	SupplierID         *string         `json:"supplier_id"`
}
