package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateFeedInventoryRequest body para POST /api/feed/inventory.
type CreateFeedInventoryRequest struct {
	FeedType     string          `json:"feed_type"`
	Brand        string          `json:"brand"`
	SupplierID   *string         `json:"supplier_id,omitempty"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Notes        string          `json:"notes"`
}

// UpdateFeedInventoryRequest body para PUT /api/feed/inventory/:id. El stock solo cambia por compras y consumos.
type UpdateFeedInventoryRequest struct {
	FeedType     *string          `json:"feed_type,omitempty"`
	Brand        *string          `json:"brand,omitempty"`
	SupplierID   *string          `json:"supplier_id,omitempty"`
	ReorderLevel *decimal.Decimal `json:"reorder_level,omitempty"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
}

// FeedInventoryResponse salida de un ítem de alimento.
type FeedInventoryResponse struct {
	ID              string          `json:"id"`
	FeedType        string          `json:"feed_type"`
	Brand           string          `json:"brand"`
	SupplierID      *string         `json:"supplier_id"`
	CurrentStock    decimal.Decimal `json:"current_stock"`
	ReorderLevel    decimal.Decimal `json:"reorder_level"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	StockValue      decimal.Decimal `json:"stock_value"`
	LowStock        bool            `json:"low_stock"`
	LastRestockDate *string         `json:"last_restock_date"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CreateFeedPurchaseRequest body para POST /api/feed/purchases.
type CreateFeedPurchaseRequest struct {
	InventoryID   string           `json:"inventory_id"`
	SupplierID    string           `json:"supplier_id"`
	PurchaseDate  string           `json:"purchase_date"`
	Quantity      decimal.Decimal  `json:"quantity"`
	PricePerBag   *decimal.Decimal `json:"price_per_bag"`
	InvoiceNumber *string          `json:"invoice_number,omitempty"`
	PaymentStatus string           `json:"payment_status"`
	Notes         string           `json:"notes"`
}

// UpdateFeedPurchaseRequest body para PUT /api/feed/purchases (id en el body).
type UpdateFeedPurchaseRequest struct {
	ID            string           `json:"id"`
	InventoryID   *string          `json:"inventory_id,omitempty"`
	SupplierID    *string          `json:"supplier_id,omitempty"`
	PurchaseDate  *string          `json:"purchase_date,omitempty"`
	Quantity      *decimal.Decimal `json:"quantity,omitempty"`
	PricePerBag   *decimal.Decimal `json:"price_per_bag,omitempty"`
	InvoiceNumber *string          `json:"invoice_number,omitempty"`
	PaymentStatus *string          `json:"payment_status,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
}

// FeedPurchaseResponse salida de una compra.
type FeedPurchaseResponse struct {
	ID            string          `json:"id"`
	InventoryID   string          `json:"inventory_id"`
	SupplierID    string          `json:"supplier_id"`
	PurchaseDate  string          `json:"purchase_date"`
	Quantity      decimal.Decimal `json:"quantity"`
	PricePerBag   decimal.Decimal `json:"price_per_bag"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	InvoiceNumber *string         `json:"invoice_number"`
	PaymentStatus string          `json:"payment_status"`
	Notes         string          `json:"notes"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreateFeedConsumptionRequest body para POST /api/feed/consumption.
type CreateFeedConsumptionRequest struct {
	InventoryID  string          `json:"inventory_id"`
	FlockID      *string         `json:"flock_id,omitempty"`
	BatchID      *string         `json:"batch_id,omitempty"`
	Date         string          `json:"date"`
	QuantityBags decimal.Decimal `json:"quantity_bags"`
	Notes        string          `json:"notes"`
}

// FeedConsumptionResponse salida de un consumo.
type FeedConsumptionResponse struct {
	ID           string          `json:"id"`
	InventoryID  string          `json:"inventory_id"`
	FlockID      *string         `json:"flock_id"`
	BatchID      *string         `json:"batch_id"`
	Date         string          `json:"date"`
	QuantityBags decimal.Decimal `json:"quantity_bags"`
	QuantityKg   decimal.Decimal `json:"quantity_kg"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Notes        string          `json:"notes"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
}
