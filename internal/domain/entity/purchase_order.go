package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	POStatusDraft     = "draft"
	POStatusPending   = "pending"
	POStatusApproved  = "approved"
	POStatusOrdered   = "ordered"
	POStatusReceived  = "received"
	POStatusCancelled = "cancelled"
)

// PurchaseOrder orden de compra multi-línea a un proveedor.
type PurchaseOrder struct {
	ID           string
	OrderNumber  string
	SupplierID   string
	OrderDate    time.Time
	ExpectedDate *time.Time
	ReceivedDate *time.Time
	Status       string
	TotalAmount  decimal.Decimal
	Notes        string
	Items        []PurchaseOrderItem
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PurchaseOrderItem línea de la orden.
type PurchaseOrderItem struct {
	ID         string
	OrderID    string
	ItemID     string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}
