package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago de una compra o transacción.
const (
	PaymentPaid    = "paid"
	PaymentPending = "pending"
	PaymentPartial = "partial"
)

// FeedInventoryItem existencia de un tipo de alimento, medida en bultos.
// CurrentStock nunca es negativo; UnitCost es el precio de la última compra.
type FeedInventoryItem struct {
	ID              string
	FeedType        string
	Brand           string
	SupplierID      *string
	CurrentStock    decimal.Decimal
	ReorderLevel    decimal.Decimal
	UnitCost        decimal.Decimal
	LastRestockDate *time.Time
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FeedPurchase compra de alimento que incrementa el stock del ítem vinculado.
type FeedPurchase struct {
	ID            string
	InventoryID   string
	SupplierID    string
	PurchaseDate  time.Time
	Quantity      decimal.Decimal // bultos
	PricePerBag   decimal.Decimal
	TotalCost     decimal.Decimal
	InvoiceNumber *string
	PaymentStatus string
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FeedConsumption alimento retirado del inventario para una parvada o lote.
// UnitCost es el costo por bulto vigente al momento del consumo.
type FeedConsumption struct {
	ID           string
	InventoryID  string
	FlockID      *string
	BatchID      *string
	Date         time.Time
	QuantityBags decimal.Decimal
	UnitCost     decimal.Decimal
	Notes        string
	CreatedBy    string
	CreatedAt    time.Time
}

// Cost devuelve cantidad × costo unitario.
func (c FeedConsumption) Cost() decimal.Decimal {
	return c.QuantityBags.Mul(c.UnitCost)
}
