package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementPurchase    = "purchase"
	MovementConsumption = "consumption"
	MovementAdjustment  = "adjustment"
	MovementReturn      = "return"
	MovementDamage      = "damage"
)

// StockMovement fila inmutable del libro de movimientos de un InventoryItem.
// Quantity va con signo; BalanceAfter es el stock resultante tras aplicarla.
type StockMovement struct {
	ID           string
	ItemID       string
	Type         string
	Quantity     decimal.Decimal
	BalanceAfter decimal.Decimal
	UnitCost     decimal.Decimal
	Reason       string
	Reference    string
	Date         time.Time
	CreatedBy    string
	CreatedAt    time.Time
}
