// Package inventory contiene las reglas puras de stock: convención de signos de los
// movimientos, aplicación de deltas sin permitir saldo negativo y transiciones de
// órdenes de compra.
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Granja-api/internal/domain"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
)

// reorderFactor multiplica el punto de reorden para sugerir la cantidad a pedir.
var reorderFactor = decimal.NewFromFloat(1.5)

// SignedQuantity aplica la convención de signos: consumption, damage y return restan;
// purchase y adjustment suman. adjustment acepta además cantidades negativas.
func SignedQuantity(movementType string, qty decimal.Decimal) (decimal.Decimal, error) {
	if qty.IsZero() {
		return decimal.Zero, domain.Invalid("quantity", "no puede ser 0")
	}
	switch movementType {
	case entity.MovementAdjustment:
		return qty, nil
	case entity.MovementPurchase:
		if qty.IsNegative() {
			return decimal.Zero, domain.Invalid("quantity", "debe ser mayor que 0")
		}
		return qty, nil
	case entity.MovementConsumption, entity.MovementDamage, entity.MovementReturn:
		if qty.IsNegative() {
			return decimal.Zero, domain.Invalid("quantity", "debe ser mayor que 0")
		}
		return qty.Neg(), nil
	default:
		return decimal.Zero, domain.Invalid("type", "tipo de movimiento desconocido: "+movementType)
	}
}

// ApplyDelta devuelve current+delta, o un InsufficientStockError si el resultado sería negativo.
func ApplyDelta(itemID string, current, delta decimal.Decimal) (decimal.Decimal, error) {
	next := current.Add(delta)
	if next.IsNegative() {
		return current, &domain.InsufficientStockError{
			ItemID:    itemID,
			Available: current.String(),
			Requested: delta.Neg().String(),
		}
	}
	return next, nil
}

// IsLowStock indica si el ítem está en o por debajo de su punto de reorden.
// Un punto de reorden en 0 desactiva la alerta.
func IsLowStock(current, reorderLevel decimal.Decimal) bool {
	return reorderLevel.IsPositive() && current.LessThanOrEqual(reorderLevel)
}

// SuggestedOrderQuantity = reorderLevel × 1.5 − current, redondeado hacia arriba y nunca negativo.
func SuggestedOrderQuantity(current, reorderLevel decimal.Decimal) decimal.Decimal {
	q := reorderLevel.Mul(reorderFactor).Sub(current).Ceil()
	if q.IsNegative() {
		return decimal.Zero
	}
	return q
}

// IsValidPOStatus indica si el estado de orden existe.
func IsValidPOStatus(s string) bool {
	switch s {
	case entity.POStatusDraft, entity.POStatusPending, entity.POStatusApproved,
		entity.POStatusOrdered, entity.POStatusReceived, entity.POStatusCancelled:
		return true
	}
	return false
}

// CheckPOTransition valida el cambio de estado de una orden de compra.
// received y cancelled son terminales.
func CheckPOTransition(from, to string) error {
	if !IsValidPOStatus(to) {
		return domain.Invalid("status", "estado desconocido: "+to)
	}
	if from == entity.POStatusReceived || from == entity.POStatusCancelled {
		return domain.ErrConflict
	}
	return nil
}
