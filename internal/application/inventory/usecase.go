package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Granja-api/internal/application/ports"
	"github.com/jhoicas/Granja-api/internal/domain"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/inventory"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

const resourceItems = "inventory_items"

// RegisterMovementUseCase registra movimientos manuales de stock sobre el inventario general
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback. Cada movimiento queda en el libro
// con su cantidad firmada y el saldo resultante.
type RegisterMovementUseCase struct {
	txRunner ports.TxRunner
	movRepo  repository.StockMovementRepository
	metrics  ports.Metrics
	log      zerolog.Logger
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner ports.TxRunner,
	movRepo repository.StockMovementRepository,
	metrics ports.Metrics,
	log zerolog.Logger,
) *RegisterMovementUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &RegisterMovementUseCase{txRunner: txRunner, movRepo: movRepo, metrics: metrics, log: log}
}

// MovementInput entrada para registrar un movimiento.
// Quantity es positiva para todos los tipos salvo adjustment, que acepta signo.
// UnitCost es opcional; en purchase además actualiza el costo del ítem.
type MovementInput struct {
	UserID    string
	ItemID    string
	Type      string
	Quantity  decimal.Decimal
	UnitCost  *decimal.Decimal
	Reason    string
	Reference string
	Date      time.Time
}

// RegisterMovement bloquea el ítem, aplica la cantidad firmada y agrega la fila al libro.
// Si el saldo quedaría negativo falla con ErrInsufficientStock y no escribe nada.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	if strings.TrimSpace(in.ItemID) == "" {
		return nil, domain.Invalid("item_id", "es obligatorio")
	}
	signed, err := inventory.SignedQuantity(in.Type, in.Quantity)
	if err != nil {
		return nil, err
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, domain.Invalid("unit_cost", "no puede ser negativo")
	}
	if err := domain.CheckQuantity("quantity", in.Quantity); err != nil {
		return nil, err
	}
	if in.UnitCost != nil {
		if err := domain.CheckMoney("unit_cost", *in.UnitCost); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ItemID:    in.ItemID,
		Type:      in.Type,
		Quantity:  signed,
		Reason:    in.Reason,
		Reference: in.Reference,
		Date:      in.Date,
		CreatedBy: in.UserID,
		CreatedAt: now,
	}
	err = uc.txRunner.Run(ctx, func(r ports.Repos) error {
		item, err := lockItem(ctx, r, in.ItemID)
		if err != nil {
			return err
		}
		item.CurrentStock, err = inventory.ApplyDelta(item.ID, item.CurrentStock, signed)
		if err != nil {
			return err
		}
		if in.Type == entity.MovementPurchase {
			if in.UnitCost != nil {
				item.UnitCost = *in.UnitCost
			}
			item.LastRestockDate = &mov.Date
		}
		item.UpdatedAt = now
		if err := r.InventoryItems.UpdateStock(ctx, item); err != nil {
			return err
		}
		mov.BalanceAfter = item.CurrentStock
		mov.UnitCost = item.UnitCost
		if in.UnitCost != nil {
			mov.UnitCost = *in.UnitCost
		}
		return r.StockMovements.Create(ctx, mov)
	})
	if err != nil {
		return nil, uc.fail(in.Type, err)
	}
	uc.metrics.StockMutation(resourceItems, in.Type)
	uc.log.Info().Str("movement_id", mov.ID).Str("item_id", mov.ItemID).Str("type", mov.Type).
		Str("quantity", mov.Quantity.String()).Str("balance_after", mov.BalanceAfter.String()).
		Msg("movimiento de stock registrado")
	return mov, nil
}

// DeleteMovement revierte el movimiento sobre el stock y borra la fila del libro.
// Los saldos de movimientos posteriores no se recalculan.
func (uc *RegisterMovementUseCase) DeleteMovement(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.Invalid("id", "es obligatorio")
	}
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		mov, err := r.StockMovements.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if mov == nil {
			return fmt.Errorf("movimiento: %w", domain.ErrNotFound)
		}
		item, err := lockItem(ctx, r, mov.ItemID)
		if err != nil {
			return err
		}
		item.CurrentStock, err = inventory.ApplyDelta(item.ID, item.CurrentStock, mov.Quantity.Neg())
		if err != nil {
			return err
		}
		item.UpdatedAt = time.Now()
		if err := r.InventoryItems.UpdateStock(ctx, item); err != nil {
			return err
		}
		return r.StockMovements.Delete(ctx, id)
	})
	if err != nil {
		return uc.fail("delete", err)
	}
	uc.metrics.StockMutation(resourceItems, "delete")
	uc.log.Info().Str("movement_id", id).Msg("movimiento de stock revertido")
	return nil
}

// ListMovements devuelve el libro en orden de registro.
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context, f repository.Filter) ([]*entity.StockMovement, error) {
	return uc.movRepo.List(ctx, f)
}

func (uc *RegisterMovementUseCase) fail(op string, err error) error {
	if errors.Is(err, domain.ErrInsufficientStock) {
		uc.metrics.StockRejection(resourceItems, op)
		uc.log.Warn().Err(err).Str("operation", op).Msg("movimiento rechazado por stock insuficiente")
	}
	return err
}

func lockItem(ctx context.Context, r ports.Repos, id string) (*entity.InventoryItem, error) {
	item, err := r.InventoryItems.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("ítem de inventario %s: %w", id, domain.ErrNotFound)
	}
	return item, nil
}
