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

	"github.com/jhoicas/Granja-api/internal/application/dto"
	"github.com/jhoicas/Granja-api/internal/application/ports"
	"github.com/jhoicas/Granja-api/internal/domain"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/inventory"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

const resourceOrders = "purchase_orders"

// PurchaseOrderUseCase órdenes de compra y su recepción en el inventario general.
type PurchaseOrderUseCase struct {
	txRunner  ports.TxRunner
	orderRepo repository.PurchaseOrderRepository
	metrics   ports.Metrics
	log       zerolog.Logger
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(txRunner ports.TxRunner, orderRepo repository.PurchaseOrderRepository, metrics ports.Metrics, log zerolog.Logger) *PurchaseOrderUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &PurchaseOrderUseCase{txRunner: txRunner, orderRepo: orderRepo, metrics: metrics, log: log}
}

// Create valida proveedor y líneas, calcula totales y guarda la orden.
// Una orden nueva no puede nacer recibida ni cancelada.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if strings.TrimSpace(in.SupplierID) == "" {
		return nil, domain.Invalid("supplier_id", "es obligatorio")
	}
	if len(in.Items) == 0 {
		return nil, domain.Invalid("items", "la orden necesita al menos una línea")
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = entity.POStatusDraft
	}
	if !inventory.IsValidPOStatus(status) || status == entity.POStatusReceived || status == entity.POStatusCancelled {
		return nil, domain.Invalid("status", "estado inicial inválido: "+status)
	}
	orderDate, err := dto.ParseDate("order_date", in.OrderDate, false)
	if err != nil {
		return nil, err
	}
	expected, err := dto.ParseOptionalDate("expected_date", in.ExpectedDate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:           uuid.New().String(),
		OrderNumber:  strings.TrimSpace(in.OrderNumber),
		SupplierID:   in.SupplierID,
		OrderDate:    orderDate,
		ExpectedDate: expected,
		Status:       status,
		TotalAmount:  decimal.Zero,
		Notes:        in.Notes,
		CreatedBy:    userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if order.OrderNumber == "" {
		order.OrderNumber = generateOrderNumber(orderDate)
	}
	for i, line := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		if strings.TrimSpace(line.ItemID) == "" {
			return nil, domain.Invalid(field+".item_id", "es obligatorio")
		}
		if !line.Quantity.IsPositive() {
			return nil, domain.Invalid(field+".quantity", "debe ser mayor que 0")
		}
		if line.UnitPrice.IsNegative() {
			return nil, domain.Invalid(field+".unit_price", "no puede ser negativo")
		}
		if err := domain.CheckQuantity(field+".quantity", line.Quantity); err != nil {
			return nil, err
		}
		if err := domain.CheckMoney(field+".unit_price", line.UnitPrice); err != nil {
			return nil, err
		}
		total := line.Quantity.Mul(line.UnitPrice)
		order.Items = append(order.Items, entity.PurchaseOrderItem{
			ID:         uuid.New().String(),
			OrderID:    order.ID,
			ItemID:     line.ItemID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			TotalPrice: total,
		})
		order.TotalAmount = order.TotalAmount.Add(total)
	}

	err = uc.txRunner.Run(ctx, func(r ports.Repos) error {
		s, err := r.Suppliers.GetByID(ctx, order.SupplierID)
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("proveedor: %w", domain.ErrNotFound)
		}
		for _, line := range order.Items {
			it, err := r.InventoryItems.GetByID(ctx, line.ItemID)
			if err != nil {
				return err
			}
			if it == nil {
				return fmt.Errorf("ítem de inventario %s: %w", line.ItemID, domain.ErrNotFound)
			}
		}
		return r.PurchaseOrders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", order.ID).Str("order_number", order.OrderNumber).
		Int("lines", len(order.Items)).Msg("orden de compra creada")
	out := ToOrderResponse(order)
	return &out, nil
}

// UpdateStatus cambia el estado de la orden. Pasar a received suma cada línea al stock,
// fija el costo unitario y agrega un movimiento purchase por línea; cualquier falla revierte todo.
func (uc *PurchaseOrderUseCase) UpdateStatus(ctx context.Context, userID string, in dto.UpdatePurchaseOrderStatusRequest) (*dto.PurchaseOrderResponse, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, domain.Invalid("id", "es obligatorio")
	}
	to := strings.TrimSpace(in.Status)
	if !inventory.IsValidPOStatus(to) {
		return nil, domain.Invalid("status", "estado desconocido: "+to)
	}

	var order *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		o, err := r.PurchaseOrders.GetForUpdate(ctx, in.ID)
		if err != nil {
			return err
		}
		if o == nil {
			return fmt.Errorf("orden de compra: %w", domain.ErrNotFound)
		}
		if err := inventory.CheckPOTransition(o.Status, to); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return fmt.Errorf("la orden %s ya está %s: %w", o.OrderNumber, o.Status, domain.ErrConflict)
			}
			return err
		}
		now := time.Now()
		if to == entity.POStatusReceived {
			received := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			if err := receive(ctx, r, o, userID, received, now); err != nil {
				return err
			}
			o.ReceivedDate = &received
		}
		o.Status = to
		o.UpdatedAt = now
		if err := r.PurchaseOrders.UpdateStatus(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	if to == entity.POStatusReceived {
		uc.metrics.StockMutation(resourceOrders, "receive")
		uc.log.Info().Str("order_id", order.ID).Str("order_number", order.OrderNumber).
			Int("lines", len(order.Items)).Msg("orden de compra recibida")
	}
	out := ToOrderResponse(order)
	return &out, nil
}

// receive aplica todas las líneas dentro de la transacción del caller.
func receive(ctx context.Context, r ports.Repos, o *entity.PurchaseOrder, userID string, date, now time.Time) error {
	for _, line := range o.Items {
		item, err := lockItem(ctx, r, line.ItemID)
		if err != nil {
			return err
		}
		item.CurrentStock, err = inventory.ApplyDelta(item.ID, item.CurrentStock, line.Quantity)
		if err != nil {
			return err
		}
		item.UnitCost = line.UnitPrice
		item.LastRestockDate = &date
		item.UpdatedAt = now
		if err := r.InventoryItems.UpdateStock(ctx, item); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ID:           uuid.New().String(),
			ItemID:       item.ID,
			Type:         entity.MovementPurchase,
			Quantity:     line.Quantity,
			BalanceAfter: item.CurrentStock,
			UnitCost:     line.UnitPrice,
			Reason:       "Recepción de orden de compra",
			Reference:    o.OrderNumber,
			Date:         date,
			CreatedBy:    userID,
			CreatedAt:    now,
		}
		if err := r.StockMovements.Create(ctx, mov); err != nil {
			return err
		}
	}
	return nil
}

// Delete borra una orden que todavía no fue recibida.
func (uc *PurchaseOrderUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(r ports.Repos) error {
		o, err := r.PurchaseOrders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return fmt.Errorf("orden de compra: %w", domain.ErrNotFound)
		}
		if o.Status == entity.POStatusReceived {
			return fmt.Errorf("la orden %s ya fue recibida: %w", o.OrderNumber, domain.ErrConflict)
		}
		return r.PurchaseOrders.Delete(ctx, id)
	})
}

func (uc *PurchaseOrderUseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	o, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("orden de compra: %w", domain.ErrNotFound)
	}
	out := ToOrderResponse(o)
	return &out, nil
}

func (uc *PurchaseOrderUseCase) List(ctx context.Context, f repository.Filter) ([]dto.PurchaseOrderResponse, error) {
	rows, err := uc.orderRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(rows))
	for _, o := range rows {
		out = append(out, ToOrderResponse(o))
	}
	return out, nil
}

// generateOrderNumber PO-AAAAMMDD-XXXXXX.
func generateOrderNumber(date time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return "PO-" + date.Format("20060102") + "-" + suffix
}

// ToOrderResponse mapea una orden con sus líneas.
func ToOrderResponse(o *entity.PurchaseOrder) dto.PurchaseOrderResponse {
	items := make([]dto.PurchaseOrderItemResponse, 0, len(o.Items))
	for _, l := range o.Items {
		items = append(items, dto.PurchaseOrderItemResponse{
			ID:         l.ID,
			ItemID:     l.ItemID,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			TotalPrice: l.TotalPrice,
		})
	}
	return dto.PurchaseOrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		SupplierID:   o.SupplierID,
		OrderDate:    dto.FormatDate(o.OrderDate),
		ExpectedDate: dto.FormatOptionalDate(o.ExpectedDate),
		ReceivedDate: dto.FormatOptionalDate(o.ReceivedDate),
		Status:       o.Status,
		TotalAmount:  o.TotalAmount,
		Notes:        o.Notes,
		Items:        items,
		CreatedBy:    o.CreatedBy,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}
