// Package feed contiene los casos de uso de alimento: existencias, compras y consumos.
// Toda escritura que cambia el stock corre dentro de una transacción que bloquea el ítem.
package feed

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

const resourceFeed = "feed_inventory"

// UseCase casos de uso de alimento.
type UseCase struct {
	tx      ports.TxRunner
	repos   ports.Repos
	metrics ports.Metrics
	log     zerolog.Logger
}

// NewUseCase construye el caso de uso. repos se usa solo para lecturas fuera de transacción.
func NewUseCase(tx ports.TxRunner, repos ports.Repos, metrics ports.Metrics, log zerolog.Logger) *UseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &UseCase{tx: tx, repos: repos, metrics: metrics, log: log}
}

// ── Existencias ──────────────────────────────────────────────────────────────

// CreateItem registra un tipo de alimento con su stock inicial.
func (uc *UseCase) CreateItem(ctx context.Context, in dto.CreateFeedInventoryRequest) (*dto.FeedInventoryResponse, error) {
	if strings.TrimSpace(in.FeedType) == "" {
		return nil, domain.Invalid("feed_type", "es obligatorio")
	}
	if err := nonNegative(amount{"current_stock", in.CurrentStock}, amount{"reorder_level", in.ReorderLevel}, amount{"unit_cost", in.UnitCost}); err != nil {
		return nil, err
	}
	if err := scaled(in.CurrentStock, in.ReorderLevel, in.UnitCost); err != nil {
		return nil, err
	}
	supplierID := dto.OptionalID(in.SupplierID)
	if err := uc.ensureSupplier(ctx, supplierID); err != nil {
		return nil, err
	}
	now := time.Now()
	item := &entity.FeedInventoryItem{
		ID:           uuid.New().String(),
		FeedType:     strings.TrimSpace(in.FeedType),
		Brand:        strings.TrimSpace(in.Brand),
		SupplierID:   supplierID,
		CurrentStock: in.CurrentStock,
		ReorderLevel: in.ReorderLevel,
		UnitCost:     in.UnitCost,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repos.FeedInventory.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetItem devuelve un ítem por id.
func (uc *UseCase) GetItem(ctx context.Context, id string) (*dto.FeedInventoryResponse, error) {
	item, err := uc.repos.FeedInventory.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("ítem de alimento: %w", domain.ErrNotFound)
	}
	return toItemResponse(item), nil
}

// UpdateItem modifica los campos descriptivos; el stock no se edita aquí.
func (uc *UseCase) UpdateItem(ctx context.Context, id string, in dto.UpdateFeedInventoryRequest) (*dto.FeedInventoryResponse, error) {
	item, err := uc.repos.FeedInventory.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("ítem de alimento: %w", domain.ErrNotFound)
	}
	if in.FeedType != nil {
		if strings.TrimSpace(*in.FeedType) == "" {
			return nil, domain.Invalid("feed_type", "no puede quedar vacío")
		}
		item.FeedType = strings.TrimSpace(*in.FeedType)
	}
	if in.Brand != nil {
		item.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.SupplierID != nil {
		item.SupplierID = dto.OptionalID(in.SupplierID)
		if err := uc.ensureSupplier(ctx, item.SupplierID); err != nil {
			return nil, err
		}
	}
	if in.ReorderLevel != nil {
		item.ReorderLevel = *in.ReorderLevel
	}
	if in.UnitCost != nil {
		item.UnitCost = *in.UnitCost
	}
	if in.Notes != nil {
		item.Notes = *in.Notes
	}
	if err := nonNegative(amount{"reorder_level", item.ReorderLevel}, amount{"unit_cost", item.UnitCost}); err != nil {
		return nil, err
	}
	if err := scaled(item.CurrentStock, item.ReorderLevel, item.UnitCost); err != nil {
		return nil, err
	}
	item.UpdatedAt = time.Now()
	if err := uc.repos.FeedInventory.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// DeleteItem elimina un ítem sin compras ni consumos asociados.
func (uc *UseCase) DeleteItem(ctx context.Context, id string) error {
	return uc.repos.FeedInventory.Delete(ctx, id)
}

// ListItems lista los ítems; lowStockOnly filtra los que están en o bajo el punto de reorden.
func (uc *UseCase) ListItems(ctx context.Context, lowStockOnly bool, page dto.PageRequest) ([]dto.FeedInventoryResponse, error) {
	items, err := uc.repos.FeedInventory.List(ctx, repository.Filter{})
	if err != nil {
		return nil, err
	}
	out := make([]dto.FeedInventoryResponse, 0, len(items))
	for _, it := range items {
		if lowStockOnly && !inventory.IsLowStock(it.CurrentStock, it.ReorderLevel) {
			continue
		}
		out = append(out, *toItemResponse(it))
	}
	return pageOf(out, page), nil
}

// ── Compras ─────────────────────────────────────────────────────────────────

// RecordPurchase inserta la compra, suma la cantidad al stock y fija el costo unitario
// y la fecha de reposición del ítem, todo en una transacción.
func (uc *UseCase) RecordPurchase(ctx context.Context, userID string, in dto.CreateFeedPurchaseRequest) (*dto.FeedPurchaseResponse, error) {
	if strings.TrimSpace(in.InventoryID) == "" {
		return nil, domain.Invalid("inventory_id", "es obligatorio")
	}
	if strings.TrimSpace(in.SupplierID) == "" {
		return nil, domain.Invalid("supplier_id", "es obligatorio")
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.Invalid("quantity", "debe ser mayor que 0")
	}
	if in.PricePerBag == nil {
		return nil, domain.Invalid("price_per_bag", "es obligatorio")
	}
	if in.PricePerBag.IsNegative() {
		return nil, domain.Invalid("price_per_bag", "no puede ser negativo")
	}
	if err := domain.CheckQuantity("quantity", in.Quantity); err != nil {
		return nil, err
	}
	if err := domain.CheckMoney("price_per_bag", *in.PricePerBag); err != nil {
		return nil, err
	}
	status, err := paymentStatus(in.PaymentStatus)
	if err != nil {
		return nil, err
	}
	date, err := dto.ParseDate("purchase_date", in.PurchaseDate, false)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	purchase := &entity.FeedPurchase{
		ID:            uuid.New().String(),
		InventoryID:   in.InventoryID,
		SupplierID:    in.SupplierID,
		PurchaseDate:  date,
		Quantity:      in.Quantity,
		PricePerBag:   *in.PricePerBag,
		TotalCost:     in.Quantity.Mul(*in.PricePerBag),
		InvoiceNumber: dto.OptionalID(in.InvoiceNumber),
		PaymentStatus: status,
		Notes:         in.Notes,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var balance decimal.Decimal
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		item, err := lockItem(ctx, r, purchase.InventoryID)
		if err != nil {
			return err
		}
		supplier, err := r.Suppliers.GetByID(ctx, purchase.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return fmt.Errorf("proveedor: %w", domain.ErrNotFound)
		}
		if err := r.FeedPurchases.Create(ctx, purchase); err != nil {
			return err
		}
		item.CurrentStock, err = inventory.ApplyDelta(item.ID, item.CurrentStock, purchase.Quantity)
		if err != nil {
			return err
		}
		item.UnitCost = purchase.PricePerBag
		item.LastRestockDate = &date
		item.UpdatedAt = now
		balance = item.CurrentStock
		return r.FeedInventory.UpdateStock(ctx, item)
	})
	if err != nil {
		return nil, uc.fail("purchase", err)
	}
	uc.metrics.StockMutation(resourceFeed, "purchase")
	uc.log.Info().Str("purchase_id", purchase.ID).Str("item_id", purchase.InventoryID).
		Str("quantity", purchase.Quantity.String()).Str("stock", balance.String()).Msg("compra de alimento registrada")
	return toPurchaseResponse(purchase), nil
}

// UpdatePurchase edita una compra y aplica al stock la diferencia de cantidad.
// Si cambia el ítem, la cantidad anterior sale del ítem viejo y la nueva entra al nuevo.
// Ningún ítem puede quedar con stock negativo.
func (uc *UseCase) UpdatePurchase(ctx context.Context, in dto.UpdateFeedPurchaseRequest) (*dto.FeedPurchaseResponse, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, domain.Invalid("id", "es obligatorio")
	}
	var updated *entity.FeedPurchase
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		p, err := r.FeedPurchases.GetByID(ctx, in.ID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("compra: %w", domain.ErrNotFound)
		}
		next := *p
		if err := applyPurchaseChanges(&next, in); err != nil {
			return err
		}
		if next.SupplierID != p.SupplierID {
			s, err := r.Suppliers.GetByID(ctx, next.SupplierID)
			if err != nil {
				return err
			}
			if s == nil {
				return fmt.Errorf("proveedor: %w", domain.ErrNotFound)
			}
		}
		if err := adjustForEdit(ctx, r, p, &next); err != nil {
			return err
		}
		next.UpdatedAt = time.Now()
		if err := r.FeedPurchases.Update(ctx, &next); err != nil {
			return err
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, uc.fail("purchase_edit", err)
	}
	uc.metrics.StockMutation(resourceFeed, "purchase_edit")
	uc.log.Info().Str("purchase_id", updated.ID).Msg("compra de alimento editada")
	return toPurchaseResponse(updated), nil
}

// DeletePurchase elimina la compra y revierte su cantidad del stock.
func (uc *UseCase) DeletePurchase(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.Invalid("id", "es obligatorio")
	}
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		p, err := r.FeedPurchases.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("compra: %w", domain.ErrNotFound)
		}
		if err := applyToItem(ctx, r, p.InventoryID, p.Quantity.Neg()); err != nil {
			return err
		}
		return r.FeedPurchases.Delete(ctx, id)
	})
	if err != nil {
		return uc.fail("purchase_delete", err)
	}
	uc.metrics.StockMutation(resourceFeed, "purchase_delete")
	uc.log.Info().Str("purchase_id", id).Msg("compra de alimento eliminada")
	return nil
}

// ListPurchases lista compras con filtros opcionales.
func (uc *UseCase) ListPurchases(ctx context.Context, f repository.Filter) ([]dto.FeedPurchaseResponse, error) {
	rows, err := uc.repos.FeedPurchases.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FeedPurchaseResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, *toPurchaseResponse(p))
	}
	return out, nil
}

// ── Consumos ────────────────────────────────────────────────────────────────

// RecordConsumption descuenta alimento del stock para una parvada o lote.
// Si no alcanza el stock falla con ErrInsufficientStock sin escribir nada.
func (uc *UseCase) RecordConsumption(ctx context.Context, userID string, in dto.CreateFeedConsumptionRequest) (*dto.FeedConsumptionResponse, error) {
	if strings.TrimSpace(in.InventoryID) == "" {
		return nil, domain.Invalid("inventory_id", "es obligatorio")
	}
	if !in.QuantityBags.IsPositive() {
		return nil, domain.Invalid("quantity_bags", "debe ser mayor que 0")
	}
	if err := domain.CheckQuantity("quantity_bags", in.QuantityBags); err != nil {
		return nil, err
	}
	flockID, batchID := dto.OptionalID(in.FlockID), dto.OptionalID(in.BatchID)
	if flockID == nil && batchID == nil {
		return nil, domain.Invalid("flock_id", "se requiere flock_id o batch_id")
	}
	date, err := dto.ParseDate("date", in.Date, false)
	if err != nil {
		return nil, err
	}

	c := &entity.FeedConsumption{
		ID:           uuid.New().String(),
		InventoryID:  in.InventoryID,
		FlockID:      flockID,
		BatchID:      batchID,
		Date:         date,
		QuantityBags: in.QuantityBags,
		Notes:        in.Notes,
		CreatedBy:    userID,
		CreatedAt:    time.Now(),
	}
	var balance decimal.Decimal
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		item, err := lockItem(ctx, r, c.InventoryID)
		if err != nil {
			return err
		}
		if err := ensureTarget(ctx, r, flockID, batchID); err != nil {
			return err
		}
		item.CurrentStock, err = inventory.ApplyDelta(item.ID, item.CurrentStock, c.QuantityBags.Neg())
		if err != nil {
			return err
		}
		item.UpdatedAt = c.CreatedAt
		if err := r.FeedInventory.UpdateStock(ctx, item); err != nil {
			return err
		}
		c.UnitCost = item.UnitCost
		balance = item.CurrentStock
		return r.FeedConsumption.Create(ctx, c)
	})
	if err != nil {
		return nil, uc.fail("consumption", err)
	}
	uc.metrics.StockMutation(resourceFeed, "consumption")
	uc.log.Info().Str("consumption_id", c.ID).Str("item_id", c.InventoryID).
		Str("quantity", c.QuantityBags.String()).Str("stock", balance.String()).Msg("consumo de alimento registrado")
	return toConsumptionResponse(c), nil
}

// DeleteConsumption elimina el consumo y devuelve la cantidad al stock.
func (uc *UseCase) DeleteConsumption(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.Invalid("id", "es obligatorio")
	}
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		c, err := r.FeedConsumption.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("consumo: %w", domain.ErrNotFound)
		}
		if err := applyToItem(ctx, r, c.InventoryID, c.QuantityBags); err != nil {
			return err
		}
		return r.FeedConsumption.Delete(ctx, id)
	})
	if err != nil {
		return uc.fail("consumption_delete", err)
	}
	uc.metrics.StockMutation(resourceFeed, "consumption_delete")
	uc.log.Info().Str("consumption_id", id).Msg("consumo de alimento eliminado")
	return nil
}

// ListConsumption lista consumos con filtros opcionales.
func (uc *UseCase) ListConsumption(ctx context.Context, f repository.Filter) ([]dto.FeedConsumptionResponse, error) {
	rows, err := uc.repos.FeedConsumption.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FeedConsumptionResponse, 0, len(rows))
	for _, c := range rows {
		out = append(out, *toConsumptionResponse(c))
	}
	return out, nil
}

// ── helpers ─────────────────────────────────────────────────────────────────

func (uc *UseCase) fail(op string, err error) error {
	if errors.Is(err, domain.ErrInsufficientStock) {
		uc.metrics.StockRejection(resourceFeed, op)
		uc.log.Warn().Err(err).Str("operation", op).Msg("operación rechazada por stock insuficiente")
	}
	return err
}

func (uc *UseCase) ensureSupplier(ctx context.Context, id *string) error {
	if id == nil {
		return nil
	}
	s, err := uc.repos.Suppliers.GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("proveedor: %w", domain.ErrNotFound)
	}
	return nil
}

func lockItem(ctx context.Context, r ports.Repos, id string) (*entity.FeedInventoryItem, error) {
	item, err := r.FeedInventory.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("ítem de alimento %s: %w", id, domain.ErrNotFound)
	}
	return item, nil
}

// applyToItem bloquea el ítem, aplica delta con la guarda de stock y lo persiste.
func applyToItem(ctx context.Context, r ports.Repos, itemID string, delta decimal.Decimal) error {
	item, err := lockItem(ctx, r, itemID)
	if err != nil {
		return err
	}
	item.CurrentStock, err = inventory.ApplyDelta(item.ID, item.CurrentStock, delta)
	if err != nil {
		return err
	}
	item.UpdatedAt = time.Now()
	return r.FeedInventory.UpdateStock(ctx, item)
}

// adjustForEdit aplica al stock el efecto de pasar de old a next.
func adjustForEdit(ctx context.Context, r ports.Repos, old, next *entity.FeedPurchase) error {
	if old.InventoryID == next.InventoryID {
		delta := next.Quantity.Sub(old.Quantity)
		if delta.IsZero() {
			return nil
		}
		return applyToItem(ctx, r, next.InventoryID, delta)
	}
	// Bloqueo en orden de id para que dos ediciones cruzadas no se bloqueen mutuamente.
	first, second := old.InventoryID, next.InventoryID
	if second < first {
		first, second = second, first
	}
	if _, err := lockItem(ctx, r, first); err != nil {
		return err
	}
	if _, err := lockItem(ctx, r, second); err != nil {
		return err
	}
	if err := applyToItem(ctx, r, old.InventoryID, old.Quantity.Neg()); err != nil {
		return err
	}
	return applyToItem(ctx, r, next.InventoryID, next.Quantity)
}

func applyPurchaseChanges(p *entity.FeedPurchase, in dto.UpdateFeedPurchaseRequest) error {
	if in.InventoryID != nil {
		if strings.TrimSpace(*in.InventoryID) == "" {
			return domain.Invalid("inventory_id", "no puede quedar vacío")
		}
		p.InventoryID = strings.TrimSpace(*in.InventoryID)
	}
	if in.SupplierID != nil {
		if strings.TrimSpace(*in.SupplierID) == "" {
			return domain.Invalid("supplier_id", "no puede quedar vacío")
		}
		p.SupplierID = strings.TrimSpace(*in.SupplierID)
	}
	if in.PurchaseDate != nil {
		d, err := dto.ParseDate("purchase_date", *in.PurchaseDate, true)
		if err != nil {
			return err
		}
		p.PurchaseDate = d
	}
	if in.Quantity != nil {
		if !in.Quantity.IsPositive() {
			return domain.Invalid("quantity", "debe ser mayor que 0")
		}
		if err := domain.CheckQuantity("quantity", *in.Quantity); err != nil {
			return err
		}
		p.Quantity = *in.Quantity
	}
	if in.PricePerBag != nil {
		if in.PricePerBag.IsNegative() {
			return domain.Invalid("price_per_bag", "no puede ser negativo")
		}
		if err := domain.CheckMoney("price_per_bag", *in.PricePerBag); err != nil {
			return err
		}
		p.PricePerBag = *in.PricePerBag
	}
	if in.InvoiceNumber != nil {
		p.InvoiceNumber = dto.OptionalID(in.InvoiceNumber)
	}
	if in.PaymentStatus != nil {
		s, err := paymentStatus(*in.PaymentStatus)
		if err != nil {
			return err
		}
		p.PaymentStatus = s
	}
	if in.Notes != nil {
		p.Notes = *in.Notes
	}
	p.TotalCost = p.Quantity.Mul(p.PricePerBag)
	return nil
}

func ensureTarget(ctx context.Context, r ports.Repos, flockID, batchID *string) error {
	if flockID != nil {
		f, err := r.Flocks.GetByID(ctx, *flockID)
		if err != nil {
			return err
		}
		if f == nil {
			return fmt.Errorf("parvada: %w", domain.ErrNotFound)
		}
	}
	if batchID != nil {
		b, err := r.Batches.GetByID(ctx, *batchID)
		if err != nil {
			return err
		}
		if b == nil {
			return fmt.Errorf("lote: %w", domain.ErrNotFound)
		}
	}
	return nil
}

func paymentStatus(s string) (string, error) {
	switch strings.TrimSpace(s) {
	case "":
		return entity.PaymentPending, nil
	case entity.PaymentPaid, entity.PaymentPending, entity.PaymentPartial:
		return strings.TrimSpace(s), nil
	}
	return "", domain.Invalid("payment_status", "valores permitidos: paid, pending, partial")
}

type amount struct {
	field string
	value decimal.Decimal
}

func nonNegative(amounts ...amount) error {
	for _, a := range amounts {
		if a.value.IsNegative() {
			return domain.Invalid(a.field, "no puede ser negativo")
		}
	}
	return nil
}

// scaled valida los decimales de stock, reorden y costo de un ítem.
func scaled(stock, reorder, cost decimal.Decimal) error {
	if err := domain.CheckQuantity("current_stock", stock); err != nil {
		return err
	}
	if err := domain.CheckQuantity("reorder_level", reorder); err != nil {
		return err
	}
	return domain.CheckMoney("unit_cost", cost)
}

func pageOf[T any](items []T, page dto.PageRequest) []T {
	if page.Offset > 0 {
		if page.Offset >= len(items) {
			return []T{}
		}
		items = items[page.Offset:]
	}
	if page.Limit > 0 && page.Limit < len(items) {
		items = items[:page.Limit]
	}
	return items
}
