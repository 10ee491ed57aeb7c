package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

var (
	_ repository.FeedInventoryRepository   = (*FeedInventoryRepo)(nil)
	_ repository.FeedPurchaseRepository    = (*FeedPurchaseRepo)(nil)
	_ repository.FeedConsumptionRepository = (*FeedConsumptionRepo)(nil)
)

// ── Inventario de alimento ────────────────────────────────────────────────────

// FeedInventoryRepo existencias de alimento (usable con pool o tx).
type FeedInventoryRepo struct {
	q Querier
}

// NewFeedInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFeedInventoryRepository(q Querier) *FeedInventoryRepo {
	return &FeedInventoryRepo{q: q}
}

const feedItemColumns = `id, feed_type, brand, supplier_id, current_stock, reorder_level, unit_cost,
	last_restock_date, notes, created_at, updated_at`

func scanFeedItem(s scanner) (*entity.FeedInventoryItem, error) {
	var it entity.FeedInventoryItem
	err := s.Scan(&it.ID, &it.FeedType, &it.Brand, &it.SupplierID, &it.CurrentStock, &it.ReorderLevel,
		&it.UnitCost, &it.LastRestockDate, &it.Notes, &it.CreatedAt, &it.UpdatedAt)
	return &it, err
}

func (r *FeedInventoryRepo) Create(ctx context.Context, it *entity.FeedInventoryItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO feed_inventory (`+feedItemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		it.ID, it.FeedType, it.Brand, it.SupplierID, it.CurrentStock, it.ReorderLevel, it.UnitCost,
		it.LastRestockDate, it.Notes, it.CreatedAt, it.UpdatedAt,
	)
	return mapError("insert feed item", "ítem de alimento", err)
}

func (r *FeedInventoryRepo) GetByID(ctx context.Context, id string) (*entity.FeedInventoryItem, error) {
	return r.get(ctx, `SELECT `+feedItemColumns+` FROM feed_inventory WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila del ítem (SELECT FOR UPDATE) hasta el fin de la tx.
func (r *FeedInventoryRepo) GetForUpdate(ctx context.Context, id string) (*entity.FeedInventoryItem, error) {
	return r.get(ctx, `SELECT `+feedItemColumns+` FROM feed_inventory WHERE id = $1 FOR UPDATE`, id)
}

func (r *FeedInventoryRepo) get(ctx context.Context, query, id string) (*entity.FeedInventoryItem, error) {
	it, err := scanFeedItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get feed item: %w", err)
	}
	return it, nil
}

func (r *FeedInventoryRepo) Update(ctx context.Context, it *entity.FeedInventoryItem) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE feed_inventory SET feed_type = $2, brand = $3, supplier_id = $4, reorder_level = $5,
			unit_cost = $6, notes = $7, updated_at = $8
		WHERE id = $1`,
		it.ID, it.FeedType, it.Brand, it.SupplierID, it.ReorderLevel, it.UnitCost, it.Notes, it.UpdatedAt,
	)
	if err != nil {
		return mapError("update feed item", "ítem de alimento", err)
	}
	return notFound("ítem de alimento", tag)
}

// UpdateStock persiste stock, costo y fecha de reposición. El CHECK (current_stock >= 0)
// de la tabla rechaza cualquier saldo negativo que llegue hasta aquí.
func (r *FeedInventoryRepo) UpdateStock(ctx context.Context, it *entity.FeedInventoryItem) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE feed_inventory SET current_stock = $2, unit_cost = $3, last_restock_date = $4, updated_at = $5
		WHERE id = $1`,
		it.ID, it.CurrentStock, it.UnitCost, it.LastRestockDate, it.UpdatedAt,
	)
	if err != nil {
		return mapError("update feed stock", "ítem de alimento", err)
	}
	return notFound("ítem de alimento", tag)
}

func (r *FeedInventoryRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM feed_inventory WHERE id = $1`, id)
	if err != nil {
		return mapError("delete feed item", "ítem de alimento", err)
	}
	return notFound("ítem de alimento", tag)
}

func (r *FeedInventoryRepo) List(ctx context.Context, f repository.Filter) ([]*entity.FeedInventoryItem, error) {
	var w where
	w.eq("supplier_id", f.SupplierID)
	query := `SELECT ` + feedItemColumns + ` FROM feed_inventory` + w.sql() + ` ORDER BY created_at, id` + w.page(f)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list feed items: %w", err)
	}
	defer rows.Close()
	var list []*entity.FeedInventoryItem
	for rows.Next() {
		it, err := scanFeedItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan feed item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// ── Compras ───────────────────────────────────────────────────────────────────

// FeedPurchaseRepo compras de alimento.
type FeedPurchaseRepo struct {
	q Querier
}

// NewFeedPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFeedPurchaseRepository(q Querier) *FeedPurchaseRepo {
	return &FeedPurchaseRepo{q: q}
}

const feedPurchaseColumns = `id, inventory_id, supplier_id, purchase_date, quantity, price_per_bag, total_cost,
	invoice_number, payment_status, notes, created_by, created_at, updated_at`

func scanFeedPurchase(s scanner) (*entity.FeedPurchase, error) {
	var p entity.FeedPurchase
	err := s.Scan(&p.ID, &p.InventoryID, &p.SupplierID, &p.PurchaseDate, &p.Quantity, &p.PricePerBag,
		&p.TotalCost, &p.InvoiceNumber, &p.PaymentStatus, &p.Notes, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *FeedPurchaseRepo) Create(ctx context.Context, p *entity.FeedPurchase) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO feed_purchases (`+feedPurchaseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.InventoryID, p.SupplierID, p.PurchaseDate, p.Quantity, p.PricePerBag, p.TotalCost,
		p.InvoiceNumber, p.PaymentStatus, p.Notes, p.CreatedBy, p.CreatedAt, p.UpdatedAt,
	)
	return mapError("insert feed purchase", "número de factura", err)
}

func (r *FeedPurchaseRepo) GetByID(ctx context.Context, id string) (*entity.FeedPurchase, error) {
	p, err := scanFeedPurchase(r.q.QueryRow(ctx, `SELECT `+feedPurchaseColumns+` FROM feed_purchases WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get feed purchase: %w", err)
	}
	return p, nil
}

func (r *FeedPurchaseRepo) Update(ctx context.Context, p *entity.FeedPurchase) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE feed_purchases SET inventory_id = $2, supplier_id = $3, purchase_date = $4, quantity = $5,
			price_per_bag = $6, total_cost = $7, invoice_number = $8, payment_status = $9, notes = $10, updated_at = $11
		WHERE id = $1`,
		p.ID, p.InventoryID, p.SupplierID, p.PurchaseDate, p.Quantity, p.PricePerBag, p.TotalCost,
		p.InvoiceNumber, p.PaymentStatus, p.Notes, p.UpdatedAt,
	)
	if err != nil {
		return mapError("update feed purchase", "número de factura", err)
	}
	return notFound("compra", tag)
}

func (r *FeedPurchaseRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM feed_purchases WHERE id = $1`, id)
	if err != nil {
		return mapError("delete feed purchase", "compra", err)
	}
	return notFound("compra", tag)
}

func (r *FeedPurchaseRepo) List(ctx context.Context, f repository.Filter) ([]*entity.FeedPurchase, error) {
	var w where
	w.eq("inventory_id", f.InventoryID)
	w.eq("supplier_id", f.SupplierID)
	w.eq("payment_status", f.PaymentStatus)
	w.dateRange("purchase_date", f)
	query := `SELECT ` + feedPurchaseColumns + ` FROM feed_purchases` + w.sql() +
		` ORDER BY purchase_date DESC, created_at DESC` + w.page(f)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list feed purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.FeedPurchase
	for rows.Next() {
		p, err := scanFeedPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan feed purchase: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ── Consumo ───────────────────────────────────────────────────────────────────

// FeedConsumptionRepo consumos de alimento.
type FeedConsumptionRepo struct {
	q Querier
}

// NewFeedConsumptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFeedConsumptionRepository(q Querier) *FeedConsumptionRepo {
	return &FeedConsumptionRepo{q: q}
}

const feedConsumptionColumns = `id, inventory_id, flock_id, batch_id, date, quantity_bags, unit_cost, notes, created_by, created_at`

func scanFeedConsumption(s scanner) (*entity.FeedConsumption, error) {
	var c entity.FeedConsumption
	err := s.Scan(&c.ID, &c.InventoryID, &c.FlockID, &c.BatchID, &c.Date, &c.QuantityBags, &c.UnitCost,
		&c.Notes, &c.CreatedBy, &c.CreatedAt)
	return &c, err
}

func (r *FeedConsumptionRepo) Create(ctx context.Context, c *entity.FeedConsumption) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO feed_consumption (`+feedConsumptionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.InventoryID, c.FlockID, c.BatchID, c.Date, c.QuantityBags, c.UnitCost, c.Notes, c.CreatedBy, c.CreatedAt,
	)
	return mapError("insert feed consumption", "consumo", err)
}

func (r *FeedConsumptionRepo) GetByID(ctx context.Context, id string) (*entity.FeedConsumption, error) {
	c, err := scanFeedConsumption(r.q.QueryRow(ctx, `SELECT `+feedConsumptionColumns+` FROM feed_consumption WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get feed consumption: %w", err)
	}
	return c, nil
}

func (r *FeedConsumptionRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM feed_consumption WHERE id = $1`, id)
	if err != nil {
		return mapError("delete feed consumption", "consumo", err)
	}
	return notFound("consumo", tag)
}

func (r *FeedConsumptionRepo) List(ctx context.Context, f repository.Filter) ([]*entity.FeedConsumption, error) {
	var w where
	w.eq("inventory_id", f.InventoryID)
	w.eq("flock_id", f.FlockID)
	w.eq("batch_id", f.BatchID)
	w.dateRange("date", f)
	query := `SELECT ` + feedConsumptionColumns + ` FROM feed_consumption` + w.sql() +
		` ORDER BY date DESC, created_at DESC` + w.page(f)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list feed consumption: %w", err)
	}
	defer rows.Close()
	var list []*entity.FeedConsumption
	for rows.Next() {
		c, err := scanFeedConsumption(rows)
		if err != nil {
			return nil, fmt.Errorf("scan feed consumption: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
