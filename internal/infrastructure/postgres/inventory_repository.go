package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

var (
	_ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
)

// InventoryItemRepo inventario general (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const inventoryItemColumns = `id, name, category, unit, current_stock, reorder_level, unit_cost, supplier_id,
	last_restock_date, notes, created_at, updated_at`

func scanInventoryItem(s scanner) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := s.Scan(&it.ID, &it.Name, &it.Category, &it.Unit, &it.CurrentStock, &it.ReorderLevel, &it.UnitCost,
		&it.SupplierID, &it.LastRestockDate, &it.Notes, &it.CreatedAt, &it.UpdatedAt)
	return &it, err
}

func (r *InventoryItemRepo) Create(ctx context.Context, it *entity.InventoryItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_items (`+inventoryItemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		it.ID, it.Name, it.Category, it.Unit, it.CurrentStock, it.ReorderLevel, it.UnitCost, it.SupplierID,
		it.LastRestockDate, it.Notes, it.CreatedAt, it.UpdatedAt,
	)
	return mapError("insert inventory item", "ítem de inventario", err)
}

func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.get(ctx, `SELECT `+inventoryItemColumns+` FROM inventory_items WHERE id = $1`, id)
}

// GetForUpdate obtiene el ítem y bloquea la fila para update (SELECT FOR UPDATE).
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.get(ctx, `SELECT `+inventoryItemColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id)
}

func (r *InventoryItemRepo) get(ctx context.Context, query, id string) (*entity.InventoryItem, error) {
	it, err := scanInventoryItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return it, nil
}

func (r *InventoryItemRepo) Update(ctx context.Context, it *entity.InventoryItem) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE inventory_items SET name = $2, category = $3, unit = $4, reorder_level = $5, unit_cost = $6,
			supplier_id = $7, notes = $8, updated_at = $9
		WHERE id = $1`,
		it.ID, it.Name, it.Category, it.Unit, it.ReorderLevel, it.UnitCost, it.SupplierID, it.Notes, it.UpdatedAt,
	)
	if err != nil {
		return mapError("update inventory item", "ítem de inventario", err)
	}
	return notFound("ítem de inventario", tag)
}

func (r *InventoryItemRepo) UpdateStock(ctx context.Context, it *entity.InventoryItem) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE inventory_items SET current_stock = $2, unit_cost = $3, last_restock_date = $4, updated_at = $5
		WHERE id = $1`,
		it.ID, it.CurrentStock, it.UnitCost, it.LastRestockDate, it.UpdatedAt,
	)
	if err != nil {
		return mapError("update inventory stock", "ítem de inventario", err)
	}
	return notFound("ítem de inventario", tag)
}

func (r *InventoryItemRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return mapError("delete inventory item", "ítem de inventario", err)
	}
	return notFound("ítem de inventario", tag)
}

func (r *InventoryItemRepo) List(ctx context.Context, f repository.Filter) ([]*entity.InventoryItem, error) {
	var w where
	w.eq("category", f.Category)
	w.eq("supplier_id", f.SupplierID)
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items` + w.sql() + ` ORDER BY created_at, id` + w.page(f)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// ── Libro de movimientos ──────────────────────────────────────────────────────

// StockMovementRepo libro de movimientos de stock.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, item_id, type, quantity, balance_after, unit_cost, reason, reference, date, created_by, created_at`

func scanMovement(s scanner) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := s.Scan(&m.ID, &m.ItemID, &m.Type, &m.Quantity, &m.BalanceAfter, &m.UnitCost, &m.Reason,
		&m.Reference, &m.Date, &m.CreatedBy, &m.CreatedAt)
	return &m, err
}

func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.ID, m.ItemID, m.Type, m.Quantity, m.BalanceAfter, m.UnitCost, m.Reason, m.Reference, m.Date,
		m.CreatedBy, m.CreatedAt,
	)
	return mapError("insert stock movement", "movimiento", err)
}

func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

func (r *StockMovementRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_movements WHERE id = $1`, id)
	if err != nil {
		return mapError("delete stock movement", "movimiento", err)
	}
	return notFound("movimiento", tag)
}

// List filtra por ítem, tipo (Filter.Category) y rango de fechas; orden de creación ascendente.
func (r *StockMovementRepo) List(ctx context.Context, f repository.Filter) ([]*entity.StockMovement, error) {
	var w where
	w.eq("item_id", f.ItemID)
	w.eq("type", f.Category)
	w.dateRange("date", f)
	query := `SELECT ` + movementColumns + ` FROM stock_movements` + w.sql() + ` ORDER BY created_at, id` + w.page(f)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
