package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo órdenes de compra y sus líneas.
// Create debe ejecutarse dentro de una tx para que cabecera y líneas sean atómicas.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const orderColumns = `id, order_number, supplier_id, order_date, expected_date, received_date, status,
	total_amount, notes, created_by, created_at, updated_at`

func scanOrder(s scanner) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := s.Scan(&o.ID, &o.OrderNumber, &o.SupplierID, &o.OrderDate, &o.ExpectedDate, &o.ReceivedDate,
		&o.Status, &o.TotalAmount, &o.Notes, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt)
	return &o, err
}

func (r *PurchaseOrderRepo) Create(ctx context.Context, o *entity.PurchaseOrder) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		o.ID, o.OrderNumber, o.SupplierID, o.OrderDate, o.ExpectedDate, o.ReceivedDate, o.Status,
		o.TotalAmount, o.Notes, o.CreatedBy, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return mapError("insert purchase order", "número de orden", err)
	}
	for i, line := range o.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO purchase_order_items (id, order_id, item_id, quantity, unit_price, total_price, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			line.ID, o.ID, line.ItemID, line.Quantity, line.UnitPrice, line.TotalPrice, i,
		)
		if err != nil {
			return mapError("insert purchase order item", "línea de orden", err)
		}
	}
	return nil
}

func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM purchase_orders WHERE id = $1`, id)
}

// GetForUpdate bloquea la orden para serializar cambios de estado concurrentes.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM purchase_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *PurchaseOrderRepo) get(ctx context.Context, query, id string) (*entity.PurchaseOrder, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if o.Items, err = r.items(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *PurchaseOrderRepo) items(ctx context.Context, orderID string) ([]entity.PurchaseOrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, item_id, quantity, unit_price, total_price
		FROM purchase_order_items WHERE order_id = $1 ORDER BY position`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()
	var out []entity.PurchaseOrderItem
	for rows.Next() {
		var l entity.PurchaseOrderItem
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ItemID, &l.Quantity, &l.UnitPrice, &l.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, o *entity.PurchaseOrder) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE purchase_orders SET status = $2, received_date = $3, updated_at = $4 WHERE id = $1`,
		o.ID, o.Status, o.ReceivedDate, o.UpdatedAt,
	)
	if err != nil {
		return mapError("update purchase order", "orden de compra", err)
	}
	return notFound("orden de compra", tag)
}

// Delete borra la orden; las líneas caen por ON DELETE CASCADE.
func (r *PurchaseOrderRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id)
	if err != nil {
		return mapError("delete purchase order", "orden de compra", err)
	}
	return notFound("orden de compra", tag)
}

func (r *PurchaseOrderRepo) List(ctx context.Context, f repository.Filter) ([]*entity.PurchaseOrder, error) {
	var w where
	w.eq("status", f.Status)
	w.eq("supplier_id", f.SupplierID)
	w.dateRange("order_date", f)
	query := `SELECT ` + orderColumns + ` FROM purchase_orders` + w.sql() +
		` ORDER BY order_date DESC, created_at DESC` + w.page(f)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	var list []*entity.PurchaseOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	// Las líneas se leen después de cerrar el cursor: una conexión de tx no admite dos consultas abiertas.
	for _, o := range list {
		if o.Items, err = r.items(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}
