package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

var (
	_ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
	_ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)
)

// InventoryItemRepo inventario general en memoria.
type InventoryItemRepo struct{ v view }

func (r *InventoryItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	if item.CurrentStock.IsNegative() {
		return checkViolation("inventory_items")
	}
	return r.v.write(func(st *state) error {
		if itemNameTaken(st, item.Name, "") {
			return duplicate("ítem de inventario")
		}
		st.inventoryItems[item.ID] = *item
		st.touch(item.ID)
		return nil
	})
}

func (r *InventoryItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	err := r.v.read(func(st *state) error {
		if it, ok := st.inventoryItems[id]; ok {
			out = &it
		}
		return nil
	})
	return out, err
}

func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *InventoryItemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.inventoryItems[item.ID]
		if !ok {
			return notFound("ítem de inventario")
		}
		if itemNameTaken(st, item.Name, item.ID) {
			return duplicate("ítem de inventario")
		}
		cur.Name = item.Name
		cur.Category = item.Category
		cur.Unit = item.Unit
		cur.ReorderLevel = item.ReorderLevel
		cur.UnitCost = item.UnitCost
		cur.SupplierID = item.SupplierID
		cur.Notes = item.Notes
		cur.UpdatedAt = item.UpdatedAt
		st.inventoryItems[item.ID] = cur
		return nil
	})
}

func (r *InventoryItemRepo) UpdateStock(_ context.Context, item *entity.InventoryItem) error {
	if item.CurrentStock.IsNegative() {
		return checkViolation("inventory_items")
	}
	return r.v.write(func(st *state) error {
		cur, ok := st.inventoryItems[item.ID]
		if !ok {
			return notFound("ítem de inventario")
		}
		cur.CurrentStock = item.CurrentStock
		cur.UnitCost = item.UnitCost
		cur.LastRestockDate = item.LastRestockDate
		cur.UpdatedAt = item.UpdatedAt
		st.inventoryItems[item.ID] = cur
		return nil
	})
}

func (r *InventoryItemRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.inventoryItems[id]; !ok {
			return notFound("ítem de inventario")
		}
		for _, m := range st.stockMovements {
			if m.ItemID == id {
				return referenced("ítem de inventario")
			}
		}
		for _, o := range st.purchaseOrders {
			for _, line := range o.Items {
				if line.ItemID == id {
					return referenced("ítem de inventario")
				}
			}
		}
		delete(st.inventoryItems, id)
		return nil
	})
}

func (r *InventoryItemRepo) List(_ context.Context, f repository.Filter) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	err := r.v.read(func(st *state) error {
		for _, it := range st.inventoryItems {
			if f.Category != "" && it.Category != f.Category {
				continue
			}
			if f.SupplierID != "" && !sameID(it.SupplierID, f.SupplierID) {
				continue
			}
			out = append(out, &it)
		}
		sortByKey(st, out, func(it *entity.InventoryItem) (int64, string) { return 0, it.ID }, false)
		return nil
	})
	return paginate(out, f.Limit, f.Offset), err
}

func itemNameTaken(st *state, name, exceptID string) bool {
	for id, it := range st.inventoryItems {
		if id != exceptID && strings.EqualFold(it.Name, name) {
			return true
		}
	}
	return false
}

// StockMovementRepo libro de movimientos en memoria.
type StockMovementRepo struct{ v view }

func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.v.write(func(st *state) error {
		st.stockMovements[m.ID] = *m
		st.touch(m.ID)
		return nil
	})
}

func (r *StockMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	var out *entity.StockMovement
	err := r.v.read(func(st *state) error {
		if m, ok := st.stockMovements[id]; ok {
			out = &m
		}
		return nil
	})
	return out, err
}

func (r *StockMovementRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.stockMovements[id]; !ok {
			return notFound("movimiento")
		}
		delete(st.stockMovements, id)
		return nil
	})
}

func (r *StockMovementRepo) List(_ context.Context, f repository.Filter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.v.read(func(st *state) error {
		for _, m := range st.stockMovements {
			if f.ItemID != "" && m.ItemID != f.ItemID {
				continue
			}
			if f.Category != "" && m.Type != f.Category {
				continue
			}
			if !f.InRange(m.Date) {
				continue
			}
			out = append(out, &m)
		}
		sortByKey(st, out, func(m *entity.StockMovement) (int64, string) { return 0, m.ID }, false)
		return nil
	})
	return paginate(out, f.Limit, f.Offset), err
}

// PurchaseOrderRepo órdenes de compra en memoria.
type PurchaseOrderRepo struct{ v view }

func (r *PurchaseOrderRepo) Create(_ context.Context, o *entity.PurchaseOrder) error {
	return r.v.write(func(st *state) error {
		for _, existing := range st.purchaseOrders {
			if existing.OrderNumber == o.OrderNumber {
				return duplicate("número de orden")
			}
		}
		st.purchaseOrders[o.ID] = copyOrder(*o)
		st.touch(o.ID)
		return nil
	})
}

func (r *PurchaseOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	err := r.v.read(func(st *state) error {
		if o, ok := st.purchaseOrders[id]; ok {
			o = copyOrder(o)
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *PurchaseOrderRepo) UpdateStatus(_ context.Context, o *entity.PurchaseOrder) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.purchaseOrders[o.ID]
		if !ok {
			return notFound("orden de compra")
		}
		cur.Status = o.Status
		cur.ReceivedDate = o.ReceivedDate
		cur.UpdatedAt = o.UpdatedAt
		st.purchaseOrders[o.ID] = cur
		return nil
	})
}

func (r *PurchaseOrderRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.purchaseOrders[id]; !ok {
			return notFound("orden de compra")
		}
		delete(st.purchaseOrders, id)
		return nil
	})
}

func (r *PurchaseOrderRepo) List(_ context.Context, f repository.Filter) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	err := r.v.read(func(st *state) error {
		for _, o := range st.purchaseOrders {
			if f.Status != "" && o.Status != f.Status {
				continue
			}
			if f.SupplierID != "" && o.SupplierID != f.SupplierID {
				continue
			}
			if !f.InRange(o.OrderDate) {
				continue
			}
			o = copyOrder(o)
			out = append(out, &o)
		}
		sortByKey(st, out, func(o *entity.PurchaseOrder) (int64, string) { return o.OrderDate.UnixNano(), o.ID }, true)
		return nil
	})
	return paginate(out, f.Limit, f.Offset), err
}
