package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

var (
	_ repository.FeedInventoryRepository   = (*FeedInventoryRepo)(nil)
	_ repository.FeedPurchaseRepository    = (*FeedPurchaseRepo)(nil)
	_ repository.FeedConsumptionRepository = (*FeedConsumptionRepo)(nil)
)

// FeedInventoryRepo ítems de alimento en memoria.
type FeedInventoryRepo struct{ v view }

func (r *FeedInventoryRepo) Create(_ context.Context, item *entity.FeedInventoryItem) error {
	if item.CurrentStock.IsNegative() {
		return checkViolation("feed_inventory")
	}
	return r.v.write(func(st *state) error {
		st.feedInventory[item.ID] = *item
		st.touch(item.ID)
		return nil
	})
}

func (r *FeedInventoryRepo) GetByID(_ context.Context, id string) (*entity.FeedInventoryItem, error) {
	var out *entity.FeedInventoryItem
	err := r.v.read(func(st *state) error {
		if it, ok := st.feedInventory[id]; ok {
			out = &it
		}
		return nil
	})
	return out, err
}

// GetForUpdate no necesita bloqueo adicional: la transacción ya tiene el mutex.
func (r *FeedInventoryRepo) GetForUpdate(ctx context.Context, id string) (*entity.FeedInventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *FeedInventoryRepo) Update(_ context.Context, item *entity.FeedInventoryItem) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.feedInventory[item.ID]
		if !ok {
			return notFound("ítem de alimento")
		}
		cur.FeedType = item.FeedType
		cur.Brand = item.Brand
		cur.SupplierID = item.SupplierID
		cur.ReorderLevel = item.ReorderLevel
		cur.UnitCost = item.UnitCost
		cur.Notes = item.Notes
		cur.UpdatedAt = item.UpdatedAt
		st.feedInventory[item.ID] = cur
		return nil
	})
}

func (r *FeedInventoryRepo) UpdateStock(_ context.Context, item *entity.FeedInventoryItem) error {
	if item.CurrentStock.IsNegative() {
		return checkViolation("feed_inventory")
	}
	return r.v.write(func(st *state) error {
		cur, ok := st.feedInventory[item.ID]
		if !ok {
			return notFound("ítem de alimento")
		}
		cur.CurrentStock = item.CurrentStock
		cur.UnitCost = item.UnitCost
		cur.LastRestockDate = item.LastRestockDate
		cur.UpdatedAt = item.UpdatedAt
		st.feedInventory[item.ID] = cur
		return nil
	})
}

func (r *FeedInventoryRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.feedInventory[id]; !ok {
			return notFound("ítem de alimento")
		}
		for _, p := range st.feedPurchases {
			if p.InventoryID == id {
				return referenced("ítem de alimento")
			}
		}
		for _, c := range st.feedConsumption {
			if c.InventoryID == id {
				return referenced("ítem de alimento")
			}
		}
		delete(st.feedInventory, id)
		return nil
	})
}

func (r *FeedInventoryRepo) List(_ context.Context, f repository.Filter) ([]*entity.FeedInventoryItem, error) {
	var out []*entity.FeedInventoryItem
	err := r.v.read(func(st *state) error {
		for _, it := range st.feedInventory {
			if f.SupplierID != "" && !sameID(it.SupplierID, f.SupplierID) {
				continue
			}
			out = append(out, &it)
		}
		sortByKey(st, out, func(it *entity.FeedInventoryItem) (int64, string) { return 0, it.ID }, false)
		return nil
	})
	return paginate(out, f.Limit, f.Offset), err
}

// FeedPurchaseRepo compras de alimento en memoria.
type FeedPurchaseRepo struct{ v view }

func (r *FeedPurchaseRepo) Create(_ context.Context, p *entity.FeedPurchase) error {
	return r.v.write(func(st *state) error {
		if invoiceTaken(st, p.InvoiceNumber, "") {
			return duplicate("número de factura")
		}
		st.feedPurchases[p.ID] = *p
		st.touch(p.ID)
		return nil
	})
}

func (r *FeedPurchaseRepo) GetByID(_ context.Context, id string) (*entity.FeedPurchase, error) {
	var out *entity.FeedPurchase
	err := r.v.read(func(st *state) error {
		if p, ok := st.feedPurchases[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *FeedPurchaseRepo) Update(_ context.Context, p *entity.FeedPurchase) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.feedPurchases[p.ID]; !ok {
			return notFound("compra")
		}
		if invoiceTaken(st, p.InvoiceNumber, p.ID) {
			return duplicate("número de factura")
		}
		st.feedPurchases[p.ID] = *p
		return nil
	})
}

func (r *FeedPurchaseRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.feedPurchases[id]; !ok {
			return notFound("compra")
		}
		delete(st.feedPurchases, id)
		return nil
	})
}

func (r *FeedPurchaseRepo) List(_ context.Context, f repository.Filter) ([]*entity.FeedPurchase, error) {
	var out []*entity.FeedPurchase
	err := r.v.read(func(st *state) error {
		for _, p := range st.feedPurchases {
			if f.InventoryID != "" && p.InventoryID != f.InventoryID {
				continue
			}
			if f.SupplierID != "" && p.SupplierID != f.SupplierID {
				continue
			}
			if f.PaymentStatus != "" && p.PaymentStatus != f.PaymentStatus {
				continue
			}
			if !f.InRange(p.PurchaseDate) {
				continue
			}
			out = append(out, &p)
		}
		sortByKey(st, out, func(p *entity.FeedPurchase) (int64, string) { return p.PurchaseDate.UnixNano(), p.ID }, true)
		return nil
	})
	return paginate(out, f.Limit, f.Offset), err
}

func invoiceTaken(st *state, invoice *string, exceptID string) bool {
	if invoice == nil || strings.TrimSpace(*invoice) == "" {
		return false
	}
	for id, p := range st.feedPurchases {
		if id != exceptID && p.InvoiceNumber != nil && *p.InvoiceNumber == *invoice {
			return true
		}
	}
	return false
}

// FeedConsumptionRepo consumos en memoria.
type FeedConsumptionRepo struct{ v view }

func (r *FeedConsumptionRepo) Create(_ context.Context, c *entity.FeedConsumption) error {
	return r.v.write(func(st *state) error {
		st.feedConsumption[c.ID] = *c
		st.touch(c.ID)
		return nil
	})
}

func (r *FeedConsumptionRepo) GetByID(_ context.Context, id string) (*entity.FeedConsumption, error) {
	var out *entity.FeedConsumption
	err := r.v.read(func(st *state) error {
		if c, ok := st.feedConsumption[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *FeedConsumptionRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.feedConsumption[id]; !ok {
			return notFound("consumo")
		}
		delete(st.feedConsumption, id)
		return nil
	})
}

func (r *FeedConsumptionRepo) List(_ context.Context, f repository.Filter) ([]*entity.FeedConsumption, error) {
	var out []*entity.FeedConsumption
	err := r.v.read(func(st *state) error {
		for _, c := range st.feedConsumption {
			if f.InventoryID != "" && c.InventoryID != f.InventoryID {
				continue
			}
			if !matchGroup(c.FlockID, c.BatchID, f.FlockID, f.BatchID) || !f.InRange(c.Date) {
				continue
			}
			out = append(out, &c)
		}
		sortByKey(st, out, func(c *entity.FeedConsumption) (int64, string) { return c.Date.UnixNano(), c.ID }, true)
		return nil
	})
	return paginate(out, f.Limit, f.Offset), err
}
