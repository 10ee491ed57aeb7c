package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

var (
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
)

// UserRepo usuarios en memoria.
type UserRepo struct{ v view }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.v.write(func(st *state) error {
		for _, existing := range st.users {
			if strings.EqualFold(existing.Email, u.Email) {
				return duplicate("usuario")
			}
		}
		st.users[u.ID] = *u
		st.touch(u.ID)
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.v.read(func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.v.read(func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, email) {
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	err := r.v.read(func(st *state) error {
		for _, u := range st.users {
			out = append(out, &u)
		}
		sortByKey(st, out, func(u *entity.User) (int64, string) { return u.CreatedAt.UnixNano(), u.ID }, false)
		return nil
	})
	return paginate(out, limit, offset), err
}

// SupplierRepo proveedores en memoria.
type SupplierRepo struct{ v view }

func (r *SupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	return r.v.write(func(st *state) error {
		if supplierNameTaken(st, s.Name, "") {
			return duplicate("proveedor")
		}
		st.suppliers[s.ID] = *s
		st.touch(s.ID)
		return nil
	})
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.v.read(func(st *state) error {
		if s, ok := st.suppliers[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SupplierRepo) Update(_ context.Context, s *entity.Supplier) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.suppliers[s.ID]; !ok {
			return notFound("proveedor")
		}
		if supplierNameTaken(st, s.Name, s.ID) {
			return duplicate("proveedor")
		}
		st.suppliers[s.ID] = *s
		return nil
	})
}

func (r *SupplierRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.suppliers[id]; !ok {
			return notFound("proveedor")
		}
		for _, p := range st.feedPurchases {
			if p.SupplierID == id {
				return referenced("proveedor")
			}
		}
		for _, o := range st.purchaseOrders {
			if o.SupplierID == id {
				return referenced("proveedor")
			}
		}
		// Los ítems conservan su historial; solo pierden el proveedor (ON DELETE SET NULL).
		for k, it := range st.feedInventory {
			if it.SupplierID != nil && *it.SupplierID == id {
				it.SupplierID = nil
				st.feedInventory[k] = it
			}
		}
		for k, it := range st.inventoryItems {
			if it.SupplierID != nil && *it.SupplierID == id {
				it.SupplierID = nil
				st.inventoryItems[k] = it
			}
		}
		delete(st.suppliers, id)
		return nil
	})
}

func (r *SupplierRepo) List(_ context.Context, limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	err := r.v.read(func(st *state) error {
		for _, s := range st.suppliers {
			out = append(out, &s)
		}
		sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
		return nil
	})
	return paginate(out, limit, offset), err
}

func supplierNameTaken(st *state, name, exceptID string) bool {
	for id, s := range st.suppliers {
		if id != exceptID && strings.EqualFold(s.Name, name) {
			return true
		}
	}
	return false
}
