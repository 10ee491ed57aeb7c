package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

var (
	_ repository.FlockRepository = (*FlockRepo)(nil)
	_ repository.BatchRepository = (*BatchRepo)(nil)
)

// FlockRepo parvadas en memoria.
type FlockRepo struct{ v view }

func (r *FlockRepo) Create(_ context.Context, f *entity.Flock) error {
	return r.v.write(func(st *state) error {
		if flockNameTaken(st, f.Name, "") {
			return duplicate("parvada")
		}
		st.flocks[f.ID] = *f
		st.touch(f.ID)
		return nil
	})
}

func (r *FlockRepo) GetByID(_ context.Context, id string) (*entity.Flock, error) {
	var out *entity.Flock
	err := r.v.read(func(st *state) error {
		if f, ok := st.flocks[id]; ok {
			out = &f
		}
		return nil
	})
	return out, err
}

func (r *FlockRepo) GetForUpdate(ctx context.Context, id string) (*entity.Flock, error) {
	return r.GetByID(ctx, id)
}

func (r *FlockRepo) Update(_ context.Context, f *entity.Flock) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.flocks[f.ID]
		if !ok {
			return notFound("parvada")
		}
		if flockNameTaken(st, f.Name, f.ID) {
			return duplicate("parvada")
		}
		f.CurrentStock = cur.CurrentStock
		st.flocks[f.ID] = *f
		return nil
	})
}

func (r *FlockRepo) UpdateStock(_ context.Context, id string, currentStock int) error {
	if currentStock < 0 {
		return checkViolation("flocks")
	}
	return r.v.write(func(st *state) error {
		cur, ok := st.flocks[id]
		if !ok {
			return notFound("parvada")
		}
		cur.CurrentStock = currentStock
		st.flocks[id] = cur
		return nil
	})
}

func (r *FlockRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.flocks[id]; !ok {
			return notFound("parvada")
		}
		if flockReferenced(st, id) {
			return referenced("parvada")
		}
		delete(st.flocks, id)
		return nil
	})
}

func (r *FlockRepo) List(_ context.Context, f repository.Filter) ([]*entity.Flock, error) {
	var out []*entity.Flock
	err := r.v.read(func(st *state) error {
		for _, fl := range st.flocks {
			if f.Status != "" && fl.Status != f.Status {
				continue
			}
			out = append(out, &fl)
		}
		sortByKey(st, out, func(fl *entity.Flock) (int64, string) { return fl.StartDate.UnixNano(), fl.ID }, true)
		return nil
	})
	return paginate(out, f.Limit, f.Offset), err
}

func flockNameTaken(st *state, name, exceptID string) bool {
	for id, f := range st.flocks {
		if id != exceptID && strings.EqualFold(f.Name, name) {
			return true
		}
	}
	return false
}

func flockReferenced(st *state, id string) bool {
	for _, b := range st.batches {
		if sameID(b.FlockID, id) {
			return true
		}
	}
	for _, c := range st.feedConsumption {
		if sameID(c.FlockID, id) {
			return true
		}
	}
	for _, m := range st.mortality {
		if sameID(m.FlockID, id) {
			return true
		}
	}
	for _, e := range st.eggs {
		if sameID(e.FlockID, id) {
			return true
		}
	}
	for _, h := range st.health {
		if sameID(h.FlockID, id) {
			return true
		}
	}
	return false
}

// BatchRepo lotes en memoria.
type BatchRepo struct{ v view }

func (r *BatchRepo) Create(_ context.Context, b *entity.Batch) error {
	return r.v.write(func(st *state) error {
		if batchNumberTaken(st, b.BatchNumber, "") {
			return duplicate("lote")
		}
		st.batches[b.ID] = *b
		st.touch(b.ID)
		return nil
	})
}

func (r *BatchRepo) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	var out *entity.Batch
	err := r.v.read(func(st *state) error {
		if b, ok := st.batches[id]; ok {
			out = &b
		}
		return nil
	})
	return out, err
}

func (r *BatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.Batch, error) {
	return r.GetByID(ctx, id)
}

func (r *BatchRepo) Update(_ context.Context, b *entity.Batch) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.batches[b.ID]
		if !ok {
			return notFound("lote")
		}
		if batchNumberTaken(st, b.BatchNumber, b.ID) {
			return duplicate("lote")
		}
		b.CurrentStock = cur.CurrentStock
		st.batches[b.ID] = *b
		return nil
	})
}

func (r *BatchRepo) UpdateStock(_ context.Context, id string, currentStock int) error {
	if currentStock < 0 {
		return checkViolation("batches")
	}
	return r.v.write(func(st *state) error {
		cur, ok := st.batches[id]
		if !ok {
			return notFound("lote")
		}
		cur.CurrentStock = currentStock
		st.batches[id] = cur
		return nil
	})
}

func (r *BatchRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.batches[id]; !ok {
			return notFound("lote")
		}
		if batchReferenced(st, id) {
			return referenced("lote")
		}
		delete(st.batches, id)
		return nil
	})
}

func (r *BatchRepo) List(_ context.Context, f repository.Filter) ([]*entity.Batch, error) {
	var out []*entity.Batch
	err := r.v.read(func(st *state) error {
		for _, b := range st.batches {
			if f.Status != "" && b.Status != f.Status {
				continue
			}
			if f.FlockID != "" && !sameID(b.FlockID, f.FlockID) {
				continue
			}
			out = append(out, &b)
		}
		sortByKey(st, out, func(b *entity.Batch) (int64, string) { return b.StartDate.UnixNano(), b.ID }, true)
		return nil
	})
	return paginate(out, f.Limit, f.Offset), err
}

func batchNumberTaken(st *state, number, exceptID string) bool {
	for id, b := range st.batches {
		if id != exceptID && strings.EqualFold(b.BatchNumber, number) {
			return true
		}
	}
	return false
}

func batchReferenced(st *state, id string) bool {
	for _, c := range st.feedConsumption {
		if sameID(c.BatchID, id) {
			return true
		}
	}
	for _, m := range st.mortality {
		if sameID(m.BatchID, id) {
			return true
		}
	}
	for _, w := range st.weights {
		if w.BatchID == id {
			return true
		}
	}
	for _, e := range st.eggs {
		if sameID(e.BatchID, id) {
			return true
		}
	}
	for _, h := range st.health {
		if sameID(h.BatchID, id) {
			return true
		}
	}
	return false
}
