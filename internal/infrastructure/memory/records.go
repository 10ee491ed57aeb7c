package memory

import (
	"context"

	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

var (
	_ repository.MortalityRepository     = (*MortalityRepo)(nil)
	_ repository.EggCollectionRepository = (*EggCollectionRepo)(nil)
	_ repository.WeightRecordRepository  = (*WeightRecordRepo)(nil)
	_ repository.HealthRecordRepository  = (*HealthRecordRepo)(nil)
)

// MortalityRepo registros de mortalidad en memoria.
type MortalityRepo struct{ v view }

func (r *MortalityRepo) Create(_ context.Context, m *entity.MortalityRecord) error {
	return r.v.write(func(st *state) error {
		st.mortality[m.ID] = *m
		st.touch(m.ID)
		return nil
	})
}

func (r *MortalityRepo) GetByID(_ context.Context, id string) (*entity.MortalityRecord, error) {
	var out *entity.MortalityRecord
	err := r.v.read(func(st *state) error {
		if m, ok := st.mortality[id]; ok {
			out = &m
		}
		return nil
	})
	return out, err
}

func (r *MortalityRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.mortality[id]; !ok {
			return notFound("registro de mortalidad")
		}
		delete(st.mortality, id)
		return nil
	})
}

func (r *MortalityRepo) List(_ context.Context, f repository.Filter) ([]*entity.MortalityRecord, error) {
	var out []*entity.MortalityRecord
	err := r.v.read(func(st *state) error {
		for _, m := range st.mortality {
			if !matchGroup(m.FlockID, m.BatchID, f.FlockID, f.BatchID) || !f.InRange(m.Date) {
				continue
			}
			out = append(out, &m)
		}
		sortByKey(st, out, func(m *entity.MortalityRecord) (int64, string) { return m.Date.UnixNano(), m.ID }, true)
		return nil
	})
	return paginate(out, f.Limit, f.Offset), err
}

// EggCollectionRepo recolecciones en memoria.
type EggCollectionRepo struct{ v view }

func (r *EggCollectionRepo) Create(_ context.Context, e *entity.EggCollection) error {
	return r.v.write(func(st *state) error {
		st.eggs[e.ID] = *e
		st.touch(e.ID)
		return nil
	})
}

func (r *EggCollectionRepo) GetByID(_ context.Context, id string) (*entity.EggCollection, error) {
	var out *entity.EggCollection
	err := r.v.read(func(st *state) error {
		if e, ok := st.eggs[id]; ok {
			out = &e
		}
		return nil
	})
	return out, err
}

func (r *EggCollectionRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.eggs[id]; !ok {
			return notFound("recolección")
		}
		delete(st.eggs, id)
		return nil
	})
}

func (r *EggCollectionRepo) List(_ context.Context, f repository.Filter) ([]*entity.EggCollection, error) {
	var out []*entity.EggCollection
	err := r.v.read(func(st *state) error {
		for _, e := range st.eggs {
			if !matchGroup(e.FlockID, e.BatchID, f.FlockID, f.BatchID) || !f.InRange(e.Date) {
				continue
			}
			out = append(out, &e)
		}
		sortByKey(st, out, func(e *entity.EggCollection) (int64, string) { return e.Date.UnixNano(), e.ID }, true)
		return nil
	})
	return paginate(out, f.Limit, f.Offset), err
}

func (r *EggCollectionRepo) SumEggs(_ context.Context, f repository.Filter) (int, error) {
	total := 0
	err := r.v.read(func(st *state) error {
		for _, e := range st.eggs {
			if matchGroup(e.FlockID, e.BatchID, f.FlockID, f.BatchID) && f.InRange(e.Date) {
				total += e.TotalEggs
			}
		}
		return nil
	})
	return total, err
}

// WeightRecordRepo pesajes en memoria.
type WeightRecordRepo struct{ v view }

func (r *WeightRecordRepo) Create(_ context.Context, w *entity.WeightRecord) error {
	return r.v.write(func(st *state) error {
		st.weights[w.ID] = *w
		st.touch(w.ID)
		return nil
	})
}

func (r *WeightRecordRepo) GetByID(_ context.Context, id string) (*entity.WeightRecord, error) {
	var out *entity.WeightRecord
	err := r.v.read(func(st *state) error {
		if w, ok := st.weights[id]; ok {
			out = &w
		}
		return nil
	})
	return out, err
}

func (r *WeightRecordRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.weights[id]; !ok {
			return notFound("pesaje")
		}
		delete(st.weights, id)
		return nil
	})
}

func (r *WeightRecordRepo) List(_ context.Context, f repository.Filter) ([]*entity.WeightRecord, error) {
	var out []*entity.WeightRecord
	err := r.v.read(func(st *state) error {
		for _, w := range st.weights {
			if f.BatchID != "" && w.BatchID != f.BatchID {
				continue
			}
			if !f.InRange(w.Date) {
				continue
			}
			out = append(out, &w)
		}
		sortByKey(st, out, func(w *entity.WeightRecord) (int64, string) { return w.Date.UnixNano(), w.ID }, false)
		return nil
	})
	return paginate(out, f.Limit, f.Offset), err
}

// HealthRecordRepo registros sanitarios en memoria.
type HealthRecordRepo struct{ v view }

func (r *HealthRecordRepo) Create(_ context.Context, h *entity.HealthRecord) error {
	return r.v.write(func(st *state) error {
		st.health[h.ID] = *h
		st.touch(h.ID)
		return nil
	})
}

func (r *HealthRecordRepo) GetByID(_ context.Context, id string) (*entity.HealthRecord, error) {
	var out *entity.HealthRecord
	err := r.v.read(func(st *state) error {
		if h, ok := st.health[id]; ok {
			out = &h
		}
		return nil
	})
	return out, err
}

func (r *HealthRecordRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.health[id]; !ok {
			return notFound("registro sanitario")
		}
		delete(st.health, id)
		return nil
	})
}

func (r *HealthRecordRepo) List(_ context.Context, f repository.Filter) ([]*entity.HealthRecord, error) {
	var out []*entity.HealthRecord
	err := r.v.read(func(st *state) error {
		for _, h := range st.health {
			if !matchGroup(h.FlockID, h.BatchID, f.FlockID, f.BatchID) || !f.InRange(h.Date) {
				continue
			}
			if f.Category != "" && h.Type != f.Category {
				continue
			}
			out = append(out, &h)
		}
		sortByKey(st, out, func(h *entity.HealthRecord) (int64, string) { return h.Date.UnixNano(), h.ID }, true)
		return nil
	})
	return paginate(out, f.Limit, f.Offset), err
}
