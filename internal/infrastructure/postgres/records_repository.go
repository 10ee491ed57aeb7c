package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

var (
	_ repository.MortalityRepository     = (*MortalityRepo)(nil)
	_ repository.EggCollectionRepository = (*EggCollectionRepo)(nil)
	_ repository.WeightRecordRepository  = (*WeightRecordRepo)(nil)
	_ repository.HealthRecordRepository  = (*HealthRecordRepo)(nil)
)

// deleteRow borra por id y traduce 0 filas en ErrNotFound.
func deleteRow(ctx context.Context, q Querier, table, what, id string) error {
	tag, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return mapError("delete "+table, what, err)
	}
	return notFound(what, tag)
}

// ── Mortalidad ────────────────────────────────────────────────────────────────

// MortalityRepo registros de mortalidad.
type MortalityRepo struct {
	q Querier
}

// NewMortalityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMortalityRepository(q Querier) *MortalityRepo {
	return &MortalityRepo{q: q}
}

const mortalityColumns = `id, flock_id, batch_id, date, count, cause, notes, created_by, created_at`

func scanMortality(s scanner) (*entity.MortalityRecord, error) {
	var m entity.MortalityRecord
	err := s.Scan(&m.ID, &m.FlockID, &m.BatchID, &m.Date, &m.Count, &m.Cause, &m.Notes, &m.CreatedBy, &m.CreatedAt)
	return &m, err
}

func (r *MortalityRepo) Create(ctx context.Context, m *entity.MortalityRecord) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO mortality_records (`+mortalityColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.FlockID, m.BatchID, m.Date, m.Count, m.Cause, m.Notes, m.CreatedBy, m.CreatedAt,
	)
	return mapError("insert mortality", "registro de mortalidad", err)
}

func (r *MortalityRepo) GetByID(ctx context.Context, id string) (*entity.MortalityRecord, error) {
	m, err := scanMortality(r.q.QueryRow(ctx, `SELECT `+mortalityColumns+` FROM mortality_records WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get mortality: %w", err)
	}
	return m, nil
}

func (r *MortalityRepo) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, r.q, "mortality_records", "registro de mortalidad", id)
}

func (r *MortalityRepo) List(ctx context.Context, f repository.Filter) ([]*entity.MortalityRecord, error) {
	var w where
	w.eq("flock_id", f.FlockID)
	w.eq("batch_id", f.BatchID)
	w.dateRange("date", f)
	query := `SELECT ` + mortalityColumns + ` FROM mortality_records` + w.sql() + ` ORDER BY date DESC, created_at DESC` + w.page(f)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list mortality: %w", err)
	}
	defer rows.Close()
	var list []*entity.MortalityRecord
	for rows.Next() {
		m, err := scanMortality(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mortality: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ── Huevos ────────────────────────────────────────────────────────────────────

// EggCollectionRepo recolecciones de huevos.
type EggCollectionRepo struct {
	q Querier
}

// NewEggCollectionRepository construye el adaptador.
func NewEggCollectionRepository(q Querier) *EggCollectionRepo {
	return &EggCollectionRepo{q: q}
}

const eggColumns = `id, flock_id, batch_id, date, total_eggs, damaged_eggs, notes, created_by, created_at`

func scanEggs(s scanner) (*entity.EggCollection, error) {
	var e entity.EggCollection
	err := s.Scan(&e.ID, &e.FlockID, &e.BatchID, &e.Date, &e.TotalEggs, &e.DamagedEggs, &e.Notes, &e.CreatedBy, &e.CreatedAt)
	return &e, err
}

func (r *EggCollectionRepo) Create(ctx context.Context, e *entity.EggCollection) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO egg_collections (`+eggColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.FlockID, e.BatchID, e.Date, e.TotalEggs, e.DamagedEggs, e.Notes, e.CreatedBy, e.CreatedAt,
	)
	return mapError("insert egg collection", "recolección", err)
}

func (r *EggCollectionRepo) GetByID(ctx context.Context, id string) (*entity.EggCollection, error) {
	e, err := scanEggs(r.q.QueryRow(ctx, `SELECT `+eggColumns+` FROM egg_collections WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get egg collection: %w", err)
	}
	return e, nil
}

func (r *EggCollectionRepo) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, r.q, "egg_collections", "recolección", id)
}

func (r *EggCollectionRepo) filter(f repository.Filter) *where {
	w := &where{}
	w.eq("flock_id", f.FlockID)
	w.eq("batch_id", f.BatchID)
	w.dateRange("date", f)
	return w
}

func (r *EggCollectionRepo) List(ctx context.Context, f repository.Filter) ([]*entity.EggCollection, error) {
	w := r.filter(f)
	query := `SELECT ` + eggColumns + ` FROM egg_collections` + w.sql() + ` ORDER BY date DESC, created_at DESC` + w.page(f)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list egg collections: %w", err)
	}
	defer rows.Close()
	var list []*entity.EggCollection
	for rows.Next() {
		e, err := scanEggs(rows)
		if err != nil {
			return nil, fmt.Errorf("scan egg collection: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *EggCollectionRepo) SumEggs(ctx context.Context, f repository.Filter) (int, error) {
	w := r.filter(f)
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(total_eggs), 0) FROM egg_collections`+w.sql(), w.args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum eggs: %w", err)
	}
	return total, nil
}

// ── Pesajes ───────────────────────────────────────────────────────────────────

// WeightRecordRepo pesajes de lotes.
type WeightRecordRepo struct {
	q Querier
}

// NewWeightRecordRepository construye el adaptador.
func NewWeightRecordRepository(q Querier) *WeightRecordRepo {
	return &WeightRecordRepo{q: q}
}

const weightColumns = `id, batch_id, date, sample_size, average_weight, notes, created_by, created_at`

func scanWeight(s scanner) (*entity.WeightRecord, error) {
	var w entity.WeightRecord
	err := s.Scan(&w.ID, &w.BatchID, &w.Date, &w.SampleSize, &w.AverageWeight, &w.Notes, &w.CreatedBy, &w.CreatedAt)
	return &w, err
}

func (r *WeightRecordRepo) Create(ctx context.Context, wr *entity.WeightRecord) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO weight_records (`+weightColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		wr.ID, wr.BatchID, wr.Date, wr.SampleSize, wr.AverageWeight, wr.Notes, wr.CreatedBy, wr.CreatedAt,
	)
	return mapError("insert weight record", "pesaje", err)
}

func (r *WeightRecordRepo) GetByID(ctx context.Context, id string) (*entity.WeightRecord, error) {
	wr, err := scanWeight(r.q.QueryRow(ctx, `SELECT `+weightColumns+` FROM weight_records WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get weight record: %w", err)
	}
	return wr, nil
}

func (r *WeightRecordRepo) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, r.q, "weight_records", "pesaje", id)
}

// List ordena por fecha ascendente: el último elemento es el pesaje más reciente.
func (r *WeightRecordRepo) List(ctx context.Context, f repository.Filter) ([]*entity.WeightRecord, error) {
	var w where
	w.eq("batch_id", f.BatchID)
	w.dateRange("date", f)
	query := `SELECT ` + weightColumns + ` FROM weight_records` + w.sql() + ` ORDER BY date, created_at` + w.page(f)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list weight records: %w", err)
	}
	defer rows.Close()
	var list []*entity.WeightRecord
	for rows.Next() {
		wr, err := scanWeight(rows)
		if err != nil {
			return nil, fmt.Errorf("scan weight record: %w", err)
		}
		list = append(list, wr)
	}
	return list, rows.Err()
}

// ── Sanidad ───────────────────────────────────────────────────────────────────

// HealthRecordRepo registros sanitarios.
type HealthRecordRepo struct {
	q Querier
}

// NewHealthRecordRepository construye el adaptador.
func NewHealthRecordRepository(q Querier) *HealthRecordRepo {
	return &HealthRecordRepo{q: q}
}

const healthColumns = `id, flock_id, batch_id, date, type, description, medication, dosage, cost, veterinarian,
	notes, created_by, created_at`

func scanHealth(s scanner) (*entity.HealthRecord, error) {
	var h entity.HealthRecord
	err := s.Scan(&h.ID, &h.FlockID, &h.BatchID, &h.Date, &h.Type, &h.Description, &h.Medication, &h.Dosage,
		&h.Cost, &h.Veterinarian, &h.Notes, &h.CreatedBy, &h.CreatedAt)
	return &h, err
}

func (r *HealthRecordRepo) Create(ctx context.Context, h *entity.HealthRecord) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO health_records (`+healthColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		h.ID, h.FlockID, h.BatchID, h.Date, h.Type, h.Description, h.Medication, h.Dosage, h.Cost,
		h.Veterinarian, h.Notes, h.CreatedBy, h.CreatedAt,
	)
	return mapError("insert health record", "registro sanitario", err)
}

func (r *HealthRecordRepo) GetByID(ctx context.Context, id string) (*entity.HealthRecord, error) {
	h, err := scanHealth(r.q.QueryRow(ctx, `SELECT `+healthColumns+` FROM health_records WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get health record: %w", err)
	}
	return h, nil
}

func (r *HealthRecordRepo) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, r.q, "health_records", "registro sanitario", id)
}

// List filtra por tipo con Filter.Category.
func (r *HealthRecordRepo) List(ctx context.Context, f repository.Filter) ([]*entity.HealthRecord, error) {
	var w where
	w.eq("flock_id", f.FlockID)
	w.eq("batch_id", f.BatchID)
	w.eq("type", f.Category)
	w.dateRange("date", f)
	query := `SELECT ` + healthColumns + ` FROM health_records` + w.sql() + ` ORDER BY date DESC, created_at DESC` + w.page(f)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list health records: %w", err)
	}
	defer rows.Close()
	var list []*entity.HealthRecord
	for rows.Next() {
		h, err := scanHealth(rows)
		if err != nil {
			return nil, fmt.Errorf("scan health record: %w", err)
		}
		list = append(list, h)
	}
	return list, rows.Err()
}
