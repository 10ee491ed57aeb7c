package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

var (
	_ repository.FlockRepository = (*FlockRepo)(nil)
	_ repository.BatchRepository = (*BatchRepo)(nil)
)

// FlockRepo parvadas sobre PostgreSQL.
type FlockRepo struct {
	q Querier
}

// NewFlockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFlockRepository(q Querier) *FlockRepo {
	return &FlockRepo{q: q}
}

const flockColumns = `id, name, breed, type, house_number, initial_count, current_stock, start_date, status,
	notes, created_at, updated_at`

func scanFlock(s scanner) (*entity.Flock, error) {
	var f entity.Flock
	err := s.Scan(&f.ID, &f.Name, &f.Breed, &f.Type, &f.HouseNumber, &f.InitialCount, &f.CurrentStock,
		&f.StartDate, &f.Status, &f.Notes, &f.CreatedAt, &f.UpdatedAt)
	return &f, err
}

func (r *FlockRepo) Create(ctx context.Context, f *entity.Flock) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO flocks (`+flockColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		f.ID, f.Name, f.Breed, f.Type, f.HouseNumber, f.InitialCount, f.CurrentStock, f.StartDate, f.Status,
		f.Notes, f.CreatedAt, f.UpdatedAt,
	)
	return mapError("insert flock", "parvada", err)
}

func (r *FlockRepo) GetByID(ctx context.Context, id string) (*entity.Flock, error) {
	return r.get(ctx, `SELECT `+flockColumns+` FROM flocks WHERE id = $1`, id)
}

func (r *FlockRepo) GetForUpdate(ctx context.Context, id string) (*entity.Flock, error) {
	return r.get(ctx, `SELECT `+flockColumns+` FROM flocks WHERE id = $1 FOR UPDATE`, id)
}

func (r *FlockRepo) get(ctx context.Context, query, id string) (*entity.Flock, error) {
	f, err := scanFlock(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get flock: %w", err)
	}
	return f, nil
}

func (r *FlockRepo) Update(ctx context.Context, f *entity.Flock) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE flocks SET name = $2, breed = $3, type = $4, house_number = $5, initial_count = $6,
			current_stock = $7, start_date = $8, status = $9, notes = $10, updated_at = $11
		WHERE id = $1`,
		f.ID, f.Name, f.Breed, f.Type, f.HouseNumber, f.InitialCount, f.CurrentStock, f.StartDate, f.Status,
		f.Notes, f.UpdatedAt,
	)
	if err != nil {
		return mapError("update flock", "parvada", err)
	}
	return notFound("parvada", tag)
}

func (r *FlockRepo) UpdateStock(ctx context.Context, id string, currentStock int) error {
	tag, err := r.q.Exec(ctx, `UPDATE flocks SET current_stock = $2, updated_at = now() WHERE id = $1`, id, currentStock)
	if err != nil {
		return mapError("update flock stock", "parvada", err)
	}
	return notFound("parvada", tag)
}

func (r *FlockRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM flocks WHERE id = $1`, id)
	if err != nil {
		return mapError("delete flock", "parvada", err)
	}
	return notFound("parvada", tag)
}

func (r *FlockRepo) List(ctx context.Context, f repository.Filter) ([]*entity.Flock, error) {
	var w where
	w.eq("status", f.Status)
	query := `SELECT ` + flockColumns + ` FROM flocks` + w.sql() + ` ORDER BY start_date DESC, created_at DESC` + w.page(f)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list flocks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Flock
	for rows.Next() {
		fl, err := scanFlock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan flock: %w", err)
		}
		list = append(list, fl)
	}
	return list, rows.Err()
}

// ── Lotes ─────────────────────────────────────────────────────────────────────

// BatchRepo lotes sobre PostgreSQL.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, batch_number, flock_id, breed, type, start_date, initial_count, current_stock, status,
	notes, created_at, updated_at`

func scanBatch(s scanner) (*entity.Batch, error) {
	var b entity.Batch
	err := s.Scan(&b.ID, &b.BatchNumber, &b.FlockID, &b.Breed, &b.Type, &b.StartDate, &b.InitialCount,
		&b.CurrentStock, &b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt)
	return &b, err
}

func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO batches (`+batchColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		b.ID, b.BatchNumber, b.FlockID, b.Breed, b.Type, b.StartDate, b.InitialCount, b.CurrentStock, b.Status,
		b.Notes, b.CreatedAt, b.UpdatedAt,
	)
	return mapError("insert batch", "lote", err)
}

func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	return r.get(ctx, `SELECT `+batchColumns+` FROM batches WHERE id = $1`, id)
}

func (r *BatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.Batch, error) {
	return r.get(ctx, `SELECT `+batchColumns+` FROM batches WHERE id = $1 FOR UPDATE`, id)
}

func (r *BatchRepo) get(ctx context.Context, query, id string) (*entity.Batch, error) {
	b, err := scanBatch(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

func (r *BatchRepo) Update(ctx context.Context, b *entity.Batch) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE batches SET batch_number = $2, flock_id = $3, breed = $4, type = $5, start_date = $6,
			initial_count = $7, current_stock = $8, status = $9, notes = $10, updated_at = $11
		WHERE id = $1`,
		b.ID, b.BatchNumber, b.FlockID, b.Breed, b.Type, b.StartDate, b.InitialCount, b.CurrentStock, b.Status,
		b.Notes, b.UpdatedAt,
	)
	if err != nil {
		return mapError("update batch", "lote", err)
	}
	return notFound("lote", tag)
}

func (r *BatchRepo) UpdateStock(ctx context.Context, id string, currentStock int) error {
	tag, err := r.q.Exec(ctx, `UPDATE batches SET current_stock = $2, updated_at = now() WHERE id = $1`, id, currentStock)
	if err != nil {
		return mapError("update batch stock", "lote", err)
	}
	return notFound("lote", tag)
}

func (r *BatchRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		return mapError("delete batch", "lote", err)
	}
	return notFound("lote", tag)
}

func (r *BatchRepo) List(ctx context.Context, f repository.Filter) ([]*entity.Batch, error) {
	var w where
	w.eq("status", f.Status)
	w.eq("flock_id", f.FlockID)
	query := `SELECT ` + batchColumns + ` FROM batches` + w.sql() + ` ORDER BY start_date DESC, created_at DESC` + w.page(f)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
