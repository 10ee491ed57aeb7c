package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Granja-api/internal/domain"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo libros de ingresos (income) y egresos (expenses).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, date, category, description, amount, payment_method, payment_status, flock_id,
	batch_id, counterparty, reference, created_by, created_at, updated_at`

// table resuelve la tabla del libro; el nombre nunca viene del cliente.
func table(kind string) (string, error) {
	switch kind {
	case entity.TxKindIncome:
		return "income", nil
	case entity.TxKindExpense:
		return "expenses", nil
	}
	return "", fmt.Errorf("tipo de transacción %q: %w", kind, domain.ErrInvalidInput)
}

func scanTransaction(s scanner, kind string) (*entity.FinancialTransaction, error) {
	t := entity.FinancialTransaction{Kind: kind}
	err := s.Scan(&t.ID, &t.Date, &t.Category, &t.Description, &t.Amount, &t.PaymentMethod, &t.PaymentStatus,
		&t.FlockID, &t.BatchID, &t.Counterparty, &t.Reference, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

func (r *TransactionRepo) Create(ctx context.Context, t *entity.FinancialTransaction) error {
	tbl, err := table(t.Kind)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO `+tbl+` (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		t.ID, t.Date, t.Category, t.Description, t.Amount, t.PaymentMethod, t.PaymentStatus, t.FlockID,
		t.BatchID, t.Counterparty, t.Reference, t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	)
	return mapError("insert "+tbl, "transacción", err)
}

func (r *TransactionRepo) GetByID(ctx context.Context, kind, id string) (*entity.FinancialTransaction, error) {
	tbl, err := table(kind)
	if err != nil {
		return nil, err
	}
	t, err := scanTransaction(r.q.QueryRow(ctx, `SELECT `+transactionColumns+` FROM `+tbl+` WHERE id = $1`, id), kind)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", tbl, err)
	}
	return t, nil
}

func (r *TransactionRepo) Update(ctx context.Context, t *entity.FinancialTransaction) error {
	tbl, err := table(t.Kind)
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE `+tbl+` SET date = $2, category = $3, description = $4, amount = $5, payment_method = $6,
			payment_status = $7, flock_id = $8, batch_id = $9, counterparty = $10, reference = $11, updated_at = $12
		WHERE id = $1`,
		t.ID, t.Date, t.Category, t.Description, t.Amount, t.PaymentMethod, t.PaymentStatus, t.FlockID,
		t.BatchID, t.Counterparty, t.Reference, t.UpdatedAt,
	)
	if err != nil {
		return mapError("update "+tbl, "transacción", err)
	}
	return notFound("transacción", tag)
}

func (r *TransactionRepo) Delete(ctx context.Context, kind, id string) error {
	tbl, err := table(kind)
	if err != nil {
		return err
	}
	return deleteRow(ctx, r.q, tbl, "transacción", id)
}

func (r *TransactionRepo) List(ctx context.Context, kind string, f repository.Filter) ([]*entity.FinancialTransaction, error) {
	tbl, err := table(kind)
	if err != nil {
		return nil, err
	}
	var w where
	w.eq("flock_id", f.FlockID)
	w.eq("batch_id", f.BatchID)
	w.eq("category", f.Category)
	w.eq("payment_status", f.PaymentStatus)
	w.dateRange("date", f)
	query := `SELECT ` + transactionColumns + ` FROM ` + tbl + w.sql() + ` ORDER BY date DESC, created_at DESC` + w.page(f)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", tbl, err)
	}
	defer rows.Close()
	var list []*entity.FinancialTransaction
	for rows.Next() {
		t, err := scanTransaction(rows, kind)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", tbl, err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
