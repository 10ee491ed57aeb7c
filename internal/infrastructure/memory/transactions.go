package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Granja-api/internal/domain"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo ingresos y egresos en memoria.
type TransactionRepo struct{ v view }

func ledger(st *state, kind string) (map[string]entity.FinancialTransaction, error) {
	switch kind {
	case entity.TxKindIncome:
		return st.income, nil
	case entity.TxKindExpense:
		return st.expense, nil
	}
	return nil, fmt.Errorf("tipo de transacción %q: %w", kind, domain.ErrInvalidInput)
}

func (r *TransactionRepo) Create(_ context.Context, t *entity.FinancialTransaction) error {
	return r.v.write(func(st *state) error {
		rows, err := ledger(st, t.Kind)
		if err != nil {
			return err
		}
		rows[t.ID] = *t
		st.touch(t.ID)
		return nil
	})
}

func (r *TransactionRepo) GetByID(_ context.Context, kind, id string) (*entity.FinancialTransaction, error) {
	var out *entity.FinancialTransaction
	err := r.v.read(func(st *state) error {
		rows, err := ledger(st, kind)
		if err != nil {
			return err
		}
		if t, ok := rows[id]; ok {
			out = &t
		}
		return nil
	})
	return out, err
}

func (r *TransactionRepo) Update(_ context.Context, t *entity.FinancialTransaction) error {
	return r.v.write(func(st *state) error {
		rows, err := ledger(st, t.Kind)
		if err != nil {
			return err
		}
		if _, ok := rows[t.ID]; !ok {
			return notFound("transacción")
		}
		rows[t.ID] = *t
		return nil
	})
}

func (r *TransactionRepo) Delete(_ context.Context, kind, id string) error {
	return r.v.write(func(st *state) error {
		rows, err := ledger(st, kind)
		if err != nil {
			return err
		}
		if _, ok := rows[id]; !ok {
			return notFound("transacción")
		}
		delete(rows, id)
		return nil
	})
}

func (r *TransactionRepo) List(_ context.Context, kind string, f repository.Filter) ([]*entity.FinancialTransaction, error) {
	var out []*entity.FinancialTransaction
	err := r.v.read(func(st *state) error {
		rows, err := ledger(st, kind)
		if err != nil {
			return err
		}
		for _, t := range rows {
			if !matchGroup(t.FlockID, t.BatchID, f.FlockID, f.BatchID) || !f.InRange(t.Date) {
				continue
			}
			if f.Category != "" && t.Category != f.Category {
				continue
			}
			if f.PaymentStatus != "" && t.PaymentStatus != f.PaymentStatus {
				continue
			}
			out = append(out, &t)
		}
		sortByKey(st, out, func(t *entity.FinancialTransaction) (int64, string) { return t.Date.UnixNano(), t.ID }, true)
		return nil
	})
	return paginate(out, f.Limit, f.Offset), err
}
