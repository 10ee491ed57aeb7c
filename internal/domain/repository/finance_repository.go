package repository

import (
	"context"

	"github.com/jhoicas/Granja-api/internal/domain/entity"
)

// TransactionRepository ingresos y egresos; kind selecciona la tabla.
type TransactionRepository interface {
	Create(ctx context.Context, t *entity.FinancialTransaction) error
	GetByID(ctx context.Context, kind, id string) (*entity.FinancialTransaction, error)
	Update(ctx context.Context, t *entity.FinancialTransaction) error
	Delete(ctx context.Context, kind, id string) error
	// List ordena por fecha descendente.
	List(ctx context.Context, kind string, f Filter) ([]*entity.FinancialTransaction, error)
}
