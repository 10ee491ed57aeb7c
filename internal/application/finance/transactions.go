// Package finance contiene el libro de ingresos y egresos y la generación de reportes financieros.
package finance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Granja-api/internal/application/dto"
	"github.com/jhoicas/Granja-api/internal/domain"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

// TransactionUseCase CRUD de ingresos y egresos. kind es income o expense.
type TransactionUseCase struct {
	repo    repository.TransactionRepository
	flocks  repository.FlockRepository
	batches repository.BatchRepository
}

func NewTransactionUseCase(repo repository.TransactionRepository, flocks repository.FlockRepository, batches repository.BatchRepository) *TransactionUseCase {
	return &TransactionUseCase{repo: repo, flocks: flocks, batches: batches}
}

func (uc *TransactionUseCase) Create(ctx context.Context, kind, userID string, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	date, err := dto.ParseDate("date", in.Date, false)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	t := &entity.FinancialTransaction{
		ID:            uuid.New().String(),
		Kind:          kind,
		Date:          date,
		Category:      strings.TrimSpace(in.Category),
		Description:   strings.TrimSpace(in.Description),
		Amount:        in.Amount,
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		PaymentStatus: strings.TrimSpace(in.PaymentStatus),
		FlockID:       dto.OptionalID(in.FlockID),
		BatchID:       dto.OptionalID(in.BatchID),
		Counterparty:  strings.TrimSpace(in.Counterparty),
		Reference:     strings.TrimSpace(in.Reference),
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.validate(ctx, t); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	out := ToTransactionResponse(t)
	return &out, nil
}

func (uc *TransactionUseCase) GetByID(ctx context.Context, kind, id string) (*dto.TransactionResponse, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	t, err := uc.repo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("transacción: %w", domain.ErrNotFound)
	}
	out := ToTransactionResponse(t)
	return &out, nil
}

// Update aplica solo los campos presentes.
func (uc *TransactionUseCase) Update(ctx context.Context, kind string, in dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.ID) == "" {
		return nil, domain.Invalid("id", "es obligatorio")
	}
	t, err := uc.repo.GetByID(ctx, kind, in.ID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("transacción: %w", domain.ErrNotFound)
	}
	if in.Date != nil {
		if t.Date, err = dto.ParseDate("date", *in.Date, true); err != nil {
			return nil, err
		}
	}
	if in.Category != nil {
		t.Category = strings.TrimSpace(*in.Category)
	}
	if in.Description != nil {
		t.Description = strings.TrimSpace(*in.Description)
	}
	if in.Amount != nil {
		t.Amount = *in.Amount
	}
	if in.PaymentMethod != nil {
		t.PaymentMethod = strings.TrimSpace(*in.PaymentMethod)
	}
	if in.PaymentStatus != nil {
		t.PaymentStatus = strings.TrimSpace(*in.PaymentStatus)
	}
	if in.FlockID != nil {
		t.FlockID = dto.OptionalID(in.FlockID)
	}
	if in.BatchID != nil {
		t.BatchID = dto.OptionalID(in.BatchID)
	}
	if in.Counterparty != nil {
		t.Counterparty = strings.TrimSpace(*in.Counterparty)
	}
	if in.Reference != nil {
		t.Reference = strings.TrimSpace(*in.Reference)
	}
	if err := uc.validate(ctx, t); err != nil {
		return nil, err
	}
	t.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	out := ToTransactionResponse(t)
	return &out, nil
}

func (uc *TransactionUseCase) Delete(ctx context.Context, kind, id string) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return domain.Invalid("id", "es obligatorio")
	}
	return uc.repo.Delete(ctx, kind, id)
}

func (uc *TransactionUseCase) List(ctx context.Context, kind string, f repository.Filter) ([]dto.TransactionResponse, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	rows, err := uc.repo.List(ctx, kind, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(rows))
	for _, t := range rows {
		out = append(out, ToTransactionResponse(t))
	}
	return out, nil
}

// validate normaliza el estado de pago (vacío = paid) y verifica referencias.
func (uc *TransactionUseCase) validate(ctx context.Context, t *entity.FinancialTransaction) error {
	if t.Category == "" {
		return domain.Invalid("category", "es obligatorio")
	}
	if !t.Amount.IsPositive() {
		return domain.Invalid("amount", "debe ser mayor que 0")
	}
	if err := domain.CheckMoney("amount", t.Amount); err != nil {
		return err
	}
	switch t.PaymentStatus {
	case "":
		t.PaymentStatus = entity.PaymentPaid
	case entity.PaymentPaid, entity.PaymentPending:
	default:
		return domain.Invalid("payment_status", "valores permitidos: paid, pending")
	}
	if t.FlockID != nil {
		f, err := uc.flocks.GetByID(ctx, *t.FlockID)
		if err != nil {
			return err
		}
		if f == nil {
			return fmt.Errorf("parvada: %w", domain.ErrNotFound)
		}
	}
	if t.BatchID != nil {
		b, err := uc.batches.GetByID(ctx, *t.BatchID)
		if err != nil {
			return err
		}
		if b == nil {
			return fmt.Errorf("lote: %w", domain.ErrNotFound)
		}
	}
	return nil
}

func checkKind(kind string) error {
	if kind != entity.TxKindIncome && kind != entity.TxKindExpense {
		return domain.Invalid("kind", "valores permitidos: income, expense")
	}
	return nil
}

func ToTransactionResponse(t *entity.FinancialTransaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:            t.ID,
		Kind:          t.Kind,
		Date:          dto.FormatDate(t.Date),
		Category:      t.Category,
		Description:   t.Description,
		Amount:        t.Amount,
		PaymentMethod: t.PaymentMethod,
		PaymentStatus: t.PaymentStatus,
		FlockID:       t.FlockID,
		BatchID:       t.BatchID,
		Counterparty:  t.Counterparty,
		Reference:     t.Reference,
		CreatedBy:     t.CreatedBy,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
