package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipo de transacción financiera.
const (
	TxKindIncome  = "income"
	TxKindExpense = "expense"
)

// FinancialTransaction fila del libro de ingresos o egresos.
type FinancialTransaction struct {
	ID            string
	Kind          string
	Date          time.Time
	Category      string
	Description   string
	Amount        decimal.Decimal
	PaymentMethod string
	PaymentStatus string // paid, pending
	FlockID       *string
	BatchID       *string
	Counterparty  string // cliente o proveedor
	Reference     string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsPaid indica si la transacción ya se pagó/cobró.
func (t FinancialTransaction) IsPaid() bool {
	return t.PaymentStatus == PaymentPaid
}
