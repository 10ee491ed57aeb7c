package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Granja-api/internal/domain/finance"
)

// CreateTransactionRequest body para POST /api/finance/income y /api/finance/expense.
type CreateTransactionRequest struct {
	Date          string          `json:"date"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus string          `json:"payment_status"`
	FlockID       *string         `json:"flock_id,omitempty"`
	BatchID       *string         `json:"batch_id,omitempty"`
	Counterparty  string          `json:"counterparty"`
	Reference     string          `json:"reference"`
}

// UpdateTransactionRequest body para PUT (id en el body).
type UpdateTransactionRequest struct {
	ID            string           `json:"id"`
	Date          *string          `json:"date,omitempty"`
	Category      *string          `json:"category,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	PaymentMethod *string          `json:"payment_method,omitempty"`
	PaymentStatus *string          `json:"payment_status,omitempty"`
	FlockID       *string          `json:"flock_id,omitempty"`
	BatchID       *string          `json:"batch_id,omitempty"`
	Counterparty  *string          `json:"counterparty,omitempty"`
	Reference     *string          `json:"reference,omitempty"`
}

// TransactionResponse salida de un ingreso o egreso.
type TransactionResponse struct {
	ID            string          `json:"id"`
	Kind          string          `json:"kind"`
	Date          string          `json:"date"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus string          `json:"payment_status"`
	FlockID       *string         `json:"flock_id"`
	BatchID       *string         `json:"batch_id"`
	Counterparty  string          `json:"counterparty"`
	Reference     string          `json:"reference"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ReportQuery parámetros de GET /api/finance/reports.
type ReportQuery struct {
	Type      string
	StartDate string
	EndDate   string
	FlockID   string
	BatchID   string
}

// FinancialReportResponse reporte; solo se llena la sección del modo pedido.
type FinancialReportResponse struct {
	Type         string                `json:"type"`
	StartDate    string                `json:"start_date"`
	EndDate      string                `json:"end_date"`
	FlockID      string                `json:"flock_id,omitempty"`
	BatchID      string                `json:"batch_id,omitempty"`
	Summary      *finance.Summary      `json:"summary,omitempty"`
	ProfitLoss   *finance.ProfitLoss   `json:"profit_loss,omitempty"`
	CashFlow     *finance.CashFlow     `json:"cash_flow,omitempty"`
	CostAnalysis *finance.CostAnalysis `json:"cost_analysis,omitempty"`
}
