package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO tarjetas del tablero principal.
type DashboardSummaryDTO struct {
	ActiveFlocks   int             `json:"active_flocks"`
	ActiveBatches  int             `json:"active_batches"`
	TotalBirds     int             `json:"total_birds"`
	EggsToday      int             `json:"eggs_today"`
	MortalityMonth int             `json:"mortality_month"`
	MonthlyIncome  decimal.Decimal `json:"monthly_income"`
	MonthlyExpense decimal.Decimal `json:"monthly_expense"`
	MonthlyNet     decimal.Decimal `json:"monthly_net"`
	LowStockCount  int             `json:"low_stock_count"`
	FeedStockValue decimal.Decimal `json:"feed_stock_value"`
	DateLabel      string          `json:"date_label"` // ej: "Octubre 2026"
}
