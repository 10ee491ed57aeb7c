package finance

import "github.com/jhoicas/Granja-api/internal/application/dto"

// ReportPDFGenerator genera la representación PDF de un reporte financiero.
type ReportPDFGenerator interface {
	Generate(farmName string, report *dto.FinancialReportResponse) ([]byte, error)
}
