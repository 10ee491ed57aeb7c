package finance

import (
	"context"
	"fmt"

	"github.com/jhoicas/Granja-api/internal/application/dto"
)

// PDFUseCase descarga un reporte financiero como PDF.
type PDFUseCase struct {
	reports   *ReportUseCase
	generator ReportPDFGenerator
	farmName  string
}

func NewPDFUseCase(reports *ReportUseCase, generator ReportPDFGenerator, farmName string) *PDFUseCase {
	return &PDFUseCase{reports: reports, generator: generator, farmName: farmName}
}

// DownloadReportPDF genera el reporte con los mismos parámetros del endpoint JSON y lo renderiza.
func (uc *PDFUseCase) DownloadReportPDF(ctx context.Context, q dto.ReportQuery) (pdfBytes []byte, filename string, err error) {
	report, err := uc.reports.Generate(ctx, q)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.Generate(uc.farmName, report)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar reporte %s: %w", report.Type, err)
	}
	filename = fmt.Sprintf("reporte_%s_%s_%s.pdf", report.Type, report.StartDate, report.EndDate)
	return pdfBytes, filename, nil
}
