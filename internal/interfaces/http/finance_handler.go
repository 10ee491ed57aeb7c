package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Granja-api/internal/application/dto"
	"github.com/jhoicas/Granja-api/internal/application/finance"
)

// FinanceHandler ingresos, egresos y reportes financieros.
type FinanceHandler struct {
	tx      *finance.TransactionUseCase
	reports *finance.ReportUseCase
	pdf     *finance.PDFUseCase
}

// NewFinanceHandler construye el handler.
func NewFinanceHandler(tx *finance.TransactionUseCase, reports *finance.ReportUseCase, pdf *finance.PDFUseCase) *FinanceHandler {
	return &FinanceHandler{tx: tx, reports: reports, pdf: pdf}
}

// Create POST /api/finance/{income|expense}
func (h *FinanceHandler) Create(kind string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in dto.CreateTransactionRequest
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
		out, err := h.tx.Create(c.UserContext(), kind, GetUserID(c), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// Get GET /api/finance/{income|expense}/:id
func (h *FinanceHandler) Get(kind string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.tx.GetByID(c.UserContext(), kind, c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// Update PUT /api/finance/{income|expense} (id en el body).
func (h *FinanceHandler) Update(kind string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in dto.UpdateTransactionRequest
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
		out, err := h.tx.Update(c.UserContext(), kind, in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// Delete DELETE /api/finance/{income|expense}?id=
func (h *FinanceHandler) Delete(kind string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := queryAlias(c, "id")
		if id == "" {
			return missingID(c)
		}
		if err := h.tx.Delete(c.UserContext(), kind, id); err != nil {
			return respondError(c, err)
		}
		return deleted(c)
	}
}

// List GET /api/finance/{income|expense}?start_date=&end_date=&category=&flock_id=&batch_id=
func (h *FinanceHandler) List(kind string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := filterFromQuery(c)
		if err != nil {
			return respondError(c, err)
		}
		out, err := h.tx.List(c.UserContext(), kind, f)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(dto.NewList(out))
	}
}

// GetReport godoc
// @Summary      Reporte financiero
// @Description  type = summary (defecto) | profit_loss | cash_flow | cost_analysis.
// @Description  cost_analysis exige flock_id o batch_id.
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        type        query  string  false  "modo del reporte"
// @Param        start_date  query  string  false  "YYYY-MM-DD (alias startDate)"
// @Param        end_date    query  string  false  "YYYY-MM-DD (alias endDate)"
// @Param        flock_id    query  string  false  "alias flockId"
// @Param        batch_id    query  string  false  "alias batchId"
// @Success      200  {object}  dto.FinancialReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/finance/reports [get]
func (h *FinanceHandler) GetReport(c *fiber.Ctx) error {
	out, err := h.reports.Generate(c.UserContext(), reportQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DownloadReportPDF godoc
// @Summary      Reporte financiero en PDF
// @Tags         finance
// @Security     Bearer
// @Produce      application/pdf
// @Param        type        query  string  false  "modo del reporte"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/finance/reports/pdf [get]
func (h *FinanceHandler) DownloadReportPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.DownloadReportPDF(c.UserContext(), reportQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
