package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Granja-api/internal/application/dto"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

// queryAlias devuelve el primer parámetro no vacío entre los nombres dados
// (snake_case primero, luego el alias camelCase).
func queryAlias(c *fiber.Ctx, names ...string) string {
	for _, n := range names {
		if v := strings.TrimSpace(c.Query(n)); v != "" {
			return v
		}
	}
	return ""
}

// filterFromQuery arma el filtro de listados a partir del query string.
func filterFromQuery(c *fiber.Ctx) (repository.Filter, error) {
	from, err := dto.ParseOptionalDate("start_date", queryAlias(c, "start_date", "startDate"))
	if err != nil {
		return repository.Filter{}, err
	}
	to, err := dto.ParseOptionalDate("end_date", queryAlias(c, "end_date", "endDate"))
	if err != nil {
		return repository.Filter{}, err
	}
	page := pageFromQuery(c)
	return repository.Filter{
		FlockID:       queryAlias(c, "flock_id", "flockId"),
		BatchID:       queryAlias(c, "batch_id", "batchId"),
		InventoryID:   queryAlias(c, "inventory_id", "inventoryId"),
		ItemID:        queryAlias(c, "item_id", "itemId"),
		SupplierID:    queryAlias(c, "supplier_id", "supplierId"),
		Category:      queryAlias(c, "category", "type"),
		Status:        queryAlias(c, "status"),
		PaymentStatus: queryAlias(c, "payment_status", "paymentStatus"),
		From:          from,
		To:            to,
		Limit:         page.Limit,
		Offset:        page.Offset,
	}, nil
}

func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	page.DefaultPage()
	return page
}

func reportQuery(c *fiber.Ctx) dto.ReportQuery {
	return dto.ReportQuery{
		Type:      queryAlias(c, "type"),
		StartDate: queryAlias(c, "start_date", "startDate"),
		EndDate:   queryAlias(c, "end_date", "endDate"),
		FlockID:   queryAlias(c, "flock_id", "flockId"),
		BatchID:   queryAlias(c, "batch_id", "batchId"),
	}
}
