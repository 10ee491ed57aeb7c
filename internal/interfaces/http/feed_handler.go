package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Granja-api/internal/application/dto"
	"github.com/jhoicas/Granja-api/internal/application/feed"
)

// FeedHandler inventario de alimento, compras y consumos.
type FeedHandler struct {
	uc *feed.UseCase
}

// NewFeedHandler construye el handler.
func NewFeedHandler(uc *feed.UseCase) *FeedHandler {
	return &FeedHandler{uc: uc}
}

// ── Inventario ──────────────────────────────────────────────────────────────

// CreateItem POST /api/feed/inventory
func (h *FeedHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateFeedInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateItem(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetItem GET /api/feed/inventory/:id
func (h *FeedHandler) GetItem(c *fiber.Ctx) error {
	out, err := h.uc.GetItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateItem PUT /api/feed/inventory/:id
func (h *FeedHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateFeedInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateItem(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteItem DELETE /api/feed/inventory/:id
func (h *FeedHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.uc.DeleteItem(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return deleted(c)
}

// ListItems godoc
// @Summary      Listar inventario de alimento
// @Tags         feed
// @Security     Bearer
// @Produce      json
// @Param        low_stock  query  bool  false  "solo ítems en o bajo el punto de reorden"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/feed/inventory [get]
func (h *FeedHandler) ListItems(c *fiber.Ctx) error {
	lowStock := c.QueryBool("low_stock", false) || c.QueryBool("lowStock", false)
	out, err := h.uc.ListItems(c.UserContext(), lowStock, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// ── Compras ─────────────────────────────────────────────────────────────────

// RecordPurchase godoc
// @Summary      Registrar compra de alimento
// @Description  Inserta la compra y suma la cantidad al stock en una sola transacción.
// @Tags         feed
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFeedPurchaseRequest  true  "inventory_id, supplier_id, quantity, price_per_bag"
// @Success      201   {object}  dto.FeedPurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/feed/purchases [post]
func (h *FeedHandler) RecordPurchase(c *fiber.Ctx) error {
	var in dto.CreateFeedPurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RecordPurchase(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdatePurchase godoc
// @Summary      Editar compra de alimento
// @Description  Aplica al stock la diferencia entre la cantidad nueva y la anterior.
// @Tags         feed
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateFeedPurchaseRequest  true  "id obligatorio"
// @Success      200   {object}  dto.FeedPurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/feed/purchases [put]
func (h *FeedHandler) UpdatePurchase(c *fiber.Ctx) error {
	var in dto.UpdateFeedPurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdatePurchase(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeletePurchase godoc
// @Summary      Eliminar compra de alimento
// @Description  Revierte la cantidad del stock; falla si el stock quedaría negativo.
// @Tags         feed
// @Security     Bearer
// @Param        id  query  string  true  "ID de la compra"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/feed/purchases [delete]
func (h *FeedHandler) DeletePurchase(c *fiber.Ctx) error {
	id := queryAlias(c, "id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.DeletePurchase(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return deleted(c)
}

// ListPurchases GET /api/feed/purchases?inventory_id=&supplier_id=&start_date=&end_date=
func (h *FeedHandler) ListPurchases(c *fiber.Ctx) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListPurchases(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// ── Consumo ─────────────────────────────────────────────────────────────────

// RecordConsumption godoc
// @Summary      Registrar consumo de alimento
// @Description  Descuenta el stock; 400 INSUFFICIENT_STOCK si no alcanza.
// @Tags         feed
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFeedConsumptionRequest  true  "inventory_id, quantity_bags, flock_id o batch_id"
// @Success      201   {object}  dto.FeedConsumptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/feed/consumption [post]
func (h *FeedHandler) RecordConsumption(c *fiber.Ctx) error {
	var in dto.CreateFeedConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RecordConsumption(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteConsumption DELETE /api/feed/consumption?id=
func (h *FeedHandler) DeleteConsumption(c *fiber.Ctx) error {
	id := queryAlias(c, "id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.DeleteConsumption(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return deleted(c)
}

// ListConsumption GET /api/feed/consumption?flock_id=&batch_id=&start_date=&end_date=
func (h *FeedHandler) ListConsumption(c *fiber.Ctx) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListConsumption(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}
