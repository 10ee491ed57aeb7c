package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Granja-api/internal/application/dto"
	"github.com/jhoicas/Granja-api/internal/application/inventory"
)

// InventoryHandler inventario general: ítems, libro de movimientos, órdenes de compra y reposición.
type InventoryHandler struct {
	items         *inventory.ItemUseCase
	movements     *inventory.RegisterMovementUseCase
	orders        *inventory.PurchaseOrderUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	items *inventory.ItemUseCase,
	movements *inventory.RegisterMovementUseCase,
	orders *inventory.PurchaseOrderUseCase,
	replenishment *inventory.ReplenishmentUseCase,
) *InventoryHandler {
	return &InventoryHandler{items: items, movements: movements, orders: orders, replenishment: replenishment}
}

// ── Ítems ───────────────────────────────────────────────────────────────────

// CreateItem POST /api/inventory/items
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateInventoryItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.items.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetItem GET /api/inventory/items/:id
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	out, err := h.items.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateItem PUT /api/inventory/items/:id
func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateInventoryItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.items.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteItem DELETE /api/inventory/items/:id
func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.items.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return deleted(c)
}

// ListItems GET /api/inventory/items?category=&supplier_id=
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.items.List(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// ── Movimientos ─────────────────────────────────────────────────────────────

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  Ajuste manual con fila en el libro; falla si el stock resultante es negativo.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockMovementRequest  true  "item_id, type, quantity"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.CreateStockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.movements.RegisterMovementFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteMovement DELETE /api/inventory/stock-movements?id=
func (h *InventoryHandler) DeleteMovement(c *fiber.Ctx) error {
	id := queryAlias(c, "id")
	if id == "" {
		return missingID(c)
	}
	if err := h.movements.DeleteMovement(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return deleted(c)
}

// ListMovements GET /api/inventory/stock-movements?item_id=&type=
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.movements.ListMovements(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, inventory.ToMovementResponse(m))
	}
	return c.JSON(dto.NewList(out))
}

// ── Órdenes de compra ───────────────────────────────────────────────────────

// CreateOrder POST /api/inventory/purchase-orders
func (h *InventoryHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orders.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateOrderStatus godoc
// @Summary      Cambiar estado de orden de compra
// @Description  Al pasar a received suma cada línea al stock y escribe el libro, todo en una transacción.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdatePurchaseOrderStatusRequest  true  "id, status"
// @Success      200   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/purchase-orders [put]
func (h *InventoryHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	var in dto.UpdatePurchaseOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orders.UpdateStatus(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteOrder DELETE /api/inventory/purchase-orders?id=
func (h *InventoryHandler) DeleteOrder(c *fiber.Ctx) error {
	id := queryAlias(c, "id")
	if id == "" {
		return missingID(c)
	}
	if err := h.orders.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return deleted(c)
}

// GetOrder GET /api/inventory/purchase-orders/:id
func (h *InventoryHandler) GetOrder(c *fiber.Ctx) error {
	out, err := h.orders.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListOrders GET /api/inventory/purchase-orders?status=&supplier_id=
func (h *InventoryHandler) ListOrders(c *fiber.Ctx) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.orders.List(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// GetLowStock godoc
// @Summary      Lista de reposición
// @Description  Ítems de alimento e inventario general en o bajo el punto de reorden,
//
//	con la cantidad sugerida de pedido.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) GetLowStock(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateLowStockList(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(list))
}
