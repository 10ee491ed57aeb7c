package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Granja-api/internal/application/dto"
	"github.com/jhoicas/Granja-api/internal/application/production"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

// ProductionHandler parvadas, lotes, registros de producción y FCR.
type ProductionHandler struct {
	flocks    *production.FlockUseCase
	batches   *production.BatchUseCase
	mortality *production.MortalityUseCase
	eggs      *production.EggUseCase
	weights   *production.WeightUseCase
	health    *production.HealthUseCase
	fcr       *production.FCRUseCase
}

// ProductionUseCases agrupa los casos de uso que atiende el handler.
type ProductionUseCases struct {
	Flocks    *production.FlockUseCase
	Batches   *production.BatchUseCase
	Mortality *production.MortalityUseCase
	Eggs      *production.EggUseCase
	Weights   *production.WeightUseCase
	Health    *production.HealthUseCase
	FCR       *production.FCRUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc ProductionUseCases) *ProductionHandler {
	return &ProductionHandler{
		flocks:    uc.Flocks,
		batches:   uc.Batches,
		mortality: uc.Mortality,
		eggs:      uc.Eggs,
		weights:   uc.Weights,
		health:    uc.Health,
		fcr:       uc.FCR,
	}
}

// ── Parvadas ────────────────────────────────────────────────────────────────

// CreateFlock POST /api/flocks
func (h *ProductionHandler) CreateFlock(c *fiber.Ctx) error {
	var in dto.CreateFlockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.flocks.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetFlock GET /api/flocks/:id
func (h *ProductionHandler) GetFlock(c *fiber.Ctx) error {
	out, err := h.flocks.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateFlock PUT /api/flocks/:id
func (h *ProductionHandler) UpdateFlock(c *fiber.Ctx) error {
	var in dto.UpdateFlockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.flocks.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteFlock DELETE /api/flocks/:id
func (h *ProductionHandler) DeleteFlock(c *fiber.Ctx) error {
	if err := h.flocks.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return deleted(c)
}

// ListFlocks GET /api/flocks?status=
func (h *ProductionHandler) ListFlocks(c *fiber.Ctx) error {
	return listFiltered(c, h.flocks.List)
}

// ── Lotes ───────────────────────────────────────────────────────────────────

// CreateBatch POST /api/batches
func (h *ProductionHandler) CreateBatch(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.batches.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetBatch GET /api/batches/:id
func (h *ProductionHandler) GetBatch(c *fiber.Ctx) error {
	out, err := h.batches.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateBatch PUT /api/batches/:id
func (h *ProductionHandler) UpdateBatch(c *fiber.Ctx) error {
	var in dto.UpdateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.batches.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteBatch DELETE /api/batches/:id
func (h *ProductionHandler) DeleteBatch(c *fiber.Ctx) error {
	if err := h.batches.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return deleted(c)
}

// ListBatches GET /api/batches?flock_id=&status=
func (h *ProductionHandler) ListBatches(c *fiber.Ctx) error {
	return listFiltered(c, h.batches.List)
}

// ── Mortalidad ──────────────────────────────────────────────────────────────

// RecordMortality godoc
// @Summary      Registrar mortalidad
// @Description  Descuenta las aves de la parvada o lote en la misma transacción.
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMortalityRequest  true  "flock_id o batch_id, count"
// @Success      201   {object}  dto.MortalityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/mortality [post]
func (h *ProductionHandler) RecordMortality(c *fiber.Ctx) error {
	var in dto.CreateMortalityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.mortality.Record(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteMortality DELETE /api/mortality?id=
func (h *ProductionHandler) DeleteMortality(c *fiber.Ctx) error {
	return deleteByQuery(c, h.mortality.Delete)
}

// ListMortality GET /api/mortality?flock_id=&batch_id=&start_date=&end_date=
func (h *ProductionHandler) ListMortality(c *fiber.Ctx) error {
	return listFiltered(c, h.mortality.List)
}

// ── Huevos, pesajes y sanidad ───────────────────────────────────────────────

// RecordEggs POST /api/egg-collection
func (h *ProductionHandler) RecordEggs(c *fiber.Ctx) error {
	var in dto.CreateEggCollectionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.eggs.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteEggs DELETE /api/egg-collection?id=
func (h *ProductionHandler) DeleteEggs(c *fiber.Ctx) error {
	return deleteByQuery(c, h.eggs.Delete)
}

// ListEggs GET /api/egg-collection
func (h *ProductionHandler) ListEggs(c *fiber.Ctx) error {
	return listFiltered(c, h.eggs.List)
}

// RecordWeight POST /api/weight-tracking
func (h *ProductionHandler) RecordWeight(c *fiber.Ctx) error {
	var in dto.CreateWeightRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.weights.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteWeight DELETE /api/weight-tracking?id=
func (h *ProductionHandler) DeleteWeight(c *fiber.Ctx) error {
	return deleteByQuery(c, h.weights.Delete)
}

// ListWeights GET /api/weight-tracking?batch_id=
func (h *ProductionHandler) ListWeights(c *fiber.Ctx) error {
	return listFiltered(c, h.weights.List)
}

// RecordHealth POST /api/health/records
func (h *ProductionHandler) RecordHealth(c *fiber.Ctx) error {
	var in dto.CreateHealthRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.health.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteHealth DELETE /api/health/records?id=
func (h *ProductionHandler) DeleteHealth(c *fiber.Ctx) error {
	return deleteByQuery(c, h.health.Delete)
}

// ListHealth GET /api/health/records?type=
func (h *ProductionHandler) ListHealth(c *fiber.Ctx) error {
	return listFiltered(c, h.health.List)
}

// ── FCR ─────────────────────────────────────────────────────────────────────

// GetFCR godoc
// @Summary      Índice de conversión alimenticia de un lote
// @Description  Sin pesajes o consumo responde con fcr "0" y performance "Not enough data".
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        batch_id    query  string  true   "ID del lote (alias batchId)"
// @Param        population  query  string  false  "current (defecto) | historical"
// @Success      200  {object}  dto.FCRResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fcr [get]
func (h *ProductionHandler) GetFCR(c *fiber.Ctx) error {
	out, err := h.fcr.Calculate(c.UserContext(), queryAlias(c, "batch_id", "batchId"), queryAlias(c, "population"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ── Helpers ─────────────────────────────────────────────────────────────────

func listFiltered[T any](c *fiber.Ctx, list func(context.Context, repository.Filter) ([]T, error)) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := list(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

func deleteByQuery(c *fiber.Ctx, del func(context.Context, string) error) error {
	id := queryAlias(c, "id")
	if id == "" {
		return missingID(c)
	}
	if err := del(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return deleted(c)
}
