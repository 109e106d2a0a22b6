package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Acopio-api/internal/application/dto"
	"github.com/jhoicas/Acopio-api/internal/application/usecase"
)

// CommodityTypeHandler maneja el catálogo de tipos de producto (protegido).
type CommodityTypeHandler struct {
	uc *usecase.CommodityTypeUseCase
}

// NewCommodityTypeHandler construye el handler.
func NewCommodityTypeHandler(uc *usecase.CommodityTypeUseCase) *CommodityTypeHandler {
	return &CommodityTypeHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tipo de producto
// @Tags         commodity-types
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCommodityTypeRequest  true  "name, price_per_kg"
// @Success      201   {object}  dto.CommodityTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/commodity-types [post]
func (h *CommodityTypeHandler) Create(c *fiber.Ctx) error {
	depotID := GetUserID(c)
	if depotID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "user_id requerido"})
	}
	var in dto.CreateCommodityTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(depotID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener tipo de producto por ID
// @Tags         commodity-types
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del tipo"
// @Success      200  {object}  dto.CommodityTypeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/commodity-types/{id} [get]
func (h *CommodityTypeHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(GetCaller(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar tipos activos de un acopio
// @Tags         commodity-types
// @Security     Bearer
// @Produce      json
// @Param        depotId  path  string  true  "ID del acopio"
// @Success      200  {object}  dto.CommodityTypeListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/commodity-types/depot/{depotId} [get]
func (h *CommodityTypeHandler) List(c *fiber.Ctx) error {
	depotID := c.Params("depotId")
	if depotID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "depotId es requerido"})
	}
	out, err := h.uc.List(GetCaller(c), depotID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Renombrar o reajustar precio de un tipo
// @Tags         commodity-types
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del tipo"
// @Param        body  body  dto.UpdateCommodityTypeRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.CommodityTypeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/commodity-types/{id} [put]
func (h *CommodityTypeHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateCommodityTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetCaller(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Retirar un tipo de producto
// @Tags         commodity-types
// @Security     Bearer
// @Param        id  path  string  true  "ID del tipo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/commodity-types/{id} [delete]
func (h *CommodityTypeHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(GetCaller(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListGrouped godoc
// @Summary      Tipos activos de todos los acopios (admin)
// @Tags         commodity-types
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CommodityTypesByDepotResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/commodity-types/all/by-depot [get]
func (h *CommodityTypeHandler) ListGrouped(c *fiber.Ctx) error {
	out, err := h.uc.ListGroupedByDepots()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
