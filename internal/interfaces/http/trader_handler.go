package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Acopio-api/internal/application/dto"
	"github.com/jhoicas/Acopio-api/internal/application/usecase"
)

// TraderHandler maneja los comerciantes registrados por acopio (protegido).
type TraderHandler struct {
	uc *usecase.TraderUseCase
}

// NewTraderHandler construye el handler.
func NewTraderHandler(uc *usecase.TraderUseCase) *TraderHandler {
	return &TraderHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar comerciante
// @Tags         traders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTraderRequest  true  "name, phone"
// @Success      201   {object}  dto.TraderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/traders [post]
func (h *TraderHandler) Create(c *fiber.Ctx) error {
	depotID := GetUserID(c)
	if depotID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "user_id requerido"})
	}
	var in dto.CreateTraderRequest
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
// @Summary      Obtener comerciante por ID
// @Tags         traders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del comerciante"
// @Success      200  {object}  dto.TraderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/traders/{id} [get]
func (h *TraderHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar comerciantes activos de un acopio
// @Tags         traders
// @Security     Bearer
// @Produce      json
// @Param        depotId  path  string  true  "ID del acopio"
// @Success      200  {object}  dto.TraderListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/traders/depot/{depotId} [get]
func (h *TraderHandler) List(c *fiber.Ctx) error {
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
// @Summary      Actualizar nombre o contacto de un comerciante
// @Tags         traders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del comerciante"
// @Param        body  body  dto.UpdateTraderRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.TraderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/traders/{id} [put]
func (h *TraderHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateTraderRequest
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
// @Summary      Retirar un comerciante
// @Tags         traders
// @Security     Bearer
// @Param        id  path  string  true  "ID del comerciante"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/traders/{id} [delete]
func (h *TraderHandler) Delete(c *fiber.Ctx) error {
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
// @Summary      Comerciantes activos de todos los acopios (admin)
// @Tags         traders
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TradersByDepotResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/traders/all/by-depot [get]
func (h *TraderHandler) ListGrouped(c *fiber.Ctx) error {
	out, err := h.uc.ListGroupedByDepots()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
