package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Acopio-api/internal/application/dto"
	"github.com/jhoicas/Acopio-api/internal/application/usecase"
)

// PurchaseHandler maneja el libro de compras (protegido).
type PurchaseHandler struct {
	uc *usecase.PurchaseUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *usecase.PurchaseUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// pageFrom lee page y limit de la query string.
func pageFrom(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Page: c.QueryInt("page", 1), Limit: c.QueryInt("limit", 10)}
	p.DefaultPage()
	return p
}

// depotParam lee el :depotId de la ruta. Si falta, escribe el 400 y devuelve
// ok=false. La autorización sobre el acopio la impone el caso de uso, no la
// capa de transporte.
func depotParam(c *fiber.Ctx) (string, bool) {
	depotID := c.Params("depotId")
	if depotID == "" {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "depotId es requerido"})
		return "", false
	}
	return depotID, true
}

// Create godoc
// @Summary      Registrar compra
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        depotId  path  string  true  "ID del acopio"
// @Param        body     body  dto.CreatePurchaseRequest  true  "trader_id, items"
// @Success      201  {object}  dto.PurchaseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/depot/{depotId} [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	depotID, ok := depotParam(c)
	if !ok {
		return nil
	}
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetCaller(c), depotID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener compra por ID
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        depotId  path  string  true  "ID del acopio"
// @Param        id       path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/depot/{depotId}/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	depotID, ok := depotParam(c)
	if !ok {
		return nil
	}
	out, err := h.uc.GetByID(GetCaller(c), depotID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Corregir compra (reemplaza comerciante y líneas)
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        depotId  path  string  true  "ID del acopio"
// @Param        id       path  string  true  "ID de la compra"
// @Param        body     body  dto.UpdatePurchaseRequest  true  "trader_id, items"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/depot/{depotId}/{id} [put]
func (h *PurchaseHandler) Update(c *fiber.Ctx) error {
	depotID, ok := depotParam(c)
	if !ok {
		return nil
	}
	var in dto.UpdatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetCaller(c), depotID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar compra
// @Tags         purchases
// @Security     Bearer
// @Param        depotId  path  string  true  "ID del acopio"
// @Param        id       path  string  true  "ID de la compra"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/depot/{depotId}/{id} [delete]
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	depotID, ok := depotParam(c)
	if !ok {
		return nil
	}
	if err := h.uc.Delete(c.Context(), GetCaller(c), depotID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar compras de un acopio
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        depotId  path   string  true   "ID del acopio"
// @Param        page     query  int     false  "Página"  default(1)
// @Param        limit    query  int     false  "Límite"  default(10)
// @Success      200  {object}  dto.PurchaseListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/purchases/depot/{depotId} [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListByDepot(GetCaller(c), c.Params("depotId"), pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByTrader godoc
// @Summary      Listar compras de un acopio a un comerciante
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        depotId   path   string  true   "ID del acopio"
// @Param        traderId  path   string  true   "ID del comerciante"
// @Param        page      query  int     false  "Página"  default(1)
// @Param        limit     query  int     false  "Límite"  default(10)
// @Success      200  {object}  dto.PurchaseListResponse
// @Router       /api/purchases/depot/{depotId}/trader/{traderId} [get]
func (h *PurchaseHandler) ListByTrader(c *fiber.Ctx) error {
	out, err := h.uc.ListByTrader(GetCaller(c), c.Params("depotId"), c.Params("traderId"), pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByDate godoc
// @Summary      Listar compras de la jornada que contiene a una fecha
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        depotId  path   string  true   "ID del acopio"
// @Param        date     path   string  true   "Fecha YYYY-MM-DD"
// @Param        page     query  int     false  "Página"  default(1)
// @Param        limit    query  int     false  "Límite"  default(10)
// @Success      200  {object}  dto.PurchaseListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/purchases/depot/{depotId}/date/{date} [get]
func (h *PurchaseHandler) ListByDate(c *fiber.Ctx) error {
	date, err := time.Parse("2006-01-02", c.Params("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date debe ser YYYY-MM-DD"})
	}
	out, err := h.uc.ListByDate(GetCaller(c), c.Params("depotId"), date, pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByMonth godoc
// @Summary      Listar compras de un mes calendario
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        depotId  path   string  true  "ID del acopio"
// @Param        month    path   int     true  "Mes (1-12)"
// @Param        year     path   int     true  "Año"
// @Param        page     query  int     false "Página"  default(1)
// @Param        limit    query  int     false "Límite"  default(10)
// @Success      200  {object}  dto.PurchaseListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/purchases/depot/{depotId}/month/{month}/year/{year} [get]
func (h *PurchaseHandler) ListByMonth(c *fiber.Ctx) error {
	month, err := c.ParamsInt("month")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "month debe ser numérico"})
	}
	year, err := c.ParamsInt("year")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "year debe ser numérico"})
	}
	out, err := h.uc.ListByMonth(GetCaller(c), c.Params("depotId"), year, time.Month(month), pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByYear godoc
// @Summary      Listar compras de un año calendario
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        depotId  path   string  true  "ID del acopio"
// @Param        year     path   int     true  "Año"
// @Param        page     query  int     false "Página"  default(1)
// @Param        limit    query  int     false "Límite"  default(10)
// @Success      200  {object}  dto.PurchaseListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/purchases/depot/{depotId}/year/{year} [get]
func (h *PurchaseHandler) ListByYear(c *fiber.Ctx) error {
	year, err := c.ParamsInt("year")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "year debe ser numérico"})
	}
	out, err := h.uc.ListByYear(GetCaller(c), c.Params("depotId"), year, pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListGrouped godoc
// @Summary      Compras de todos los acopios agrupadas por acopio (admin)
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"  default(1)
// @Param        limit  query  int  false  "Límite"  default(10)
// @Success      200  {object}  dto.DepotPurchasesListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/purchases/all/by-depot [get]
func (h *PurchaseHandler) ListGrouped(c *fiber.Ctx) error {
	out, err := h.uc.ListGroupedByDepot(pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
