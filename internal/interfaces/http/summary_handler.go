package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Acopio-api/internal/application/dto"
	"github.com/jhoicas/Acopio-api/internal/application/usecase"
)

// SummaryHandler maneja los cierres de jornada (protegido).
type SummaryHandler struct {
	uc *usecase.SummaryUseCase
}

// NewSummaryHandler construye el handler.
func NewSummaryHandler(uc *usecase.SummaryUseCase) *SummaryHandler {
	return &SummaryHandler{uc: uc}
}

// anchorFrom lee el ancla opcional (?at=RFC3339) y la hora de corte opcional
// (?start_hour). Sin ancla, la jornada es la que contiene al instante actual;
// sin hora de corte se pasa -1 y el caso de uso aplica la configurada (0 es
// medianoche válida, no ausencia). Si el ancla no parsea, escribe el 400 y
// devuelve ok=false.
func anchorFrom(c *fiber.Ctx) (anchor *time.Time, startHour int, ok bool) {
	if at := c.Query("at"); at != "" {
		t, err := time.Parse(time.RFC3339, at)
		if err != nil {
			_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "at debe ser RFC3339"})
			return nil, 0, false
		}
		anchor = &t
	}
	return anchor, c.QueryInt("start_hour", -1), true
}

// Create godoc
// @Summary      Cerrar la jornada actual de un acopio
// @Tags         summaries
// @Security     Bearer
// @Produce      json
// @Param        depotId     path   string  true   "ID del acopio"
// @Param        at          query  string  false  "Ancla RFC3339 (defecto: ahora)"
// @Param        start_hour  query  int     false  "Hora de corte (defecto: 6)"
// @Success      201  {object}  dto.DailySummaryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/summaries/depot/{depotId}/today [post]
func (h *SummaryHandler) Create(c *fiber.Ctx) error {
	depotID := c.Params("depotId")
	if depotID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "depotId es requerido"})
	}
	anchor, startHour, ok := anchorFrom(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Create(c.Context(), GetCaller(c), depotID, anchor, startHour)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Consultar el cierre de la jornada actual (solo lectura)
// @Tags         summaries
// @Security     Bearer
// @Produce      json
// @Param        depotId     path   string  true   "ID del acopio"
// @Param        at          query  string  false  "Ancla RFC3339 (defecto: ahora)"
// @Param        start_hour  query  int     false  "Hora de corte (defecto: 6)"
// @Success      200  {object}  dto.DailySummaryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/summaries/depot/{depotId}/today [get]
func (h *SummaryHandler) Get(c *fiber.Ctx) error {
	depotID := c.Params("depotId")
	if depotID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "depotId es requerido"})
	}
	anchor, startHour, ok := anchorFrom(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Get(GetCaller(c), depotID, anchor, startHour)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Anular un cierre dentro de la ventana de gracia
// @Tags         summaries
// @Security     Bearer
// @Param        depotId  path  string  true  "ID del acopio"
// @Param        id       path  string  true  "ID del resumen"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/summaries/depot/{depotId}/{id} [delete]
func (h *SummaryHandler) Delete(c *fiber.Ctx) error {
	depotID := c.Params("depotId")
	if depotID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "depotId es requerido"})
	}
	if err := h.uc.Delete(GetCaller(c), depotID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar cierres de un acopio
// @Tags         summaries
// @Security     Bearer
// @Produce      json
// @Param        depotId  path   string  true   "ID del acopio"
// @Param        page     query  int     false  "Página"  default(1)
// @Param        limit    query  int     false  "Límite"  default(10)
// @Success      200  {object}  dto.DailySummaryListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/summaries/depot/{depotId} [get]
func (h *SummaryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListByDepot(GetCaller(c), c.Params("depotId"), pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListAll godoc
// @Summary      Listar cierres de todos los acopios (admin)
// @Tags         summaries
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"  default(1)
// @Param        limit  query  int  false  "Límite"  default(10)
// @Success      200  {object}  dto.DailySummaryListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/summaries/all [get]
func (h *SummaryHandler) ListAll(c *fiber.Ctx) error {
	out, err := h.uc.ListAllForAdmin(pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByDate godoc
// @Summary      Listar cierres creados en una fecha calendario (admin)
// @Tags         summaries
// @Security     Bearer
// @Produce      json
// @Param        date   path   string  true   "Fecha YYYY-MM-DD"
// @Param        page   query  int     false  "Página"  default(1)
// @Param        limit  query  int     false  "Límite"  default(10)
// @Success      200  {object}  dto.DailySummaryListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/summaries/date/{date} [get]
func (h *SummaryHandler) ListByDate(c *fiber.Ctx) error {
	date, err := time.Parse("2006-01-02", c.Params("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date debe ser YYYY-MM-DD"})
	}
	out, err := h.uc.ListByDateForAdmin(date, pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
