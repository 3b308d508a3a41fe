package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// AlertHandler maneja las alertas derivadas (protegido).
type AlertHandler struct {
	alerts  *inventory.AlertUseCase
	queries *inventory.QueryUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(alerts *inventory.AlertUseCase, queries *inventory.QueryUseCase) *AlertHandler {
	return &AlertHandler{alerts: alerts, queries: queries}
}

// List godoc
// @Summary      Listar alertas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  string  false  "Filtrar por artículo"
// @Param        status   query  string  false  "active, resolved, ignored"
// @Param        type     query  string  false  "low_stock, overstock, expiring"
// @Param        limit    query  int     false  "Límite"   default(20)
// @Param        offset   query  int     false  "Offset"   default(0)
// @Success      200      {array}  dto.AlertResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	filter := repository.AlertFilter{
		ItemID: c.Query("item_id"),
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	alerts, err := h.alerts.List(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.NewAlertResponses(alerts))
}

// ActiveByItem godoc
// @Summary      Alertas activas de un artículo
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del artículo"
// @Success      200  {array}  dto.AlertResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/alerts [get]
func (h *AlertHandler) ActiveByItem(c *fiber.Ctx) error {
	itemID := c.Params("id")
	if itemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	alerts, err := h.queries.ActiveAlerts(itemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.NewAlertResponses(alerts))
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una alerta
// @Description  Transiciones explícitas: active → resolved | ignored. El motor
//
//	nunca resuelve alertas por sí mismo.
//
// @Tags         alerts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la alerta"
// @Param        body  body  dto.UpdateAlertStatusRequest  true  "status"
// @Success      200   {object}  dto.AlertResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/alerts/{id} [put]
func (h *AlertHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateAlertStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	alert, err := h.alerts.UpdateStatus(c.Context(), id, in.Status, GetUsername(c))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status debe ser active, resolved o ignored"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "alerta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.NewAlertResponse(alert))
}

// EvaluateItem godoc
// @Summary      Reevaluar las reglas de alerta de un artículo
// @Description  Fuerza una pasada del motor contra el estado actual. Útil tras
//
//	cambiar umbrales sin registrar movimientos.
//
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del artículo"
// @Success      200  {array}  dto.AlertResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/alerts/evaluate [post]
func (h *AlertHandler) EvaluateItem(c *fiber.Ctx) error {
	itemID := c.Params("id")
	if itemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	alerts, err := h.alerts.EvaluateItem(c.Context(), itemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.NewAlertResponses(alerts))
}
