package maintenance

import (
	"errors"
	"strconv"

	"farm-manager/core/logger"
	"farm-manager/feature/maintenance/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for maintenance events.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the maintenance routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/maintenance")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleCreate)
	group.Get("/:id", h.HandleGet)
	group.Patch("/:id", h.HandleUpdate)
	group.Delete("/:id", h.HandleDelete)
}

// HandleCreate records a maintenance event.
// @Summary Create Maintenance Event
// @Description Records a maintenance event and consumes its supplies from stock. The stock report lists every adjustment that failed.
// @Tags maintenance
// @Accept json
// @Produce json
// @Param event body map[string]interface{} true "Flat event payload (machine_id, type, description, performed_at, supply fields)"
// @Success 201 {object} models.Result "Saved event and stock report"
// @Failure 400 {object} map[string]string "Invalid payload"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /maintenance [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	in, err := ParseInput(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.service.Create(c.Context(), in)
	if err != nil {
		return h.fail(c, l, "Maintenance event create failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// HandleUpdate edits a maintenance event.
// @Summary Update Maintenance Event
// @Description Partially updates a maintenance event. Supply fields that are left out keep their stored value. Stock moves by the net difference.
// @Tags maintenance
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param event body map[string]interface{} true "Fields to change"
// @Success 200 {object} models.Result "Saved event and stock report"
// @Failure 400 {object} map[string]string "Invalid payload"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /maintenance/{id} [patch]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	in, err := ParseInput(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.service.Update(c.Context(), id, in)
	if err != nil {
		return h.fail(c, l, "Maintenance event update failed", err)
	}

	return c.JSON(result)
}

// HandleDelete removes a maintenance event.
// @Summary Delete Maintenance Event
// @Description Deletes a maintenance event. Stock is only returned when restock on delete is enabled.
// @Tags maintenance
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} models.Result "Deleted event and stock report"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /maintenance/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.service.Delete(c.Context(), id)
	if err != nil {
		return h.fail(c, l, "Maintenance event delete failed", err)
	}

	return c.JSON(result)
}

// HandleGet returns a single maintenance event.
// @Summary Get Maintenance Event
// @Tags maintenance
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} models.MaintenanceEvent "Event"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /maintenance/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ev, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.fail(c, l, "Maintenance event lookup failed", err)
	}

	return c.JSON(ev)
}

// HandleList lists maintenance events.
// @Summary List Maintenance Events
// @Description Lists maintenance events, newest first.
// @Tags maintenance
// @Produce json
// @Param machine_id query int false "Only events of this machine"
// @Param type query string false "Only events of this type"
// @Param limit query int false "Maximum number of events"
// @Success 200 {array} models.MaintenanceEvent "Events"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /maintenance [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	filter := models.ListFilter{
		MachineID: uint(c.QueryInt("machine_id", 0)),
		Type:      c.Query("type"),
		Limit:     c.QueryInt("limit", 0),
	}

	events, err := h.service.List(c.Context(), filter)
	if err != nil {
		return h.fail(c, l, "Maintenance event listing failed", err)
	}

	return c.JSON(events)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	switch {
	case errors.Is(err, ErrInvalidEvent):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrEventNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	l.Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid event id")
	}
	return uint(id), nil
}
