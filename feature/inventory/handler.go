package inventory

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/url"

	"farm-manager/core/ledger"
	"farm-manager/core/logger"
	"farm-manager/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the inventory.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// AdjustRequest is the body of a manual stock adjustment.
type AdjustRequest struct {
	// Delta is a signed decimal, e.g. "20" for a delivery or "-1.5" for a write-off.
	Delta any `json:"delta"`
}

// parseAdjustRequest keeps numeric deltas as json.Number so they reach the
// ledger without a float64 round trip.
func parseAdjustRequest(body []byte) (AdjustRequest, error) {
	var req AdjustRequest
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	err := dec.Decode(&req)
	return req, err
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/inventory")
	group.Get("/", h.HandleList)
	group.Post("/snapshot", h.HandleExportSnapshot)
	group.Get("/snapshot/latest", h.HandleLatestSnapshot)
	group.Get("/:name", h.HandleGet)
	group.Post("/:name/adjust", h.HandleAdjust)
}

// HandleList returns every product.
// @Summary List Products
// @Description Lists every product with its quantity on hand.
// @Tags inventory
// @Produce json
// @Success 200 {array} ledger.Product "Products"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	products, err := h.service.List(c.Context())
	if err != nil {
		l.Error("Inventory listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(products)
}

// HandleGet returns a single product.
// @Summary Get Product
// @Tags inventory
// @Produce json
// @Param name path string true "Product name (e.g. 'Motor Oil')"
// @Success 200 {object} ledger.Product "Product"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /inventory/{name} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	name, err := productName(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	product, err := h.service.Get(c.Context(), name)
	if err != nil {
		return h.ledgerError(c, err)
	}
	return c.JSON(product)
}

// HandleAdjust books a delivery or a write-off.
// @Summary Adjust Stock
// @Description Adds a signed delta to a product outside of maintenance events. The drift audit baseline moves with it.
// @Tags inventory
// @Accept json
// @Produce json
// @Param name path string true "Product name"
// @Param adjustment body AdjustRequest true "Signed delta"
// @Success 200 {object} ledger.Product "Updated product"
// @Failure 400 {object} map[string]string "Invalid delta"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]string "Insufficient stock"
// @Router /inventory/{name}/adjust [post]
func (h *Handler) HandleAdjust(c *fiber.Ctx) error {
	name, err := productName(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	req, err := parseAdjustRequest(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	delta, ok := utils.ToDecimal(req.Delta)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "delta must be a number"})
	}

	product, err := h.service.Adjust(c.Context(), name, delta)
	if err != nil {
		return h.ledgerError(c, err)
	}
	return c.JSON(product)
}

// HandleExportSnapshot writes the current stock to storage.
// @Summary Export Stock Snapshot
// @Description Uploads the current stock as JSON to the snapshot prefix of the bucket and prunes old snapshots.
// @Tags inventory
// @Produce json
// @Success 201 {object} SnapshotInfo "Snapshot written"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/snapshot [post]
func (h *Handler) HandleExportSnapshot(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	info, err := h.service.ExportSnapshot(c.Context())
	if err != nil {
		l.Error("Snapshot export failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(info)
}

// HandleLatestSnapshot returns the newest stored snapshot.
// @Summary Latest Stock Snapshot
// @Tags inventory
// @Produce json
// @Success 200 {object} StockSnapshot "Snapshot"
// @Failure 404 {object} map[string]string "No snapshot yet"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/snapshot/latest [get]
func (h *Handler) HandleLatestSnapshot(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	snap, err := h.service.LatestSnapshot(c.Context())
	if err != nil {
		if errors.Is(err, ErrNoSnapshot) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Snapshot download failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(snap)
}

func (h *Handler) ledgerError(c *fiber.Ctx, err error) error {
	var stockErr *ledger.InsufficientStockError
	switch {
	case errors.Is(err, ledger.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &stockErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":     err.Error(),
			"current":   stockErr.Current,
			"requested": stockErr.Requested,
		})
	}
	logger.WithRayID(h.service.logger, c).Error("Inventory operation failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

// productName decodes the path segment; product names contain spaces.
func productName(c *fiber.Ctx) (string, error) {
	return url.PathUnescape(c.Params("name"))
}
