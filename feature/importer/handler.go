package importer

import (
	"meet-importer/core/errors"
	"meet-importer/core/logger"
	"meet-importer/feature/ledger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for import runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the import routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/imports")
	group.Post("/", h.HandleCreateImport)
	group.Get("/", h.HandleListImports)
	group.Get("/:id", h.HandleGetImport)
}

// HandleCreateImport runs an import of a legacy source.
// @Summary Run Import
// @Description Import a legacy meet database, or plan the import when dry_run is set.
// @Tags imports
// @Accept json
// @Produce json
// @Param request body Request true "Import request"
// @Success 200 {object} Report "Import report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} Report "Import aborted"
// @Router /imports [post]
func (h *Handler) HandleCreateImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if req.Source == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "source is required",
		})
	}

	report, err := h.service.Run(c.Context(), req)
	if err != nil {
		l.Error("Import failed", zap.String("run_id", report.ID), zap.Error(err))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(report)
	}

	return c.JSON(report)
}

// HandleListImports lists recorded import runs.
// @Summary List Imports
// @Tags imports
// @Produce json
// @Param limit query int false "Maximum number of runs"
// @Success 200 {array} ledger.Run "Recorded runs"
// @Router /imports [get]
func (h *Handler) HandleListImports(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	runs, err := h.service.Runs(c.Context(), c.QueryInt("limit", ledger.DefaultListLimit))
	if err != nil {
		l.Error("Failed to list import runs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if runs == nil {
		runs = []ledger.Run{}
	}

	return c.JSON(runs)
}

// HandleGetImport returns one recorded import run with its phases and issues.
// @Summary Get Import
// @Tags imports
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} ledger.Run "Recorded run"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /imports/{id} [get]
func (h *Handler) HandleGetImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	run, err := h.service.GetRun(c.Context(), c.Params("id"))
	if errors.Is(err, ledger.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		l.Error("Failed to get import run", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(run)
}
