package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tedytech/backoffice-service/internal/api/dto"
	"github.com/tedytech/backoffice-service/internal/domain"
	"github.com/tedytech/backoffice-service/internal/service"
	apperrors "github.com/tedytech/backoffice-service/pkg/util"
)

// DemandHandler serves demand metrics and demand-event ingestion.
type DemandHandler struct {
	demand *service.DemandService
}

// NewDemandHandler constructs handler.
func NewDemandHandler(demand *service.DemandService) *DemandHandler {
	return &DemandHandler{demand: demand}
}

// Metrics GET /metrics/demand.
func (h *DemandHandler) Metrics(c *fiber.Ctx) error {
	snapshot, err := h.demand.DemandMetrics(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": snapshot})
}

// LogEvent POST /demand/events.
func (h *DemandHandler) LogEvent(c *fiber.Ctx) error {
	var req dto.LogDemandEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	id, err := h.demand.LogDemandEvent(c.UserContext(), time.Now(), service.LogDemandEventInput{
		Source:    domain.DemandSource(req.Source),
		PhoneType: req.PhoneType,
		UserID:    req.UserID,
		ThreadID:  req.ThreadID,
		Meta:      req.Meta,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.LogDemandEventResponse{ID: id}})
}
