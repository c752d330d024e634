package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tedytech/backoffice-service/internal/api/dto"
	"github.com/tedytech/backoffice-service/internal/domain"
	"github.com/tedytech/backoffice-service/internal/service"
	apperrors "github.com/tedytech/backoffice-service/pkg/util"
)

// MetricsHandler serves the home dashboard metrics and the engagement
// classifier.
type MetricsHandler struct {
	metrics *service.MetricsService
}

// NewMetricsHandler constructs handler.
func NewMetricsHandler(metrics *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Home GET /metrics/home.
func (h *MetricsHandler) Home(c *fiber.Ctx) error {
	snapshot, err := h.metrics.HomeMetrics(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": snapshot})
}

// Classify POST /metrics/classify.
func (h *MetricsHandler) Classify(c *fiber.Ctx) error {
	var req dto.ClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CreatedAt <= 0 {
		return apperrors.NewValidationError("createdAt required", nil)
	}

	signals := domain.EngagementSignals{
		CreatedAt:           time.UnixMilli(req.CreatedAt),
		HasBudgetKeyword:    req.HasBudgetKeyword,
		PriorityValueETB:    req.PriorityValueETB,
		ClickedContinue:     req.ClickedContinue,
		HasCustomerMessaged: req.HasCustomerMessaged,
		HasAdminReplied:     req.HasAdminReplied,
	}
	if req.LastCustomerMessageAt != nil {
		at := time.UnixMilli(*req.LastCustomerMessageAt)
		signals.LastCustomerMessageAt = &at
	}

	tier := domain.ClassifyEngagement(time.Now(), signals)
	return c.JSON(fiber.Map{"data": dto.ClassifyResponse{Category: string(tier)}})
}
