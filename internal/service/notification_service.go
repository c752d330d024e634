package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tedytech/backoffice-service/internal/config"
	"github.com/tedytech/backoffice-service/internal/events"
)

// NotificationService forwards domain events to the operator: structured
// logs always, an outbound webhook when one is configured.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
	client     *http.Client
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
		client:     &http.Client{Timeout: 5 * time.Second},
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAlertsEvaluated, n.handleAlertsEvaluated)
	n.dispatcher.Subscribe(events.EventDemandLogged, n.handleDemandLogged)
}

func (n *NotificationService) handleAlertsEvaluated(ctx context.Context, event events.Event) error {
	n.logger.Info("AlertsEvaluated", zap.Any("payload", event.Payload))
	n.sendWebhook(ctx, event)
	return nil
}

func (n *NotificationService) handleDemandLogged(ctx context.Context, event events.Event) error {
	n.logger.Debug("DemandLogged", zap.Any("payload", event.Payload))
	return nil
}

// sendWebhook posts the event to the configured endpoint. Delivery is
// best-effort with no retry; failures are logged and dropped.
func (n *NotificationService) sendWebhook(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn("webhook encode failed", zap.Error(err))
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		n.logger.Warn("webhook request failed", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("webhook delivery failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		n.logger.Warn("webhook rejected", zap.Int("status", resp.StatusCode))
	}
}
