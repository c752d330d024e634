package events

import (
	"time"

	"github.com/tedytech/backoffice-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventDemandLogged    EventType = "demand_event_logged"
	EventAlertsEvaluated EventType = "alerts_evaluated"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// DemandLoggedPayload describes a recorded (or deduplicated) demand signal.
type DemandLoggedPayload struct {
	EventID      string              `json:"event_id"`
	Source       domain.DemandSource `json:"source"`
	PhoneType    domain.PhoneType    `json:"phone_type"`
	ThreadID     *string             `json:"thread_id,omitempty"`
	Deduplicated bool                `json:"deduplicated"`
}

// AlertsEvaluatedPayload carries the outcome of one alert evaluation pass.
type AlertsEvaluatedPayload struct {
	Count int      `json:"count"`
	Codes []string `json:"codes"`
}
