package dto

// LogDemandEventRequest is the demand-signal ingestion payload.
type LogDemandEventRequest struct {
	Source    string  `json:"source"`
	PhoneType string  `json:"phoneType"`
	UserID    *string `json:"userId,omitempty"`
	ThreadID  *string `json:"threadId,omitempty"`
	Meta      *string `json:"meta,omitempty"`
}

// LogDemandEventResponse returns the id of the stored (or pre-existing)
// demand event.
type LogDemandEventResponse struct {
	ID string `json:"id"`
}
