package domain

import "time"

// DemandSource identifies where a demand signal came from.
type DemandSource string

const (
	DemandSourceBot    DemandSource = "bot"
	DemandSourceSearch DemandSource = "search"
	DemandSourceSelect DemandSource = "select"
)

// DemandEvent records one unit of evidence that a customer wants a phone
// type. PhoneType is always stored normalized.
type DemandEvent struct {
	ID        string
	Source    DemandSource
	PhoneType PhoneType
	UserID    *string
	ThreadID  *string
	Meta      *string
	CreatedAt time.Time
}

// ValidDemandSource reports whether s is one of the known sources.
func ValidDemandSource(s DemandSource) bool {
	switch s {
	case DemandSourceBot, DemandSourceSearch, DemandSourceSelect:
		return true
	}
	return false
}
