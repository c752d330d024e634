package domain

import "time"

// EngagementTier labels how urgently a thread or exchange needs attention.
type EngagementTier string

const (
	EngagementHot  EngagementTier = "hot"
	EngagementWarm EngagementTier = "warm"
	EngagementCold EngagementTier = "cold"
)

// EngagementSignals is the input bundle for classification. Optional fields
// are pointers so that absence is distinguishable from a zero value.
type EngagementSignals struct {
	CreatedAt             time.Time
	LastCustomerMessageAt *time.Time
	HasBudgetKeyword      bool
	PriorityValueETB      int64
	ClickedContinue       bool
	HasCustomerMessaged   bool
	HasAdminReplied       bool
}

const (
	hotRecencyWindow  = 2 * time.Hour
	coldAgeThreshold  = 24 * time.Hour
	hotValueThreshold = 50_000
)

// ClassifyEngagement maps signals to a tier. Rules are evaluated in strict
// priority order; the first match wins, so a hot signal always beats age.
func ClassifyEngagement(now time.Time, s EngagementSignals) EngagementTier {
	recent := s.LastCustomerMessageAt != nil && now.Sub(*s.LastCustomerMessageAt) < hotRecencyWindow
	highValue := s.PriorityValueETB > hotValueThreshold
	if recent || s.HasBudgetKeyword || highValue {
		return EngagementHot
	}

	if s.ClickedContinue || s.HasCustomerMessaged || s.HasAdminReplied {
		return EngagementWarm
	}

	if now.Sub(s.CreatedAt) > coldAgeThreshold {
		return EngagementCold
	}

	// Young entity with no signals yet.
	return EngagementWarm
}
