package service

import "fmt"

// Alert is one threshold-triggered, human-readable dashboard entry.
type Alert struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Count    int    `json:"count"`
}

// Alert severities.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityInfo   = "info"
)

// Alert threshold constants.
const (
	replySlowRatioThreshold  = 1.3
	customerSpikePctMin      = 50
	customerSpikeDeltaMin    = 5
)

// AlertInputs is everything the evaluator needs; it is a pure function of
// already-computed counts, so it performs no reads of its own.
type AlertInputs struct {
	Waiting30m         int
	LowStock           int
	MedianReplyToday   int
	MedianReplyYest    int
	UnansweredToday    int
	Quotes48h          int
	NewCustomerToday   int
	NewCustomerDelta   int
	NewCustomerPct     *int
}

// EvaluateAlerts applies the fixed threshold rules in priority order. Each
// rule fires independently; a silent rule adds no entry.
func EvaluateAlerts(in AlertInputs) []Alert {
	alerts := []Alert{}

	if in.Waiting30m > 0 {
		alerts = append(alerts, Alert{
			Code:     "waiting_30m",
			Severity: SeverityHigh,
			Message:  fmt.Sprintf("%d customer(s) waiting over 30 minutes for a reply", in.Waiting30m),
			Count:    in.Waiting30m,
		})
	}

	if in.UnansweredToday > 0 {
		alerts = append(alerts, Alert{
			Code:     "unanswered_today",
			Severity: SeverityHigh,
			Message:  fmt.Sprintf("%d new customer(s) today still have no admin reply", in.UnansweredToday),
			Count:    in.UnansweredToday,
		})
	}

	// Ratio only meaningful when both medians are defined and positive.
	if in.MedianReplyToday > 0 && in.MedianReplyYest > 0 {
		ratio := float64(in.MedianReplyToday) / float64(in.MedianReplyYest)
		if ratio > replySlowRatioThreshold {
			alerts = append(alerts, Alert{
				Code:     "reply_speed_slow",
				Severity: SeverityMedium,
				Message: fmt.Sprintf("median reply time is %d min today vs %d min yesterday",
					in.MedianReplyToday, in.MedianReplyYest),
				Count: in.MedianReplyToday,
			})
		}
	}

	if in.Quotes48h > 0 {
		alerts = append(alerts, Alert{
			Code:     "quotes_open_48h",
			Severity: SeverityMedium,
			Message:  fmt.Sprintf("%d quote(s) have been open for more than 48 hours", in.Quotes48h),
			Count:    in.Quotes48h,
		})
	}

	if in.LowStock > 0 {
		alerts = append(alerts, Alert{
			Code:     "low_stock",
			Severity: SeverityMedium,
			Message:  fmt.Sprintf("%d product(s) at or below their low-stock threshold", in.LowStock),
			Count:    in.LowStock,
		})
	}

	// Both conditions required: percentage growth alone is noise at low
	// volumes, absolute growth alone is noise at high volumes.
	if in.NewCustomerPct != nil && *in.NewCustomerPct > customerSpikePctMin &&
		in.NewCustomerDelta >= customerSpikeDeltaMin {
		alerts = append(alerts, Alert{
			Code:     "new_customer_spike",
			Severity: SeverityInfo,
			Message: fmt.Sprintf("new customers up %d%% today (%d more than yesterday)",
				*in.NewCustomerPct, in.NewCustomerDelta),
			Count: in.NewCustomerToday,
		})
	}

	return alerts
}
