package dto

// ClassifyRequest is the signal bundle for engagement classification.
// Timestamps are epoch milliseconds, matching the upstream clients.
type ClassifyRequest struct {
	CreatedAt             int64  `json:"createdAt"`
	LastCustomerMessageAt *int64 `json:"lastCustomerMessageAt,omitempty"`
	HasBudgetKeyword      bool   `json:"hasBudgetKeyword"`
	PriorityValueETB      int64  `json:"priorityValueEtb"`
	ClickedContinue       bool   `json:"clickedContinue"`
	HasCustomerMessaged   bool   `json:"hasCustomerMessaged"`
	HasAdminReplied       bool   `json:"hasAdminReplied"`
}

// ClassifyResponse returns the derived engagement tier.
type ClassifyResponse struct {
	Category string `json:"category"`
}
