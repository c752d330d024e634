package domain

import "time"

// ExchangeStatus enumerates the trade-in workflow states.
type ExchangeStatus string

const (
	ExchangeStatusPending   ExchangeStatus = "Pending"
	ExchangeStatusQuoted    ExchangeStatus = "Quoted"
	ExchangeStatusAccepted  ExchangeStatus = "Accepted"
	ExchangeStatusCompleted ExchangeStatus = "Completed"
	ExchangeStatusRejected  ExchangeStatus = "Rejected"
)

// Exchange is a trade-in request tied to a thread and a desired product.
type Exchange struct {
	ID                 string
	ThreadID           string
	DesiredProductID   string
	Status             ExchangeStatus
	FinalDifference    int64
	PriorityValueETB   int64
	ClickedContinue    bool
	BudgetMentioned    bool
	QuotedAt           *time.Time
	CompletedAt        *time.Time
	CreatedAt          time.Time
}
